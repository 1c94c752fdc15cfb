package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NotesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notepad_notes_created_total",
			Help: "Total number of notes created",
		},
	)

	NotesUpdatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notepad_notes_updated_total",
			Help: "Total number of notes updated",
		},
	)

	NotesArchivedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notepad_notes_archived_total",
			Help: "Total number of notes moved to the archive",
		},
	)

	NotesPurgedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notepad_notes_purged_total",
			Help: "Total number of archived notes permanently deleted",
		},
	)
)
