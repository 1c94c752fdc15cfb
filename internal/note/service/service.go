package service

import (
	"context"
	"errors"
	"strings"

	"github.com/modern-notepad/backend/internal/common/clock"
	"github.com/modern-notepad/backend/internal/common/constants"
	commoncrypto "github.com/modern-notepad/backend/internal/common/crypto"
	"github.com/modern-notepad/backend/internal/common/logger"
	"github.com/modern-notepad/backend/internal/note/domain"
	noterepo "github.com/modern-notepad/backend/internal/note/repository"
	"github.com/modern-notepad/backend/internal/observability/metrics"
)

// NoteService owns the note lifecycle: Active -> Archived (archive) ->
// Purged (purge, terminal). Every operation is scoped by the caller's
// identity; ownership is enforced in the queries, never in handler code.
type NoteService struct {
	repo  noterepo.Repository
	ids   commoncrypto.IDGenerator
	clock clock.Clock
	log   *logger.Logger
}

type NoteServiceDeps struct {
	Repo  noterepo.Repository
	IDs   commoncrypto.IDGenerator
	Clock clock.Clock
	Log   *logger.Logger
}

func NewNoteService(deps NoteServiceDeps) *NoteService {
	return &NoteService{
		repo:  deps.Repo,
		ids:   deps.IDs,
		clock: deps.Clock,
		log:   deps.Log,
	}
}

type CreateInput struct {
	Title   string
	Content string
}

type UpdateInput struct {
	Title   string
	Content string
}

func (s *NoteService) List(ctx context.Context, ownerID string) ([]domain.Note, error) {
	notes, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": ownerID,
			"action":  "list_notes_failed",
		}).Errorf("list notes failed: %v", err)
		return nil, ErrInternal.WithCause(err)
	}
	if notes == nil {
		notes = []domain.Note{}
	}
	return notes, nil
}

// Create applies the title default in application code: an absent or blank
// title becomes "Untitled Note". The SQL schema carries no column default,
// so behavior is identical across storage backends.
func (s *NoteService) Create(ctx context.Context, ownerID string, input CreateInput) (domain.Note, error) {
	title := input.Title
	if strings.TrimSpace(title) == "" {
		title = constants.DefaultNoteTitle
	}

	id, err := s.ids.NewID()
	if err != nil {
		return domain.Note{}, ErrInternal.WithCause(err)
	}

	now := s.clock.Now()
	note := domain.Note{
		ID:        id,
		OwnerID:   ownerID,
		Title:     title,
		Content:   input.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, note); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": ownerID,
			"action":  "create_note_failed",
		}).Errorf("create note failed: %v", err)
		return domain.Note{}, ErrInternal.WithCause(err)
	}

	metrics.NotesCreatedTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": ownerID,
		"note_id": note.ID,
		"action":  "create_note_success",
	}).Info("note created")

	return note, nil
}

func (s *NoteService) Update(ctx context.Context, ownerID, noteID string, input UpdateInput) (domain.Note, error) {
	note, err := s.repo.Update(ctx, ownerID, noteID, input.Title, input.Content, s.clock.Now())
	if err != nil {
		if errors.Is(err, noterepo.ErrNoteNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": ownerID,
				"note_id": noteID,
				"action":  "update_note_not_found",
			}).Warn("update failed: note not found or not owned")
			return domain.Note{}, ErrNoteNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": ownerID,
			"note_id": noteID,
			"action":  "update_note_failed",
		}).Errorf("update note failed: %v", err)
		return domain.Note{}, ErrInternal.WithCause(err)
	}

	metrics.NotesUpdatedTotal.Inc()
	return note, nil
}

// Archive is the delete operation at this layer: the note leaves the
// active set and an independent copy appears in the archive, atomically.
func (s *NoteService) Archive(ctx context.Context, ownerID, noteID string) error {
	archivedID, err := s.ids.NewID()
	if err != nil {
		return ErrInternal.WithCause(err)
	}

	err = s.repo.Archive(ctx, ownerID, noteID, archivedID, s.clock.Now())
	if err != nil {
		if errors.Is(err, noterepo.ErrNoteNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": ownerID,
				"note_id": noteID,
				"action":  "archive_note_not_found",
			}).Warn("archive failed: note not found or not owned")
			return ErrNoteNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": ownerID,
			"note_id": noteID,
			"action":  "archive_note_failed",
		}).Errorf("archive note failed: %v", err)
		return ErrInternal.WithCause(err)
	}

	metrics.NotesArchivedTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id":     ownerID,
		"note_id":     noteID,
		"archived_id": archivedID,
		"action":      "archive_note_success",
	}).Info("note archived")

	return nil
}

func (s *NoteService) ListArchived(ctx context.Context, ownerID string) ([]domain.ArchivedNote, error) {
	notes, err := s.repo.ListArchivedByOwner(ctx, ownerID)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": ownerID,
			"action":  "list_archived_failed",
		}).Errorf("list archived notes failed: %v", err)
		return nil, ErrInternal.WithCause(err)
	}
	if notes == nil {
		notes = []domain.ArchivedNote{}
	}
	return notes, nil
}

func (s *NoteService) Purge(ctx context.Context, ownerID, archivedID string) error {
	err := s.repo.PurgeArchived(ctx, ownerID, archivedID)
	if err != nil {
		if errors.Is(err, noterepo.ErrArchivedNoteNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"user_id":     ownerID,
				"archived_id": archivedID,
				"action":      "purge_note_not_found",
			}).Warn("purge failed: archived note not found or not owned")
			return ErrArchivedNoteNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id":     ownerID,
			"archived_id": archivedID,
			"action":      "purge_note_failed",
		}).Errorf("purge archived note failed: %v", err)
		return ErrInternal.WithCause(err)
	}

	metrics.NotesPurgedTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id":     ownerID,
		"archived_id": archivedID,
		"action":      "purge_note_success",
	}).Info("archived note purged")

	return nil
}
