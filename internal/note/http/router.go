package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/modern-notepad/backend/internal/common/config"
	commonhttp "github.com/modern-notepad/backend/internal/common/http"
	"github.com/modern-notepad/backend/internal/common/jwtverify"
	"github.com/modern-notepad/backend/internal/common/logger"
	"github.com/modern-notepad/backend/internal/note/domain"
	"github.com/modern-notepad/backend/internal/note/service"
)

type createNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type updateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type noteResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type archivedNoteResponse struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	CreatedAt  *time.Time `json:"createdAt"`
	ArchivedAt time.Time  `json:"archivedAt"`
}

func toNoteResponse(n domain.Note) noteResponse {
	return noteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func toArchivedNoteResponse(n domain.ArchivedNote) archivedNoteResponse {
	return archivedNoteResponse{
		ID:         n.ID,
		Title:      n.Title,
		Content:    n.Content,
		CreatedAt:  n.CreatedAt,
		ArchivedAt: n.ArchivedAt,
	}
}

// Handler serves the note-scoped routes. It expects to run behind the
// jwtverify guard; every operation reads its owning identity from the
// request context, never from the request body or path.
type Handler struct {
	notes *service.NoteService
	cfg   config.Config
	log   *logger.Logger
}

func NewHandler(notes *service.NoteService, cfg config.Config, log *logger.Logger) http.Handler {
	h := &Handler{notes: notes, cfg: cfg, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("/notes", h.collection)
	mux.HandleFunc("/notes/archive", h.archivedCollection)
	mux.HandleFunc("/notes/archive/", h.archivedItem)
	mux.HandleFunc("/notes/", h.item)
	return mux
}

func (h *Handler) collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) item(w http.ResponseWriter, r *http.Request) {
	noteID, ok := h.extractID(w, r, "/notes/")
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.update(w, r, noteID)
	case http.MethodDelete:
		h.archive(w, r, noteID)
	default:
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) archivedCollection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed")
		return
	}
	h.listArchived(w, r)
}

func (h *Handler) archivedItem(w http.ResponseWriter, r *http.Request) {
	archivedID, ok := h.extractID(w, r, "/notes/archive/")
	if !ok {
		return
	}

	if r.Method != http.MethodDelete {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed")
		return
	}
	h.purge(w, r, archivedID)
}

// extractID pulls the trailing path segment and checks it is a uuid. A
// malformed id cannot name an existing row, so it gets the same not-found
// answer as an unowned one.
func (h *Handler) extractID(w http.ResponseWriter, r *http.Request, prefix string) (string, bool) {
	id := strings.TrimPrefix(r.URL.Path, prefix)
	if id == "" || strings.Contains(id, "/") || commonhttp.ValidateUUID(id) != nil {
		commonhttp.WriteError(w, http.StatusNotFound, commonhttp.CodeNotFound, "Note not found or not authorized")
		return "", false
	}
	return id, true
}

func (h *Handler) identity(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusUnauthorized, commonhttp.CodeInvalidToken, "Not authorized, token failed")
		return "", false
	}
	return claims.UserID, true
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.identity(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	notes, err := h.notes.List(ctx, ownerID)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	resp := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		resp = append(resp, toNoteResponse(n))
	}
	commonhttp.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req createNoteRequest
	if err := commonhttp.DecodeAndValidate(r, &req); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	note, err := h.notes.Create(ctx, ownerID, service.CreateInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, toNoteResponse(note))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, noteID string) {
	ownerID, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req updateNoteRequest
	if err := commonhttp.DecodeAndValidate(r, &req); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	note, err := h.notes.Update(ctx, ownerID, noteID, service.UpdateInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toNoteResponse(note))
}

func (h *Handler) archive(w http.ResponseWriter, r *http.Request, noteID string) {
	ownerID, ok := h.identity(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	if err := h.notes.Archive(ctx, ownerID, noteID); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, commonhttp.MessageResponse{Message: "Note archived"})
}

func (h *Handler) listArchived(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.identity(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	notes, err := h.notes.ListArchived(ctx, ownerID)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	resp := make([]archivedNoteResponse, 0, len(notes))
	for _, n := range notes {
		resp = append(resp, toArchivedNoteResponse(n))
	}
	commonhttp.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) purge(w http.ResponseWriter, r *http.Request, archivedID string) {
	ownerID, ok := h.identity(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	if err := h.notes.Purge(ctx, ownerID, archivedID); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, commonhttp.MessageResponse{Message: "Archived note permanently deleted"})
}
