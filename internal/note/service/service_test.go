package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/modern-notepad/backend/internal/common/clock"
	"github.com/modern-notepad/backend/internal/common/logger"
	"github.com/modern-notepad/backend/internal/note/domain"
	noterepo "github.com/modern-notepad/backend/internal/note/repository"
	"github.com/modern-notepad/backend/internal/note/service"
)

func setupNoteService(t *testing.T) (*service.NoteService, *mockNoteRepo, *mockIDGenerator, *clock.MockClock) {
	_ = t
	mockNoteRepo := &mockNoteRepo{}
	mockIDGenerator := &mockIDGenerator{}
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	log, _ := logger.New("", "test", "info")

	noteService := service.NewNoteService(service.NoteServiceDeps{
		Repo:  mockNoteRepo,
		IDs:   mockIDGenerator,
		Clock: mockClock,
		Log:   log,
	})

	return noteService, mockNoteRepo, mockIDGenerator, mockClock
}

func TestNoteService_Create_Success(t *testing.T) {
	svc, mockNoteRepo, mockIDGenerator, mockClock := setupNoteService(t)

	mockIDGenerator.newIDFunc = func() (string, error) {
		return "note-1", nil
	}

	var stored domain.Note
	mockNoteRepo.createFunc = func(ctx context.Context, note domain.Note) error {
		stored = note
		return nil
	}

	note, err := svc.Create(context.Background(), "user-1", service.CreateInput{
		Title:   "Groceries",
		Content: "milk, eggs",
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if note.ID != "note-1" || note.OwnerID != "user-1" {
		t.Errorf("unexpected identity: id=%s owner=%s", note.ID, note.OwnerID)
	}
	if note.Title != "Groceries" {
		t.Errorf("expected title Groceries, got %s", note.Title)
	}
	if !note.CreatedAt.Equal(mockClock.Now()) || !note.UpdatedAt.Equal(mockClock.Now()) {
		t.Errorf("expected created and updated at %v, got %v / %v", mockClock.Now(), note.CreatedAt, note.UpdatedAt)
	}
	if stored != note {
		t.Error("expected the returned note to match the stored one")
	}
}

func TestNoteService_Create_DefaultsEmptyTitle(t *testing.T) {
	svc, mockNoteRepo, _, _ := setupNoteService(t)

	mockNoteRepo.createFunc = func(ctx context.Context, note domain.Note) error {
		return nil
	}

	for _, title := range []string{"", "   ", "\t\n"} {
		note, err := svc.Create(context.Background(), "user-1", service.CreateInput{
			Title:   title,
			Content: "body",
		})
		if err != nil {
			t.Fatalf("create with title %q: %v", title, err)
		}
		if note.Title != "Untitled Note" {
			t.Errorf("title %q: expected Untitled Note, got %q", title, note.Title)
		}
	}
}

func TestNoteService_Create_KeepsExplicitTitle(t *testing.T) {
	svc, mockNoteRepo, _, _ := setupNoteService(t)

	mockNoteRepo.createFunc = func(ctx context.Context, note domain.Note) error {
		return nil
	}

	note, err := svc.Create(context.Background(), "user-1", service.CreateInput{
		Title:   "Untitled Note II",
		Content: "",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if note.Title != "Untitled Note II" {
		t.Errorf("expected explicit title to survive, got %q", note.Title)
	}
}

func TestNoteService_List_EmptyIsNotNil(t *testing.T) {
	svc, mockNoteRepo, _, _ := setupNoteService(t)

	mockNoteRepo.listByOwnerFunc = func(ctx context.Context, ownerID string) ([]domain.Note, error) {
		return nil, nil
	}

	notes, err := svc.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if notes == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(notes) != 0 {
		t.Errorf("expected no notes, got %d", len(notes))
	}
}

func TestNoteService_Update_Success(t *testing.T) {
	svc, mockNoteRepo, _, mockClock := setupNoteService(t)

	mockNoteRepo.updateFunc = func(ctx context.Context, ownerID, noteID, title, content string, updatedAt time.Time) (domain.Note, error) {
		if ownerID != "user-1" || noteID != "note-1" {
			t.Errorf("unexpected scope: owner=%s note=%s", ownerID, noteID)
		}
		if !updatedAt.Equal(mockClock.Now()) {
			t.Errorf("expected updated at %v, got %v", mockClock.Now(), updatedAt)
		}
		return domain.Note{
			ID:        noteID,
			OwnerID:   ownerID,
			Title:     title,
			Content:   content,
			CreatedAt: mockClock.Now().Add(-time.Hour),
			UpdatedAt: updatedAt,
		}, nil
	}

	note, err := svc.Update(context.Background(), "user-1", "note-1", service.UpdateInput{
		Title:   "Renamed",
		Content: "new body",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if note.Title != "Renamed" || note.Content != "new body" {
		t.Errorf("unexpected note after update: %+v", note)
	}
}

func TestNoteService_Update_NotFound(t *testing.T) {
	svc, mockNoteRepo, _, _ := setupNoteService(t)

	mockNoteRepo.updateFunc = func(ctx context.Context, ownerID, noteID, title, content string, updatedAt time.Time) (domain.Note, error) {
		return domain.Note{}, noterepo.ErrNoteNotFound
	}

	_, err := svc.Update(context.Background(), "user-1", "missing", service.UpdateInput{})
	if !errors.Is(err, service.ErrNoteNotFound) {
		t.Errorf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestNoteService_Archive_Success(t *testing.T) {
	svc, mockNoteRepo, mockIDGenerator, mockClock := setupNoteService(t)

	mockIDGenerator.newIDFunc = func() (string, error) {
		return "archived-1", nil
	}

	mockNoteRepo.archiveFunc = func(ctx context.Context, ownerID, noteID, archivedID string, archivedAt time.Time) error {
		if ownerID != "user-1" || noteID != "note-1" {
			t.Errorf("unexpected scope: owner=%s note=%s", ownerID, noteID)
		}
		if archivedID == noteID {
			t.Error("expected the archived copy to get a fresh id")
		}
		if !archivedAt.Equal(mockClock.Now()) {
			t.Errorf("expected archived at %v, got %v", mockClock.Now(), archivedAt)
		}
		return nil
	}

	if err := svc.Archive(context.Background(), "user-1", "note-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestNoteService_Archive_NotFound(t *testing.T) {
	svc, mockNoteRepo, _, _ := setupNoteService(t)

	mockNoteRepo.archiveFunc = func(ctx context.Context, ownerID, noteID, archivedID string, archivedAt time.Time) error {
		return noterepo.ErrNoteNotFound
	}

	err := svc.Archive(context.Background(), "user-1", "missing")
	if !errors.Is(err, service.ErrNoteNotFound) {
		t.Errorf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestNoteService_ListArchived_EmptyIsNotNil(t *testing.T) {
	svc, mockNoteRepo, _, _ := setupNoteService(t)

	mockNoteRepo.listArchivedByOwnerFunc = func(ctx context.Context, ownerID string) ([]domain.ArchivedNote, error) {
		return nil, nil
	}

	notes, err := svc.ListArchived(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if notes == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestNoteService_Purge_Success(t *testing.T) {
	svc, mockNoteRepo, _, _ := setupNoteService(t)

	purged := false
	mockNoteRepo.purgeArchivedFunc = func(ctx context.Context, ownerID, archivedID string) error {
		if ownerID != "user-1" || archivedID != "archived-1" {
			t.Errorf("unexpected scope: owner=%s archived=%s", ownerID, archivedID)
		}
		purged = true
		return nil
	}

	if err := svc.Purge(context.Background(), "user-1", "archived-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !purged {
		t.Error("expected purge to reach the repository")
	}
}

func TestNoteService_Purge_NotFound(t *testing.T) {
	svc, mockNoteRepo, _, _ := setupNoteService(t)

	mockNoteRepo.purgeArchivedFunc = func(ctx context.Context, ownerID, archivedID string) error {
		return noterepo.ErrArchivedNoteNotFound
	}

	err := svc.Purge(context.Background(), "user-1", "missing")
	if !errors.Is(err, service.ErrArchivedNoteNotFound) {
		t.Errorf("expected ErrArchivedNoteNotFound, got %v", err)
	}
}
