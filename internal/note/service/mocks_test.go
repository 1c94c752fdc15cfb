package service_test

import (
	"context"
	"time"

	"github.com/modern-notepad/backend/internal/note/domain"
	noterepo "github.com/modern-notepad/backend/internal/note/repository"
)

type mockNoteRepo struct {
	listByOwnerFunc         func(ctx context.Context, ownerID string) ([]domain.Note, error)
	createFunc              func(ctx context.Context, note domain.Note) error
	updateFunc              func(ctx context.Context, ownerID, noteID, title, content string, updatedAt time.Time) (domain.Note, error)
	archiveFunc             func(ctx context.Context, ownerID, noteID, archivedID string, archivedAt time.Time) error
	listArchivedByOwnerFunc func(ctx context.Context, ownerID string) ([]domain.ArchivedNote, error)
	purgeArchivedFunc       func(ctx context.Context, ownerID, archivedID string) error
}

func (m *mockNoteRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Note, error) {
	if m.listByOwnerFunc != nil {
		return m.listByOwnerFunc(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockNoteRepo) Create(ctx context.Context, note domain.Note) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, note)
	}
	return nil
}

func (m *mockNoteRepo) Update(ctx context.Context, ownerID, noteID, title, content string, updatedAt time.Time) (domain.Note, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, ownerID, noteID, title, content, updatedAt)
	}
	return domain.Note{}, noterepo.ErrNoteNotFound
}

func (m *mockNoteRepo) Archive(ctx context.Context, ownerID, noteID, archivedID string, archivedAt time.Time) error {
	if m.archiveFunc != nil {
		return m.archiveFunc(ctx, ownerID, noteID, archivedID, archivedAt)
	}
	return noterepo.ErrNoteNotFound
}

func (m *mockNoteRepo) ListArchivedByOwner(ctx context.Context, ownerID string) ([]domain.ArchivedNote, error) {
	if m.listArchivedByOwnerFunc != nil {
		return m.listArchivedByOwnerFunc(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockNoteRepo) PurgeArchived(ctx context.Context, ownerID, archivedID string) error {
	if m.purgeArchivedFunc != nil {
		return m.purgeArchivedFunc(ctx, ownerID, archivedID)
	}
	return noterepo.ErrArchivedNoteNotFound
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return "id-1", nil
}
