package repository

import (
	"context"
	"errors"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/modern-notepad/backend/internal/common/constants"
	"github.com/modern-notepad/backend/internal/common/db"
	"github.com/modern-notepad/backend/internal/note/domain"
)

var (
	// Both sentinels cover "does not exist" and "not owned by the caller";
	// the two cases are deliberately indistinguishable.
	ErrNoteNotFound         = pgx.ErrNoRows
	ErrArchivedNoteNotFound = errors.New("archived note not found")
)

type Repository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Note, error)
	Create(ctx context.Context, note domain.Note) error
	Update(ctx context.Context, ownerID, noteID, title, content string, updatedAt time.Time) (domain.Note, error)
	Archive(ctx context.Context, ownerID, noteID, archivedID string, archivedAt time.Time) error
	ListArchivedByOwner(ctx context.Context, ownerID string) ([]domain.ArchivedNote, error)
	PurgeArchived(ctx context.Context, ownerID, archivedID string) error
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Note, error) {
	start := time.Now()
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, user_id, title, content, created_at, updated_at
		 FROM notes
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, db.HandleExecError(err, "list notes", start)
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, db.HandleExecError(err, "list notes", start)
		}
		notes = append(notes, n)
	}

	if rows.Err() != nil {
		return nil, db.HandleExecError(rows.Err(), "list notes", start)
	}

	db.MeasureQueryDuration("list notes", start)
	return notes, nil
}

func (r *PgRepository) Create(ctx context.Context, note domain.Note) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO notes (id, user_id, title, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		note.ID,
		note.OwnerID,
		note.Title,
		note.Content,
		note.CreatedAt,
		note.UpdatedAt,
	)
	if err != nil {
		return db.HandleExecError(err, "create note", start)
	}
	db.MeasureQueryDuration("create note", start)
	return nil
}

func (r *PgRepository) Update(ctx context.Context, ownerID, noteID, title, content string, updatedAt time.Time) (domain.Note, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`UPDATE notes
		 SET title = $1, content = $2, updated_at = $3
		 WHERE id = $4 AND user_id = $5
		 RETURNING id, user_id, title, content, created_at, updated_at`,
		title,
		content,
		updatedAt,
		noteID,
		ownerID,
	)

	var n domain.Note
	err := row.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if err := db.HandleQueryError(err, ErrNoteNotFound, "update note", start); err != nil {
		return domain.Note{}, err
	}
	return n, nil
}

// Archive moves a note from the active set to the archive in one
// transaction. The DELETE ... RETURNING takes a row lock, so of two
// concurrent archives of the same note exactly one sees the row; the other
// gets ErrNoteNotFound. A crash before commit leaves the note active.
func (r *PgRepository) Archive(ctx context.Context, ownerID, noteID, archivedID string, archivedAt time.Time) error {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return db.HandleExecError(err, "begin archive note", start)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var title, content string
	var createdAt time.Time
	row := tx.QueryRow(
		ctx,
		`DELETE FROM notes
		 WHERE id = $1 AND user_id = $2
		 RETURNING title, content, created_at`,
		noteID,
		ownerID,
	)
	err = row.Scan(&title, &content, &createdAt)
	if err := db.HandleQueryError(err, ErrNoteNotFound, "archive note delete", start); err != nil {
		return err
	}

	_, err = tx.Exec(
		ctx,
		`INSERT INTO archived_notes (id, user_id, title, content, created_at, archived_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		archivedID,
		ownerID,
		title,
		content,
		createdAt,
		archivedAt,
	)
	if err != nil {
		return db.HandleExecError(err, "archive note insert", start)
	}

	if err := tx.Commit(ctx); err != nil {
		return db.HandleExecError(err, "archive note commit", start)
	}

	db.MeasureQueryDuration("archive note", start)
	return nil
}

func (r *PgRepository) ListArchivedByOwner(ctx context.Context, ownerID string) ([]domain.ArchivedNote, error) {
	start := time.Now()
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, user_id, title, content, created_at, archived_at
		 FROM archived_notes
		 WHERE user_id = $1
		 ORDER BY archived_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, db.HandleExecError(err, "list archived notes", start)
	}
	defer rows.Close()

	var notes []domain.ArchivedNote
	for rows.Next() {
		var n domain.ArchivedNote
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.CreatedAt, &n.ArchivedAt); err != nil {
			return nil, db.HandleExecError(err, "list archived notes", start)
		}
		notes = append(notes, n)
	}

	if rows.Err() != nil {
		return nil, db.HandleExecError(rows.Err(), "list archived notes", start)
	}

	db.MeasureQueryDuration("list archived notes", start)
	return notes, nil
}

func (r *PgRepository) PurgeArchived(ctx context.Context, ownerID, archivedID string) error {
	start := time.Now()
	tag, err := r.pool.Exec(
		ctx,
		`DELETE FROM archived_notes WHERE id = $1 AND user_id = $2`,
		archivedID,
		ownerID,
	)
	if err != nil {
		return db.HandleExecError(err, "purge archived note", start)
	}
	db.MeasureQueryDuration("purge archived note", start)
	if tag.RowsAffected() == 0 {
		return ErrArchivedNoteNotFound
	}
	return nil
}
