package service

import (
	commonerrors "github.com/modern-notepad/backend/internal/common/errors"
)

var (
	// "Does not exist" and "not yours" share one error and one message so
	// a caller cannot probe which note ids exist.
	ErrNoteNotFound = commonerrors.NewDomainError(
		"NOTE_NOT_FOUND",
		commonerrors.CategoryNotFound,
		404,
		"Note not found or not authorized",
	)

	ErrArchivedNoteNotFound = commonerrors.NewDomainError(
		"ARCHIVED_NOTE_NOT_FOUND",
		commonerrors.CategoryNotFound,
		404,
		"Archived note not found or not authorized",
	)

	ErrInternal = commonerrors.NewDomainError(
		"INTERNAL_ERROR",
		commonerrors.CategoryInternal,
		500,
		"Server error",
	)
)
