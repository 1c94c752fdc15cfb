package service

import (
	commonerrors "github.com/modern-notepad/backend/internal/common/errors"
)

var (
	// Unknown username and wrong password return the same error so callers
	// cannot enumerate usernames.
	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		400,
		"Invalid credentials",
	)

	ErrDuplicateUser = commonerrors.NewDomainError(
		"DUPLICATE_USER",
		commonerrors.CategoryConflict,
		400,
		"User already exists",
	)

	ErrUserNotFound = commonerrors.NewDomainError(
		"USER_NOT_FOUND",
		commonerrors.CategoryNotFound,
		404,
		"User not found",
	)

	ErrCurrentPasswordIncorrect = commonerrors.NewDomainError(
		"CURRENT_PASSWORD_INCORRECT",
		commonerrors.CategoryValidation,
		400,
		"Current password is incorrect",
	)

	ErrInternal = commonerrors.NewDomainError(
		"INTERNAL_ERROR",
		commonerrors.CategoryInternal,
		500,
		"Server error",
	)
)
