package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	commonerrors "github.com/modern-notepad/backend/internal/common/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var ErrInvalidJSON = commonerrors.NewDomainError(
	CodeInvalidJSON,
	commonerrors.CategoryValidation,
	http.StatusBadRequest,
	"Invalid request body",
)

// DecodeAndValidate decodes the request body into v and checks its validate
// tags. Validation failures name the offending json fields in the message.
func DecodeAndValidate(r *http.Request, v any) error {
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return ErrInvalidJSON.WithCause(err)
	}

	if err := validate.Struct(v); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return ErrInvalidJSON.WithCause(err)
		}

		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, strings.ToLower(fe.Field()[:1])+fe.Field()[1:])
			}
			return commonerrors.NewDomainError(
				CodeValidationFailed,
				commonerrors.CategoryValidation,
				http.StatusBadRequest,
				fmt.Sprintf("Please add all fields: %s", strings.Join(fields, ", ")),
			)
		}

		return ErrInvalidJSON.WithCause(err)
	}

	return nil
}
