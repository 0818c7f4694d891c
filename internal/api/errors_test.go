package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/boundq/internal/service/auth"
	"github.com/phrazzld/boundq/internal/task"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		message string
	}{
		{auth.ErrExpiredToken, http.StatusUnauthorized, "Token expired"},
		{auth.ErrInvalidToken, http.StatusUnauthorized, "Invalid token"},
		{auth.ErrMissingToken, http.StatusUnauthorized, "Authorization header required"},
		{task.ErrTaskNotFound, http.StatusNotFound, "Task not found"},
		{fmt.Errorf("lookup: %w", task.ErrTaskNotFound), http.StatusNotFound, "Task not found"},
		{task.ErrTaskExists, http.StatusConflict, "Task already exists"},
		{fmt.Errorf("%w: id has invalid format", ErrInvalidID), http.StatusBadRequest, "Invalid task ID"},
		{ErrInvalidStatus, http.StatusBadRequest, "Invalid status filter"},
		{ErrInvalidLimit, http.StatusBadRequest, "Invalid limit"},
		{errors.New("connection reset by peer"), http.StatusInternalServerError, "An unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.status, MapErrorToStatusCode(tc.err))
			assert.Equal(t, tc.message, GetSafeErrorMessage(tc.err))
		})
	}

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}

func TestSanitizeValidationError(t *testing.T) {
	validate := validator.New()

	err := validate.Struct(&SubmitTasksRequest{})
	assert.Equal(t, "Invalid Targets: required field", SanitizeValidationError(err))

	err = validate.Struct(&SubmitTasksRequest{Targets: []string{"mailto:ops@example.com"}})
	assert.Equal(t, "Invalid Targets[0]: must be an absolute http or https URL", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
}
