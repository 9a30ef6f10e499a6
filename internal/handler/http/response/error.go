package response

import (
	"errors"
	"net/http"

	"github.com/pointage-hq/pointage-backend-go/internal/domain/auth"
	"github.com/pointage-hq/pointage-backend-go/internal/domain/employee"
	"github.com/pointage-hq/pointage-backend-go/internal/domain/punch"
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// A tolerance rejection carries the server time the client should show
	var tolErr *punch.ToleranceError
	if errors.As(err, &tolErr) {
		BadRequest(w, tolErr.Error(), map[string]string{
			"required_time": tolErr.RequiredTime,
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Administrator privilege required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeIDExists):
		Conflict(w, "Employee with this ID already exists")
	case errors.Is(err, employee.ErrInvalidPayPolicy):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, employee.ErrNoSuchShift):
		NotFound(w, "No shift record at that date")
	case errors.Is(err, employee.ErrSlotNotEditable):
		Conflict(w, "Only blank punch slots can be edited")
	case errors.Is(err, employee.ErrPersistenceFailure):
		ServiceUnavailable(w, "Could not save the record, please try again")

	// Punch domain errors
	case errors.Is(err, punch.ErrInvalidTimeFormat):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, punch.ErrTimeOutOfTolerance):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, punch.ErrAlreadyCheckedIn):
		Conflict(w, err.Error())
	case errors.Is(err, punch.ErrAlreadyCheckedOut):
		Conflict(w, err.Error())
	case errors.Is(err, punch.ErrNoOpenShiftForDate):
		NotFound(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
