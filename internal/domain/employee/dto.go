package employee

import (
	"github.com/shopspring/decimal"

	"github.com/pointage-hq/pointage-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	ID        string  `json:"id,omitempty"` // generated when empty
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	Details   string  `json:"details,omitempty"`
	Email     *string `json:"email,omitempty"`
	AvatarURL *string `json:"image,omitempty"`
	PayType   string  `json:"pay_type,omitempty"`
	PayAmount *string `json:"pay_amount,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ID != "" && !validator.IsValidBadgeID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be 4-10 digits",
		})
	}

	if !validator.IsValidName(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required and may only contain letters, spaces, apostrophes and hyphens",
		})
	}

	if !validator.IsValidName(r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role is required and may only contain letters, spaces, apostrophes and hyphens",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email address",
		})
	}

	errs = append(errs, validatePayPolicy(r.PayType, r.PayAmount)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID        string  `json:"-"`
	Name      *string `json:"name,omitempty"`
	Role      *string `json:"role,omitempty"`
	Details   *string `json:"details,omitempty"`
	Email     *string `json:"email,omitempty"`
	AvatarURL *string `json:"image,omitempty"`
	PayType   *string `json:"pay_type,omitempty"`
	PayAmount *string `json:"pay_amount,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Name != nil && !validator.IsValidName(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name may only contain letters, spaces, apostrophes and hyphens",
		})
	}

	if r.Role != nil && !validator.IsValidName(*r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role may only contain letters, spaces, apostrophes and hyphens",
		})
	}

	if r.Email != nil && *r.Email != "" && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email address",
		})
	}

	if r.PayType != nil {
		errs = append(errs, validatePayPolicy(*r.PayType, r.PayAmount)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validatePayPolicy(payType string, payAmount *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if !PayType(payType).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "pay_type",
			Message: "pay_type must be one of hourly, weekly, monthly, or empty",
		})
		return errs
	}

	if PayType(payType) != PayTypeNone {
		if payAmount == nil || validator.IsEmpty(*payAmount) {
			errs = append(errs, validator.ValidationError{
				Field:   "pay_amount",
				Message: "pay_amount is required when pay_type is set",
			})
		} else if amt, err := decimal.NewFromString(*payAmount); err != nil || amt.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "pay_amount",
				Message: "pay_amount must be a non-negative number",
			})
		}
	}

	return errs
}

// EditShiftRequest is the admin "modifier pointage" operation: fill the blank
// half of a punch pair after the fact.
type EditShiftRequest struct {
	EmployeeID string  `json:"-"`
	DateKey    string  `json:"-"`
	Index      int     `json:"index,omitempty"` // position within an hourly day, 0 otherwise
	CheckIn    *string `json:"check_in,omitempty"`
	CheckOut   *string `json:"check_out,omitempty"`
}

func (r *EditShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsValidDateKey(r.DateKey) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_key",
			Message: "date_key must be DD-MM-YYYY",
		})
	}

	if r.CheckIn == nil && r.CheckOut == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "at least one of check_in, check_out is required",
		})
	}

	if r.CheckIn != nil && !validator.IsValidClockTime(*r.CheckIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "check_in must be a 12-hour time like 8:05 AM",
		})
	}

	if r.CheckOut != nil && !validator.IsValidClockTime(*r.CheckOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out",
			Message: "check_out must be a 12-hour time like 5:00 PM",
		})
	}

	if r.Index < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "index",
			Message: "index must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	Details   string  `json:"details,omitempty"`
	Email     *string `json:"email,omitempty"`
	AvatarURL *string `json:"image,omitempty"`
	PayType   string  `json:"pay_type,omitempty"`
	PayAmount *string `json:"pay_amount,omitempty"`
	OpenShift bool    `json:"open_shift"`
}

type ShiftResponse struct {
	DateKey     string   `json:"date_key"`
	Index       int      `json:"index"`
	CheckIn     string   `json:"check_in"`
	CheckOut    string   `json:"check_out"`
	WorkedHours *float64 `json:"worked_hours,omitempty"`
	EditedAt    *string  `json:"edited_at,omitempty"`
}
