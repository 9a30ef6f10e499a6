package employee

import (
	"github.com/shopspring/decimal"

	"github.com/pointage-hq/pointage-backend-go/internal/domain/shift"
)

// PayType determines both the pay computation and the ledger shape: hourly
// employees may punch several shifts a day, everyone else at most one.
type PayType string

const (
	PayTypeNone    PayType = ""
	PayTypeHourly  PayType = "hourly"
	PayTypeWeekly  PayType = "weekly"
	PayTypeMonthly PayType = "monthly"
)

func (p PayType) Valid() bool {
	switch p {
	case PayTypeNone, PayTypeHourly, PayTypeWeekly, PayTypeMonthly:
		return true
	}
	return false
}

// Employee is the persisted record. JSON tags match the historical
// employees.json layout so existing data files load unchanged.
type Employee struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Role      string           `json:"role"`
	Details   string           `json:"details,omitempty"`
	Email     *string          `json:"email,omitempty"`
	AvatarURL *string          `json:"image,omitempty"`
	PayType   PayType          `json:"payType,omitempty"`
	PayAmount *decimal.Decimal `json:"payAmount,omitempty"`
	Ledger    shift.Ledger     `json:"hdePointage"`
}

// LedgerShape resolves the ledger variant from the pay policy, once, instead
// of inferring it per call.
func (e *Employee) LedgerShape() shift.Shape {
	if e.PayType == PayTypeHourly {
		return shift.ShapeMulti
	}
	return shift.ShapeSingle
}

// EnsureLedger guarantees a non-nil ledger map before mutation.
func (e *Employee) EnsureLedger() {
	if e.Ledger == nil {
		e.Ledger = shift.Ledger{}
	}
}
