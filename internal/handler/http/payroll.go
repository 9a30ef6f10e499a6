package http

import (
	"net/http"
	"strconv"

	"github.com/pointage-hq/pointage-backend-go/internal/domain/payroll"
	"github.com/pointage-hq/pointage-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Report(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// Report implements PayrollHandler.
func (h *PayrollHandlerImpl) Report(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	year, err := strconv.Atoi(q.Get("year"))
	if err != nil {
		response.BadRequest(w, "year query parameter is required", nil)
		return
	}

	period := payroll.Period{Year: year}
	if v := q.Get("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "month must be a number", nil)
			return
		}
		period.Month = &month
	}
	if v := q.Get("week"); v != "" {
		week, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "week must be a number", nil)
			return
		}
		period.Week = &week
	}

	report, err := h.payrollService.ComputePay(r.Context(), q.Get("employee_id"), period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}
