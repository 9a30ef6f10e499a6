package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pointage-hq/pointage-backend-go/internal/domain/punch"
	"github.com/pointage-hq/pointage-backend-go/internal/handler/http/response"
)

type PunchHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	ListUnclosed(w http.ResponseWriter, r *http.Request)
}

type PunchHandlerImpl struct {
	punchService punch.PunchService
}

func NewPunchHandler(punchService punch.PunchService) PunchHandler {
	return &PunchHandlerImpl{punchService: punchService}
}

// CheckIn implements PunchHandler.
func (h *PunchHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req punch.CheckInRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CheckIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// 2. Call service
	resp, err := h.punchService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, resp.Message, resp)
}

// CheckOut implements PunchHandler.
func (h *PunchHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req punch.CheckOutRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CheckOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// 2. Call service
	resp, err := h.punchService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, resp.Message, resp)
}

// ListUnclosed implements PunchHandler.
func (h *PunchHandlerImpl) ListUnclosed(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	shifts, err := h.punchService.ListUnclosedShifts(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, shifts)
}
