package http

import (
	"net/http"

	"github.com/pointage-hq/pointage-backend-go/internal/handler/http/response"
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/clock"
)

type TimeHandler interface {
	Now(w http.ResponseWriter, r *http.Request)
}

type TimeHandlerImpl struct {
	clock clock.Clock
}

func NewTimeHandler(clk clock.Clock) TimeHandler {
	return &TimeHandlerImpl{clock: clk}
}

// Now implements TimeHandler. Kiosks display this server time and echo it
// back when punching; the reconciler rejects drifted submissions.
func (h *TimeHandlerImpl) Now(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.clock.Now())
}
