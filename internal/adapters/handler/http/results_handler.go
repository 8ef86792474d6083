package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/referendum-bg/anketa/internal/core/ports"
	"github.com/referendum-bg/anketa/internal/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// serverMessage is the envelope pushed to live-results subscribers.
type serverMessage struct {
	Type    string `json:"type"` // "tally" or "ping"
	Payload any    `json:"payload"`
}

type ResultsHandler struct {
	service      ports.TallyService
	pingInterval time.Duration
}

func NewResultsHandler(service ports.TallyService) *ResultsHandler {
	return &ResultsHandler{
		service:      service,
		pingInterval: 30 * time.Second,
	}
}

// GetResults godoc
// @Summary      Returns the current vote tally
// @Description  Full-scan aggregation of all persisted votes, grouped by choice
// @Tags         results
// @Produce      json
// @Success      200
// @Failure      500
// @Router       /results [get]
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	tally, err := h.service.GetTally(r.Context())
	if err != nil {
		logging.Log.Errorf("failed to compute tally: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to compute results")
		return
	}

	writeJSON(w, http.StatusOK, tally)
}

// LiveResults upgrades to a websocket and pushes the recomputed tally on
// connect and on every change to the vote set, plus a periodic ping.
func (h *ResultsHandler) LiveResults(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Log.Errorf("failed to upgrade live-results connection: %v", err)
		return
	}
	defer conn.Close()

	changes, cancel := h.service.Subscribe()
	defer cancel()

	// Drain incoming frames so close handshakes are processed; clients
	// are not expected to send anything meaningful.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if !h.pushTally(r.Context(), conn) {
		return
	}

	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case <-changes:
			if !h.pushTally(r.Context(), conn) {
				return
			}
		case <-ticker.C:
			msg := serverMessage{Type: "ping", Payload: map[string]int64{"timestamp": time.Now().Unix()}}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}
}

func (h *ResultsHandler) pushTally(ctx context.Context, conn *websocket.Conn) bool {
	tally, err := h.service.GetTally(ctx)
	if err != nil {
		logging.Log.Errorf("failed to compute tally for live subscriber: %v", err)
		return false
	}

	if err := conn.WriteJSON(serverMessage{Type: "tally", Payload: tally}); err != nil {
		return false
	}
	return true
}
