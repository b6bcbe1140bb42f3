package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"pricebot/internal/application"
	"pricebot/internal/infrastructure/logx"

	"go.uber.org/zap"
)

// Server exposes the bot's live-message state. It only reads the store.
type Server struct {
	store   application.StateStore
	clock   application.Clock
	maxAge  time.Duration
	ready   func(ctx context.Context) error
	metrics http.Handler
}

func NewServer(store application.StateStore, clock application.Clock, maxAge time.Duration) *Server {
	if clock == nil {
		clock = application.SystemClock()
	}
	return &Server{store: store, clock: clock, maxAge: maxAge}
}

// SetReadyCheck installs the /readyz probe.
func (s *Server) SetReadyCheck(fn func(ctx context.Context) error) { s.ready = fn }

// SetMetricsHandler mounts h at /metrics.
func (s *Server) SetMetricsHandler(h http.Handler) { s.metrics = h }

type statusResponse struct {
	Phase      string    `json:"phase"`
	MessageID  string    `json:"message_id"`
	CreatedAt  time.Time `json:"created_at"`
	AgeSeconds int64     `json:"age_seconds"`
	ExpiresAt  time.Time `json:"expires_at"`
	Expired    bool      `json:"expired"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s *Server) GetStatus(w http.ResponseWriter, r *http.Request) {
	st, err := s.store.Load(r.Context())
	if err != nil {
		logx.L().Warn("status_load_failed", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "state unavailable")
		return
	}
	if st.Live == nil {
		writeError(w, http.StatusNotFound, "no live message")
		return
	}
	now := s.clock.Now()
	writeJSON(w, http.StatusOK, statusResponse{
		Phase:      string(st.Phase()),
		MessageID:  st.Live.ID,
		CreatedAt:  st.Live.CreatedAt,
		AgeSeconds: int64(st.Live.Age(now) / time.Second),
		ExpiresAt:  st.Live.CreatedAt.Add(s.maxAge),
		Expired:    st.Live.Expired(now, s.maxAge),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Code: status, Message: msg})
}
