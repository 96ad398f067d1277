package control

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gator/app"
	"gator/domain"
	"gator/internal/logger"
)

var ErrAlreadyRunning = errors.New("already running")

// TryListen tries to bind the control address. If it's already in use, we assume an instance is running.
func TryListen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, ErrAlreadyRunning
	}
	return ln, nil
}

type setIntervalRequest struct {
	Interval string `json:"interval"`
}

type setIntervalResponse struct {
	Old string `json:"old"`
	New string `json:"new"`
}

type resultBody struct {
	Saved   int `json:"saved"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

type statusResponse struct {
	Running     bool       `json:"running"`
	Interval    string     `json:"interval"`
	Cycles      int        `json:"cycles"`
	LastCycleAt *time.Time `json:"last_cycle_at,omitempty"`
	LastFeed    string     `json:"last_feed,omitempty"`
	LastResult  resultBody `json:"last_result"`
	LastError   string     `json:"last_error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewServer returns the control API of a running aggregator:
//
//	POST /set-interval  {"interval":"30s"}
//	GET  /status
func NewServer(agg domain.Aggregator) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/set-interval", handleSetInterval(agg))
	r.Get("/status", handleStatus(agg))
	return r
}

func handleSetInterval(agg domain.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setIntervalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad request"})
			return
		}
		d, err := app.ParseInterval(req.Interval)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		old := agg.CurrentInterval()
		agg.SetInterval(d)
		logger.Infow("fetch interval changed", "old", old.String(), "new", d.String())
		writeJSON(w, http.StatusOK, setIntervalResponse{Old: old.String(), New: d.String()})
	}
}

func handleStatus(agg domain.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := agg.Status()
		writeJSON(w, http.StatusOK, statusResponse{
			Running:     st.Running,
			Interval:    st.Interval.String(),
			Cycles:      st.Cycles,
			LastCycleAt: st.LastCycleAt,
			LastFeed:    st.LastFeed,
			LastResult:  resultBody{Saved: st.LastResult.Saved, Skipped: st.LastResult.Skipped, Failed: st.LastResult.Failed},
			LastError:   st.LastError,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
