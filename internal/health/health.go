package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Pinger is anything that can report whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type report struct {
	Status   string            `json:"status"`
	Checks   map[string]string `json:"checks,omitempty"`
	Duration string            `json:"duration"`
}

// Handler reports "ok" when every check pings within the timeout and
// "degraded" with a 503 otherwise.
func Handler(timeout time.Duration, checks map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		rep := report{Status: "ok", Checks: make(map[string]string, len(checks))}
		for name, p := range checks {
			if err := p.Ping(ctx); err != nil {
				rep.Status = "degraded"
				rep.Checks[name] = err.Error()
				continue
			}
			rep.Checks[name] = "ok"
		}
		rep.Duration = time.Since(start).String()

		status := http.StatusOK
		if rep.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(rep)
	}
}
