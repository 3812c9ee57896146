package handlers

import (
	"net/http"
	"runtime"
	"strconv"
	"time"
)

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Service   string            `json:"service"`
	Uptime    string            `json:"uptime,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
}

var startTime = time.Now()

// Health reports 200 once a network is being served and 503 before that.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   "costarnet-api",
		Uptime:    time.Since(startTime).String(),
		Details: map[string]string{
			"go_version": runtime.Version(),
			"num_cpu":    strconv.Itoa(runtime.NumCPU()),
		},
	}

	status := http.StatusOK
	if st, err := a.svc.Status(); err != nil {
		response.Status = "loading"
		status = http.StatusServiceUnavailable
	} else {
		response.Details["network_version"] = st.Version
		response.Details["loaded_at"] = st.LoadedAt.Format(time.RFC3339)
	}

	a.writeJSON(w, r, status, response)
}
