package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"lanterna/internal/discovery"
	"lanterna/internal/domain"
	"lanterna/internal/logger"
	"lanterna/internal/report"
	"lanterna/internal/service"
)

// RestartRequester accepts a request to relaunch the process with
// elevated privileges
type RestartRequester interface {
	Request()
}

// DiagnosticsHandler handles diagnostics API requests
type DiagnosticsHandler struct {
	svc     *service.Diagnostics
	restart RestartRequester
	now     func() time.Time
}

// NewDiagnosticsHandler creates a new diagnostics handler
func NewDiagnosticsHandler(svc *service.Diagnostics) *DiagnosticsHandler {
	return &DiagnosticsHandler{svc: svc, now: time.Now}
}

// SetRestartRequester sets the restart requester (lifecycle manager)
func (h *DiagnosticsHandler) SetRestartRequester(r RestartRequester) {
	h.restart = r
}

// RegisterRoutes attaches every API endpoint to mux. The events handler
// is registered separately because SSE streams bypass the JSON helpers.
func (h *DiagnosticsHandler) RegisterRoutes(mux *http.ServeMux, events http.Handler) {
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("GET /api/overview", h.Overview)
	mux.HandleFunc("GET /api/local-info", h.LocalInfo)
	mux.HandleFunc("POST /api/probes", h.RunProbe)
	mux.HandleFunc("GET /api/probes/recent", h.RecentProbes)
	mux.HandleFunc("POST /api/link-discovery", h.StartDiscovery)
	mux.HandleFunc("GET /api/link-discovery", h.DiscoveryStatus)
	mux.HandleFunc("DELETE /api/link-discovery", h.CancelDiscovery)
	mux.HandleFunc("GET /api/capability", h.Capability)
	mux.HandleFunc("POST /api/export", h.Export)
	mux.HandleFunc("POST /api/restart", h.Restart)
	if events != nil {
		mux.Handle("GET /api/events", events)
	}
}

// Error response structure
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Health returns liveness and the running version
func (h *DiagnosticsHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"status":  "ok",
		"version": h.svc.Version(),
	}, http.StatusOK)
}

// OverviewResponse is the condensed landing view: aggregated status,
// findings, and one-liners about the active interface.
type OverviewResponse struct {
	Status          domain.OverallStatus `json:"status"`
	KeyFindings     []string             `json:"key_findings"`
	ActiveInterface string               `json:"active_interface,omitempty"`
	IPv4            string               `json:"ipv4,omitempty"`
	Gateway         string               `json:"gateway,omitempty"`
	LinkSpeedMbps   int                  `json:"link_speed_mbps,omitempty"`
}

// Overview returns the aggregated health summary
func (h *DiagnosticsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	snapshot := h.svc.Snapshot()

	resp := OverviewResponse{
		Status:      snapshot.Status,
		KeyFindings: snapshot.Findings,
	}
	if info := snapshot.LocalInfo; info != nil {
		resp.ActiveInterface = info.InterfaceName
		resp.IPv4 = info.IPv4
		resp.Gateway = info.Gateway
		resp.LinkSpeedMbps = info.LinkSpeedMbps
	}

	writeJSON(w, resp, http.StatusOK)
}

// LocalInfo returns the active interface's addressing snapshot
func (h *DiagnosticsHandler) LocalInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.svc.LocalInfo()
	if err != nil {
		logger.Errorf("failed to collect local info: %v", err)
		writeError(w, "Failed to read local network configuration", err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, info, http.StatusOK)
}

// RunProbe executes one diagnostic probe synchronously and returns its
// outcome. Client disconnect cancels the child process via the request
// context.
func (h *DiagnosticsHandler) RunProbe(w http.ResponseWriter, r *http.Request) {
	var req domain.ProbeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	kind, err := domain.ParseProbeKind(string(req.Kind))
	if err != nil {
		writeError(w, "Unknown probe kind", err.Error(), http.StatusBadRequest)
		return
	}
	req.Kind = kind

	outcome, err := h.svc.RunProbe(r.Context(), req)
	if err != nil {
		writeError(w, "Invalid probe request", err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, outcome, http.StatusOK)
}

// RecentProbes returns the outcome history, oldest first
func (h *DiagnosticsHandler) RecentProbes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.RecentOutcomes(), http.StatusOK)
}

// StartDiscovery begins a link discovery capture in the background.
// The capture outlives the request, so it does not use r.Context().
func (h *DiagnosticsHandler) StartDiscovery(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.StartDiscovery(context.Background()); err != nil {
		if errors.Is(err, discovery.ErrCaptureBusy) {
			writeError(w, "Link discovery already in progress", err.Error(), http.StatusConflict)
			return
		}
		logger.Errorf("failed to start link discovery: %v", err)
		writeError(w, "Failed to start link discovery", err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.svc.DiscoveryResult(), http.StatusAccepted)
}

// DiscoveryStatus returns the most recent discovery result
func (h *DiagnosticsHandler) DiscoveryStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.DiscoveryResult(), http.StatusOK)
}

// CancelDiscovery aborts the in-flight capture, if any
func (h *DiagnosticsHandler) CancelDiscovery(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.CancelDiscovery(); err != nil {
		if errors.Is(err, discovery.ErrNotRunning) {
			writeError(w, "No link discovery attempt in progress", err.Error(), http.StatusNotFound)
			return
		}
		logger.Errorf("failed to cancel link discovery: %v", err)
		writeError(w, "Failed to cancel link discovery", err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Capability returns a fresh capture precondition check
func (h *DiagnosticsHandler) Capability(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.Capability(), http.StatusOK)
}

// ExportRequest selects the report format. Empty or unknown formats
// fall back to plain text.
type ExportRequest struct {
	Format string `json:"format"`
}

// Export renders the current diagnostic snapshot as a downloadable report
func (h *DiagnosticsHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	renderer := report.ForFormat(req.Format)
	snapshot := h.svc.Snapshot()
	filename := report.Filename(renderer, h.now())

	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	if _, err := io.WriteString(w, renderer.Render(snapshot)); err != nil {
		logger.Errorf("failed to write report: %v", err)
	}
}

// Restart requests a privileged relaunch of the process
func (h *DiagnosticsHandler) Restart(w http.ResponseWriter, r *http.Request) {
	if h.restart == nil {
		writeError(w, "Restart not supported", "No restart handler is registered", http.StatusServiceUnavailable)
		return
	}

	logger.Infof("restart requested via API")
	h.restart.Request()

	writeJSON(w, map[string]string{"status": "restarting"}, http.StatusAccepted)
}

// Helper functions

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Errorf("failed to encode JSON: %v", err)
	}
}

func writeError(w http.ResponseWriter, error, details string, statusCode int) {
	writeJSON(w, ErrorResponse{Error: error, Details: details}, statusCode)
}
