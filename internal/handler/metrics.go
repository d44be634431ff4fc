package handler

import (
	"fmt"
	"net/http"

	"github.com/gtmountains/newsletter/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "newsletter_subscriptions_total %d\n", snap.Subscribed)
	writeMetric(w, "newsletter_subscriptions_rejected_total{reason=%q} %d\n", metrics.ReasonInvalidEmail, snap.RejectedInvalidEmail)
	writeMetric(w, "newsletter_subscriptions_rejected_total{reason=%q} %d\n", metrics.ReasonAlreadySubscribed, snap.RejectedAlreadyExisting)
	writeMetric(w, "newsletter_store_errors_total %d\n", snap.StoreErrors)
	writeMetric(w, "newsletter_list_duration_seconds_count %d\n", snap.ListDurationCount)
	writeMetric(w, "newsletter_list_duration_seconds_sum %.6f\n", float64(snap.ListDurationTotalNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
