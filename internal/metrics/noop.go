package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncSubscribed is a no-op.
func (n *NoopRecorder) IncSubscribed() {}

// IncSubscribeRejected is a no-op.
func (n *NoopRecorder) IncSubscribeRejected(reason string) {}

// IncStoreError is a no-op.
func (n *NoopRecorder) IncStoreError() {}

// ObserveListDuration is a no-op.
func (n *NoopRecorder) ObserveListDuration(duration time.Duration) {}
