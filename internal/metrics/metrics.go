// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Rejection reasons passed to Recorder.IncSubscribeRejected.
const (
	ReasonInvalidEmail      = "invalid_email"
	ReasonAlreadySubscribed = "already_subscribed"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Subscription write-path
	IncSubscribed()
	IncSubscribeRejected(reason string)
	IncStoreError()

	// Listing
	ObserveListDuration(duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
