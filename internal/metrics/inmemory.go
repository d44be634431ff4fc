package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	Subscribed              uint64
	RejectedInvalidEmail    uint64
	RejectedAlreadyExisting uint64
	StoreErrors             uint64
	ListDurationCount       uint64
	ListDurationTotalNs     int64
}

// InMemoryRecorder keeps counters in process memory.
// It backs the /metrics endpoint and is used directly in tests.
type InMemoryRecorder struct {
	subscribed              atomic.Uint64
	rejectedInvalidEmail    atomic.Uint64
	rejectedAlreadyExisting atomic.Uint64
	storeErrors             atomic.Uint64
	listDurationCount       atomic.Uint64
	listDurationTotalNs     atomic.Int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		Subscribed:              m.subscribed.Load(),
		RejectedInvalidEmail:    m.rejectedInvalidEmail.Load(),
		RejectedAlreadyExisting: m.rejectedAlreadyExisting.Load(),
		StoreErrors:             m.storeErrors.Load(),
		ListDurationCount:       m.listDurationCount.Load(),
		ListDurationTotalNs:     m.listDurationTotalNs.Load(),
	}
}

// IncSubscribed increments the successful subscription counter.
func (m *InMemoryRecorder) IncSubscribed() {
	m.subscribed.Add(1)
}

// IncSubscribeRejected increments the counter for reason. Unknown reasons are dropped.
func (m *InMemoryRecorder) IncSubscribeRejected(reason string) {
	switch reason {
	case ReasonInvalidEmail:
		m.rejectedInvalidEmail.Add(1)
	case ReasonAlreadySubscribed:
		m.rejectedAlreadyExisting.Add(1)
	}
}

// IncStoreError increments the infrastructure error counter.
func (m *InMemoryRecorder) IncStoreError() {
	m.storeErrors.Add(1)
}

// ObserveListDuration records a list query duration.
func (m *InMemoryRecorder) ObserveListDuration(duration time.Duration) {
	m.listDurationCount.Add(1)
	m.listDurationTotalNs.Add(duration.Nanoseconds())
}
