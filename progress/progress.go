package progress

import (
	"sync"
	"time"

	"github.com/viant/gridgate/internal/clock"
	"github.com/viant/gridgate/model/job"
)

// Delta represents an incremental counter change derived from a job state change.
type Delta struct {
	Submitted int
	Running   int
	Done      int
	Failed    int
	Canceled  int
}

// DeltaOf returns counter change for a job entering state
func DeltaOf(state job.State) Delta {
	switch state {
	case job.StateSubmitted:
		return Delta{Submitted: 1}
	case job.StateRunning:
		return Delta{Running: 1}
	case job.StateDone:
		return Delta{Running: -1, Done: 1}
	case job.StateFailed:
		return Delta{Running: -1, Failed: 1}
	case job.StateCanceled:
		return Delta{Running: -1, Canceled: 1}
	}
	return Delta{}
}

// Counters holds job counters
type Counters struct {
	Submitted int       `json:"submitted"`
	Running   int       `json:"running"`
	Done      int       `json:"done"`
	Failed    int       `json:"failed"`
	Canceled  int       `json:"canceled"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Progress keeps aggregated job counters. It is safe for concurrent use.
type Progress struct {
	counters Counters
	mux      sync.Mutex
	onChange func(Counters)
}

// Update applies the supplied delta; onChange callback is invoked outside the critical section.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.mux.Lock()
	p.counters.Submitted += d.Submitted
	p.counters.Running += d.Running
	p.counters.Done += d.Done
	p.counters.Failed += d.Failed
	p.counters.Canceled += d.Canceled
	p.counters.UpdatedAt = clock.Now()
	snapshot := p.counters
	cb := p.onChange
	p.mux.Unlock()
	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the counters
func (p *Progress) Snapshot() Counters {
	if p == nil {
		return Counters{}
	}
	p.mux.Lock()
	defer p.mux.Unlock()
	return p.counters
}

// OnChange registers a callback that is invoked after every Update; nil disables it.
func (p *Progress) OnChange(cb func(Counters)) {
	if p == nil {
		return
	}
	p.mux.Lock()
	p.onChange = cb
	p.mux.Unlock()
}

// Tracker keeps overall and per infrastructure progress
type Tracker struct {
	total           Progress
	infrastructures map[string]*Progress
	mux             sync.RWMutex
}

// Track applies job state change
func (t *Tracker) Track(aJob *job.Job) {
	delta := DeltaOf(aJob.State)
	t.total.Update(delta)
	t.mux.Lock()
	infrastructure, ok := t.infrastructures[aJob.InfrastructureID]
	if !ok {
		infrastructure = &Progress{}
		t.infrastructures[aJob.InfrastructureID] = infrastructure
	}
	t.mux.Unlock()
	infrastructure.Update(delta)
}

// Total returns overall counters
func (t *Tracker) Total() Counters {
	return t.total.Snapshot()
}

// Infrastructure returns counters for infrastructure
func (t *Tracker) Infrastructure(id string) Counters {
	t.mux.RLock()
	infrastructure := t.infrastructures[id]
	t.mux.RUnlock()
	return infrastructure.Snapshot()
}

// OnChange registers overall counters callback
func (t *Tracker) OnChange(cb func(Counters)) {
	t.total.OnChange(cb)
}

// NewTracker creates a tracker
func NewTracker() *Tracker {
	return &Tracker{infrastructures: make(map[string]*Progress)}
}
