// Package store holds the dashboard data widgets render from.
//
// A Store is an explicit container passed to whoever needs it; there is no
// package-level instance. Widgets receive it as a Reader and never write to
// it. Only the sync side publishes.
package store

import (
	"fmt"
	"sync"
	"time"
)

type Stats struct {
	LeadsThisWeek  int     `json:"leadsThisWeek"`
	LeadsLastWeek  int     `json:"leadsLastWeek"`
	ResponseRate   float64 `json:"responseRate"` // percent, 0 to 100
	ActiveMandates int     `json:"activeMandates"`
	ViewingsBooked int     `json:"viewingsBooked"`
}

// LeadsDelta is the week-over-week change in leads, in percent. It is zero
// when there were no leads last week.
func (s Stats) LeadsDelta() float64 {
	if s.LeadsLastWeek == 0 {
		return 0
	}
	return float64(s.LeadsThisWeek-s.LeadsLastWeek) / float64(s.LeadsLastWeek) * 100
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

type Task struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Due      time.Time `json:"due"`
	Done     bool      `json:"done"`
	Priority Priority  `json:"priority"`
}

type Stage struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type Snapshot struct {
	Stats     Stats     `json:"stats"`
	Tasks     []Task    `json:"tasks"`
	Pipeline  []Stage   `json:"pipeline"`
	Insight   string    `json:"insight"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Status int

const (
	// Pending means nothing has been loaded yet.
	Pending Status = iota
	// Live means the snapshot came from the backend.
	Live
	// Cached means the snapshot was restored from the local cache and the
	// backend has not answered yet.
	Cached
	// Offline means the last fetch failed. The snapshot, if any, is stale.
	Offline
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Live:
		return "live"
	case Cached:
		return "cached"
	case Offline:
		return "offline"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// State is what subscribers observe.
type State struct {
	Snapshot Snapshot
	Status   Status
	Err      error
	// Version increases with every change.
	Version uint64
}

// Reader is the read-only view of a Store.
type Reader interface {
	State() State
	Subscribe() (<-chan State, func())
}

var _ Reader = (*Store)(nil)

type Store struct {
	mu     sync.Mutex
	state  State
	subs   map[int]chan State
	nextID int
}

func New() *Store {
	return &Store{subs: make(map[int]chan State)}
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe returns a channel that receives the current state immediately
// and every later change. Delivery is latest-wins: a slow reader skips
// intermediate states but always sees the newest one. The returned function
// unsubscribes and closes the channel.
func (s *Store) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan State, 1)
	ch <- s.state
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

// Publish records a snapshot fetched from the backend.
func (s *Store) Publish(snap Snapshot) {
	s.update(func(st *State) bool {
		st.Snapshot = snap
		st.Status = Live
		st.Err = nil
		return true
	})
}

// Restore records a snapshot loaded from the local cache. It is ignored once
// live data has arrived.
func (s *Store) Restore(snap Snapshot) {
	s.update(func(st *State) bool {
		if st.Status == Live {
			return false
		}
		st.Snapshot = snap
		st.Status = Cached
		return true
	})
}

// Fail records a failed fetch. The last snapshot is kept.
func (s *Store) Fail(err error) {
	s.update(func(st *State) bool {
		st.Status = Offline
		st.Err = err
		return true
	})
}

func (s *Store) update(fn func(*State) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !fn(&s.state) {
		return
	}
	s.state.Version++

	for _, ch := range s.subs {
		select {
		case ch <- s.state:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- s.state
		}
	}
}
