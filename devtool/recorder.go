package devtool

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tj-513/bricksy-experimental/brick"
	"github.com/tj-513/bricksy-experimental/internal/bus"
)

// Transition is one recorded Send call with recorder bookkeeping.
type Transition struct {
	Seq     uint64    `json:"seq"`
	BrickID string    `json:"brick_id"`
	Brick   string    `json:"brick"`
	Label   string    `json:"label"`
	Payload any       `json:"payload"`
	At      time.Time `json:"at"`
}

// BrickInfo describes one registered brick.
type BrickInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Transitions int    `json:"transitions"`
	// State is the payload of the most recent transition that was a
	// state report rather than a side-effect report.
	State any `json:"state"`
}

// NewRecorder returns a recorder keeping at most history transitions;
// the oldest are evicted first. history <= 0 means unbounded.
func NewRecorder(history int) *Recorder {
	return &Recorder{
		history: history,
		hub:     bus.NewHub[Transition](),
	}
}

// Recorder is an in-memory transition log shared by any number of
// bricks, with a live feed for listeners.
type Recorder struct {
	history int
	hub     *bus.Hub[Transition]

	mu     sync.Mutex
	seq    uint64
	log    []Transition
	bricks []*brickEntry
}

type brickEntry struct {
	id    string
	name  string
	count int
	state any
}

// Brick registers a brick under name and returns the sender to attach
// to it. Names need not be unique; identity is the generated id.
func (r *Recorder) Brick(name string) brick.Devtool {
	entry := &brickEntry{
		id:   uuid.NewString(),
		name: name,
	}

	r.mu.Lock()
	r.bricks = append(r.bricks, entry)
	r.mu.Unlock()

	return &brickSender{rec: r, entry: entry}
}

type brickSender struct {
	rec   *Recorder
	entry *brickEntry
}

func (s *brickSender) Send(label string, payload any) {
	s.rec.record(s.entry, label, payload)
}

func (r *Recorder) record(entry *brickEntry, label string, payload any) {
	r.mu.Lock()
	r.seq++
	t := Transition{
		Seq:     r.seq,
		BrickID: entry.id,
		Brick:   entry.name,
		Label:   label,
		Payload: payload,
		At:      time.Now(),
	}

	r.log = append(r.log, t)
	if r.history > 0 && len(r.log) > r.history {
		r.log = r.log[len(r.log)-r.history:]
	}

	entry.count++
	if _, isEffect := payload.(brick.SideEffectReport); !isEffect {
		entry.state = payload
	}
	r.mu.Unlock()

	r.hub.Broadcast(t)
}

// Transitions returns the recorded transitions, oldest first.
func (r *Recorder) Transitions() []Transition {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Transition, len(r.log))
	copy(out, r.log)
	return out
}

// BrickTransitions returns the recorded transitions of one brick,
// oldest first, and whether the brick id is known.
func (r *Recorder) BrickTransitions(id string) ([]Transition, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	known := false
	for _, entry := range r.bricks {
		if entry.id == id {
			known = true
			break
		}
	}
	if !known {
		return nil, false
	}

	var out []Transition
	for _, t := range r.log {
		if t.BrickID == id {
			out = append(out, t)
		}
	}
	return out, true
}

// Bricks returns the registered bricks in registration order.
func (r *Recorder) Bricks() []BrickInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]BrickInfo, 0, len(r.bricks))
	for _, entry := range r.bricks {
		out = append(out, BrickInfo{
			ID:          entry.id,
			Name:        entry.name,
			Transitions: entry.count,
			State:       entry.state,
		})
	}
	return out
}

// Subscribe returns a live feed of future transitions. Slow listeners
// miss transitions instead of blocking the bricks.
func (r *Recorder) Subscribe(ctx context.Context) (<-chan Transition, func()) {
	return r.hub.Subscribe(ctx)
}
