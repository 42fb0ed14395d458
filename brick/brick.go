// Package brick implements a reactive state container: one mutable value
// per Brick, synchronous change notifications, and named actions and side
// effects dispatched by string identifier.
package brick

import (
	"fmt"
	"sync"

	"github.com/tj-513/bricksy-experimental/stream"
)

// Labels reported to the devtool for transitions that did not come from a
// named action.
const (
	LabelInit    = "@@INIT"
	LabelSetData = "SET_DATA"
)

var (
	ErrActionExists     = fmt.Errorf("action already registered")
	ErrSideEffectExists = fmt.Errorf("side effect already registered")
)

// Devtool receives every labeled state transition of a Brick. A Brick
// never calls anything but Send, and treats the adapter as
// fire-and-forget.
type Devtool interface {
	Send(label string, payload any)
}

type nopDevtool struct{}

func (nopDevtool) Send(string, any) {}

// SideEffectReport is the payload reported to the devtool when a
// dispatched side effect runs. Kind is always "sideEffect".
type SideEffectReport struct {
	Kind    string `json:"kind"`
	Payload any    `json:"payload"`
}

// Brick holds one piece of state and broadcasts every replacement of it.
// The value is replaced wholesale on every update; the container never
// mutates it in place.
//
// All methods are safe for concurrent use. Within a single goroutine,
// Set followed by Snapshot observes the just-set value.
type Brick[T any] struct {
	source  *stream.Source[T]
	devtool Devtool

	mu      sync.RWMutex
	actions map[string]func(T, any) T
	effects map[string]func(any)
}

// New returns a Brick seeded with initial and no devtool attached.
func New[T any](initial T) *Brick[T] {
	return NewWithDevtool(initial, nil)
}

// NewWithDevtool returns a Brick seeded with initial whose transitions
// are mirrored to dt for the Brick's lifetime. A nil dt disables
// reporting. The initial value is reported once under LabelInit.
func NewWithDevtool[T any](initial T, dt Devtool) *Brick[T] {
	if dt == nil {
		dt = nopDevtool{}
	}

	b := &Brick[T]{
		source:  stream.New(initial),
		devtool: dt,
		actions: make(map[string]func(T, any) T),
		effects: make(map[string]func(any)),
	}
	b.devtool.Send(LabelInit, initial)
	return b
}

// Snapshot returns the current value.
func (b *Brick[T]) Snapshot() T {
	return b.source.Value()
}

// Set replaces the current value with next. Subscribers are notified
// exactly once, even when next equals the current value; deduplication
// belongs to selection, not to the container.
func (b *Brick[T]) Set(next T) {
	b.set(LabelSetData, func(T) T { return next })
}

// Apply replaces the current value with fn(current).
func (b *Brick[T]) Apply(fn func(state T) T) {
	b.set(LabelSetData, fn)
}

func (b *Brick[T]) set(label string, fn func(T) T) {
	v := b.source.Update(fn)
	b.devtool.Send(label, v)
}

// Stream returns a read-only view of the current and future values. New
// subscribers immediately receive the current value.
func (b *Brick[T]) Stream() stream.Observable[T] {
	return b.source
}

// RegisterAction stores reduce under name. Registering a name twice
// returns an error wrapping ErrActionExists and leaves the first
// reducer in effect. Names are never removed.
func (b *Brick[T]) RegisterAction(name string, reduce func(state T, payload any) T) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.actions[name]; ok {
		return fmt.Errorf("action %q: %w", name, ErrActionExists)
	}
	b.actions[name] = reduce
	return nil
}

// RegisterSideEffect stores effect under name in the side-effect
// registry, which is a namespace independent from actions: an action and
// a side effect may share a name and both fire on one dispatch.
func (b *Brick[T]) RegisterSideEffect(name string, effect func(payload any)) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.effects[name]; ok {
		return fmt.Errorf("side effect %q: %w", name, ErrSideEffectExists)
	}
	b.effects[name] = effect
	return nil
}

// Dispatch triggers whichever action and/or side effect are registered
// under name. The action's state transition and devtool report happen
// before the side effect runs. Dispatching an unregistered name does
// nothing.
//
// Panics raised by the reducer or the effect propagate to the caller;
// the container does not recover them.
func (b *Brick[T]) Dispatch(name string, payload any) {
	b.mu.RLock()
	reduce := b.actions[name]
	effect := b.effects[name]
	b.mu.RUnlock()

	if reduce != nil {
		b.set(name, func(state T) T { return reduce(state, payload) })
	}
	if effect != nil {
		effect(payload)
		b.devtool.Send(name, SideEffectReport{Kind: "sideEffect", Payload: payload})
	}
}

// Reducer adapts a reducer with a typed payload to the registry
// signature. The payload assertion is a trust boundary: dispatching a
// payload of the wrong dynamic type panics.
func Reducer[T, P any](fn func(state T, payload P) T) func(T, any) T {
	return func(state T, payload any) T {
		return fn(state, payload.(P))
	}
}

// Effect adapts a side effect with a typed payload to the registry
// signature, with the same trust boundary as Reducer.
func Effect[P any](fn func(payload P)) func(any) {
	return func(payload any) {
		fn(payload.(P))
	}
}
