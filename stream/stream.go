// Package stream contains a minimal push-based observable: a single
// current value plus synchronous change notifications.
//
// A [Source] has one intended writer and many readers. Subscribers are
// notified in subscription order, within the call that produced the new
// value, so a write followed by a read always observes the written value.
package stream

import (
	"reflect"
	"slices"
	"sync"
)

// Observable is a read-only view of a current-and-future value.
//
// Subscribe registers fn and immediately invokes it with the current
// value, then with every subsequent value until the returned function
// is called.
type Observable[T any] interface {
	Value() T
	Subscribe(fn func(T)) (unsubscribe func())
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Source is an observable value cell.
type Source[T any] struct {
	mu     sync.Mutex
	value  T
	subs   []subscriber[T]
	nextID int
}

func New[T any](initial T) *Source[T] {
	return &Source[T]{value: initial}
}

// Value returns the current value.
func (s *Source[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Next installs v and notifies every subscriber before returning.
// Subscribers are always notified, even when v equals the current value.
func (s *Source[T]) Next(v T) {
	s.Update(func(T) T { return v })
}

// Update installs fn(current) and notifies every subscriber before
// returning the installed value. The read-modify-write is atomic with
// respect to other writers, but callbacks run outside the lock, so
// notification order across concurrent writers is unspecified.
func (s *Source[T]) Update(fn func(T) T) T {
	s.mu.Lock()
	v := fn(s.value)
	s.value = v
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(v)
	}
	return v
}

// Subscribe registers fn and replays the current value to it
// synchronously. The returned function removes the subscription; it is
// safe to call more than once.
func (s *Source[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	v := s.value
	s.mu.Unlock()

	fn(v)

	return func() {
		s.mu.Lock()
		s.subs = slices.DeleteFunc(s.subs, func(sub subscriber[T]) bool { return sub.id == id })
		s.mu.Unlock()
	}
}

// Map returns a view of o projected through fn.
func Map[T, S any](o Observable[T], fn func(T) S) Observable[S] {
	return mapped[T, S]{src: o, fn: fn}
}

type mapped[T, S any] struct {
	src Observable[T]
	fn  func(T) S
}

func (m mapped[T, S]) Value() S {
	return m.fn(m.src.Value())
}

func (m mapped[T, S]) Subscribe(fn func(S)) func() {
	return m.src.Subscribe(func(v T) { fn(m.fn(v)) })
}

// DistinctUntilChanged returns a view of o that suppresses consecutive
// duplicate values under eq. Suppression state is per subscription; the
// replayed first value always emits. A nil eq compares with
// reflect.DeepEqual.
func DistinctUntilChanged[T any](o Observable[T], eq func(prev, curr T) bool) Observable[T] {
	if eq == nil {
		eq = func(prev, curr T) bool { return reflect.DeepEqual(prev, curr) }
	}
	return distinct[T]{src: o, eq: eq}
}

type distinct[T any] struct {
	src Observable[T]
	eq  func(T, T) bool
}

func (d distinct[T]) Value() T {
	return d.src.Value()
}

func (d distinct[T]) Subscribe(fn func(T)) func() {
	var prev T
	first := true
	return d.src.Subscribe(func(v T) {
		if !first && d.eq(prev, v) {
			return
		}
		first = false
		prev = v
		fn(v)
	})
}
