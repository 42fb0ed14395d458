package brick

import "github.com/tj-513/bricksy-experimental/stream"

// Select returns a view of b narrowed through selector. Subscribers
// receive the selected value for the current state and for each
// subsequent state, but consecutive duplicates under structural
// equality are suppressed. Use [Brick.Stream] for the unselected,
// undeduplicated view.
//
// Select is a free function because Go methods cannot introduce a type
// parameter for the selected type.
func Select[T, S any](b *Brick[T], selector func(T) S) stream.Observable[S] {
	return SelectFunc(b, selector, nil)
}

// SelectFunc is Select with an explicit comparator. A nil eq falls back
// to structural equality.
func SelectFunc[T, S any](b *Brick[T], selector func(T) S, eq func(prev, curr S) bool) stream.Observable[S] {
	return stream.DistinctUntilChanged(stream.Map(b.Stream(), selector), eq)
}
