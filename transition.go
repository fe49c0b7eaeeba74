package voxmorph

import (
	"sort"
)

type transitionBucket[T comparable] struct {
	upper int64
	value T
}

// TransitionHandler maps a scalar scroll position onto consecutive buckets of
// values. Buckets are half-open ranges [prev, upper) built from the keys of
// the trigger map, in ascending order.
type TransitionHandler[T comparable] struct {
	buckets      []transitionBucket[T]
	last         T
	hasLast      bool
	lastPosition int64
}

func NewTransitionHandler[T comparable](triggers map[int64]T) *TransitionHandler[T] {
	keys := make([]int64, 0, len(triggers))
	for k := range triggers {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool { return keys[a] < keys[b] })

	buckets := make([]transitionBucket[T], 0, len(keys))
	for _, k := range keys {
		buckets = append(buckets, transitionBucket[T]{upper: k, value: triggers[k]})
	}
	return &TransitionHandler[T]{buckets: buckets}
}

// GetTransitionOnce returns the value for the bucket containing position, but
// only on entry: while the position stays inside the same bucket the handler
// stays quiet. Leaving all buckets re-arms the last value.
func (h *TransitionHandler[T]) GetTransitionOnce(position int64) (T, bool) {
	var zero T
	start := int64(0)
	for _, b := range h.buckets {
		if position >= start && position < b.upper {
			if h.hasLast && h.last == b.value {
				return zero, false
			}
			h.last = b.value
			h.hasLast = true
			return b.value, true
		}
		start = b.upper
	}
	h.hasLast = false
	return zero, false
}

// GetTransitionPerMovement returns the bucket length, the position normalized
// into the bucket, and the bucket value on every tick the position actually
// moved. A repeated or zero in-bucket position yields no value.
func (h *TransitionHandler[T]) GetTransitionPerMovement(position int64) (int64, int64, T, bool) {
	var value T
	found := false
	start := int64(0)
	var end, normalized int64
	for _, b := range h.buckets {
		if position >= start && position < b.upper {
			end = b.upper - start
			normalized = position - start
			value = b.value
			found = true
			break
		}
		start = b.upper
	}

	if h.lastPosition == normalized || normalized == 0 {
		found = false
	}
	h.lastPosition = normalized

	if !found {
		var zero T
		return end, normalized, zero, false
	}
	return end, normalized, value, true
}
