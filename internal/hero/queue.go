package hero

import "github.com/l1jgo/motion/internal/action"

// Queue is a small FIFO with push-front, used for both the intent queue and
// the motion queue. Game loop only.
type Queue[T any] struct {
	items []T
}

type (
	IntentQueue = Queue[action.Intent]
	MotionQueue = Queue[action.Motion]
)

func (q *Queue[T]) Len() int { return len(q.items) }

func (q *Queue[T]) Empty() bool { return len(q.items) == 0 }

// Front returns the head without removing it.
func (q *Queue[T]) Front() (T, bool) {
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	return q.items[0], true
}

func (q *Queue[T]) PopFront() (T, bool) {
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	v := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return v, true
}

func (q *Queue[T]) PushFront(v T) {
	q.items = append(q.items, v)
	copy(q.items[1:], q.items[:len(q.items)-1])
	q.items[0] = v
}

func (q *Queue[T]) PushBack(v T) {
	q.items = append(q.items, v)
}

func (q *Queue[T]) Clear() {
	q.items = nil
}

// Items returns a copy of the queued values, head first.
func (q *Queue[T]) Items() []T {
	out := make([]T, len(q.items))
	copy(out, q.items)
	return out
}
