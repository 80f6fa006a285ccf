package mocks

import (
	"github.com/mcoot/playerroster/internal/dependencies/random"
)

// MockRandom replays queued values. An exhausted queue yields the zero
// value; queued numbers are reduced modulo n so results stay in range.
type MockRandom struct {
	ints    queue[int]
	int63s  queue[int64]
	strings queue[string]
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

func (r *MockRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.ints.next() % n
}

func (r *MockRandom) Int63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	return r.int63s.next() % n
}

func (r *MockRandom) String(length int, alphabet string) string {
	return r.strings.next()
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.ints.push(values...)
}

// QueueInt63n adds values to the Int63n result queue
func (r *MockRandom) QueueInt63n(values ...int64) {
	r.int63s.push(values...)
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.strings.push(values...)
}

type queue[T any] struct {
	items []T
	pos   int
}

func (q *queue[T]) push(values ...T) {
	q.items = append(q.items, values...)
}

func (q *queue[T]) next() T {
	var zero T
	if q.pos >= len(q.items) {
		return zero
	}
	v := q.items[q.pos]
	q.pos++
	return v
}
