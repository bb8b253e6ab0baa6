package iteratable

// Queue is an insertion-ordered visit-once queue. Adding a value that has
// ever been added before is a no-op, even if the value has already been
// popped. Values are popped oldest-first. Adding during iteration is
// permitted; iteration continues until the queue is drained.
//
// Dedup identity defaults to the value itself, which therefore must be a
// valid Go map key. For values which are not comparable, construct the queue
// with NewQueueWith and a key projection.
type Queue struct {
	seen    map[interface{}]struct{}
	order   []interface{}
	cursor  int
	current interface{}
	key     func(interface{}) interface{}
}

// NewQueue creates a queue, pre-filled with the given values.
func NewQueue(values ...interface{}) *Queue {
	return NewQueueWith(nil, values...)
}

// NewQueueWith creates a queue which projects values through key before
// checking dedup identity. A nil key means identity.
func NewQueueWith(key func(interface{}) interface{}, values ...interface{}) *Queue {
	q := &Queue{
		seen: make(map[interface{}]struct{}),
		key:  key,
	}
	q.Update(values...)
	return q
}

func (q *Queue) keyOf(value interface{}) interface{} {
	if q.key == nil {
		return value
	}
	return q.key(value)
}

// Add appends a value to the queue, unless it has ever been added before.
// It reports whether the value was new.
func (q *Queue) Add(value interface{}) bool {
	k := q.keyOf(value)
	if _, ok := q.seen[k]; ok {
		return false
	}
	q.seen[k] = struct{}{}
	q.order = append(q.order, value)
	return true
}

// Update adds all given values.
func (q *Queue) Update(values ...interface{}) {
	for _, value := range values {
		q.Add(value)
	}
}

// Pop removes and returns the oldest unvisited value. ok is false if the
// queue is drained.
func (q *Queue) Pop() (value interface{}, ok bool) {
	if q.cursor == len(q.order) {
		return nil, false
	}
	value = q.order[q.cursor]
	q.cursor++
	return value, true
}

// Next advances the iteration to the oldest unvisited value, making it
// available through Item. It returns false when the queue is drained.
//
//    for queue.Next() {
//        v := queue.Item()
//        …                   // may queue.Add(…) here
//    }
func (q *Queue) Next() bool {
	value, ok := q.Pop()
	if !ok {
		return false
	}
	q.current = value
	return true
}

// Item returns the value the iteration currently rests on.
func (q *Queue) Item() interface{} {
	return q.current
}

// Processed returns the values already popped, in pop order.
func (q *Queue) Processed() []interface{} {
	done := make([]interface{}, q.cursor)
	copy(done, q.order[:q.cursor])
	return done
}

// Len returns the number of unvisited values.
func (q *Queue) Len() int {
	return len(q.order) - q.cursor
}

// Empty reports whether all values have been visited.
func (q *Queue) Empty() bool {
	return q.Len() == 0
}
