package iteratable

import "testing"

func TestQueuePopOrder(t *testing.T) {
	q := NewQueue("a", "b", "c")
	for _, expected := range []string{"a", "b", "c"} {
		v, ok := q.Pop()
		if !ok {
			t.Fatalf("queue drained early, expected %q", expected)
		}
		if v != expected {
			t.Errorf("expected %q, got %q", expected, v)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Errorf("expected pop on drained queue to fail")
	}
}

func TestQueueDedup(t *testing.T) {
	q := NewQueue()
	if !q.Add("a") {
		t.Errorf("expected first add of 'a' to report new")
	}
	if q.Add("a") {
		t.Errorf("expected second add of 'a' to be a no-op")
	}
	if q.Len() != 1 {
		t.Errorf("expected queue length 1, got %d", q.Len())
	}
}

func TestQueueReAddAfterPop(t *testing.T) {
	q := NewQueue("a")
	q.Pop()
	q.Add("a") // must stay a no-op: 'a' was ever added
	if !q.Empty() {
		t.Errorf("expected queue to stay drained after re-adding a popped value")
	}
}

func TestQueueAddDuringIteration(t *testing.T) {
	q := NewQueue("a")
	var visited []string
	for q.Next() {
		v := q.Item().(string)
		visited = append(visited, v)
		if v == "a" {
			q.Update("b", "c")
		}
		if v == "b" {
			q.Add("a") // seen already, must not re-appear
		}
	}
	if len(visited) != 3 {
		t.Fatalf("expected 3 visited values, got %v", visited)
	}
	for i, expected := range []string{"a", "b", "c"} {
		if visited[i] != expected {
			t.Errorf("visit %d: expected %q, got %q", i, expected, visited[i])
		}
	}
}

func TestQueueProcessed(t *testing.T) {
	q := NewQueue(1, 2, 3)
	q.Pop()
	q.Pop()
	done := q.Processed()
	if len(done) != 2 || done[0] != 1 || done[1] != 2 {
		t.Errorf("expected processed [1 2], got %v", done)
	}
	if q.Len() != 1 {
		t.Errorf("expected 1 unvisited value, got %d", q.Len())
	}
}

func TestQueueKeyProjection(t *testing.T) {
	type pair struct{ a, b int }
	q := NewQueueWith(func(v interface{}) interface{} {
		return v.(pair).a
	})
	q.Add(pair{1, 1})
	if q.Add(pair{1, 2}) { // same key, different value
		t.Errorf("expected add with seen key to be a no-op")
	}
	if !q.Add(pair{2, 1}) {
		t.Errorf("expected add with fresh key to succeed")
	}
}
