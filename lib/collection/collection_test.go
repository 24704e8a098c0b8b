package collection

import (
	"errors"
	"slices"
	"testing"
)

func TestContainersClear(t *testing.T) {
	tests := []struct {
		name string
		c    Container
	}{
		{"list", NewList[int]()},
		{"set", NewSet[int]()},
		{"sorted_set", NewSortedSet[int]()},
		{"linked_list", NewLinkedList[int]()},
		{"queue", NewQueue[int]()},
		{"stack", NewStack[int]()},
		{"map", NewMap[string, int]()},
		{"sorted_map", NewSortedMap[string, int]()},
		{"sorted_list", NewSortedList[string, int]()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !IsEmpty(tc.c) {
				t.Fatal("New container should be empty")
			}

			for i := range 3 {
				switch c := tc.c.(type) {
				case *List[int]:
					c.Append(i)
				case *Set[int]:
					c.Add(i)
				case *SortedSet[int]:
					c.Add(i)
				case *LinkedList[int]:
					c.PushBack(i)
				case *Queue[int]:
					c.Enqueue(i)
				case *Stack[int]:
					c.Push(i)
				case *Map[string, int]:
					c.Set(string(rune('a'+i)), i)
				case *SortedMap[string, int]:
					c.Set(string(rune('a'+i)), i)
				case *SortedList[string, int]:
					c.Set(string(rune('a'+i)), i)
				default:
					t.Fatalf("unhandled container %T", c)
				}
			}

			if tc.c.Len() != 3 {
				t.Errorf("Expected 3 elements, got %d", tc.c.Len())
			}
			if IsEmpty(tc.c) {
				t.Error("Populated container should not be empty")
			}

			tc.c.Clear()
			if !IsEmpty(tc.c) {
				t.Errorf("Expected empty after Clear, got %d", tc.c.Len())
			}
		})
	}
}

func TestListKeepsCapacity(t *testing.T) {
	l := NewList[string]()
	l.Append("a", "b", "c")
	l.Set(1, "z")

	if l.At(1) != "z" {
		t.Errorf("Expected %q at 1, got %q", "z", l.At(1))
	}
	if !slices.Equal(l.Items(), []string{"a", "z", "c"}) {
		t.Errorf("Unexpected items %v", l.Items())
	}

	capBefore := l.Cap()
	l.Clear()
	if l.Cap() != capBefore {
		t.Errorf("Expected capacity %d kept, got %d", capBefore, l.Cap())
	}
}

func TestSet(t *testing.T) {
	s := NewSet[string]()

	if !s.Add("x") {
		t.Error("First Add should report insertion")
	}
	if s.Add("x") {
		t.Error("Duplicate Add should report no insertion")
	}
	if !s.Contains("x") || s.Contains("y") {
		t.Error("Contains mismatch")
	}
	if len(s.Values()) != 1 {
		t.Errorf("Expected 1 value, got %v", s.Values())
	}
	if !s.Remove("x") || s.Remove("x") {
		t.Error("Remove should succeed once")
	}
}

func TestSortedSet(t *testing.T) {
	s := NewSortedSet[int]()
	for _, v := range []int{5, 1, 3, 1} {
		s.Add(v)
	}

	if !slices.Equal(s.Values(), []int{1, 3, 5}) {
		t.Errorf("Expected ascending unique values, got %v", s.Values())
	}
	if v, ok := s.Min(); !ok || v != 1 {
		t.Errorf("Expected min 1, got %d", v)
	}
	if v, ok := s.Max(); !ok || v != 5 {
		t.Errorf("Expected max 5, got %d", v)
	}
	if !s.Remove(3) || s.Contains(3) {
		t.Error("Expected 3 removed")
	}

	s.Clear()
	if _, ok := s.Min(); ok {
		t.Error("Min on empty set should report false")
	}
}

func TestLinkedList(t *testing.T) {
	l := NewLinkedList[int]()
	l.PushBack(2)
	l.PushFront(1)
	l.PushBack(3)

	if !slices.Equal(l.Values(), []int{1, 2, 3}) {
		t.Errorf("Unexpected order %v", l.Values())
	}
	if v, ok := l.PopFront(); !ok || v != 1 {
		t.Errorf("Expected PopFront 1, got %d", v)
	}
	if v, ok := l.PopBack(); !ok || v != 3 {
		t.Errorf("Expected PopBack 3, got %d", v)
	}

	l.Clear()
	if _, ok := l.PopFront(); ok {
		t.Error("PopFront on empty list should report false")
	}
}

func TestQueue(t *testing.T) {
	q := NewQueue[string]()
	if _, ok := q.Dequeue(); ok {
		t.Error("Dequeue on empty queue should report false")
	}
	if _, ok := q.Peek(); ok {
		t.Error("Peek on empty queue should report false")
	}

	q.Enqueue("a")
	q.Enqueue("b")

	if v, _ := q.Peek(); v != "a" {
		t.Errorf("Expected peek %q, got %q", "a", v)
	}
	if v, _ := q.Dequeue(); v != "a" {
		t.Errorf("Expected dequeue %q, got %q", "a", v)
	}
	if q.Len() != 1 {
		t.Errorf("Expected 1 element, got %d", q.Len())
	}
}

func TestQueueNilInterface(t *testing.T) {
	q := NewQueue[error]()
	q.Enqueue(nil)
	q.Enqueue(errors.New("second"))

	v, ok := q.Peek()
	if !ok || v != nil {
		t.Errorf("Expected nil front element, got %v (ok=%v)", v, ok)
	}
	v, ok = q.Dequeue()
	if !ok || v != nil {
		t.Errorf("Expected nil dequeued element, got %v (ok=%v)", v, ok)
	}
	if v, _ := q.Dequeue(); v == nil || v.Error() != "second" {
		t.Errorf("Expected %q, got %v", "second", v)
	}
	if !IsEmpty(q) {
		t.Errorf("Expected empty queue, got %d elements", q.Len())
	}
}

func TestStack(t *testing.T) {
	s := NewStack[int]()
	if _, ok := s.Pop(); ok {
		t.Error("Pop on empty stack should report false")
	}

	s.Push(1)
	s.Push(2)

	if v, _ := s.Peek(); v != 2 {
		t.Errorf("Expected peek 2, got %d", v)
	}
	if v, _ := s.Pop(); v != 2 {
		t.Errorf("Expected pop 2, got %d", v)
	}
	if s.Len() != 1 {
		t.Errorf("Expected 1 element, got %d", s.Len())
	}
}

func TestMap(t *testing.T) {
	m := NewMap[string, int]()
	m.Set("a", 1)
	m.Set("a", 2)

	if v, ok := m.Get("a"); !ok || v != 2 {
		t.Errorf("Expected 2, got %d", v)
	}
	if _, ok := m.Get("b"); ok {
		t.Error("Missing key should report false")
	}
	if len(m.Keys()) != 1 {
		t.Errorf("Expected 1 key, got %v", m.Keys())
	}
	if !m.Delete("a") || m.Delete("a") {
		t.Error("Delete should succeed once")
	}
}

func TestSortedMap(t *testing.T) {
	m := NewSortedMap[string, int]()
	m.Set("c", 3)
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 10)

	if !slices.Equal(m.Keys(), []string{"a", "b", "c"}) {
		t.Errorf("Expected ascending keys, got %v", m.Keys())
	}
	if v, ok := m.Get("a"); !ok || v != 10 {
		t.Errorf("Expected replaced value 10, got %d", v)
	}

	var visited []string
	m.Ascend(func(k string, _ int) bool {
		visited = append(visited, k)
		return k != "b"
	})
	if !slices.Equal(visited, []string{"a", "b"}) {
		t.Errorf("Expected Ascend to stop after b, got %v", visited)
	}

	if !m.Delete("b") || m.Delete("b") {
		t.Error("Delete should succeed once")
	}
}

func TestSortedList(t *testing.T) {
	l := NewSortedList[int, string]()
	l.Set(30, "c")
	l.Set(10, "a")
	l.Set(20, "b")
	l.Set(20, "B")

	if l.Len() != 3 {
		t.Fatalf("Expected 3 entries, got %d", l.Len())
	}
	for i, want := range []int{10, 20, 30} {
		if l.KeyAt(i) != want {
			t.Errorf("KeyAt(%d) = %d, want %d", i, l.KeyAt(i), want)
		}
	}
	if l.ValueAt(1) != "B" {
		t.Errorf("Expected replaced value %q, got %q", "B", l.ValueAt(1))
	}
	if l.IndexOfKey(30) != 2 || l.IndexOfKey(99) != -1 {
		t.Error("IndexOfKey mismatch")
	}
	if v, ok := l.Get(10); !ok || v != "a" {
		t.Errorf("Expected %q, got %q", "a", v)
	}
	if !l.Delete(10) || l.Delete(10) {
		t.Error("Delete should succeed once")
	}
	if l.KeyAt(0) != 20 {
		t.Errorf("Expected first key 20 after delete, got %d", l.KeyAt(0))
	}
}
