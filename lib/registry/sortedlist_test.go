//go:build !scratchpool_nosortedlist

package registry

import (
	"slices"
	"testing"
)

func TestSortedList(t *testing.T) {
	r := newTestRegistry(t, DefaultConfig())
	p := SortedList[string, int](r)

	if p.Name() != "sorted_list[string,int]" {
		t.Errorf("Unexpected name %q", p.Name())
	}
	if !slices.Contains(Kinds(), KindSortedList) {
		t.Error("Expected sorted_list kind in this build")
	}

	l := p.Rent()
	l.Set("b", 2)
	l.Set("a", 1)
	if l.KeyAt(0) != "a" {
		t.Errorf("Expected keys sorted, got %q first", l.KeyAt(0))
	}
	l.Clear()
	p.Return(l)

	if p.IdleCount() != 1 {
		t.Errorf("Expected 1 idle, got %d", p.IdleCount())
	}
}
