package pqueue

import (
	"cmp"
	"errors"
	"math/rand"
	"slices"
	"testing"
)

type entry struct {
	value int
}

func byValue(a, b *entry) int { return cmp.Compare(a.value, b.value) }

func TestHeap_RemoveMinOrder(t *testing.T) {
	h := New(cmp.Compare[int], 3)
	for _, v := range []int{3, 7, 2, 9, 5} {
		h.Add(v)
	}

	want := []int{2, 3, 5, 7, 9}
	for i, w := range want {
		got, err := h.RemoveMin()
		if err != nil {
			t.Fatalf("RemoveMin %d: unexpected error %v", i, err)
		}
		if got != w {
			t.Errorf("RemoveMin %d = %d, want %d", i, got, w)
		}
	}
	if h.Len() != 0 {
		t.Errorf("Len() = %d after draining, want 0", h.Len())
	}
}

func TestHeap_ResortAfterMutation(t *testing.T) {
	changer := &entry{value: 5}
	data := []*entry{{3}, {7}, {2}, {9}, changer}

	h := New(byValue, 3)
	for _, e := range data {
		h.Add(e)
	}

	for _, want := range []int{2, 3} {
		got, _ := h.RemoveMin()
		if got.value != want {
			t.Fatalf("RemoveMin = %d, want %d", got.value, want)
		}
	}

	changer.value = 10
	h.Resort()

	for _, want := range []int{7, 9, 10} {
		got, _ := h.RemoveMin()
		if got.value != want {
			t.Errorf("RemoveMin after Resort = %d, want %d", got.value, want)
		}
	}
}

func TestHeap_ResortAfterDecrease(t *testing.T) {
	entries := []*entry{{4}, {8}, {6}, {12}, {10}}
	h := New(byValue, 0)
	for _, e := range entries {
		h.Add(e)
	}

	entries[3].value = 1
	h.Resort()

	got, err := h.Peek()
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	if got != entries[3] {
		t.Errorf("Peek after decrease = %d, want the decreased entry", got.value)
	}
}

func TestHeap_Empty(t *testing.T) {
	h := New(cmp.Compare[int], 0)

	if _, err := h.Peek(); !errors.Is(err, ErrEmpty) {
		t.Errorf("Peek on empty heap: err = %v, want ErrEmpty", err)
	}
	if _, err := h.RemoveMin(); !errors.Is(err, ErrEmpty) {
		t.Errorf("RemoveMin on empty heap: err = %v, want ErrEmpty", err)
	}

	h.Add(1)
	_, _ = h.RemoveMin()
	if _, err := h.RemoveMin(); !errors.Is(err, ErrEmpty) {
		t.Errorf("RemoveMin on drained heap: err = %v, want ErrEmpty", err)
	}
}

func TestHeap_GrowDoubles(t *testing.T) {
	h := New(cmp.Compare[int], 2)
	if h.Cap() != 2 {
		t.Fatalf("Cap() = %d, want 2", h.Cap())
	}
	h.Add(1)
	h.Add(2)
	h.Add(3)
	if h.Cap() != 4 {
		t.Errorf("Cap() after overflow = %d, want 4", h.Cap())
	}
	h.Add(4)
	h.Add(5)
	if h.Cap() != 8 {
		t.Errorf("Cap() after second overflow = %d, want 8", h.Cap())
	}
}

func TestHeap_DefaultCapacity(t *testing.T) {
	if got := New(cmp.Compare[int], -1).Cap(); got != DefaultCapacity {
		t.Errorf("Cap() = %d, want %d", got, DefaultCapacity)
	}
}

func TestHeap_RandomInterleaving(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	h := New(cmp.Compare[int], 0)
	var model []int

	for step := 0; step < 5000; step++ {
		if len(model) == 0 || rng.Intn(3) > 0 {
			v := rng.Intn(100)
			h.Add(v)
			model = append(model, v)
			continue
		}
		got, err := h.RemoveMin()
		if err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		minIdx := 0
		for i, v := range model {
			if v < model[minIdx] {
				minIdx = i
			}
		}
		if got != model[minIdx] {
			t.Fatalf("step %d: RemoveMin = %d, want %d", step, got, model[minIdx])
		}
		model = slices.Delete(model, minIdx, minIdx+1)
		if h.Len() != len(model) {
			t.Fatalf("step %d: Len() = %d, want %d", step, h.Len(), len(model))
		}
	}
}

func TestHeap_ClearAndItems(t *testing.T) {
	h := New(cmp.Compare[int], 0)
	for _, v := range []int{5, 1, 3} {
		h.Add(v)
	}

	items := h.Items()
	if len(items) != 3 || items[0] != 1 {
		t.Errorf("Items() = %v, want 3 items rooted at 1", items)
	}

	h.Clear()
	if h.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", h.Len())
	}
	h.Add(9)
	if got, _ := h.Peek(); got != 9 {
		t.Errorf("Peek after Clear+Add = %d, want 9", got)
	}
}

func TestNew_NilComparePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(nil, 0) did not panic")
		}
	}()
	New[int](nil, 0)
}

func BenchmarkHeap_AddRemove(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	data := make([]int, 1000)
	for i := range data {
		data[i] = rng.Intn(100)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h := New(cmp.Compare[int], len(data))
		for j := 0; j < len(data); j += 4 {
			for k := j; k < j+4 && k < len(data); k++ {
				h.Add(data[k])
			}
			_, _ = h.RemoveMin()
		}
		for h.Len() > 0 {
			_, _ = h.RemoveMin()
		}
	}
}
