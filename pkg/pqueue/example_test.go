package pqueue_test

import (
	"cmp"
	"fmt"

	"github.com/matzehuels/waypoint/pkg/pqueue"
)

func ExampleHeap() {
	h := pqueue.New(cmp.Compare[int], 0)
	for _, v := range []int{4, 1, 3} {
		h.Add(v)
	}

	for h.Len() > 0 {
		v, _ := h.RemoveMin()
		fmt.Println(v)
	}
	// Output:
	// 1
	// 3
	// 4
}

func ExampleHeap_Resort() {
	type job struct {
		name     string
		priority int
	}
	byPriority := func(a, b *job) int { return cmp.Compare(a.priority, b.priority) }

	urgent := &job{name: "deploy", priority: 5}
	h := pqueue.New(byPriority, 0)
	h.Add(&job{name: "lint", priority: 2})
	h.Add(urgent)

	urgent.priority = 0
	h.Resort()

	first, _ := h.RemoveMin()
	fmt.Println(first.name)
	// Output:
	// deploy
}
