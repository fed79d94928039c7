package gc_test

import (
	"fmt"

	"github.com/joshuapare/shadowgc/gc"
)

type node struct {
	value int64
	next  gc.Ref
}

func Example() {
	h, err := gc.NewHeap(nil)
	if err != nil {
		panic(err)
	}
	defer h.Close()

	nodes := gc.NewPoolOf(h, "node", func(n *node, m *gc.Marker) {
		m.Trace(n.next)
	})

	h.Enter()
	head := gc.Nil
	for i := int64(1); i <= 3; i++ {
		ref, n, err := gc.New[node](nodes)
		if err != nil {
			panic(err)
		}
		n.value, n.next = i, head
		head = ref
		h.Reset(head)
	}

	fmt.Println("reclaimed while rooted:", h.Collect())
	var values []int64
	for ref := head; ref != gc.Nil; ref = gc.Deref[node](h, ref).next {
		values = append(values, gc.Deref[node](h, ref).value)
	}
	fmt.Println(values)

	h.Leave()
	fmt.Println("reclaimed after leave:", h.Collect())
	// Output:
	// reclaimed while rooted: 0
	// [3 2 1]
	// reclaimed after leave: 48
}

func ExampleHeap_Scope() {
	h, _ := gc.NewHeap(&gc.Options{Strategy: gc.MarkRecursive})
	defer h.Close()
	nodes := gc.NewPoolOf[node](h, "node", nil)

	h.Enter()
	kept, err := h.Scope(func() (gc.Ref, error) {
		for range 10 {
			if _, err := nodes.Alloc(); err != nil {
				return gc.Nil, err
			}
		}
		return nodes.Alloc()
	})
	if err != nil {
		panic(err)
	}
	fmt.Println(len(h.Roots()), kept == h.Roots()[0])
	fmt.Println(h.Collect())
	// Output:
	// 1 true
	// 160
}
