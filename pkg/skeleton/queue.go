package skeleton

import "container/heap"

// eventQueue is an ordered set of Events supporting insert, pop-min, and
// remove-by-identity, all O(log n). A plain container/heap only gives
// pop-min; we extend it with the classic indexed-priority-queue trick
// (each Event remembers its current slot, kept up to date by Swap) so
// that heap.Remove can be called directly by identity instead of by
// linear scan or lazy tombstones, which would complicate abort
// accounting.
type eventQueue struct {
	items eventHeap
}

func newEventQueue() *eventQueue {
	return &eventQueue{items: eventHeap{}}
}

func (q *eventQueue) Len() int {
	return len(q.items)
}

// Push inserts e into the queue.
func (q *eventQueue) Push(e Event) {
	heap.Push(&q.items, e)
}

// PopMin removes and returns the minimal event, or nil if the queue is
// empty.
func (q *eventQueue) PopMin() Event {
	if len(q.items) == 0 {
		return nil
	}
	return heap.Pop(&q.items).(Event)
}

// Remove removes e from the queue. e must currently be in the queue.
func (q *eventQueue) Remove(e Event) {
	heap.Remove(&q.items, e.heapIndex())
}

// eventHeap implements heap.Interface over []Event, using lessEvent as the
// comparator and keeping each Event's heapIndex field synchronized so
// Remove-by-identity works.
type eventHeap []Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool { return lessEvent(h[i], h[j]) }

func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].setHeapIndex(i)
	h[j].setHeapIndex(j)
}

func (h *eventHeap) Push(x any) {
	e := x.(Event)
	e.setHeapIndex(len(*h))
	*h = append(*h, e)
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	e.setHeapIndex(-1)
	return e
}
