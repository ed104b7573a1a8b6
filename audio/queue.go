package audio

import "sync/atomic"

// commandQueue is an unbounded multi-producer, single-consumer FIFO.
//
// Producers swap themselves in at head and then link the previous node to the
// new one; the consumer follows next pointers from tail. A producer that has
// swapped but not yet linked hides its node (and everything after it) until
// the link is stored, so pop can report empty while a push is in flight.
// Order is never violated.
//
// push may be called from any goroutine. pop must only be called from the
// mixer goroutine.
type commandQueue struct {
	head   atomic.Pointer[queueNode]
	_      [56]byte
	tail   *queueNode
	stub   queueNode
	closed atomic.Bool
}

type queueNode struct {
	next atomic.Pointer[queueNode]
	cmd  command
}

func newCommandQueue() *commandQueue {
	q := &commandQueue{}
	q.head.Store(&q.stub)
	q.tail = &q.stub
	return q
}

// push appends cmd. It never blocks. It returns ErrClosed once the queue has
// been closed; the command is dropped in that case.
func (q *commandQueue) push(cmd command) error {
	if q.closed.Load() {
		return ErrClosed
	}
	n := &queueNode{cmd: cmd}
	prev := q.head.Swap(n)
	prev.next.Store(n)
	return nil
}

// pop removes the oldest linked command. It does not allocate.
func (q *commandQueue) pop() (command, bool) {
	next := q.tail.next.Load()
	if next == nil {
		return nil, false
	}
	q.tail = next
	cmd := next.cmd
	// next is the new sentinel; drop the payload so sample slices can be collected.
	next.cmd = nil
	return cmd, true
}

func (q *commandQueue) close() {
	q.closed.Store(true)
}
