package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnqueueDequeueOrder(t *testing.T) {
	q := New[int]()

	q.Enqueue(1)
	q.Enqueue(2)
	q.Enqueue(3)

	assert.Equal(t, 1, q.Dequeue())
	assert.Equal(t, 2, q.Dequeue())
	assert.Equal(t, 3, q.Dequeue())
	assert.Equal(t, 0, q.Len())
}

func TestDequeueBlocksUntilEnqueue(t *testing.T) {
	q := New[string]()

	done := make(chan string, 1)
	go func() {
		done <- q.Dequeue()
	}()

	select {
	case <-done:
		t.Fatal("Dequeue returned before any item was enqueued")
	case <-time.After(50 * time.Millisecond):
	}

	q.Enqueue("hello")

	select {
	case got := <-done:
		assert.Equal(t, "hello", got)
	case <-time.After(time.Second):
		t.Fatal("Dequeue never unblocked after Enqueue")
	}
}

func TestEnqueueBlocksAtCapacity(t *testing.T) {
	q := New[int]()
	for i := 0; i < capacity; i++ {
		q.Enqueue(i)
	}

	full := make(chan struct{})
	go func() {
		q.Enqueue(capacity)
		close(full)
	}()

	select {
	case <-full:
		t.Fatal("Enqueue did not block at capacity")
	case <-time.After(50 * time.Millisecond):
	}

	require.Equal(t, capacity, q.Len())

	q.Dequeue()

	select {
	case <-full:
	case <-time.After(time.Second):
		t.Fatal("Enqueue never unblocked after space freed")
	}
}
