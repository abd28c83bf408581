package streams

import (
	"encoding/binary"
	"errors"
	"hash/fnv"
	"sync"
)

var (
	ErrQueueFull   = errors.New("queue partition is full")
	ErrQueueClosed = errors.New("queue is closed")
)

type PartitionedQueue[T any] struct {
	partitions []chan T

	// mu guards closed so a publish never races a close.
	mu     sync.RWMutex
	closed bool
}

const (
	defaultNumPartitions = 8
	defaultBuffer        = 1024
)

func NewPartitionedQueue[T any](numPartitions, buffer int) *PartitionedQueue[T] {
	if numPartitions <= 0 {
		numPartitions = defaultNumPartitions
	}
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	channels := make([]chan T, numPartitions)
	for i := range channels {
		channels[i] = make(chan T, buffer)
	}
	return &PartitionedQueue[T]{partitions: channels}
}

func (queue *PartitionedQueue[T]) PartitionCount() int { return len(queue.partitions) }

// TryPublish enqueues msg without blocking. It fails with ErrQueueFull when
// the target partition's buffer is full.
func (queue *PartitionedQueue[T]) TryPublish(partitionKey string, msg T) error {
	queue.mu.RLock()
	defer queue.mu.RUnlock()

	if queue.closed {
		return ErrQueueClosed
	}

	idx := partitionIndex(partitionKey, len(queue.partitions))
	select {
	case queue.partitions[idx] <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting messages. Buffered messages stay readable until drained.
func (queue *PartitionedQueue[T]) Close() {
	queue.mu.Lock()
	defer queue.mu.Unlock()

	if queue.closed {
		return
	}
	queue.closed = true
	for _, ch := range queue.partitions {
		close(ch)
	}
}

func partitionIndex(key string, n int) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(key))
	sum := hash.Sum(nil)
	v := binary.BigEndian.Uint32(sum)
	return int(v % uint32(n))
}
