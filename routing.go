package starterbot

import (
	"context"
	"fmt"
	"hash"
	"hash/crc32"
	"math"
	"sync"
)

type partitionRouter struct {
	// Logger
	log SLogger

	// eventQueues with partition keyed by the hash of the event's channel id so that
	// events of a channel are processed in order while a slow lookup on a channel only
	// holds back the channels sharing its partition
	eventQueues []chan *Event

	// workers tracks the partition workers so that stop can wait for queued events to drain
	workers sync.WaitGroup

	// hash function to direct event processing to partitions. Only used by the routing goroutine
	hasher   hash.Hash32
	hashMask int

	*instrumenter
}

func newPartitionRouter(partitionCount int, queueBufferSize int, log SLogger, instrumenter *instrumenter) (pr *partitionRouter, err error) {
	if !isPowerOfTwo(partitionCount) {
		return nil, fmt.Errorf("A partition router can only work with a partitionCount that is a power of two but was [%d]", partitionCount)
	}

	pr = new(partitionRouter)
	pr.eventQueues = make([]chan *Event, partitionCount)
	for i := range pr.eventQueues {
		pr.eventQueues[i] = make(chan *Event, queueBufferSize)
	}
	pr.hasher = crc32.NewIEEE()
	pr.hashMask = hashMask(partitionCount)
	pr.log = log
	pr.instrumenter = instrumenter

	return pr, nil
}

// start launches one worker per partition. Each worker processes the events of its partition sequentially
func (pr *partitionRouter) start(process func(e *Event)) {
	for i, q := range pr.eventQueues {
		pr.workers.Add(1)

		go func(partition int, queue chan *Event) {
			defer pr.workers.Done()

			for e := range queue {
				process(e)
			}

			pr.log.Debugf("Worker for partition [%d] terminated", partition)
		}(i, q)
	}
}

// route queues the event on the partition of its channel
func (pr *partitionRouter) route(e *Event) {
	partition := pr.partitionForChannel(e.Channel)

	pr.log.Debugf("Dispatching [%s] event on channel [%s] to partition [%d]", e.Type, e.Channel, partition)
	d := measure(func() {
		pr.eventQueues[partition] <- e
	})

	pr.coreMetrics.eventDispatchLatencyMillis.Record(context.Background(), d.Milliseconds())
}

// stop closes all queues and waits for the workers to finish processing what was already queued.
// route must not be called after stop
func (pr *partitionRouter) stop() {
	for _, q := range pr.eventQueues {
		close(q)
	}

	pr.workers.Wait()
}

// partitionForChannel returns the partition index for a given channel ID. Events without a channel
// all land on the same partition
func (pr *partitionRouter) partitionForChannel(channelID string) (partition int) {
	pr.hasher.Reset()
	pr.hasher.Write([]byte(channelID))
	res := pr.hasher.Sum32()

	// Keep only the rightmost bits so we have a max equal to the partition count
	return int(res) & pr.hashMask
}

// isPowerOfTwo returns true if val is a power of two or false if not
func isPowerOfTwo(val int) bool {
	return (val != 0) && (val&(val-1)) == 0
}

// hashMask builds a mask for a partitionCount (which should be a power of two) to get a hash value
// that is in the range of the number of partitions we have
func hashMask(partitionCount int) int {
	maskSize := int(math.Log2(float64(partitionCount)))
	mask := 0
	for i := 0; i < maskSize; i++ {
		mask = mask<<1 | 1
	}

	return mask
}
