package main

import (
	"fmt"

	centralmult "github.com/next-exp/centralmult_go/pkg"
)

type partialSum struct {
	Hist   *centralmult.Hist2D
	Events int
	Err    error
}

// worker merges every chunk of records it receives into its own partial
// sum. Records are never shared between workers.
func worker(id int, jobs <-chan []centralmult.StoredEvent, results chan<- partialSum) {
	for chunk := range jobs {
		results <- mergeChunk(id, chunk)
	}
}

func mergeChunk(id int, chunk []centralmult.StoredEvent) (result partialSum) {
	defer func() {
		if r := recover(); r != nil {
			result = partialSum{Err: fmt.Errorf("worker %d recovered from panic: %v", id, r)}
		}
	}()

	records := make([]*centralmult.Record, len(chunk))
	for i, evt := range chunk {
		records[i] = evt.Record
	}
	sum, err := centralmult.Merge(records...)
	if err != nil {
		return partialSum{Err: fmt.Errorf("worker %d: %w", id, err)}
	}
	if configuration.Verbosity > 1 {
		logger.Info(fmt.Sprintf("Worker %d merged %d events", id, len(chunk)), "worker")
	}
	return partialSum{Hist: sum, Events: len(chunk)}
}

func splitEvents(events []centralmult.StoredEvent, nChunks int) [][]centralmult.StoredEvent {
	if nChunks < 1 {
		nChunks = 1
	}
	if nChunks > len(events) {
		nChunks = len(events)
	}
	chunks := make([][]centralmult.StoredEvent, 0, nChunks)
	size := (len(events) + nChunks - 1) / max(nChunks, 1)
	for start := 0; start < len(events); start += size {
		end := min(start+size, len(events))
		chunks = append(chunks, events[start:end])
	}
	return chunks
}

// mergeParallel sums all records using nWorkers workers. Bin-wise
// addition is commutative and associative, so the partial sums can be
// combined in whatever order they arrive.
func mergeParallel(events []centralmult.StoredEvent, nWorkers int) (*centralmult.Hist2D, error) {
	if len(events) == 0 {
		return nil, centralmult.ErrNoRecords
	}
	chunks := splitEvents(events, nWorkers)

	jobs := make(chan []centralmult.StoredEvent, len(chunks))
	results := make(chan partialSum, len(chunks))
	for w := 1; w <= len(chunks); w++ {
		go worker(w, jobs, results)
	}
	for _, chunk := range chunks {
		jobs <- chunk
	}
	close(jobs)

	var total *centralmult.Hist2D
	var firstErr error
	merged := 0
	for range chunks {
		partial := <-results
		if partial.Err != nil {
			if firstErr == nil {
				firstErr = partial.Err
			}
			continue
		}
		merged += partial.Events
		if total == nil {
			total = partial.Hist
			continue
		}
		if err := total.Add(partial.Hist); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Merged %d events", merged), "merge")
	}
	return total, nil
}
