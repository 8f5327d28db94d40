package main

import (
	"fmt"

	centralmult "github.com/next-exp/centralmult_go/pkg"
)

type EventResult struct {
	EventNumber int
	Vertex      float64
	Record      *centralmult.Record
	Err         error
}

// worker takes a free record from the pool for every event number it
// receives. The record goes back to the pool once it has been written.
func worker(id int, generator Generator, jobs <-chan int, pool chan *centralmult.Record, results chan<- EventResult) {
	for evtNumber := range jobs {
		record := <-pool
		results <- generateEvent(id, generator, record, evtNumber)
	}
}

func generateEvent(id int, generator Generator, record *centralmult.Record, evtNumber int) (result EventResult) {
	result = EventResult{EventNumber: evtNumber, Record: record}
	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("worker %d recovered from panic on event %d: %v", id, evtNumber, r)
		}
	}()

	if configuration.Verbosity > 1 {
		logger.Info(fmt.Sprintf("Worker %d generating event %d", id, evtNumber), "worker")
	}
	vz, err := generator.Generate(record, evtNumber)
	if err != nil {
		result.Err = fmt.Errorf("error generating event %d: %w", evtNumber, err)
	}
	result.Vertex = vz
	return result
}

func sendEventsToWorkers(nEvents int, jobs chan<- int) {
	for evt := 0; evt < nEvents; evt++ {
		jobs <- evt
	}
	close(jobs)
}

// EventSink receives every generated record, in completion order.
type EventSink interface {
	WriteEvent(record centralmult.Persistable, evtNumber int) error
}

func processWorkerResults(results <-chan EventResult, pool chan<- *centralmult.Record, sink EventSink, evtsToRead int) (int, error) {
	written := 0
	var firstErr error
	for evtsProcessed := 0; evtsProcessed < evtsToRead; evtsProcessed++ {
		result := <-results
		if result.Err != nil {
			logger.Error(result.Err.Error())
			if firstErr == nil {
				firstErr = result.Err
			}
		} else if err := sink.WriteEvent(result.Record, result.EventNumber); err != nil {
			message := fmt.Errorf("error writing event %d: %w", result.EventNumber, err)
			logger.Error(message.Error())
			if firstErr == nil {
				firstErr = message
			}
		} else {
			written++
			if configuration.Verbosity > 1 {
				logger.Info(fmt.Sprintf("Event %d written, vertex %.2f cm", result.EventNumber, result.Vertex), "writer")
			}
		}
		pool <- result.Record
	}
	return written, firstErr
}

// runPipeline generates nEvents with nWorkers workers sharing a pool of
// 2*nWorkers records and hands each one to sink.
func runPipeline(generator Generator, etaAxis centralmult.Axis, simulated bool, nWorkers int, nEvents int, sink EventSink) (int, error) {
	if nWorkers < 1 {
		nWorkers = 1
	}
	poolSize := 2 * nWorkers
	pool := make(chan *centralmult.Record, poolSize)
	for i := 0; i < poolSize; i++ {
		record := centralmult.NewRecord(simulated)
		if err := record.Init(etaAxis); err != nil {
			return 0, err
		}
		pool <- record
	}

	jobs := make(chan int, nWorkers)
	results := make(chan EventResult, poolSize)
	for w := 1; w <= nWorkers; w++ {
		go worker(w, generator, jobs, pool, results)
	}
	go sendEventsToWorkers(nEvents, jobs)

	return processWorkerResults(results, pool, sink, nEvents)
}
