package worker

import (
	"sync"

	"github.com/truestate/sales-dashboard/pkg/logger"
)

type WorkerHandler = func(workerIndex int, job interface{})

// WorkerManager is a goroutine pool for finite batch workloads. Enqueue jobs,
// then Close the intake and Wait for the pool to drain; the bulk loader uses
// it to insert CSV batches in parallel.
type WorkerManager struct {
	jobChannel     chan interface{}
	numberOfWorker int
	do             WorkerHandler
	closeOnce      sync.Once
	waiter         *sync.WaitGroup
}

func NewWorkerManager(bufferSize, numberOfWorkers int) *WorkerManager {
	return &WorkerManager{
		jobChannel:     make(chan interface{}, bufferSize),
		numberOfWorker: numberOfWorkers,
		waiter:         &sync.WaitGroup{},
	}
}

func (w *WorkerManager) GetUnreadCount() int64 {
	return int64(len(w.jobChannel))
}

func (w *WorkerManager) SetWorker(worker WorkerHandler) {
	w.do = worker
}

// Enqueue publishes a job onto the channel. Blocks when the buffer is full,
// which throttles the producer to the pool's pace.
func (w *WorkerManager) Enqueue(val interface{}) {
	w.jobChannel <- val
}

// Start launches the workers. Each worker runs until the job channel is
// closed and drained.
func (w *WorkerManager) Start() {
	w.waiter.Add(w.numberOfWorker)
	for i := 0; i < w.numberOfWorker; i++ {
		go func(index int) {
			defer w.waiter.Done()
			for job := range w.jobChannel {
				w.do(index, job)
			}
		}(i)
	}
}

// Close stops the intake. Safe to call more than once.
func (w *WorkerManager) Close() {
	w.closeOnce.Do(func() {
		close(w.jobChannel)
	})
}

// Wait blocks until every enqueued job has been handled. Call Close first.
func (w *WorkerManager) Wait() {
	w.waiter.Wait()
	logger.Info("worker manager drained")
}
