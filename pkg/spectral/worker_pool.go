package spectral

import (
	"context"
	"runtime"
	"sync"

	"github.com/Ritik-Gupta8/Optical-Labs/pkg/core"
)

// SampleTask represents a contiguous run of sweep samples for the worker pool
type SampleTask struct {
	Start  int // first sample index, inclusive
	End    int // last sample index, exclusive
	TaskID int // for deterministic result accounting
}

// SampleResult contains the result from evaluating one sample run
type SampleResult struct {
	TaskID int
	Err    error
}

// SamplePool manages parallel evaluation of sweep samples
type SamplePool struct {
	taskQueue   chan SampleTask
	resultQueue chan SampleResult
	workers     []*sampleWorker
	numWorkers  int
	wg          sync.WaitGroup
}

// sampleWorker evaluates sample runs against a fixed set of detector paths
type sampleWorker struct {
	id          int
	ctx         context.Context
	model       Model
	paths       []core.Path
	spec        SweepSpec
	powers      []float64 // Shared output array; tasks cover disjoint ranges
	taskQueue   chan SampleTask
	resultQueue chan SampleResult
}

// newSamplePool creates a pool whose workers write summed path powers into
// the shared powers slice
func newSamplePool(ctx context.Context, model Model, paths []core.Path, spec SweepSpec, powers []float64, numWorkers, maxTasks int) *SamplePool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	pool := &SamplePool{
		taskQueue:   make(chan SampleTask, maxTasks),
		resultQueue: make(chan SampleResult, maxTasks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &sampleWorker{
			id:          i,
			ctx:         ctx,
			model:       model,
			paths:       paths,
			spec:        spec,
			powers:      powers,
			taskQueue:   pool.taskQueue,
			resultQueue: pool.resultQueue,
		}
		pool.workers = append(pool.workers, worker)
	}

	return pool
}

// Start begins all workers
func (sp *SamplePool) Start() {
	for _, worker := range sp.workers {
		sp.wg.Add(1)
		go worker.run(&sp.wg)
	}
}

// Stop gracefully shuts down all workers
func (sp *SamplePool) Stop() {
	close(sp.taskQueue)
	sp.wg.Wait()
	close(sp.resultQueue)
}

// SubmitTask submits a sample run to the worker pool
func (sp *SamplePool) SubmitTask(task SampleTask) {
	sp.taskQueue <- task
}

// GetResult retrieves a completed sample run result
func (sp *SamplePool) GetResult() (SampleResult, bool) {
	result, ok := <-sp.resultQueue
	return result, ok
}

// NumWorkers returns the number of workers in the pool
func (sp *SamplePool) NumWorkers() int {
	return sp.numWorkers
}

// run is the main worker loop. Cancellation is observed between tasks, never
// inside one, so partially written runs are either complete or untouched.
func (w *sampleWorker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		if err := w.ctx.Err(); err != nil {
			w.resultQueue <- SampleResult{TaskID: task.TaskID, Err: err}
			continue
		}

		for i := task.Start; i < task.End; i++ {
			wavelength := w.spec.Wavelength(i)
			total := 0.0
			for _, path := range w.paths {
				total += w.model.Power(path, wavelength)
			}
			w.powers[i] = total
		}

		w.resultQueue <- SampleResult{TaskID: task.TaskID}
	}
}
