package sweep

import (
	"fmt"
	"io"
	"sync"

	"github.com/rmt1947/cov-swn/pkg/agenda"
	"github.com/rmt1947/cov-swn/pkg/concurrent"
	"github.com/rmt1947/cov-swn/pkg/engine"
	"github.com/rmt1947/cov-swn/pkg/report"
	"go.uber.org/zap"
)

// NETWORK_CACHE_SIZE bounds how many built networks a sweep keeps for reuse. Agenda lines that
// vary only the epidemic parameters rebuild nothing.
const NETWORK_CACHE_SIZE = 4

type Options struct {
	Workers         int
	DiagnosticsFile string
}

type Failure struct {
	Job agenda.Job
	Err error
}

type Summary struct {
	Planned   int
	Succeeded int
	Failures  []Failure
}

type outcome struct {
	job agenda.Job
	res *engine.Result
	err error
}

type Runner struct {
	engine  *engine.Engine
	workers int
	stdout  io.Writer
	outMu   sync.Mutex
	logger  *zap.Logger
}

func NewRunner(opts Options, stdout io.Writer, logger *zap.Logger) (*Runner, error) {
	eng, err := engine.NewEngine(engine.Options{
		DiagnosticsFile:  opts.DiagnosticsFile,
		NetworkCacheSize: NETWORK_CACHE_SIZE,
	}, logger)
	if err != nil {
		return nil, err
	}
	return &Runner{engine: eng, workers: opts.Workers, stdout: stdout, logger: logger}, nil
}

// Run executes every job. A job that fails, including one with an invalid parameter
// combination, is logged and counted; it never stops the sweep.
func (r *Runner) Run(jobs []agenda.Job) *Summary {
	outcomes := concurrent.Process(r.workers, jobs, r.runJob)

	summary := &Summary{Planned: len(jobs), Failures: []Failure{}}
	for _, o := range outcomes {
		if o.err != nil {
			summary.Failures = append(summary.Failures, Failure{Job: o.job, Err: o.err})
			continue
		}
		summary.Succeeded++
	}
	r.logger.Info("sweep finished", zap.Int("planned", summary.Planned),
		zap.Int("succeeded", summary.Succeeded), zap.Int("failed", len(summary.Failures)))
	return summary
}

func (r *Runner) runJob(job agenda.Job) outcome {
	r.outMu.Lock()
	fmt.Fprintf(r.stdout, "   %s\n", report.FileName(job.OutputDir, job.Params))
	r.outMu.Unlock()

	res, err := r.engine.RunTo(job.Params, job.OutputDir)
	if err != nil {
		r.logger.Error("run failed", zap.Int("line", job.Line),
			zap.String("path", report.FileName(job.OutputDir, job.Params)), zap.Error(err))
	}
	return outcome{job: job, res: res, err: err}
}

// RunAgenda loads the agenda at path and runs all of it.
func RunAgenda(path string, opts Options, stdout io.Writer, logger *zap.Logger) (*Summary, error) {
	entries, err := agenda.Load(path, logger)
	if err != nil {
		return nil, err
	}
	runner, err := NewRunner(opts, stdout, logger)
	if err != nil {
		return nil, err
	}
	return runner.Run(agenda.Jobs(entries)), nil
}
