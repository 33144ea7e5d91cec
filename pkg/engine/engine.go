package engine

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rmt1947/cov-swn/pkg/epidemic"
	"github.com/rmt1947/cov-swn/pkg/metrics"
	"github.com/rmt1947/cov-swn/pkg/random"
	"github.com/rmt1947/cov-swn/pkg/report"
	"github.com/rmt1947/cov-swn/pkg/smallworld"
	"github.com/rmt1947/cov-swn/pkg/util"
	"go.uber.org/zap"
)

const DEFAULT_OUTPUT_DIR = "OUT"

type Options struct {
	OutputDir       string
	DiagnosticsFile string // empty disables the degree report
	Compress        bool
	// NetworkCacheSize > 0 keeps that many built networks for reuse by later runs with the
	// same seedswn, manynode, halfdegree and beta.
	NetworkCacheSize int
}

type Result struct {
	Path        string
	Series      []metrics.DayStats
	PatientZero uint32
	Rewired     int
}

// networkKey holds everything a network depends on.
type networkKey struct {
	seed       uint32
	n          int
	halfDegree int
	beta       float64
}

type Engine struct {
	opts     Options
	logger   *zap.Logger
	networks *lru.Cache[networkKey, *smallworld.Network]
	reportMu sync.Mutex // the degree report path is shared by concurrent runs
}

func NewEngine(opts Options, logger *zap.Logger) (*Engine, error) {
	if opts.OutputDir == "" {
		opts.OutputDir = DEFAULT_OUTPUT_DIR
	}
	e := &Engine{opts: opts, logger: logger}
	if opts.NetworkCacheSize > 0 {
		cache, err := lru.New[networkKey, *smallworld.Network](opts.NetworkCacheSize)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "bad network cache size %d", opts.NetworkCacheSize)
		}
		e.networks = cache
	}
	return e, nil
}

// Run executes one complete run into the configured output directory.
func (e *Engine) Run(p epidemic.Params) (*Result, error) {
	return e.RunTo(p, e.opts.OutputDir)
}

// RunTo executes one complete run with its own pair of random streams and writes the output
// file into outputDir. Runs share no mutable state, so one Engine may serve several goroutines.
func (e *Engine) RunTo(p epidemic.Params, outputDir string) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	nw, cached, err := e.network(p)
	if err != nil {
		return nil, err
	}
	if !cached {
		defer nw.Release()
	}

	out, err := report.Create(report.FileName(outputDir, p), e.opts.Compress, e.logger)
	if err != nil {
		return nil, err
	}

	sim, err := epidemic.NewSimulator(nw, p, random.NewStream(p.SeedCov), e.logger)
	if err != nil {
		out.Abort()
		return nil, err
	}
	series := sim.Run()
	res := &Result{
		Path:        out.GetPath(),
		Series:      series,
		PatientZero: uint32(sim.GetPatientZero()),
		Rewired:     nw.GetRewired(),
	}
	sim.Release()

	if err := out.Commit(series); err != nil {
		return nil, err
	}
	e.logger.Info("run finished", zap.String("path", res.Path),
		zap.Float64("infected", series[len(series)-1].Infected))
	return res, nil
}

// network builds the run's graph from the seedswn stream, or takes it from the cache. The
// degree report is written whenever a network is actually built.
func (e *Engine) network(p epidemic.Params) (*smallworld.Network, bool, error) {
	key := networkKey{seed: p.SeedSwn, n: p.ManyNode, halfDegree: p.HalfDegree, beta: p.Beta}
	if e.networks != nil {
		if nw, ok := e.networks.Get(key); ok {
			e.logger.Debug("reusing network", zap.Uint32("seedswn", p.SeedSwn), zap.Int("manynode", p.ManyNode))
			return nw, true, nil
		}
	}

	e.logger.Info("building small-world network",
		zap.Int("manynode", p.ManyNode), zap.Int("halfdegree", p.HalfDegree), zap.Float64("beta", p.Beta))
	nw, err := smallworld.Build(p.Network(), random.NewStream(p.SeedSwn), e.logger)
	if err != nil {
		return nil, false, err
	}
	e.reportMu.Lock()
	nw.WriteDegreeReportFile(e.opts.DiagnosticsFile, e.logger)
	e.reportMu.Unlock()

	if e.networks != nil {
		e.networks.Add(key, nw)
		return nw, true, nil
	}
	return nw, false, nil
}

func (e *Engine) GetOptions() Options {
	return e.opts
}

// Run is a one-shot Engine without a network cache.
func Run(p epidemic.Params, opts Options, logger *zap.Logger) (*Result, error) {
	opts.NetworkCacheSize = 0
	e, err := NewEngine(opts, logger)
	if err != nil {
		return nil, err
	}
	return e.Run(p)
}
