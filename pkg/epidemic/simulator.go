package epidemic

import (
	da "github.com/rmt1947/cov-swn/pkg/datastructure"
	"github.com/rmt1947/cov-swn/pkg/metrics"
	"github.com/rmt1947/cov-swn/pkg/random"
	"github.com/rmt1947/cov-swn/pkg/smallworld"
	"go.uber.org/zap"
)

// HORIZON_DAYS is the length of every run. Day 0 is the initial state, so a run reports
// HORIZON_DAYS+1 rows.
const HORIZON_DAYS = 365

// Status is the disease state of one node, indexed like the graph's vertices.
//
//	Day == 0          susceptible
//	Day >= 1          days since onset; never returns to 0
//	Inert             frozen for the whole run
type Status struct {
	Day   int
	Inert bool
}

func (s Status) Infected() bool {
	return s.Day != 0
}

type Simulator struct {
	graph      *da.AdjacencyStore
	status     []Status
	order      []da.Index // update order, reshuffled every day
	n          int
	halfDegree int

	chance     random.Threshold
	inert      random.Threshold
	incubating int
	recovery   int

	rd          *random.Stream
	logger      *zap.Logger
	patientZero da.Index
	day         int
	stagnation  metrics.StagnationTracker
}

// NewSimulator prepares a run over nw. The network is read, never modified.
func NewSimulator(nw *smallworld.Network, p Params, rd *random.Stream, logger *zap.Logger) (*Simulator, error) {
	th, err := p.Quantize()
	if err != nil {
		return nil, err
	}
	n := nw.NumberOfVertices()
	return &Simulator{
		graph:      nw.GetGraph(),
		status:     make([]Status, n),
		order:      make([]da.Index, n),
		n:          n,
		halfDegree: nw.GetHalfDegree(),
		chance:     th.Chance,
		inert:      th.Inert,
		incubating: p.Incubating,
		recovery:   p.Recovery,
		rd:         rd,
		logger:     logger,
	}, nil
}

/*
selectPatientZero draws nodes until the degrees of all drawn nodes, summed across draws, reach
2*halfdegree; the last node drawn is patient zero. The running total is deliberately not reset
between draws, so on a lattice-like graph the first draw is almost always accepted.
*/
func (s *Simulator) selectPatientZero() da.Index {
	var (
		m     da.Index
		total int
	)
	for total < 2*s.halfDegree {
		m = da.Index(s.rd.Intn(s.n))
		total += s.graph.Degree(m)
	}
	return m
}

// Initialize picks patient zero and draws, in index order, which of the other nodes are inert.
func (s *Simulator) Initialize() {
	s.patientZero = s.selectPatientZero()
	for j := 0; j < s.n; j++ {
		s.order[j] = da.Index(j)
		s.status[j] = Status{}
		if da.Index(j) == s.patientZero {
			s.status[j].Day = 1
			continue
		}
		if s.rd.Bernoulli(s.inert) {
			s.status[j].Inert = true
		}
	}
	s.day = 0
	s.stagnation = metrics.StagnationTracker{}
	s.stagnation.Observe(s.countCases())
}

func (s *Simulator) shuffle() {
	for i := s.n - 1; i > 0; i-- {
		j := s.rd.Intn(i + 1)
		s.order[i], s.order[j] = s.order[j], s.order[i]
	}
}

func (s *Simulator) infectious(v da.Index) bool {
	d := s.status[v].Day
	return s.incubating < d && d < s.recovery
}

/*
Step advances the epidemic by one day. Nodes are visited in a fresh random order and updated in
place: a node visited later sees the already-advanced state of neighbors visited earlier the same
day. A susceptible node gets one independent trial per infectious neighbor; all trials are drawn
even after one succeeds.
*/
func (s *Simulator) Step() metrics.DayStats {
	s.shuffle()

	for _, j := range s.order {
		st := &s.status[j]
		if st.Inert {
			continue
		}
		if st.Day != 0 {
			st.Day++
			continue
		}
		for _, nb := range s.graph.Neighbors(j) {
			if s.infectious(nb) && s.rd.Bernoulli(s.chance) {
				st.Day = 1
			}
		}
	}

	s.day++
	stats := s.Statistics()
	stats.Stagnant = s.stagnation.Observe(stats.Cases)
	if stats.Stagnant > 0 {
		s.logger.Debug("no new cases", zap.Int("day", s.day), zap.Int("stagnant", stats.Stagnant))
	}
	return stats
}

func (s *Simulator) countCases() int {
	cases := 0
	for j := range s.status {
		if s.status[j].Infected() {
			cases++
		}
	}
	return cases
}

// Statistics summarizes the current day without changing any state.
func (s *Simulator) Statistics() metrics.DayStats {
	cases, degree := 0, 0
	for j := range s.status {
		if s.status[j].Infected() {
			cases++
		} else {
			degree += s.graph.Degree(da.Index(j))
		}
	}
	stats := metrics.NewDayStats(s.day, cases, degree, s.n, s.halfDegree)
	stats.Stagnant = s.stagnation.GetTicks()
	return stats
}

// Run initializes the epidemic and returns the statistics of days 0 through HORIZON_DAYS.
func (s *Simulator) Run() []metrics.DayStats {
	s.Initialize()
	series := make([]metrics.DayStats, 0, HORIZON_DAYS+1)
	series = append(series, s.Statistics())
	for s.day < HORIZON_DAYS {
		series = append(series, s.Step())
	}

	last := series[len(series)-1]
	s.logger.Info("epidemic finished",
		zap.Uint32("patient_zero", uint32(s.patientZero)),
		zap.Float64("infected", last.Infected),
		zap.Int("stagnant_days", last.Stagnant))
	return series
}

func (s *Simulator) GetPatientZero() da.Index {
	return s.patientZero
}

func (s *Simulator) GetStatus(v da.Index) Status {
	return s.status[v]
}

func (s *Simulator) GetDay() int {
	return s.day
}

// Release drops the per-node state. The graph belongs to the network and is released there.
func (s *Simulator) Release() {
	s.status = nil
	s.order = nil
	s.graph = nil
}
