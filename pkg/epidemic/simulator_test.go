package epidemic

import (
	"testing"

	da "github.com/rmt1947/cov-swn/pkg/datastructure"
	"github.com/rmt1947/cov-swn/pkg/metrics"
	"github.com/rmt1947/cov-swn/pkg/random"
	"github.com/rmt1947/cov-swn/pkg/smallworld"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func runScenario(t *testing.T, p Params) (*Simulator, []metrics.DayStats) {
	t.Helper()
	require.NoError(t, p.Validate())
	nw, err := smallworld.Build(p.Network(), random.NewStream(p.SeedSwn), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(nw.Release)

	sim, err := NewSimulator(nw, p, random.NewStream(p.SeedCov), zap.NewNop())
	require.NoError(t, err)
	return sim, sim.Run()
}

func scenarioA() Params {
	return Params{
		SeedCov: 0x00000001, SeedSwn: 0x00000002,
		ManyNode: 100, HalfDegree: 3, Beta: 0, Chance: 0, Inert: 0,
		Incubating: 2, Recovery: 10,
	}
}

func TestScenarioNoTransmission(t *testing.T) {
	_, series := runScenario(t, scenarioA())

	require.Len(t, series, HORIZON_DAYS+1)
	for i, st := range series {
		assert.Equal(t, i, st.Day)
		assert.InDelta(t, 0.01, st.Infected, 1e-12, "day %d", i)
		assert.InDelta(t, 0.99, st.Uninfected, 1e-12, "day %d", i)
		assert.InDelta(t, 0.99, st.Contacts, 1e-12, "day %d", i)
	}
	assert.Equal(t, HORIZON_DAYS, series[HORIZON_DAYS].Stagnant)
}

func TestScenarioEveryoneInert(t *testing.T) {
	p := scenarioA()
	p.Inert = 1.0
	p.Chance = 1.0
	sim, series := runScenario(t, p)

	for _, st := range series {
		assert.InDelta(t, 0.01, st.Infected, 1e-12)
		assert.InDelta(t, 0.99, st.Uninfected, 1e-12)
	}
	pz := sim.GetPatientZero()
	for v := da.Index(0); v < 100; v++ {
		status := sim.GetStatus(v)
		if v == pz {
			assert.False(t, status.Inert)
			assert.Equal(t, HORIZON_DAYS+1, status.Day)
			continue
		}
		assert.True(t, status.Inert)
		assert.Equal(t, 0, status.Day)
	}
}

func TestCertainTransmissionReachesEveryone(t *testing.T) {
	p := Params{
		SeedCov: 0xABCD, SeedSwn: 0x1234,
		ManyNode: 100, HalfDegree: 3, Beta: 0.2, Chance: 1, Inert: 0,
		Incubating: 0, Recovery: 400,
	}
	_, series := runScenario(t, p)

	last := series[len(series)-1]
	assert.InDelta(t, 1.0, last.Infected, 1e-12)
	assert.InDelta(t, 0.0, last.Contacts, 1e-12)
}

func TestInfectedFractionNeverDecreases(t *testing.T) {
	testCases := []struct {
		name string
		p    Params
	}{
		{name: "moderate", p: Params{SeedCov: 7, SeedSwn: 8, ManyNode: 400, HalfDegree: 3, Beta: 0.1,
			Chance: 0.05, Inert: 0.2, Incubating: 3, Recovery: 14}},
		{name: "fast", p: Params{SeedCov: 0xFFFFFFFF, SeedSwn: 0, ManyNode: 250, HalfDegree: 2, Beta: 0.5,
			Chance: 0.4, Inert: 0.1, Incubating: 0, Recovery: 5}},
		{name: "short window", p: Params{SeedCov: 3, SeedSwn: 3, ManyNode: 120, HalfDegree: 4, Beta: 0.05,
			Chance: 0.3, Inert: 0.5, Incubating: 1, Recovery: 2}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			sim, series := runScenario(t, tt.p)
			for i := 1; i < len(series); i++ {
				assert.GreaterOrEqual(t, series[i].Cases, series[i-1].Cases, "day %d", i)
				assert.LessOrEqual(t, series[i].Degree, series[i-1].Degree, "day %d", i)
			}
			for v := da.Index(0); int(v) < tt.p.ManyNode; v++ {
				st := sim.GetStatus(v)
				if st.Inert {
					assert.Equal(t, 0, st.Day)
				}
			}
		})
	}
}

func TestRunIsReproducible(t *testing.T) {
	p := Params{SeedCov: 0x5EED, SeedSwn: 0xF00D, ManyNode: 300, HalfDegree: 3, Beta: 0.1,
		Chance: 0.08, Inert: 0.1, Incubating: 2, Recovery: 9}
	_, a := runScenario(t, p)
	_, b := runScenario(t, p)
	assert.Equal(t, a, b)

	p.SeedCov++
	_, c := runScenario(t, p)
	assert.Equal(t, a[0].Infected, c[0].Infected)
	assert.NotEqual(t, a, c)
}

func TestPatientZeroOnLattice(t *testing.T) {
	// every lattice node already has 2*halfdegree links, so the first draw is accepted
	p := scenarioA()
	nw, err := smallworld.Build(p.Network(), random.NewStream(p.SeedSwn), zap.NewNop())
	require.NoError(t, err)

	first := da.Index(random.NewStream(p.SeedCov).Intn(p.ManyNode))
	sim, err := NewSimulator(nw, p, random.NewStream(p.SeedCov), zap.NewNop())
	require.NoError(t, err)
	sim.Initialize()

	assert.Equal(t, first, sim.GetPatientZero())
	assert.Equal(t, 1, sim.GetStatus(first).Day)
	assert.Equal(t, 0, sim.GetDay())
}

func TestReleaseDropsState(t *testing.T) {
	p := scenarioA()
	sim, _ := runScenario(t, p)
	sim.Release()
	assert.Nil(t, sim.status)
	assert.Nil(t, sim.order)
}

func newInitialized(t *testing.T, p Params, rd *random.Stream) *Simulator {
	t.Helper()
	nw, err := smallworld.Build(p.Network(), random.NewStream(p.SeedSwn), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(nw.Release)

	sim, err := NewSimulator(nw, p, rd, zap.NewNop())
	require.NoError(t, err)
	sim.Initialize()
	return sim
}

// infectedRun counts the consecutive infected nodes next to from, walking the ring in direction dir.
func infectedRun(sim *Simulator, from da.Index, dir int) int {
	n := sim.n
	run := 0
	for run < n-1 {
		v := da.Index(((int(from)+dir*(run+1))%n + n) % n)
		if !sim.GetStatus(v).Infected() {
			break
		}
		run++
	}
	return run
}

func TestStepSeesNeighborsInfectedEarlierSameDay(t *testing.T) {
	p := Params{SeedSwn: 3, ManyNode: 50, HalfDegree: 1, Beta: 0, Chance: 1, Inert: 0,
		Incubating: 0, Recovery: 400}

	spreadFurther := 0
	for seed := uint32(1); seed <= 20; seed++ {
		p.SeedCov = seed
		sim := newInitialized(t, p, random.NewStream(seed))
		st := sim.Step()

		// patient zero infects both ring neighbors; anything beyond them was infected by a node
		// that only caught the disease earlier the same day
		pz := sim.GetPatientZero()
		left, right := infectedRun(sim, pz, -1), infectedRun(sim, pz, 1)
		assert.GreaterOrEqual(t, st.Cases, 3, "seed %d", seed)
		assert.Equal(t, left+right+1, st.Cases, "seed %d: infected nodes must form one arc", seed)
		if st.Cases > 3 {
			spreadFurther++
		}
	}
	assert.Positive(t, spreadFurther)
}

func TestStepDrawsOncePerInfectiousNeighbor(t *testing.T) {
	// on a triangle the first susceptible node visited has one infectious neighbor and the
	// second has two, whatever the order, so the day consumes exactly three trials
	p := Params{SeedCov: 0x5EED, SeedSwn: 9, ManyNode: 3, HalfDegree: 1, Beta: 0, Chance: 1, Inert: 0,
		Incubating: 0, Recovery: 400}
	rd := random.NewStream(p.SeedCov)
	sim := newInitialized(t, p, rd)
	st := sim.Step()
	require.Equal(t, 3, st.Cases)

	replay := random.NewStream(p.SeedCov)
	replay.Intn(p.ManyNode) // patient zero
	replay.Draw1024()       // inert draws of the two other nodes
	replay.Draw1024()
	replay.Intn(3) // shuffle
	replay.Intn(2)
	for i := 0; i < 3; i++ {
		replay.Draw1024()
	}

	for i := 0; i < 4; i++ {
		assert.Equal(t, replay.Intn(1<<30), rd.Intn(1<<30), "stream out of step after draw %d", i)
	}
}
