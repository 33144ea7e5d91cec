package metrics

// DayStats is one row of the run's time series.
type DayStats struct {
	Day        int
	Infected   float64 // nodes ever infected / manynode
	Uninfected float64
	Contacts   float64 // degree held by susceptible nodes / (2 * manynode * halfdegree)

	Cases    int // nodes with day != 0
	Degree   int // summed degree of nodes with day == 0
	Stagnant int // consecutive days without a new maximum of Cases
}

func NewDayStats(day, cases, susceptibleDegree, numberOfVertices, halfDegree int) DayStats {
	infected := float64(cases) / float64(numberOfVertices)
	return DayStats{
		Day:        day,
		Infected:   infected,
		Uninfected: float64(numberOfVertices-cases) / float64(numberOfVertices),
		Contacts:   float64(susceptibleDegree) / float64(2*numberOfVertices*halfDegree),
		Cases:      cases,
		Degree:     susceptibleDegree,
	}
}

// StagnationTracker counts consecutive days on which the case count failed to reach a new maximum.
type StagnationTracker struct {
	maxCases int
	ticks    int
}

func (st *StagnationTracker) Observe(cases int) int {
	if st.maxCases < cases {
		st.maxCases = cases
		st.ticks = 0
	} else {
		st.ticks++
	}
	return st.ticks
}

func (st *StagnationTracker) GetTicks() int {
	return st.ticks
}
