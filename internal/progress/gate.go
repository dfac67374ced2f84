package progress

import "math"

// Gate withholds the practice score until every configured activity has
// reported. Emitting a single activity's score early would let progress
// cross 100 and mark the lesson completed on partial practice.
type Gate struct {
	threshold  int
	order      []string
	activities map[string]*ActivityStatus
	emitted    bool
}

// NewGate creates a gate for the given activity IDs. A lesson with a single
// activity still goes through the gate; it just emits on the first report.
func NewGate(activityIDs []string, threshold int) *Gate {
	activities := make(map[string]*ActivityStatus, len(activityIDs))
	order := make([]string, 0, len(activityIDs))
	for _, id := range activityIDs {
		if _, ok := activities[id]; ok {
			continue
		}
		activities[id] = &ActivityStatus{ActivityID: id}
		order = append(order, id)
	}
	return &Gate{
		threshold:  threshold,
		order:      order,
		activities: activities,
	}
}

// Report records one activity's score. It returns the combined practice
// outcome and true exactly when this report completes the set; otherwise the
// gate withholds and returns nil, false. Reporting an unknown activity earns
// nothing. Re-reporting an already-scored activity replaces its score and
// re-arms the gate for a fresh combined emission.
func (g *Gate) Report(activityID string, score int) (*CombinedPractice, bool) {
	status, ok := g.activities[activityID]
	if !ok {
		return nil, false
	}

	if status.Reported {
		g.emitted = false
	}
	status.Reported = true
	status.Score = score
	status.Passed = score >= g.threshold

	if g.emitted || !g.allReported() {
		return nil, false
	}

	g.emitted = true
	return g.combine(), true
}

// Retry resets one activity to pending and clears any combined score emitted
// this session. The persisted record is never decreased by a retry.
func (g *Gate) Retry(activityID string) {
	status, ok := g.activities[activityID]
	if !ok {
		return
	}
	status.Reported = false
	status.Score = 0
	status.Passed = false
	g.emitted = false
}

// Statuses returns the per-activity states in configuration order.
func (g *Gate) Statuses() []ActivityStatus {
	out := make([]ActivityStatus, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, *g.activities[id])
	}
	return out
}

func (g *Gate) allReported() bool {
	if len(g.activities) == 0 {
		return false
	}
	for _, s := range g.activities {
		if !s.Reported {
			return false
		}
	}
	return true
}

func (g *Gate) combine() *CombinedPractice {
	sum := 0
	allPassed := true
	for _, s := range g.activities {
		sum += s.Score
		if !s.Passed {
			allPassed = false
		}
	}
	combined := int(math.Round(float64(sum) / float64(len(g.activities))))
	return &CombinedPractice{
		Score:  combined,
		Passed: allPassed && combined >= g.threshold,
	}
}
