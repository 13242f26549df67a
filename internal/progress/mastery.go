package progress

import (
	"math"
	"time"

	"github.com/abhisek/mathcamp/internal/problemgen"
)

const (
	// TimeSmoothing is the weight of the newest answer time in the
	// exponential moving average.
	TimeSmoothing = 0.3

	// RecentWindow is how many recent results are kept per activity.
	RecentWindow = 10

	// TrendWindow is how many recent results the trend compares against
	// overall accuracy.
	TrendWindow = 5

	trendMargin = 0.1
)

// Trend describes the direction of recent accuracy.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// Mastery is the running skill estimate for one activity.
type Mastery struct {
	Type          problemgen.ProblemType
	Level         int // 0-100
	Attempted     int
	Correct       int
	AverageTime   time.Duration
	LastPracticed time.Time

	// Recent holds the last RecentWindow results, oldest first.
	Recent []bool
}

// Accuracy is Correct/Attempted in [0, 1].
func (m *Mastery) Accuracy() float64 {
	if m.Attempted == 0 {
		return 0
	}
	return float64(m.Correct) / float64(m.Attempted)
}

// Record folds one answer into the estimate.
func (m *Mastery) Record(correct bool, spent time.Duration, at time.Time) {
	m.Attempted++
	if correct {
		m.Correct++
	}
	m.Level = min(100, int(math.Round(m.Accuracy()*100)))

	if m.AverageTime == 0 {
		m.AverageTime = spent
	} else {
		avg := float64(m.AverageTime)*(1-TimeSmoothing) + float64(spent)*TimeSmoothing
		m.AverageTime = time.Duration(avg)
	}

	m.Recent = append(m.Recent, correct)
	if len(m.Recent) > RecentWindow {
		m.Recent = m.Recent[len(m.Recent)-RecentWindow:]
	}
	m.LastPracticed = at
}

// Trend compares the last TrendWindow results with overall accuracy.
// Fewer results than the window count as stable.
func (m *Mastery) Trend() Trend {
	if len(m.Recent) < TrendWindow {
		return TrendStable
	}
	last := m.Recent[len(m.Recent)-TrendWindow:]
	hits := 0
	for _, ok := range last {
		if ok {
			hits++
		}
	}
	recent := float64(hits) / float64(TrendWindow)

	switch diff := recent - m.Accuracy(); {
	case diff > trendMargin:
		return TrendImproving
	case diff < -trendMargin:
		return TrendDeclining
	default:
		return TrendStable
	}
}
