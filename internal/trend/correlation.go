package trend

import (
	"fmt"
	"math"
	"time"

	"github.com/montanaflynn/stats"
)

// Correlation thresholds and alignment limits.
const (
	// MinAlignedPoints is the minimum number of date-aligned pairs required
	// before a correlation is computed. Fewer pairs yield a coefficient of
	// exactly 0: insufficient data is a valid outcome, not an error.
	MinAlignedPoints = 3

	// StrongCorrelation is the |r| threshold for a "strong" insight.
	StrongCorrelation = 0.7

	// ModerateCorrelation is the |r| threshold for a "moderate" insight.
	ModerateCorrelation = 0.4
)

// dateKey is the civil-date granularity series are aligned on.
const dateKey = "2006-01-02"

// Point is one observation in a date-keyed series. Time-of-day is ignored;
// series align on the civil date.
type Point struct {
	// Date is the observation day.
	Date time.Time `json:"date"`

	// Value is the observed score or metric.
	Value float64 `json:"value"`
}

// Result is the outcome of correlating score history against performance
// metrics.
type Result struct {
	// Coefficient is the selected Pearson coefficient, rounded to three
	// decimals. Zero when no metric had enough aligned data.
	Coefficient float64 `json:"coefficient"`

	// Metric names the metric the coefficient belongs to ("clicks" or
	// "impressions"), whichever correlated with larger magnitude.
	Metric string `json:"metric"`

	// Insight is a one-sentence interpretation of the coefficient.
	Insight string `json:"insight"`
}

// Correlation computes the Pearson correlation coefficient between two
// date-keyed series. The series are inner-joined on civil date first; fewer
// than MinAlignedPoints aligned pairs, or zero variance on either side,
// yields exactly 0.
func Correlation(a, b []Point) float64 {
	x, y := align(a, b)
	if len(x) < MinAlignedPoints {
		return 0
	}

	r, err := stats.Pearson(x, y)
	if err != nil || math.IsNaN(r) {
		return 0
	}
	return r
}

// LaggedCorrelation correlates scores against a metric observed lagDays
// later. The metric series' dates are shifted back by lagDays before
// alignment, so a score on day D pairs with the metric on day D+lagDays.
func LaggedCorrelation(scores, metric []Point, lagDays int) float64 {
	return Correlation(scores, shiftBack(metric, lagDays))
}

// Correlate relates score history to clicks and impressions and reports the
// stronger of the two relationships.
func Correlate(scores, clicks, impressions []Point) Result {
	clicksR := Correlation(scores, clicks)
	impressionsR := Correlation(scores, impressions)

	r, metric := clicksR, "clicks"
	if math.Abs(impressionsR) > math.Abs(clicksR) {
		r, metric = impressionsR, "impressions"
	}

	r = round3(r)
	return Result{
		Coefficient: r,
		Metric:      metric,
		Insight:     insight(r, metric),
	}
}

// OptimalLag grid-searches lag ∈ [0, maxLagDays] in stepDays increments for
// the lag with maximal |correlation|. Ties keep the smaller lag. A
// non-positive stepDays is treated as 1.
func OptimalLag(scores, metric []Point, maxLagDays, stepDays int) (int, float64) {
	if stepDays <= 0 {
		stepDays = 1
	}

	bestLag, bestR := 0, 0.0
	for lag := 0; lag <= maxLagDays; lag += stepDays {
		r := LaggedCorrelation(scores, metric, lag)
		if math.Abs(r) > math.Abs(bestR) {
			bestLag, bestR = lag, r
		}
	}
	return bestLag, bestR
}

// insight buckets a coefficient into a human-readable interpretation.
func insight(r float64, metric string) string {
	abs := math.Abs(r)

	var strength string
	switch {
	case abs >= StrongCorrelation:
		strength = "strong"
	case abs >= ModerateCorrelation:
		strength = "moderate"
	default:
		strength = "weak"
	}

	direction := "positive"
	if r < 0 {
		direction = "negative"
	}

	return fmt.Sprintf(
		"%s %s correlation (r=%.3f) between content scores and %s",
		strength, direction, r, metric,
	)
}

// align inner-joins two series on civil date, returning value pairs in a's
// date order.
func align(a, b []Point) ([]float64, []float64) {
	byDate := make(map[string]float64, len(b))
	for _, p := range b {
		byDate[p.Date.Format(dateKey)] = p.Value
	}

	var x, y []float64
	for _, p := range a {
		v, ok := byDate[p.Date.Format(dateKey)]
		if !ok {
			continue
		}
		x = append(x, p.Value)
		y = append(y, v)
	}
	return x, y
}

// shiftBack returns a copy of the series with every date moved back by
// lagDays. The input is never mutated.
func shiftBack(points []Point, lagDays int) []Point {
	if lagDays == 0 {
		return points
	}

	shifted := make([]Point, len(points))
	for i, p := range points {
		shifted[i] = Point{Date: p.Date.AddDate(0, 0, -lagDays), Value: p.Value}
	}
	return shifted
}

// round3 rounds to three decimals, the precision reported to users.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
