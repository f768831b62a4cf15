package scale

import (
	"math"
	"time"
)

// DayTicks returns midnights inside the domain, every `every` days starting
// at the first midnight on or after DomainMin. Midnights are taken in the
// location of DomainMin.
func (s Time) DayTicks(every int) []time.Time {
	if every < 1 {
		every = 1
	}
	if s.DomainMax.Before(s.DomainMin) {
		return nil
	}
	lo := s.DomainMin
	t := time.Date(lo.Year(), lo.Month(), lo.Day(), 0, 0, 0, 0, lo.Location())
	if t.Before(lo) {
		t = t.AddDate(0, 0, 1)
	}

	var ticks []time.Time
	for !t.After(s.DomainMax) {
		ticks = append(ticks, t)
		t = t.AddDate(0, 0, every)
	}
	return ticks
}

// AutoDayTicks picks the smallest day step that yields at most maxTicks
// ticks.
func (s Time) AutoDayTicks(maxTicks int) []time.Time {
	maxTicks = max(maxTicks, 1)
	days := int(math.Ceil(s.DomainMax.Sub(s.DomainMin).Hours() / 24))
	every := max(1, int(math.Ceil(float64(days)/float64(maxTicks))))
	return s.DayTicks(every)
}

// Ticks returns about n evenly spaced round values covering the domain,
// using steps of 1, 2, or 5 times a power of ten.
func (s Linear) Ticks(n int) []float64 {
	lo, hi := s.DomainMin, s.DomainMax
	if n < 1 || math.IsNaN(lo) || math.IsNaN(hi) {
		return nil
	}
	if lo == hi {
		return []float64{lo}
	}
	if lo > hi {
		lo, hi = hi, lo
	}

	step := tickStep(lo, hi, n)
	if step == 0 || math.IsInf(step, 0) {
		return nil
	}
	first := math.Ceil(lo / step)
	last := math.Floor(hi / step)

	ticks := make([]float64, 0, int(last-first)+1)
	for i := first; i <= last; i++ {
		ticks = append(ticks, i*step)
	}
	return ticks
}

func tickStep(lo, hi float64, n int) float64 {
	raw := (hi - lo) / float64(n)
	power := math.Pow(10, math.Floor(math.Log10(raw)))
	ratio := raw / power
	switch {
	case ratio >= math.Sqrt(50):
		return power * 10
	case ratio >= math.Sqrt(10):
		return power * 5
	case ratio >= math.Sqrt2:
		return power * 2
	}
	return power
}
