package generator

import (
	"math"
	"math/rand"
	"time"
)

func pick[T any](rng *rand.Rand, s []T) T {
	return s[rng.Intn(len(s))]
}

func (p *Pipeline) uniform(lo, hi float64) float64 {
	return lo + p.rng.Float64()*(hi-lo)
}

// dateBetween draws a day uniformly from [start, end], whole days only.
func (p *Pipeline) dateBetween(start, end time.Time) time.Time {
	days := int(end.Sub(start).Hours() / 24)
	return start.AddDate(0, 0, p.rng.Intn(days+1))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
