package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"AviatorStats/internal/model"
)

// Summary describes the multiplier distribution of a set of rounds.
type Summary struct {
	Count     int
	Crashed   int
	CrashRate float64 // 0.0 ~ 1.0
	Mean      float64
	StdDev    float64
	Median    float64
	Max       float64
}

// Summarize computes a Summary over records. An empty input yields the zero value.
func Summarize(records []model.RoundRecord) Summary {
	if len(records) == 0 {
		return Summary{}
	}

	mults := make([]float64, len(records))
	s := Summary{Count: len(records)}
	for i, r := range records {
		mults[i] = r.Multiplier
		if r.Status == model.StatusCrashed {
			s.Crashed++
		}
		if r.Multiplier > s.Max {
			s.Max = r.Multiplier
		}
	}
	s.CrashRate = float64(s.Crashed) / float64(s.Count)

	s.Mean, s.StdDev = stat.MeanStdDev(mults, nil)
	if len(mults) == 1 {
		s.StdDev = 0
	}
	sort.Float64s(mults)
	s.Median = stat.Quantile(0.5, stat.Empirical, mults, nil)
	return s
}
