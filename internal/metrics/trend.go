package metrics

import "github.com/shopspring/decimal"

type TrendDelta struct {
	Field    Field   `json:"field"`
	Current  int64   `json:"current"`
	Previous int64   `json:"previous"`
	Percent  float64 `json:"percent"`
}

// ComputeTrend returns the percentage change of every counter, in field order.
func ComputeTrend(current, previous Snapshot) []TrendDelta {
	deltas := make([]TrendDelta, 0, len(Fields))
	for _, f := range Fields {
		deltas = append(deltas, TrendDelta{
			Field:    f,
			Current:  current.Get(f),
			Previous: previous.Get(f),
			Percent:  percentChange(current.Get(f), previous.Get(f)),
		})
	}
	return deltas
}

func percentChange(current, previous int64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	pct := decimal.NewFromInt(current-previous).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(previous), 2)
	return pct.InexactFloat64()
}
