package engine

import (
	"fmt"
	"sort"
)

// Breakpoint maps every input at or above Threshold to Value, until the next
// breakpoint takes over.
type Breakpoint struct {
	Threshold float64
	Value     float64
}

// GradedSchedule is a stepped lookup table, e.g. a vesting schedule mapping
// years of service to a vested percentage, or a risk band table.
type GradedSchedule struct {
	below       float64
	breakpoints []Breakpoint
}

// NewGradedSchedule builds a table from strictly ascending thresholds. below
// is returned for inputs under the first threshold.
func NewGradedSchedule(below float64, breakpoints ...Breakpoint) (GradedSchedule, error) {
	if len(breakpoints) == 0 {
		return GradedSchedule{}, fmt.Errorf("graded schedule needs at least one breakpoint")
	}
	for i := 1; i < len(breakpoints); i++ {
		if breakpoints[i].Threshold <= breakpoints[i-1].Threshold {
			return GradedSchedule{}, fmt.Errorf("breakpoint thresholds must be strictly ascending at index %d", i)
		}
	}
	return GradedSchedule{
		below:       below,
		breakpoints: append([]Breakpoint(nil), breakpoints...),
	}, nil
}

func mustGradedSchedule(below float64, breakpoints ...Breakpoint) GradedSchedule {
	g, err := NewGradedSchedule(below, breakpoints...)
	if err != nil {
		panic(err)
	}
	return g
}

// Lookup returns the value of the greatest threshold not above x.
func (g GradedSchedule) Lookup(x float64) float64 {
	i := sort.Search(len(g.breakpoints), func(i int) bool {
		return g.breakpoints[i].Threshold > x
	})
	if i == 0 {
		return g.below
	}
	return g.breakpoints[i-1].Value
}

// VestingSchedule is the graded vesting table used by employer-match
// calculators: 33% after one year, 66% after two, fully vested after three.
var VestingSchedule = mustGradedSchedule(0,
	Breakpoint{Threshold: 1, Value: 33},
	Breakpoint{Threshold: 2, Value: 66},
	Breakpoint{Threshold: 3, Value: 100},
)
