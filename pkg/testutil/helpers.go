// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/finance-calculators/pkg/compound"
)

// FindPeriod finds the schedule row for year in the periods slice.
// Returns a pointer to the period if found, nil otherwise.
func FindPeriod(periods []compound.Period, year int) *compound.Period {
	for i := range periods {
		if periods[i].Year == year {
			return &periods[i]
		}
	}
	return nil
}
