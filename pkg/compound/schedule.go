package compound

// Period is one year of the compounding schedule.
type Period struct {
	Year         int     `json:"year"`
	StartBalance float64 `json:"startBalance"`
	Growth       float64 `json:"growth"`
	Contribution float64 `json:"contribution"`
	EndBalance   float64 `json:"endBalance"`
}

// Schedule walks the same iteration as Compute and records every period.
// The EndBalance of the last period equals Compute for the same arguments.
// Zero years yields an empty schedule.
func Schedule(principal, annualContribution float64, numberOfYears int, interestRate float64) []Period {
	if numberOfYears <= 0 {
		return nil
	}

	periods := make([]Period, 0, numberOfYears)
	balance := principal
	growth := 1 + interestRate
	for year := 1; year <= numberOfYears; year++ {
		start := balance
		balance *= growth
		grown := balance
		balance += annualContribution
		periods = append(periods, Period{
			Year:         year,
			StartBalance: start,
			Growth:       grown - start,
			Contribution: annualContribution,
			EndBalance:   balance,
		})
	}
	return periods
}

// TotalContributions sums the principal and every contribution in the schedule.
func TotalContributions(principal float64, periods []Period) float64 {
	total := principal
	for _, p := range periods {
		total += p.Contribution
	}
	return total
}

// TotalGrowth sums the interest earned across the schedule.
func TotalGrowth(periods []Period) float64 {
	total := 0.0
	for _, p := range periods {
		total += p.Growth
	}
	return total
}
