package harness

import (
	"github.com/dargueta/squish"
)

// Summary collects the results of one [Harness.Run] and names the algorithm
// with the greatest space savings.
type Summary struct {
	Results          []Result `json:"results" yaml:"results"`
	Best             string   `json:"best" yaml:"best"`
	BestSpaceSavings float64  `json:"best_space_savings" yaml:"best_space_savings"`
}

// Summarize picks the best of `results` by space savings. When two algorithms
// tie, the one that ran first wins.
func Summarize(results []Result) (Summary, error) {
	if len(results) == 0 {
		return Summary{}, squish.ErrInvalidArgument.WithMessage("no results to summarize")
	}

	summary := Summary{
		Results:          results,
		Best:             results[0].Algorithm,
		BestSpaceSavings: results[0].Stats.SpaceSavings,
	}
	for _, result := range results[1:] {
		if result.Stats.SpaceSavings > summary.BestSpaceSavings {
			summary.Best = result.Algorithm
			summary.BestSpaceSavings = result.Stats.SpaceSavings
		}
	}
	return summary, nil
}
