// Package selection builds the hiring slate: one pick per category, made in a
// single forward pass over the categories.
package selection

import (
	"time"

	"github.com/spigell/hiring-slate/internal/candidate"
	"github.com/spigell/hiring-slate/internal/utils"
	"github.com/spigell/hiring-slate/internal/profile"
	"github.com/spigell/hiring-slate/internal/scoring"
)

// diversityTolerance is the share of the top score an alternative must reach
// to replace the top pick.
const diversityTolerance = 0.98

// LocationCounts holds how many picks so far came from each location.
type LocationCounts map[string]int

// With returns a copy of lc with location counted once more.
func (lc LocationCounts) With(location string) LocationCounts {
	next := make(LocationCounts, len(lc)+1)
	for k, v := range lc {
		next[k] = v
	}
	next[location]++
	return next
}

// Choice is the pick made for one category.
type Choice struct {
	Row scoring.EvaluationRow
	// Nudged is set when the diversity nudge replaced the top-ranked row.
	Nudged bool
}

// Result is the slate in category order plus every category's full ranking.
type Result struct {
	Selected   []scoring.EvaluationRow                      `json:"selected"`
	ByCategory map[profile.Category][]scoring.EvaluationRow `json:"by_category"`
	Nudged     []profile.Category                           `json:"nudged,omitempty"`
}

// SelectTeam scores every category independently and picks one row per
// category. The same candidate may win several categories.
func SelectTeam(candidates []*candidate.Candidate, weights scoring.Weights, diversity bool) Result {
	categories := profile.Categories()

	result := Result{
		Selected:   make([]scoring.EvaluationRow, 0, len(categories)),
		ByCategory: make(map[profile.Category][]scoring.EvaluationRow, len(categories)),
	}

	for _, c := range categories {
		result.ByCategory[c] = scoring.ScoreCategory(candidates, c, weights)
	}

	counts := LocationCounts{}
	for _, c := range categories {
		choice, next, ok := Pick(result.ByCategory[c], counts, diversity)
		if !ok {
			continue
		}

		counts = next
		result.Selected = append(result.Selected, choice.Row)
		if choice.Nudged {
			result.Nudged = append(result.Nudged, c)
		}
	}

	return result
}

// Pick is one step of the selection fold. Given a category ranking and the
// location counts of the picks made before it, it returns the choice and the
// counts including that choice. ok is false for an empty ranking, in which
// case counts is returned unchanged.
//
// Without diversity the top-ranked row wins. With diversity the first row in
// ranked order that scores at least 98% of the top row, comes from another
// location and whose location was picked no more often than the top row's
// location wins instead.
func Pick(ranking []scoring.EvaluationRow, counts LocationCounts, diversity bool) (choice Choice, next LocationCounts, ok bool) {
	if len(ranking) == 0 {
		return Choice{}, counts, false
	}

	choice = Choice{Row: ranking[0]}

	if diversity && len(ranking) > 1 {
		if alt, found := alternative(ranking, counts); found {
			choice = Choice{Row: alt, Nudged: true}
		}
	}

	return choice, counts.With(choice.Row.Location), true
}

func alternative(ranking []scoring.EvaluationRow, counts LocationCounts) (scoring.EvaluationRow, bool) {
	top := ranking[0]
	threshold := top.Score * diversityTolerance
	limit := counts[top.Location]

	for _, row := range ranking {
		if row.Score >= threshold && row.Location != top.Location && counts[row.Location] <= limit {
			return row, true
		}
	}

	return scoring.EvaluationRow{}, false
}

// TotalCost sums the salaries of the slate. Absent salaries count as zero.
func (r Result) TotalCost() int {
	total := 0
	for _, row := range r.Selected {
		if row.Salary.Valid {
			total += row.Salary.Amount
		}
	}
	return total
}

// Top returns at most n leading rows of the ranking of c.
func (r Result) Top(c profile.Category, n int) []scoring.EvaluationRow {
	ranking := r.ByCategory[c]
	if n < 0 {
		n = 0
	}
	if n > len(ranking) {
		n = len(ranking)
	}
	return ranking[:n]
}

// ToExcluded lists the slate picks for an exclude file. Picks without an email
// are skipped and a candidate picked for several categories is listed once.
func (r Result) ToExcluded(at time.Time) *candidate.ExcludedCandidates {
	excluded := &candidate.ExcludedCandidates{}
	seen := make(map[string]struct{}, len(r.Selected))

	for _, row := range r.Selected {
		email := utils.Normalize(row.Email)
		if email == "" {
			continue
		}
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}

		excluded.Items = append(excluded.Items, &candidate.ExcludedCandidate{
			Email:      row.Email,
			Name:       row.Name,
			Category:   row.Category.String(),
			ExcludedAt: at,
		})
	}

	return excluded
}
