package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spigell/hiring-slate/internal/candidate"
	"github.com/spigell/hiring-slate/internal/matching"
	"github.com/spigell/hiring-slate/internal/profile"
	"github.com/spigell/hiring-slate/internal/utils"
)

const (
	missingSalaryScore = 0.5
	placeholderName    = "Candidate_%d"
)

// ScoreCategory ranks candidates for category c, best first. Candidates
// without a single matching role title are left out. The weights are
// normalized here, so callers may pass raw values.
func ScoreCategory(candidates []*candidate.Candidate, c profile.Category, weights Weights) []EvaluationRow {
	rows := make([]EvaluationRow, 0)

	p, ok := profile.Lookup(c)
	if !ok {
		return rows
	}

	w := weights.Normalize()
	roleKeywords := utils.NormalizeAll(p.RoleKeywords)
	skillKeywords := utils.NormalizeAll(p.SkillKeywords)

	for i, cand := range candidates {
		experienceHits := matching.ExperienceHits(cand, roleKeywords)
		if experienceHits == 0 {
			continue
		}

		index := sourceIndex(cand, i)
		rows = append(rows, EvaluationRow{
			Index:          index,
			Category:       c,
			Name:           displayName(cand, index),
			Email:          cand.Email,
			Location:       cand.Location,
			Salary:         candidate.ParseSalary(cand),
			ExperienceHits: experienceHits,
			SkillHits:      matching.SkillHits(cand, skillKeywords),
			Candidate:      cand,
		})
	}

	if len(rows) == 0 {
		return rows
	}

	b := boundsOf(rows)
	for i := range rows {
		rows[i].Score = b.score(rows[i], w)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return Less(rows[i], rows[j])
	})

	return rows
}

// sourceIndex is the 0-based place of cand in the input it was parsed from.
// Filters may have dropped earlier records, so the slice index i is only used
// for records that carry no position.
func sourceIndex(cand *candidate.Candidate, i int) int {
	if pos, ok := cand.Position(); ok {
		return pos - 1
	}
	return i
}

// displayName falls back from the name to the local part of the email and
// then to a placeholder built from the 1-based position.
func displayName(c *candidate.Candidate, index int) string {
	if c.Name != "" {
		return c.Name
	}

	if local, _, _ := strings.Cut(c.Email, "@"); local != "" {
		return local
	}

	return fmt.Sprintf(placeholderName, index+1)
}

type bounds struct {
	maxExperience int
	maxSkills     int
	minSalary     int
	salaryRange   int
}

func boundsOf(rows []EvaluationRow) bounds {
	b := bounds{maxExperience: 1, maxSkills: 1}

	minSalary, maxSalary, seen := 0, 1, false
	for _, row := range rows {
		b.maxExperience = max(b.maxExperience, row.ExperienceHits)
		b.maxSkills = max(b.maxSkills, row.SkillHits)

		if !row.Salary.Valid {
			continue
		}
		if !seen {
			minSalary, maxSalary, seen = row.Salary.Amount, row.Salary.Amount, true
			continue
		}
		minSalary = min(minSalary, row.Salary.Amount)
		maxSalary = max(maxSalary, row.Salary.Amount)
	}

	b.minSalary = minSalary
	b.salaryRange = max(1, maxSalary-minSalary)

	return b
}

func (b bounds) salaryScore(s candidate.Salary) float64 {
	if !s.Valid {
		return missingSalaryScore
	}
	return 1 - float64(s.Amount-b.minSalary)/float64(b.salaryRange)
}

func (b bounds) score(row EvaluationRow, w Weights) float64 {
	experience := float64(row.ExperienceHits) / float64(b.maxExperience)
	skills := float64(row.SkillHits) / float64(b.maxSkills)
	salary := b.salaryScore(row.Salary)

	// Conversions keep each product rounded so ties do not depend on FMA.
	return float64(w.Experience*experience) + float64(w.Skills*skills) + float64(w.Salary*salary)
}
