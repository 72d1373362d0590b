package scoring

import (
	"math"

	"github.com/spigell/hiring-slate/internal/candidate"
	"github.com/spigell/hiring-slate/internal/profile"
)

// EvaluationRow is the result of scoring one candidate against one category.
// Rows only exist for candidates with at least one experience hit.
type EvaluationRow struct {
	// Index is the position of the candidate in the scored list.
	Index          int              `json:"index"`
	Category       profile.Category `json:"category"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Location       string           `json:"location"`
	Salary         candidate.Salary `json:"salary"`
	ExperienceHits int              `json:"experience_hits"`
	SkillHits      int              `json:"skill_hits"`
	Score          float64          `json:"score"`

	Candidate *candidate.Candidate `json:"raw,omitempty"`
}

// Less reports whether a ranks before b: higher score first, then lower
// salary with absent salaries last, then more skill hits.
func Less(a, b EvaluationRow) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}

	as, bs := salaryKey(a.Salary), salaryKey(b.Salary)
	if as != bs {
		return as < bs
	}

	return a.SkillHits > b.SkillHits
}

func salaryKey(s candidate.Salary) float64 {
	if !s.Valid {
		return math.Inf(1)
	}
	return float64(s.Amount)
}
