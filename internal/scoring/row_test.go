package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spigell/hiring-slate/internal/candidate"
)

func TestLess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b EvaluationRow
		want bool
	}{
		{
			name: "higher score first",
			a:    EvaluationRow{Score: 0.9, Salary: candidate.Some(90)},
			b:    EvaluationRow{Score: 0.8, Salary: candidate.Some(10)},
			want: true,
		},
		{
			name: "equal score lower salary first",
			a:    EvaluationRow{Score: 0.8, Salary: candidate.Some(50000)},
			b:    EvaluationRow{Score: 0.8, Salary: candidate.Some(100000)},
			want: true,
		},
		{
			name: "equal score higher salary second",
			a:    EvaluationRow{Score: 0.8, Salary: candidate.Some(100000)},
			b:    EvaluationRow{Score: 0.8, Salary: candidate.Some(50000)},
			want: false,
		},
		{
			name: "missing salary sorts last",
			a:    EvaluationRow{Score: 0.8, Salary: candidate.Some(1_000_000)},
			b:    EvaluationRow{Score: 0.8},
			want: true,
		},
		{
			name: "missing salary after present",
			a:    EvaluationRow{Score: 0.8},
			b:    EvaluationRow{Score: 0.8, Salary: candidate.Some(1)},
			want: false,
		},
		{
			name: "equal score and salary more skills first",
			a:    EvaluationRow{Score: 0.8, Salary: candidate.Some(10), SkillHits: 3},
			b:    EvaluationRow{Score: 0.8, Salary: candidate.Some(10), SkillHits: 1},
			want: true,
		},
		{
			name: "both salaries missing more skills first",
			a:    EvaluationRow{Score: 0.8, SkillHits: 2},
			b:    EvaluationRow{Score: 0.8, SkillHits: 1},
			want: true,
		},
		{
			name: "complete tie is not less",
			a:    EvaluationRow{Score: 0.8, Salary: candidate.Some(10), SkillHits: 1},
			b:    EvaluationRow{Score: 0.8, Salary: candidate.Some(10), SkillHits: 1},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Less(tt.a, tt.b))
		})
	}
}
