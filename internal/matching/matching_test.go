package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spigell/hiring-slate/internal/candidate"
)

func experiences(roles ...string) []candidate.WorkExperience {
	out := make([]candidate.WorkExperience, 0, len(roles))
	for _, role := range roles {
		out = append(out, candidate.WorkExperience{RoleName: role})
	}
	return out
}

func TestExperienceHitsCountsEntries(t *testing.T) {
	t.Parallel()

	keywords := []string{"Software Engineer", "backend engineer", "full stack developer"}

	tests := []struct {
		name   string
		roles  []string
		expect int
	}{
		{name: "no history", roles: nil, expect: 0},
		{name: "single match", roles: []string{"Senior Software Engineer"}, expect: 1},
		{name: "entry matching several keywords counts once", roles: []string{"Software Engineer / Backend Engineer"}, expect: 1},
		{name: "each matching entry counts", roles: []string{"  SOFTWARE ENGINEER ", "Backend Engineer II", "Chef"}, expect: 2},
		{name: "empty titles contribute nothing", roles: []string{"", "   "}, expect: 0},
		{name: "substring of keyword does not match", roles: []string{"Engineer"}, expect: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := &candidate.Candidate{WorkExperiences: experiences(tt.roles...)}
			assert.Equal(t, tt.expect, ExperienceHits(c, keywords))
		})
	}
}

func TestSkillHitsCountsKeywords(t *testing.T) {
	t.Parallel()

	keywords := []string{"react", "node", "sql", "postgresql", "next js"}

	tests := []struct {
		name   string
		skills []string
		expect int
	}{
		{name: "no skills", skills: nil, expect: 0},
		{name: "exact match", skills: []string{"React"}, expect: 1},
		{name: "substring match", skills: []string{"Node.js"}, expect: 1},
		{name: "one skill can satisfy several keywords", skills: []string{"PostgreSQL"}, expect: 2},
		{name: "several skills for one keyword count once", skills: []string{"react", "React Native", "react-query"}, expect: 1},
		{name: "empty skills ignored", skills: []string{"", "  "}, expect: 0},
		{name: "case and whitespace insensitive", skills: []string{"  NEXT JS  "}, expect: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := &candidate.Candidate{Skills: tt.skills}
			assert.Equal(t, tt.expect, SkillHits(c, keywords))
		})
	}
}

func TestNilCandidate(t *testing.T) {
	assert.Zero(t, ExperienceHits(nil, []string{"x"}))
	assert.Zero(t, SkillHits(nil, []string{"x"}))
}
