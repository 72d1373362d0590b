// Package matching counts how well a candidate's history and skills match a
// category's keyword profile.
package matching

import (
	"strings"

	"github.com/spigell/hiring-slate/internal/candidate"
	"github.com/spigell/hiring-slate/internal/utils"
)

// ExperienceHits returns the number of work-experience entries whose
// normalized role title contains at least one normalized keyword. Entries
// without a title never match.
func ExperienceHits(c *candidate.Candidate, keywords []string) int {
	if c == nil {
		return 0
	}

	keywords = utils.NormalizeAll(keywords)

	hits := 0
	for _, experience := range c.WorkExperiences {
		role := utils.Normalize(experience.RoleName)
		if role == "" {
			continue
		}

		for _, keyword := range keywords {
			if strings.Contains(role, keyword) {
				hits++
				break
			}
		}
	}

	return hits
}

// SkillHits returns the number of keywords matched by at least one candidate
// skill, either exactly or as a substring. Skills and keywords are compared
// in normalized form; empty skills are ignored.
func SkillHits(c *candidate.Candidate, keywords []string) int {
	if c == nil {
		return 0
	}

	skills := make([]string, 0, len(c.Skills))
	for _, skill := range c.Skills {
		if normalized := utils.Normalize(skill); normalized != "" {
			skills = append(skills, normalized)
		}
	}

	hits := 0
	for _, keyword := range utils.NormalizeAll(keywords) {
		for _, skill := range skills {
			if skill == keyword || strings.Contains(skill, keyword) {
				hits++
				break
			}
		}
	}

	return hits
}
