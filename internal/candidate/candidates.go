package candidate

import "github.com/spigell/hiring-slate/internal/utils"

// Candidates is an ordered candidate collection. Order is significant: it
// breaks ranking ties during scoring.
type Candidates struct {
	Items []*Candidate
}

func (c *Candidates) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}

// Exclude returns a new collection without the candidates whose email is
// listed in emails, along with the removed emails. The receiver is not
// modified and the relative order of the remaining candidates is kept.
func (c *Candidates) Exclude(emails []string) (*Candidates, []string) {
	targets := make(map[string]struct{}, len(emails))
	for _, email := range emails {
		if normalized := utils.Normalize(email); normalized != "" {
			targets[normalized] = struct{}{}
		}
	}

	kept := make([]*Candidate, 0, c.Len())
	var excluded []string
	for _, item := range c.items() {
		if item != nil {
			if _, ok := targets[utils.Normalize(item.Email)]; ok {
				excluded = append(excluded, item.Email)
				continue
			}
		}
		kept = append(kept, item)
	}

	return &Candidates{Items: kept}, excluded
}

func (c *Candidates) items() []*Candidate {
	if c == nil {
		return nil
	}
	return c.Items
}

// ReportByLocation groups candidate display names by raw location.
func (c *Candidates) ReportByLocation() map[string][]string {
	report := make(map[string][]string)
	for _, item := range c.Items {
		if item == nil {
			continue
		}
		report[item.Location] = append(report[item.Location], item.Name)
	}
	return report
}
