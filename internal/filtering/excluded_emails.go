package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hiring-slate/internal/candidate"
)

type excludedEmailsFilter struct {
	emails  []string
	enabled bool
	reason  string
	logger  *zap.Logger
}

// NewExcludedEmails creates a filter that removes candidates by the emails listed in the config.
func NewExcludedEmails(emails []string, logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &excludedEmailsFilter{
		emails:  emails,
		enabled: true,
		logger:  logger,
	}
}

func (f *excludedEmailsFilter) Name() string { return "excluded_emails" }

func (f *excludedEmailsFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *excludedEmailsFilter) IsEnabled() bool { return f.enabled }

func (f *excludedEmailsFilter) Validate() error { return nil }

func (f *excludedEmailsFilter) Apply(_ context.Context, c *candidate.Candidates) (*candidate.Candidates, Step, error) {
	initial := c.Len()
	if len(f.emails) == 0 {
		return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
	}

	left, excluded := c.Exclude(f.emails)
	if len(excluded) > 0 {
		f.logger.Info("excluding candidates by emails",
			zap.Strings("excluded_candidates", excluded),
			zap.Int("candidates_left", left.Len()),
		)
	}

	return left, Step{Initial: initial, Dropped: len(excluded), Left: left.Len()}, nil
}

func (f *excludedEmailsFilter) Status() Status {
	details := map[string]string{}
	if len(f.emails) > 0 {
		details["emails"] = strings.Join(f.emails, ",")
	}
	return Status{Name: f.Name(), Enabled: f.enabled, Reason: f.reason, Details: details}
}
