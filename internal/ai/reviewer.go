// Package ai describes the optional narrative review of a computed slate.
// A review never feeds back into scoring or selection.
package ai

import (
	"context"

	"github.com/spigell/hiring-slate/internal/selection"
)

// Note is a short comment on one pick of the slate.
type Note struct {
	Category  string `json:"category"`
	Candidate string `json:"candidate"`
	Note      string `json:"note"`
}

type Review struct {
	Summary string `json:"summary"`
	Notes   []Note `json:"notes"`
	Raw     string `json:"-"`
}

type Reviewer interface {
	Review(ctx context.Context, result selection.Result) (*Review, error)
}
