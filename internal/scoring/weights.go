// Package scoring ranks candidates for a single category.
package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidWeights is returned by Weights.Validate.
var ErrInvalidWeights = errors.New("invalid weights")

var validate = validator.New()

// Weights balances the experience, skills and salary sub-scores. Any
// non-negative values are accepted; they are normalized before use.
type Weights struct {
	Experience float64 `mapstructure:"experience" json:"experience" yaml:"experience" validate:"gte=0"`
	Skills     float64 `mapstructure:"skills" json:"skills" yaml:"skills" validate:"gte=0"`
	Salary     float64 `mapstructure:"salary" json:"salary" yaml:"salary" validate:"gte=0"`
}

// DefaultWeights returns the weights used when nothing is configured.
func DefaultWeights() Weights {
	return Weights{Experience: 0.45, Skills: 0.35, Salary: 0.20}
}

// Validate rejects negative and non-finite weights.
func (w Weights) Validate() error {
	for _, v := range []float64{w.Experience, w.Skills, w.Salary} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: weights must be finite numbers", ErrInvalidWeights)
		}
	}

	if err := validate.Struct(w); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWeights, err)
	}

	return nil
}

// Normalize scales the weights so they sum to 1. When all of them are zero
// every factor gets an equal third.
func (w Weights) Normalize() Weights {
	total := w.Experience + w.Skills + w.Salary
	if total == 0 {
		return Weights{Experience: 1.0 / 3, Skills: 1.0 / 3, Salary: 1.0 / 3}
	}

	return Weights{
		Experience: w.Experience / total,
		Skills:     w.Skills / total,
		Salary:     w.Salary / total,
	}
}
