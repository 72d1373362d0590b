package candidate

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"

	"github.com/spf13/cast"
)

var (
	nonNumeric    = regexp.MustCompile(`[^\d.-]`)
	numericPrefix = regexp.MustCompile(`^-?(?:\d+\.?\d*|\.\d+)`)
)

// Salary is an optional annual salary figure in whole currency units.
// The zero value means "no salary data".
type Salary struct {
	Amount int
	Valid  bool
}

// Some returns a present salary.
func Some(amount int) Salary {
	return Salary{Amount: amount, Valid: true}
}

// String returns the amount, or an empty string when absent.
func (s Salary) String() string {
	if !s.Valid {
		return ""
	}
	return strconv.Itoa(s.Amount)
}

func (s Salary) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Amount)
}

// ParseSalary extracts the full-time salary expectation of c. Everything
// except digits, decimal points and minus signs is stripped from the textual
// form of the value and the leading number of what remains is rounded to
// whole units. Missing or unparseable values yield an absent Salary.
func ParseSalary(c *Candidate) Salary {
	if c == nil || c.SalaryExpectation == nil {
		return Salary{}
	}

	raw, ok := c.SalaryExpectation[FullTimeKey]
	if !ok || raw == nil {
		return Salary{}
	}

	text, err := cast.ToStringE(raw)
	if err != nil {
		return Salary{}
	}

	return parseAmount(text)
}

func parseAmount(text string) Salary {
	stripped := nonNumeric.ReplaceAllString(text, "")

	prefix := numericPrefix.FindString(stripped)
	if prefix == "" {
		return Salary{}
	}

	value, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return Salary{}
	}

	rounded := math.Floor(value + 0.5)
	if rounded >= math.MaxInt64 || rounded <= math.MinInt64 {
		return Salary{}
	}

	return Some(int(rounded))
}
