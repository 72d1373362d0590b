// Package candidate holds the applicant records the slate is built from,
// the tolerant decoding of raw input into them and the salary parser.
package candidate

import (
	"encoding/json"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// FullTimeKey is the salary-expectation entry used for scoring.
const FullTimeKey = "full-time"

// Candidate is a single applicant record. Every field is optional; keys the
// model does not know about are kept in Extra.
type Candidate struct {
	Name              string           `mapstructure:"name" json:"name,omitempty"`
	Email             string           `mapstructure:"email" json:"email,omitempty"`
	Location          string           `mapstructure:"location" json:"location,omitempty"`
	SalaryExpectation map[string]any   `mapstructure:"annual_salary_expectation" json:"annual_salary_expectation,omitempty"`
	Skills            []string         `mapstructure:"skills" json:"skills,omitempty"`
	WorkExperiences   []WorkExperience `mapstructure:"work_experiences" json:"work_experiences,omitempty"`

	Extra map[string]any `mapstructure:",remain" json:"-"`

	// position is the 1-based place of the record in the parsed input.
	position int
}

// Position returns the 1-based place of the record in the collection it was
// parsed from. Records built in code have no position.
func (c *Candidate) Position() (int, bool) {
	return c.position, c.position > 0
}

// WorkExperience is one entry of a candidate's work history.
type WorkExperience struct {
	RoleName string `mapstructure:"roleName" json:"roleName,omitempty"`

	Extra map[string]any `mapstructure:",remain" json:"-"`
}

// Decode converts a raw JSON object into a Candidate. Values of an
// unexpected shape (an object where text is expected, a scalar where a list
// is expected and so on) decode to the zero value instead of failing.
func Decode(raw map[string]any) (*Candidate, error) {
	var c Candidate

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.DecodeHookFuncType(lenientHook),
		WeaklyTypedInput: true,
		Result:           &c,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, err
	}

	return &c, nil
}

func lenientHook(from, to reflect.Type, data any) (any, error) {
	switch to.Kind() {
	case reflect.String:
		switch from.Kind() {
		case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
			return "", nil
		}
	case reflect.Map, reflect.Struct:
		if from.Kind() != reflect.Map {
			return map[string]any{}, nil
		}
	case reflect.Slice:
		if from.Kind() != reflect.Slice && from.Kind() != reflect.Array {
			return reflect.Zero(to).Interface(), nil
		}
	}

	return data, nil
}

// MarshalJSON writes the known fields merged with Extra so a record
// round-trips without losing unknown keys.
func (c Candidate) MarshalJSON() ([]byte, error) {
	type plain Candidate
	return marshalWithExtra(plain(c), c.Extra)
}

// MarshalJSON writes the known fields merged with Extra.
func (w WorkExperience) MarshalJSON() ([]byte, error) {
	type plain WorkExperience
	return marshalWithExtra(plain(w), w.Extra)
}

func marshalWithExtra(known any, extra map[string]any) ([]byte, error) {
	data, err := json.Marshal(known)
	if err != nil {
		return nil, err
	}

	if len(extra) == 0 {
		return data, nil
	}

	merged := make(map[string]any, len(extra))
	for k, v := range extra {
		merged[k] = v
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		merged[k] = v
	}

	return json.Marshal(merged)
}
