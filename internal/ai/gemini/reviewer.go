package gemini

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/hiring-slate/internal/ai"
	"github.com/spigell/hiring-slate/internal/candidate"
	"github.com/spigell/hiring-slate/internal/profile"
	"github.com/spigell/hiring-slate/internal/selection"
	"github.com/spigell/hiring-slate/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

//go:embed prompt.md
var systemPrompt string

const (
	defaultMaxLogLength = 200
	alternativesDepth   = 3
)

// Reviewer asks Gemini for a short narrative on a computed slate.
type Reviewer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

var _ ai.Reviewer = (*Reviewer)(nil)

func NewReviewer(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Reviewer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Reviewer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

type pickPayload struct {
	Category       string  `json:"category"`
	Name           string  `json:"name"`
	Location       string  `json:"location"`
	SalaryUSD      *int    `json:"salary_usd"`
	ExperienceHits int     `json:"experience_hits"`
	SkillHits      int     `json:"skill_hits"`
	Score          float64 `json:"score"`
	Nudged         bool    `json:"nudged,omitempty"`
}

type reviewPayload struct {
	Slate        []pickPayload            `json:"slate"`
	Alternatives map[string][]pickPayload `json:"alternatives"`
}

func (r *Reviewer) Review(ctx context.Context, result selection.Result) (*ai.Review, error) {
	if len(result.Selected) == 0 {
		return nil, errors.New("slate is empty")
	}

	message, err := json.MarshalIndent(buildPayload(result), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal slate payload: %w", err)
	}

	r.logger.Debug("gemini generate content request",
		zap.Int("slate_size", len(result.Selected)),
		zap.Int("prompt_length", utf8.RuneCount(message)),
		zap.String("prompt_preview", utils.TruncateForLog(string(message), r.maxLogLen)),
	)

	raw, err := r.generator.GenerateContent(ctx, systemPrompt, string(message))
	if err != nil {
		return nil, err
	}

	r.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, r.maxLogLen)),
	)

	review, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	review.Raw = raw
	return review, nil
}

func buildPayload(result selection.Result) reviewPayload {
	nudged := make(map[profile.Category]bool, len(result.Nudged))
	for _, c := range result.Nudged {
		nudged[c] = true
	}

	payload := reviewPayload{
		Slate:        make([]pickPayload, 0, len(result.Selected)),
		Alternatives: make(map[string][]pickPayload),
	}

	for _, row := range result.Selected {
		pick := toPick(row.Category, row.Name, row.Location, row.Salary, row.ExperienceHits, row.SkillHits, row.Score)
		pick.Nudged = nudged[row.Category]
		payload.Slate = append(payload.Slate, pick)

		top := result.Top(row.Category, alternativesDepth)
		alternatives := make([]pickPayload, 0, len(top))
		for _, alt := range top {
			alternatives = append(alternatives, toPick(alt.Category, alt.Name, alt.Location, alt.Salary, alt.ExperienceHits, alt.SkillHits, alt.Score))
		}
		payload.Alternatives[row.Category.String()] = alternatives
	}

	return payload
}

func toPick(c profile.Category, name, location string, salary candidate.Salary, experienceHits, skillHits int, score float64) pickPayload {
	pick := pickPayload{
		Category:       c.String(),
		Name:           name,
		Location:       location,
		ExperienceHits: experienceHits,
		SkillHits:      skillHits,
		Score:          score,
	}
	if salary.Valid {
		amount := salary.Amount
		pick.SalaryUSD = &amount
	}
	return pick
}

func parseResponse(raw string) (*ai.Review, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	review := &ai.Review{Summary: coerceString(data["summary"])}

	items, _ := data["notes"].([]any)
	for _, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}

		note := ai.Note{
			Category:  coerceString(fields["category"]),
			Candidate: coerceString(fields["candidate"]),
			Note:      coerceString(fields["note"]),
		}
		if note.Note == "" {
			continue
		}
		review.Notes = append(review.Notes, note)
	}

	if review.Summary == "" && len(review.Notes) == 0 {
		return nil, errors.New("gemini response has neither summary nor notes")
	}

	return review, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
