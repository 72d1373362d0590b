// Package export writes a slate out of the process: as CSV for spreadsheets
// and as a JSON dump of the whole selection result.
package export

import (
	"fmt"
	"math"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/spigell/hiring-slate/internal/scoring"
)

// DefaultCSVFile is where the slate is exported unless configured otherwise.
const DefaultCSVFile = "hiring_slate.csv"

var csvHeader = []string{
	"Category",
	"Name",
	"Email",
	"Location",
	"SalaryUSD",
	"ExperienceHits",
	"SkillHits",
	"Score",
}

// ToCSV renders rows in the given order. Lines are separated by "\n" with no
// trailing newline, so an empty slate yields the header alone.
func ToCSV(rows []scoring.EvaluationRow) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, csvLine(csvHeader))

	for _, row := range rows {
		lines = append(lines, csvLine([]string{
			row.Category.String(),
			row.Name,
			row.Email,
			row.Location,
			row.Salary.String(),
			strconv.Itoa(row.ExperienceHits),
			strconv.Itoa(row.SkillHits),
			formatScore(row.Score),
		}))
	}

	return strings.Join(lines, "\n")
}

// WriteCSV writes the CSV rendering of rows to path, replacing the file.
func WriteCSV(path string, rows []scoring.EvaluationRow) error {
	if strings.TrimSpace(path) == "" {
		path = DefaultCSVFile
	}

	if err := os.WriteFile(path, []byte(ToCSV(rows)), 0o644); err != nil {
		return fmt.Errorf("write csv %q: %w", path, err)
	}
	return nil
}

// formatScore writes score with three decimals. A value exactly halfway
// between two thousandths is rounded away from zero; strconv alone would round
// it to even.
func formatScore(score float64) string {
	if !halfway(score) {
		return strconv.FormatFloat(score, 'f', 3, 64)
	}

	// score*1000 is exactly n+0.5 here, so the product is representable.
	scaled := score * 1000
	if scaled < 0 {
		return strconv.FormatFloat(math.Floor(scaled)/1000, 'f', 3, 64)
	}
	return strconv.FormatFloat(math.Ceil(scaled)/1000, 'f', 3, 64)
}

// halfway reports whether score*2000 is an odd integer, computed exactly.
func halfway(score float64) bool {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return false
	}

	scaled := new(big.Float).SetPrec(128).SetFloat64(score)
	scaled.Mul(scaled, big.NewFloat(2000))
	if !scaled.IsInt() {
		return false
	}

	n, _ := scaled.Int(nil)
	return n.Bit(0) == 1
}

func csvLine(fields []string) string {
	escaped := make([]string, len(fields))
	for i, field := range fields {
		escaped[i] = escapeCSV(field)
	}
	return strings.Join(escaped, ",")
}

// escapeCSV quotes a field only when it holds a comma, a quote or a newline.
func escapeCSV(value string) string {
	if !strings.ContainsAny(value, ",\"\n") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
