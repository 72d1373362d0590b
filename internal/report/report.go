// Package report renders a selection result for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spigell/hiring-slate/internal/profile"
	"github.com/spigell/hiring-slate/internal/scoring"
	"github.com/spigell/hiring-slate/internal/selection"
)

// DefaultTop is how many rows of every ranking the transparency view shows.
const DefaultTop = 3

type Options struct {
	Top       int
	Diversity bool
}

// Render writes the slate, its total cost and the leading rows of every
// category ranking. Categories without candidates are listed too.
func Render(w io.Writer, result selection.Result, opts Options) error {
	top := opts.Top
	if top <= 0 {
		top = DefaultTop
	}

	var b strings.Builder
	if err := renderSlate(&b, result, opts.Diversity); err != nil {
		return err
	}

	b.WriteString("\n")
	if err := renderRankings(&b, result, top); err != nil {
		return err
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func renderSlate(w io.Writer, result selection.Result, diversity bool) error {
	fmt.Fprintf(w, "Hiring slate (diversity nudge: %s)\n", onOff(diversity))

	if len(result.Selected) == 0 {
		fmt.Fprintln(w, "  no category has a matching candidate")
	} else {
		nudged := make(map[profile.Category]bool, len(result.Nudged))
		for _, c := range result.Nudged {
			nudged[c] = true
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, row := range result.Selected {
			mark := ""
			if nudged[row.Category] {
				mark = "nudged"
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%.3f\t%s\n",
				row.Category, row.Name, location(row), FormatCurrency(row.Salary), row.Score, mark)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "Total cost: %s\n", FormatUSD(result.TotalCost()))
	return nil
}

func renderRankings(w io.Writer, result selection.Result, top int) error {
	fmt.Fprintf(w, "Top %d per category\n", top)

	for _, c := range profile.Categories() {
		fmt.Fprintf(w, "%s\n", c)

		rows := result.Top(c, top)
		if len(rows) == 0 {
			fmt.Fprintln(w, "  no matching candidates")
			continue
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for i, row := range rows {
			fmt.Fprintf(tw, "  %d.\t%s\t%s\t%s\texp %d\tskills %d\t%.3f\n",
				i+1, row.Name, location(row), FormatCurrency(row.Salary), row.ExperienceHits, row.SkillHits, row.Score)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	return nil
}

func location(row scoring.EvaluationRow) string {
	if strings.TrimSpace(row.Location) == "" {
		return "-"
	}
	return row.Location
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
