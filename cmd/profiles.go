package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/spigell/hiring-slate/internal/profile"
)

type categoryProfile struct {
	Category        string `yaml:"category"`
	profile.Profile `yaml:",inline"`
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Print the keyword profile of every category",
	RunE: func(cmd *cobra.Command, _ []string) error {
		name, _ := cmd.Flags().GetString("category")
		return writeProfiles(cmd.OutOrStdout(), name)
	},
}

func init() {
	rootCmd.AddCommand(profilesCmd)

	profilesCmd.Flags().StringP("category", "c", "", "print only the category with this name (case insensitive)")
}

func writeProfiles(w io.Writer, name string) error {
	name = strings.TrimSpace(name)

	out := make([]categoryProfile, 0)
	for _, c := range profile.Categories() {
		if name != "" && !strings.EqualFold(name, c.String()) {
			continue
		}

		p, _ := profile.Lookup(c)
		out = append(out, categoryProfile{Category: c.String(), Profile: p})
	}

	if len(out) == 0 {
		return fmt.Errorf("unknown category %q", name)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}
	return enc.Close()
}
