package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hiring-slate/internal/ai"
	"github.com/spigell/hiring-slate/internal/ai/gemini"
	"github.com/spigell/hiring-slate/internal/candidate"
	"github.com/spigell/hiring-slate/internal/export"
	"github.com/spigell/hiring-slate/internal/filtering"
	"github.com/spigell/hiring-slate/internal/logger"
	"github.com/spigell/hiring-slate/internal/profile"
	"github.com/spigell/hiring-slate/internal/report"
	"github.com/spigell/hiring-slate/internal/scoring"
	"github.com/spigell/hiring-slate/internal/secrets"
	"github.com/spigell/hiring-slate/internal/selection"
)

const (
	PromptExportCSV           = "Export slate to CSV"
	PromptShowRankings        = "Show rankings"
	PromptReportByLocation    = "Report by location"
	PromptToggleDiversity     = "Toggle diversity nudge"
	PromptAppendToExcludeFile = "Append slate to exclude file"
	PromptResultToFile        = "Dump result to file"
	PromptAIReview            = "Review slate with AI"
	PromptExit                = "Exit"
)

var errExit = errors.New("exit requested")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Rank the candidates and build the hiring slate",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	defaults := scoring.DefaultWeights()

	runCmd.Flags().StringP("input", "i", "", "candidates JSON file or http(s) URL")
	runCmd.Flags().StringP("output", "o", export.DefaultCSVFile, "CSV file the slate is exported to")
	runCmd.Flags().StringP("exclude-file", "e", "", "special file with candidates to exclude. Default is unset.")
	runCmd.Flags().Bool("diversity", true, "prefer a close-scoring candidate from a less represented location")
	runCmd.Flags().Int("top", report.DefaultTop, "rows of every category ranking shown in the report")
	runCmd.Flags().Float64("weight-experience", defaults.Experience, "weight of the experience sub-score")
	runCmd.Flags().Float64("weight-skills", defaults.Skills, "weight of the skills sub-score")
	runCmd.Flags().Float64("weight-salary", defaults.Salary, "weight of the salary sub-score")
	runCmd.Flags().BoolP("auto-approve", "y", false, "export the slate without asking")

	for key, flag := range map[string]string{
		"input":              "input",
		"output":             "output",
		"exclude-file":       "exclude-file",
		"diversity":          "diversity",
		"top":                "top",
		"weights.experience": "weight-experience",
		"weights.skills":     "weight-skills",
		"weights.salary":     "weight-salary",
	} {
		viper.BindPFlag(key, runCmd.Flags().Lookup(flag))
	}
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil {
		logger.Fatal("config is required")
	}

	logger.Info("starting the hiring-slate", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if err := config.Weights.Validate(); err != nil {
		logger.Fatal("checking weights",
			zap.Error(err),
			zap.String("hint", "weights must be finite non-negative numbers"),
		)
	}

	loader := candidate.NewLoader(logger)
	if config.UserAgent != "" {
		loader.UserAgent = config.UserAgent
	}

	candidates, err := loader.Load(ctx, config.Input)
	if err != nil {
		var inputErr *candidate.InputError
		if errors.As(err, &inputErr) {
			logger.Fatal("input is not usable", zap.String("reason", inputErr.Error()))
		}
		logger.Fatal("loading candidates",
			zap.Error(err),
			zap.String("hint", "set --input, SLATE_INPUT or the 'input' key in the configuration file"),
		)
	}

	logger.Info("candidates loaded", zap.Int("count", candidates.Len()))

	filters := prepareFilters(config, logger)

	candidates, err = filters.RunFilters(ctx, candidates)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	if candidates.Len() == 0 {
		logger.Warn("no candidates left after filters, the slate will be empty")
	}

	s := &session{
		config:     config,
		logger:     logger,
		candidates: candidates,
		weights:    config.Weights,
		diversity:  config.Diversity,
		reviewer:   prepareReviewer(ctx, config.AI, logger),
	}

	s.evaluate()

	if err := s.render(); err != nil {
		logger.Fatal("rendering the report", zap.Error(err))
	}

	if cmd.Flag("auto-approve").Value.String() == "true" {
		if err := s.handleAction(ctx, PromptExportCSV); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		return
	}

	for {
		prompt := promptui.Select{
			Label: "Procced?",
			Items: s.menu(),
		}

		_, action, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := s.handleAction(ctx, action); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

// prepareFilters builds the pre-scoring filters and disables the ones the
// configuration leaves nothing to do for.
func prepareFilters(config *Config, l *zap.Logger) *filtering.Filtering {
	filters := filtering.New([]filtering.Filter{
		filtering.NewExcludedEmails(config.excludedEmails(), l),
		filtering.NewExcludeFile(config.ExcludeFile, l),
	}, l)

	if len(config.excludedEmails()) == 0 {
		filters.DisableByName("excluded_emails", "exclude.emails is empty")
	}
	if strings.TrimSpace(config.ExcludeFile) == "" {
		filters.DisableByName("exclude_file", "exclude-file is not set")
	}

	for _, status := range filters.Describe() {
		l.Info("filter configured",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	return filters
}

// session holds the state of one interactive run.
type session struct {
	config     *Config
	logger     *zap.Logger
	candidates *candidate.Candidates
	weights    scoring.Weights
	diversity  bool
	result     selection.Result
	reviewer   ai.Reviewer
}

func (s *session) evaluate() {
	s.result = selection.SelectTeam(s.candidates.Items, s.weights, s.diversity)

	for _, c := range profile.Categories() {
		s.logger.Debug("category ranked",
			zap.String(logger.FieldCategory, c.String()),
			zap.Int("ranked", len(s.result.ByCategory[c])),
		)
	}

	nudged := make(map[profile.Category]bool, len(s.result.Nudged))
	for _, c := range s.result.Nudged {
		nudged[c] = true
	}

	for _, row := range s.result.Selected {
		s.logger.Info("candidate picked", logger.PickFields(row, nudged[row.Category])...)
	}

	s.logger.Info("slate is ready",
		zap.Int("size", len(s.result.Selected)),
		zap.Int("total_cost", s.result.TotalCost()),
		zap.Bool("diversity", s.diversity),
	)
}

func (s *session) render() error {
	return report.Render(os.Stdout, s.result, report.Options{
		Top:       s.config.Top,
		Diversity: s.diversity,
	})
}

func (s *session) menu() []string {
	items := []string{
		PromptExportCSV,
		PromptShowRankings,
		PromptReportByLocation,
		PromptToggleDiversity,
	}

	if strings.TrimSpace(s.config.ExcludeFile) != "" && len(s.result.Selected) != 0 {
		items = append(items, PromptAppendToExcludeFile)
	}

	items = append(items, PromptResultToFile)

	if s.reviewer != nil && len(s.result.Selected) != 0 {
		items = append(items, PromptAIReview)
	}

	return append(items, PromptExit)
}

func (s *session) handleAction(ctx context.Context, action string) error {
	switch action {
	case PromptExportCSV:
		if len(s.result.Selected) == 0 {
			s.logger.Info("nothing to export", zap.String("reason", "slate is empty"))
			return nil
		}
		if err := export.WriteCSV(s.config.Output, s.result.Selected); err != nil {
			return err
		}
		s.logger.Info("slate exported", zap.String("filename", s.config.Output), zap.Int("rows", len(s.result.Selected)))
		return nil
	case PromptShowRankings:
		return s.render()
	case PromptReportByLocation:
		pretty, _ := json.MarshalIndent(s.candidates.ReportByLocation(), "", "  ")
		s.logger.Info(string(pretty), zap.Int("candidates count", s.candidates.Len()))
		return nil
	case PromptToggleDiversity:
		s.diversity = !s.diversity
		s.logger.Info("diversity nudge toggled", zap.Bool("diversity", s.diversity))
		s.evaluate()
		return s.render()
	case PromptAppendToExcludeFile:
		return s.appendToExcludeFile()
	case PromptResultToFile:
		filename, err := export.DumpToTmpFile(s.result)
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		s.logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAIReview:
		s.review(ctx)
		return nil
	case PromptExit:
		s.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// appendToExcludeFile records the current picks in the exclude file, drops
// them from the pool and builds a fresh slate from who is left.
func (s *session) appendToExcludeFile() error {
	path := strings.TrimSpace(s.config.ExcludeFile)

	excluded, err := candidate.ReadExcludedFile(path)
	if err != nil {
		return fmt.Errorf("load excluded candidates: %w", err)
	}

	picks := s.result.ToExcluded(time.Now().UTC())
	excluded.Append(picks)

	if err := excluded.ToFile(path); err != nil {
		return fmt.Errorf("write excluded candidates: %w", err)
	}

	left, removed := s.candidates.Exclude(picks.Emails())
	s.candidates = left
	s.logger.Info("appended to exclude file",
		zap.String("filename", path),
		zap.Strings("excluded_candidates", removed),
		zap.Int("candidates_left", left.Len()),
	)

	s.evaluate()
	return s.render()
}

// review never fails the run; a broken provider only costs the note.
func (s *session) review(ctx context.Context) {
	review, err := s.reviewer.Review(ctx, s.result)
	if err != nil {
		s.logger.Warn("AI review failed", zap.Error(err))
		return
	}

	if review.Summary != "" {
		s.logger.Info("AI review", zap.String("summary", review.Summary))
	}
	for _, note := range review.Notes {
		s.logger.Info("AI note",
			zap.String(logger.FieldCategory, note.Category),
			zap.String(logger.FieldCandidate, note.Candidate),
			zap.String("note", note.Note),
		)
	}
}

func prepareReviewer(ctx context.Context, cfg *AIConfig, l *zap.Logger) ai.Reviewer {
	if cfg == nil || !cfg.Enabled {
		return nil
	}

	reviewer, err := newReviewer(ctx, cfg, l)
	if err != nil {
		l.Warn("skipping AI review", zap.Error(err))
		return nil
	}

	return reviewer
}

func newReviewer(ctx context.Context, cfg *AIConfig, l *zap.Logger) (ai.Reviewer, error) {
	if cfg.Gemini == nil {
		cfg.Gemini = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		File:  cfg.Gemini.APIKeyFile,
		Value: cfg.Gemini.APIKey,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries,
		l.With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries)))
	if err != nil {
		return nil, err
	}

	aiLogger := logger.WithFields(l, logger.CommonFields("gemini", generator.Model())...)
	aiLogger.Debug("AI reviewer ready")

	return gemini.NewReviewer(generator, cfg.Gemini.MaxLogLength, aiLogger), nil
}
