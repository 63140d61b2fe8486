package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/skillgap/internal/ai"
	"github.com/spigell/skillgap/internal/analysis"
	"github.com/spigell/skillgap/internal/document"
	"github.com/spigell/skillgap/internal/logger"
)

const (
	PromptShowReport = "Show report"
	PromptDumpToFile = "Dump report to file"
	PromptAdvise     = "Request AI recommendations"
	PromptExit       = "Exit"

	outputText = "text"
	outputJSON = "json"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowReport, PromptDumpToFile, PromptAdvise, PromptExit},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a resume against a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("resume", "r", "", "resume file (txt, md, pdf or docx)")
	analyzeCmd.Flags().String("job", "", "job description file (txt, md, pdf or docx)")
	analyzeCmd.Flags().String("job-text", "", "job description text")
	analyzeCmd.Flags().StringSlice("resume-skills", nil, "resume skills; skips extraction from the resume")
	analyzeCmd.Flags().StringSlice("job-skills", nil, "required job skills; skips extraction from the job description")
	analyzeCmd.Flags().Float64("similarity-weight", 0, "weight of the text similarity score (default from config, 0.6)")
	analyzeCmd.Flags().Float64("keyword-weight", 0, "weight of the keyword match score (default from config, 0.4)")
	analyzeCmd.Flags().Bool("advise", false, "request AI recommendations (requires ai.enabled)")
	analyzeCmd.Flags().BoolP("auto-approve", "y", false, "print the report without the interactive menu")
	analyzeCmd.Flags().StringP("output", "o", outputText, "report format: text or json")

	analyzeCmd.MarkFlagRequired("resume")
	analyzeCmd.MarkFlagsMutuallyExclusive("job", "job-text")
	analyzeCmd.MarkFlagsOneRequired("job", "job-text")

	viper.BindPFlag("scoring.similarity-weight", analyzeCmd.Flags().Lookup("similarity-weight"))
	viper.BindPFlag("scoring.keyword-weight", analyzeCmd.Flags().Lookup("keyword-weight"))
}

type session struct {
	ctx      context.Context
	analyzer *analysis.Analyzer
	config   *Config
	input    analysis.Input
	report   *analysis.Report
	advisor  ai.Advisor
	output   string
	out      io.Writer
	logger   *zap.Logger
}

func analyze(cmd *cobra.Command) {
	ctx := context.Background()

	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the skillgap analysis", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	output, _ := cmd.Flags().GetString("output")
	if output != outputText && output != outputJSON {
		logger.Fatal("unsupported output format", zap.String("output", output))
	}

	in, err := readInput(cmd, logger)
	if err != nil {
		logger.Fatal("reading input", zap.Error(err))
	}

	s := &session{
		ctx:      ctx,
		analyzer: analysis.New(config.extractor(), config.scoringOptions(), logger),
		config:   config,
		input:    in,
		output:   output,
		out:      os.Stdout,
		logger:   logger,
	}

	s.report, err = s.analyzer.Analyze(ctx, in)
	if err != nil {
		logger.Fatal("analysis failed", zap.Error(err))
	}

	logger.Info("analysis completed",
		zap.String("report_id", s.report.ID.String()),
		zap.Float64("final_score", s.report.Score.FinalScore),
		zap.String("verdict", string(s.report.Verdict)),
		zap.Int("missing_skills", s.report.Gap.MissingCount),
	)

	if advise, _ := cmd.Flags().GetBool("advise"); advise {
		if err := s.advise(); err != nil {
			logger.Warn("skipping AI recommendations", zap.Error(err))
		}
	}

	autoApprove, _ := cmd.Flags().GetBool("auto-approve")
	if autoApprove || !interactive() {
		if err := s.writeReport(); err != nil {
			logger.Fatal("writing report", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := s.handleAction(action); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func (s *session) handleAction(action string) error {
	switch action {
	case PromptShowReport:
		return s.writeReport()
	case PromptDumpToFile:
		filename, err := s.report.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump report to file: %w", err)
		}
		s.logger.Info("dumping report to file", zap.String("filename", filename))
		return nil
	case PromptAdvise:
		if err := s.advise(); err != nil {
			s.logger.Warn("AI recommendations are unavailable", zap.Error(err))
		}
		return nil
	case PromptExit:
		s.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// advise builds the advisor lazily so that runs without --advise never need an API key.
func (s *session) advise() error {
	if !s.config.AI.Enabled {
		return errors.New("ai is disabled, set ai.enabled to true")
	}

	if s.advisor == nil {
		advisor, err := newAdvisor(s.ctx, s.config.AI, s.logger)
		if err != nil {
			return fmt.Errorf("building ai advisor: %w", err)
		}
		s.advisor = advisor
	}

	s.analyzer.Advise(s.ctx, s.advisor, s.report, s.input)
	if s.report.AdviceError != "" {
		return errors.New(s.report.AdviceError)
	}
	return nil
}

func (s *session) writeReport() error {
	if s.output == outputJSON {
		return s.report.WriteJSON(s.out)
	}
	return s.report.WriteText(s.out)
}

func readInput(cmd *cobra.Command, logger *zap.Logger) (analysis.Input, error) {
	var in analysis.Input

	resumePath, _ := cmd.Flags().GetString("resume")
	resume, err := document.Read(resumePath)
	if err != nil {
		return in, fmt.Errorf("resume: %w", err)
	}
	in.ResumeText = resume.Text
	logger.Debug("resume loaded", zap.String("path", resume.Path), zap.String("mime", resume.MIME), zap.Int("chars", len(resume.Text)))

	if jobText, _ := cmd.Flags().GetString("job-text"); strings.TrimSpace(jobText) != "" {
		in.JobText = jobText
	} else {
		jobPath, _ := cmd.Flags().GetString("job")
		job, err := document.Read(jobPath)
		if err != nil {
			return in, fmt.Errorf("job description: %w", err)
		}
		in.JobText = job.Text
		logger.Debug("job description loaded", zap.String("path", job.Path), zap.String("mime", job.MIME), zap.Int("chars", len(job.Text)))
	}

	if cmd.Flags().Changed("resume-skills") {
		in.ResumeSkills, _ = cmd.Flags().GetStringSlice("resume-skills")
		in.ResumeSkills = nonNilSkills(in.ResumeSkills)
	}
	if cmd.Flags().Changed("job-skills") {
		in.JobSkills, _ = cmd.Flags().GetStringSlice("job-skills")
		in.JobSkills = nonNilSkills(in.JobSkills)
	}

	return in, nil
}

// nonNilSkills keeps an explicitly empty flag from falling back to extraction.
func nonNilSkills(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func newLogger() *zap.Logger {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}

func interactive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
