// Package analysis runs the scoring engine over one resume/job pair and
// assembles the report.
package analysis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/skillgap/internal/logger"
	"github.com/spigell/skillgap/internal/scoring"
	"github.com/spigell/skillgap/internal/skills"
)

// Input is one resume/job comparison. When ResumeSkills or JobSkills is nil
// the analyzer extracts them from the corresponding text.
type Input struct {
	ResumeText   string
	JobText      string
	ResumeSkills []string
	JobSkills    []string
	// Weights overrides the analyzer options for this comparison.
	Weights *scoring.Weights
}

type Analyzer struct {
	extractor skills.Extractor
	options   scoring.Options
	logger    *zap.Logger
	now       func() time.Time
}

// New returns an Analyzer. A nil extractor falls back to the default vocabulary.
func New(extractor skills.Extractor, opts scoring.Options, log *zap.Logger) *Analyzer {
	if extractor == nil {
		extractor = skills.DefaultVocabulary()
	}

	return &Analyzer{
		extractor: extractor,
		options:   opts,
		logger:    logger.WithFields(log),
		now:       time.Now,
	}
}

// Options returns the scoring options used by the analyzer.
func (a *Analyzer) Options() scoring.Options { return a.options }

// Analyze scores the input. Similarity, keyword matching and gap analysis run
// concurrently; the combinator waits for the first two. Degenerate text never
// fails the call, the only error is a cancelled context.
func (a *Analyzer) Analyze(ctx context.Context, in Input) (*Report, error) {
	opts := a.options
	if in.Weights != nil {
		opts.Weights = *in.Weights
	}

	resumeSkills := in.ResumeSkills
	if resumeSkills == nil {
		resumeSkills = a.extractor.Extract(in.ResumeText)
	}
	jobSkills := in.JobSkills
	if jobSkills == nil {
		jobSkills = a.extractor.Extract(in.JobText)
	}

	report := &Report{
		ID:           uuid.New(),
		CreatedAt:    a.now().UTC(),
		ResumeSkills: resumeSkills,
		JobSkills:    jobSkills,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Each goroutine writes a distinct field; Wait orders the writes before the reads below.
	g.Go(func() error {
		if err := gCtx.Err(); err != nil {
			return err
		}
		report.Similarity = scoring.Similarity(in.ResumeText, in.JobText, opts)
		return nil
	})
	g.Go(func() error {
		if err := gCtx.Err(); err != nil {
			return err
		}
		report.Keywords = scoring.MatchKeywords(resumeSkills, jobSkills)
		return nil
	})
	g.Go(func() error {
		if err := gCtx.Err(); err != nil {
			return err
		}
		report.Gap = scoring.AnalyzeGap(resumeSkills, jobSkills)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !report.Similarity.Succeeded {
		a.logger.Warn("similarity degraded to zero",
			zap.String("report_id", report.ID.String()),
			zap.String("reason", report.Similarity.FailureReason),
		)
	}

	report.Score = scoring.Combine(report.Similarity.Score, report.Keywords.Score, opts.Weights)
	report.Verdict = VerdictFor(report.Score.FinalScore)

	a.logger.Debug("analysis completed", logger.ReportFields(
		report.ID.String(),
		report.Score.FinalScore,
		report.Similarity.Score,
		report.Keywords.Score,
		report.Gap.GapPercentage,
	)...)

	return report, nil
}
