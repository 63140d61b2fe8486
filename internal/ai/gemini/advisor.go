package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/skillgap/internal/ai"
	"github.com/spigell/skillgap/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, prompt string) (string, error)
}

// Advisor turns a finished analysis into learning and resume recommendations.
type Advisor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	maxResumeChars      = 1000
	maxJobChars         = 1000
	maxPromptSkills     = 5

	systemInstruction = "You are a concise career advisor. Always answer with valid JSON."
)

var _ ai.Advisor = (*Advisor)(nil)

func NewAdvisor(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Advisor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Advisor{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (a *Advisor) Advise(ctx context.Context, req *ai.AdviceRequest) (*ai.Recommendations, error) {
	if req == nil {
		return nil, errors.New("advice request is required")
	}
	if a.generator == nil {
		return nil, errors.New("gemini generator is not configured")
	}

	analysis := map[string]any{
		"final_score":    req.FinalScore,
		"gap_percentage": req.GapPercentage,
		"matched_skills": nonNil(req.MatchedSkills),
		"missing_skills": headOf(req.MissingSkills, maxPromptSkills),
	}

	analysisJSON, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal analysis payload: %w", err)
	}

	prompt := buildPrompt(
		string(analysisJSON),
		truncateRunes(req.ResumeText, maxResumeChars),
		truncateRunes(req.JobText, maxJobChars),
	)

	a.logger.Debug("gemini generate content request",
		zap.String("report_id", req.ReportID),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.Preview(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini generate content response",
		zap.String("report_id", req.ReportID),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.Preview(raw, a.maxLogLen)),
	)

	recs, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	recs.Raw = raw
	return recs, nil
}

func buildPrompt(analysisJSON, resumeText, jobText string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Analysis:\n{{ANALYSIS_JSON}}\n\nResume:\n{{RESUME_TEXT}}\n\nJob:\n{{JOB_TEXT}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{ANALYSIS_JSON}}", analysisJSON)
	prompt = strings.ReplaceAll(prompt, "{{RESUME_TEXT}}", resumeText)
	prompt = strings.ReplaceAll(prompt, "{{JOB_TEXT}}", jobText)
	return prompt
}

func parseResponse(raw string) (*ai.Recommendations, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	var recs ai.Recommendations
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &recs,
	})
	if err != nil {
		return nil, fmt.Errorf("create response decoder: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return nil, fmt.Errorf("decode gemini response: %w", err)
	}

	recs.Summary = strings.TrimSpace(recs.Summary)
	recs.Priorities = compact(recs.Priorities)
	recs.ResumeTips = compact(recs.ResumeTips)

	resources := recs.Resources[:0]
	for _, r := range recs.Resources {
		r.Skill = strings.TrimSpace(r.Skill)
		r.Suggestion = strings.TrimSpace(r.Suggestion)
		if r.Skill == "" && r.Suggestion == "" {
			continue
		}
		resources = append(resources, r)
	}
	recs.Resources = resources

	if recs.Summary == "" && len(recs.Priorities) == 0 && len(recs.Resources) == 0 && len(recs.ResumeTips) == 0 {
		return nil, errors.New("gemini response contains no recommendations")
	}

	return &recs, nil
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

func compact(items []string) []string {
	out := items[:0]
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func headOf(items []string, n int) []string {
	if len(items) > n {
		items = items[:n]
	}
	return nonNil(items)
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func truncateRunes(s string, limit int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
