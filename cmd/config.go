package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/spigell/skillgap/internal/ai"
	"github.com/spigell/skillgap/internal/ai/gemini"
	"github.com/spigell/skillgap/internal/logger"
	"github.com/spigell/skillgap/internal/scoring"
	"github.com/spigell/skillgap/internal/secrets"
	"github.com/spigell/skillgap/internal/skills"
)

const geminiAPIKeyEnv = "GEMINI_API_KEY"

type Config struct {
	Scoring ScoringConfig `mapstructure:"scoring" json:"scoring"`
	Skills  SkillsConfig  `mapstructure:"skills" json:"skills"`
	AI      AIConfig      `mapstructure:"ai" json:"ai"`
	Server  ServerConfig  `mapstructure:"server" json:"server"`
}

// ScoringConfig mirrors scoring.Options. Weights are passed through as is.
type ScoringConfig struct {
	SimilarityWeight float64  `mapstructure:"similarity-weight" json:"similarity-weight"`
	KeywordWeight    float64  `mapstructure:"keyword-weight" json:"keyword-weight"`
	MaxFeatures      int      `mapstructure:"max-features" json:"max-features" validate:"min=1"`
	NGramMin         int      `mapstructure:"ngram-min" json:"ngram-min" validate:"min=1,max=3"`
	NGramMax         int      `mapstructure:"ngram-max" json:"ngram-max" validate:"min=1,max=3,gtefield=NGramMin"`
	StopWords        []string `mapstructure:"stop-words" json:"stop-words"`
}

type SkillsConfig struct {
	// Vocabulary replaces the built-in skill list when set.
	Vocabulary []string `mapstructure:"vocabulary" json:"vocabulary"`
	Extra      []string `mapstructure:"extra" json:"extra"`
}

type AIConfig struct {
	Enabled  bool         `mapstructure:"enabled" json:"enabled"`
	Provider string       `mapstructure:"provider" json:"provider" validate:"omitempty,oneof=gemini"`
	Gemini   GeminiConfig `mapstructure:"gemini" json:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key" json:"-"`
	APIKeyFile   string `mapstructure:"api-key-file" json:"api-key-file"`
	Model        string `mapstructure:"model" json:"model"`
	MaxRetries   int    `mapstructure:"max-retries" json:"max-retries" validate:"min=0"`
	MaxLogLength int    `mapstructure:"max-log-length" json:"max-log-length" validate:"min=0"`
}

type ServerConfig struct {
	Listen string `mapstructure:"listen" json:"listen" validate:"required"`
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Namespace(), fe.Tag()))
		}
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}
	return nil
}

func (c *Config) scoringOptions() scoring.Options {
	return scoring.Options{
		Weights: scoring.Weights{
			Similarity: c.Scoring.SimilarityWeight,
			Keyword:    c.Scoring.KeywordWeight,
		},
		MaxFeatures: c.Scoring.MaxFeatures,
		NGramMin:    c.Scoring.NGramMin,
		NGramMax:    c.Scoring.NGramMax,
		StopWords:   c.Scoring.StopWords,
	}
}

func (c *Config) extractor() *skills.Vocabulary {
	base := c.Skills.Vocabulary
	if len(base) == 0 {
		base = skills.DefaultVocabulary().Names()
	}
	return skills.NewVocabulary(base, c.Skills.Extra)
}

// newAdvisor builds the configured AI advisor.
func newAdvisor(ctx context.Context, cfg AIConfig, log *zap.Logger) (ai.Advisor, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		Env:   geminiAPIKeyEnv,
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or %s)", err, geminiAPIKeyEnv)
	}

	genLogger := logger.WithFields(log, logger.CommonFields("gemini", cfg.Gemini.Model)...).
		With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries))

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	advisorLogger := logger.WithCommonFields(log, "gemini", generator.Model())

	return gemini.NewAdvisor(generator, advisorLogger, cfg.Gemini.MaxLogLength), nil
}
