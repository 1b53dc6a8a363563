// Package tokenizer estimates how many language-model tokens a document occupies.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"

	"github.com/nathanclairmonte/foldup/internal/utils"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

// Config captures tokenizer selection parameters.
type Config struct {
	// Model names the tiktoken model whose encoding is used.
	Model string
	// TokenizerFile, when set, points at a Hugging Face tokenizer.json used instead of tiktoken.
	TokenizerFile string
}

const (
	defaultModel        = "gpt-4"
	defaultEncodingName = "cl100k_base"

	warningEstimateMessage = "could not estimate tokens"
)

// NewCounter returns a Counter for the requested model or tokenizer file.
// Unknown tiktoken model names fall back to the cl100k_base encoding.
func NewCounter(cfg Config) (Counter, error) {
	if tokenizerFile := strings.TrimSpace(cfg.TokenizerFile); tokenizerFile != "" {
		return newHuggingFaceCounter(tokenizerFile)
	}

	model := strings.ToLower(strings.TrimSpace(cfg.Model))
	if model == "" {
		model = defaultModel
	}
	encoding, err := tiktoken.EncodingForModel(model)
	if err == nil && encoding != nil {
		return openAICounter{encoding: encoding, name: model}, nil
	}
	fallback, fallbackErr := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackErr != nil {
		return nil, fmt.Errorf("initialize tokenizer for %s: %w", model, fallbackErr)
	}
	return openAICounter{encoding: fallback, name: defaultEncodingName}, nil
}

// Estimate returns the token count of text. Tokenizer failures are logged and reported as zero tokens.
func Estimate(cfg Config, text string, logger *zap.Logger) int {
	counter, counterError := NewCounter(cfg)
	if counterError != nil {
		utils.LoggerOrNop(logger).Warn(warningEstimateMessage, zap.Error(counterError))
		return 0
	}
	return EstimateWithCounter(counter, text, logger)
}

// EstimateWithCounter counts text with counter, logging failures and reporting them as zero tokens.
func EstimateWithCounter(counter Counter, text string, logger *zap.Logger) int {
	tokens, countError := counter.CountString(text)
	if countError != nil {
		utils.LoggerOrNop(logger).Warn(warningEstimateMessage, zap.String("tokenizer", counter.Name()), zap.Error(countError))
		return 0
	}
	return tokens
}
