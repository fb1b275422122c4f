package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"procurehub/internal/dto"
	"procurehub/internal/taxonomy"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const classifyInstructions = "You classify procurement requests into commodity groups. " +
	"Answer with exactly one code from the provided list. Output only the code, nothing else."

// Classifier predicts the commodity group of a request from its textual
// content. Predict never fails: any oracle problem falls back to the
// default group, so classification can never block request creation.
type Classifier interface {
	Predict(ctx context.Context, input dto.CreateRequestRequest) string
}

type classifier struct {
	ai       AIClient
	cache    *redis.Client // optional; nil disables caching
	cacheTTL time.Duration
}

func NewClassifier(ai AIClient, cache *redis.Client, cacheTTL time.Duration) Classifier {
	return &classifier{ai: ai, cache: cache, cacheTTL: cacheTTL}
}

func (c *classifier) Predict(ctx context.Context, input dto.CreateRequestRequest) string {
	prompt := buildClassificationPrompt(input)
	key := classifyCacheKey(prompt)

	if c.cache != nil {
		if code, err := c.cache.Get(ctx, key).Result(); err == nil && taxonomy.Valid(code) {
			return code
		}
	}

	raw, err := c.ai.RespondText(ctx, classifyInstructions, prompt)
	if err != nil {
		log.Error().Err(err).Str("title", input.Title).Msg("classification failed, using default group")
		return taxonomy.DefaultCode
	}

	code := CleanCode(raw)
	if !taxonomy.Valid(code) {
		log.Warn().Str("raw", raw).Str("cleaned", code).Msg("classifier returned unknown code, using default group")
		return taxonomy.DefaultCode
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, code, c.cacheTTL).Err(); err != nil {
			log.Debug().Err(err).Msg("classification cache write failed")
		}
	}
	return code
}

// CleanCode normalizes the oracle's raw answer to a bare code: everything
// before the first ':' and the first space, trimmed. Handles answers like
// "029 - Hardware" or "029: Hardware".
func CleanCode(raw string) string {
	code := strings.TrimSpace(raw)
	if i := strings.Index(code, ":"); i >= 0 {
		code = code[:i]
	}
	if i := strings.Index(code, " "); i >= 0 {
		code = code[:i]
	}
	return strings.TrimSpace(code)
}

// buildClassificationPrompt renders the request content plus the full
// taxonomy. Deterministic for identical inputs, which makes it usable as a
// cache key.
func buildClassificationPrompt(input dto.CreateRequestRequest) string {
	var b strings.Builder
	b.WriteString("Classify the following procurement request into a commodity group.\n\n")
	fmt.Fprintf(&b, "Title: %s\n", input.Title)
	fmt.Fprintf(&b, "Vendor: %s\n", input.VendorName)
	fmt.Fprintf(&b, "Requestor: %s\n", input.RequestorName)
	b.WriteString("Order lines:\n")
	for _, line := range input.OrderLines {
		fmt.Fprintf(&b, "- %s (total %s)\n", line.Description, line.TotalPrice.String())
	}
	b.WriteString("\nCommodity groups:\n")
	b.WriteString(taxonomy.PromptBlock())
	return b.String()
}

func classifyCacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "classify:" + hex.EncodeToString(sum[:])
}
