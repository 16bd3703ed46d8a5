// Package scoring drives the AI match-scoring workflow: it batches canonical
// jobs, prompts the language-model service once per batch, validates and
// repairs the responses, and merges scores back onto the job list. The
// contract is absolute: every submitted job produces exactly one scored
// record, in input order, no matter how the AI service misbehaves.
package scoring

import (
	"context"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jobradar/jobradar/internal/ai"
	"github.com/jobradar/jobradar/internal/jobs"
	"github.com/jobradar/jobradar/internal/logger"
	"github.com/jobradar/jobradar/internal/util"
)

const (
	// DefaultBatchSize bounds prompt size and API cost per call.
	DefaultBatchSize = 5

	// FallbackScore is the neutral default when a batch cannot be scored.
	FallbackScore = 50

	// FallbackReasoning is the fixed explanation attached to fallback scores.
	FallbackReasoning = "Match scoring temporarily unavailable; a neutral default score was applied."

	defaultMaxLogLength = 200
)

type Service struct {
	generator ai.Generator
	batchSize int
	maxLogLen int
	logger    *zap.Logger
}

// New builds a scoring service around the given generator. Non-positive
// batch size or log length fall back to defaults.
func New(generator ai.Generator, batchSize, maxLogLength int, log *zap.Logger) *Service {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Service{
		generator: generator,
		batchSize: batchSize,
		maxLogLen: maxLogLength,
		logger: logger.WithFields(log,
			zap.String(logger.FieldModel, generator.Model()),
		),
	}
}

// Score evaluates every job against the candidate profile. It always returns
// exactly len(list) results in input order; jobs whose batch failed carry the
// neutral fallback score instead of an error.
//
// Batches run strictly sequentially. One in-flight AI call at a time is a
// deliberate serialization point: the provider's rate limits are the
// constraint, not our latency. Do not parallelize this without revisiting
// that assumption.
func (s *Service) Score(ctx context.Context, list []jobs.Job, profile jobs.Profile) []jobs.ScoredJob {
	scores := make(map[string]batchEntry, len(list))

	batches := 0
	failed := 0
	for start := 0; start < len(list); start += s.batchSize {
		end := start + s.batchSize
		if end > len(list) {
			end = len(list)
		}
		batch := list[start:end]
		batches++

		entries, err := s.scoreBatch(ctx, batch, profile)
		if err != nil {
			failed++
			s.logger.Warn("scoring batch failed, applying fallback scores",
				zap.Int("batch_start", start),
				zap.Int("batch_size", len(batch)),
				zap.Error(err),
			)
			continue
		}

		for _, entry := range entries {
			if _, dup := scores[entry.ExternalID]; dup {
				continue
			}
			scores[entry.ExternalID] = entry
		}
	}

	out := make([]jobs.ScoredJob, 0, len(list))
	for _, job := range list {
		entry, ok := scores[job.ExternalID]
		if !ok {
			// Also covers ids the AI never returned despite a valid
			// batch response.
			entry = batchEntry{
				ExternalID: job.ExternalID,
				Score:      FallbackScore,
				Reasoning:  FallbackReasoning,
			}
		}
		out = append(out, jobs.ScoredJob{
			Job:       job,
			Score:     entry.Score,
			Reasoning: entry.Reasoning,
		})
	}

	s.logger.Info("scoring finished",
		zap.Int("jobs", len(list)),
		zap.Int("batches", batches),
		zap.Int("failed_batches", failed),
	)

	return out
}

func (s *Service) scoreBatch(ctx context.Context, batch []jobs.Job, profile jobs.Profile) ([]batchEntry, error) {
	prompt, err := buildPrompt(batch, profile)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("ai scoring request",
		zap.Int("batch_size", len(batch)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, s.maxLogLen)),
	)

	raw, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("ai scoring response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", util.TruncateForLog(raw, s.maxLogLen)),
	)

	return parseBatchResponse(raw)
}
