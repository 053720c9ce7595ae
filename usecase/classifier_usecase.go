package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"comment-insights/domain/model"
	"comment-insights/domain/repository"
	"comment-insights/infrastructure/logger"

	"golang.org/x/sync/errgroup"
)

const (
	classifyBatchSize   = 50
	classifyWorkerLimit = 4
	commentTextCap      = 500
)

// IClassifierUseCase labels unanalyzed comments in batches through the
// generative-AI collaborator.
type IClassifierUseCase interface {
	// ClassifyPending analyzes every unanalyzed comment of the video.
	// onProgress is called with the running processed count. It returns the
	// processed count and how many batches failed after the retry.
	ClassifyPending(ctx context.Context, videoID string, onProgress func(processed int)) (int, int, error)
}

type ClassifierUseCase struct {
	commentRepository repository.IComment
	genAI             repository.IGenAI
}

func NewClassifierUseCase(commentRepository repository.IComment, genAI repository.IGenAI) IClassifierUseCase {
	return &ClassifierUseCase{
		commentRepository: commentRepository,
		genAI:             genAI,
	}
}

func (c *ClassifierUseCase) ClassifyPending(ctx context.Context, videoID string, onProgress func(processed int)) (int, int, error) {
	pending, err := c.commentRepository.ListUnanalyzed(ctx, videoID, 0)
	if err != nil {
		return 0, 0, err
	}
	if len(pending) == 0 {
		return 0, 0, nil
	}

	var processed, failedBatches int64
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(classifyWorkerLimit)

	for start := 0; start < len(pending); start += classifyBatchSize {
		end := start + classifyBatchSize
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[start:end]
		group.Go(func() error {
			verdicts, err := c.classifyBatch(groupCtx, batch)
			if err != nil {
				// one retry, then the batch is given up on; the sync
				// completes with a partial-failure note
				verdicts, err = c.classifyBatch(groupCtx, batch)
			}
			if err != nil {
				atomic.AddInt64(&failedBatches, 1)
				logger.GetLogger().WithField("error", err).WithField("videoId", videoID).Warn("Comment batch classification failed after retry")
				return nil
			}
			for i := range batch {
				if err := c.commentRepository.SetAnalysis(groupCtx, batch[i].CommentID, verdicts[i]); err != nil {
					logger.GetLogger().WithField("error", err).Warn("Failed to store analysis")
					continue
				}
			}
			done := atomic.AddInt64(&processed, int64(len(batch)))
			if onProgress != nil {
				onProgress(int(done))
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return int(processed), int(failedBatches), err
	}
	return int(processed), int(failedBatches), nil
}

func (c *ClassifierUseCase) classifyBatch(ctx context.Context, batch []model.Comment) ([]model.Analysis, error) {
	raw, err := c.genAI.Generate(ctx, buildBatchPrompt(batch), repository.GenerateOptions{Temperature: 0.1})
	if err != nil {
		return nil, err
	}
	return ParseBatchResponse(raw, len(batch))
}

func buildBatchPrompt(batch []model.Comment) string {
	var b strings.Builder
	b.WriteString("Analyze the following YouTube comments. Respond with ONLY a JSON array, ")
	b.WriteString("one element per comment in the same order. Each element must be an object with: ")
	b.WriteString(`"category" (one of: question, praise, complaint, spam, suggestion, neutral), `)
	b.WriteString(`"sentiment" (a number from -1.0 to 1.0), `)
	b.WriteString(`"toxicity" (a number from 0.0 to 1.0), `)
	b.WriteString(`"extracted_question" (for the question category only: the question being asked, rephrased concisely; otherwise an empty string).` + "\n\nComments:\n")
	for i, comment := range batch {
		text := comment.Text
		if len(text) > commentTextCap {
			text = text[:commentTextCap]
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, text)
	}
	return b.String()
}

type batchVerdict struct {
	Category          string  `json:"category"`
	Sentiment         float64 `json:"sentiment"`
	Toxicity          float64 `json:"toxicity"`
	ExtractedQuestion string  `json:"extracted_question"`
}

// ParseBatchResponse decodes the model's JSON array, tolerating markdown
// fences and a truncated tail, and rejects responses whose length does not
// match the batch.
func ParseBatchResponse(raw string, want int) ([]model.Analysis, error) {
	cleaned := stripFences(raw)

	var verdicts []batchVerdict
	if err := json.Unmarshal([]byte(cleaned), &verdicts); err != nil {
		repaired, ok := repairTruncatedArray(cleaned)
		if !ok {
			return nil, fmt.Errorf("unparseable classification response: %w", err)
		}
		if err := json.Unmarshal([]byte(repaired), &verdicts); err != nil {
			return nil, fmt.Errorf("unparseable classification response after repair: %w", err)
		}
	}
	if len(verdicts) != want {
		return nil, fmt.Errorf("classification response has %d items, want %d", len(verdicts), want)
	}

	now := time.Now().UTC()
	analyses := make([]model.Analysis, len(verdicts))
	for i, v := range verdicts {
		category := model.Category(strings.ToLower(strings.TrimSpace(v.Category)))
		if !model.ValidCategory(category) {
			category = model.CategoryNeutral
		}
		extracted := strings.TrimSpace(v.ExtractedQuestion)
		if category != model.CategoryQuestion {
			extracted = ""
		}
		analyses[i] = model.Analysis{
			Category:          category,
			Sentiment:         clamp(v.Sentiment, -1, 1),
			Toxicity:          clamp(v.Toxicity, 0, 1),
			ExtractedQuestion: extracted,
			AnalyzedAt:        now,
		}
	}
	return analyses, nil
}

func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

// repairTruncatedArray closes a JSON array cut off mid-object by dropping
// the incomplete tail.
func repairTruncatedArray(s string) (string, bool) {
	if !strings.HasPrefix(s, "[") {
		return "", false
	}
	last := strings.LastIndex(s, "}")
	if last == -1 {
		return "", false
	}
	return s[:last+1] + "]", true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
