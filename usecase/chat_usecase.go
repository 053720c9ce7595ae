package usecase

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"comment-insights/domain/dto"
	"comment-insights/domain/model"
	"comment-insights/domain/repository"
	"comment-insights/infrastructure/logger"

	"github.com/google/uuid"
)

const (
	chatContextLimit   = 100
	chatCommentTextCap = 300
	chatHistoryWindow  = 3
	lazyAnswerTTL      = 30 * time.Minute
)

// commonQuestions are pre-answered after every sync so the typical dashboard
// click costs nothing.
var commonQuestions = []string{
	"What are people complaining about?",
	"What questions are people asking?",
	"What do people love most?",
	"What content should I make next?",
	"Show me toxic comments",
	"What's the overall sentiment?",
	"What are the main topics discussed?",
	"Are there any recurring issues?",
}

// IChatUseCase answers questions about a video's comments. Cache lookups
// come before the quota charge: a cached answer is free.
type IChatUseCase interface {
	Ask(ctx context.Context, userID, videoID string, req dto.ChatRequest) (*dto.ChatResponse, error)
	// WarmAnswers pre-generates answers for the common questions and stores
	// them on the video document.
	WarmAnswers(ctx context.Context, videoID string) error
}

type ChatUseCase struct {
	videoRepository        repository.IVideo
	commentRepository      repository.IComment
	conversationRepository repository.IConversation
	genAI                  repository.IGenAI
	quotaUseCase           IQuotaUseCase
	answerCache            repository.IAnswerCache
}

func NewChatUseCase(
	videoRepository repository.IVideo,
	commentRepository repository.IComment,
	conversationRepository repository.IConversation,
	genAI repository.IGenAI,
	quotaUseCase IQuotaUseCase,
	answerCache repository.IAnswerCache,
) IChatUseCase {
	return &ChatUseCase{
		videoRepository:        videoRepository,
		commentRepository:      commentRepository,
		conversationRepository: conversationRepository,
		genAI:                  genAI,
		quotaUseCase:           quotaUseCase,
		answerCache:            answerCache,
	}
}

// AnswerKey is the cache key for a question: md5 over the canonicalized
// (lowercased, whitespace-collapsed) text, so phrasing differences in case
// and spacing hit the same entry.
func AnswerKey(question string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(question)), " ")
	sum := md5.Sum([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

func (c *ChatUseCase) Ask(ctx context.Context, userID, videoID string, req dto.ChatRequest) (*dto.ChatResponse, error) {
	video, err := c.videoRepository.GetForUser(ctx, videoID, userID)
	if err != nil {
		return nil, err
	}

	key := AnswerKey(req.Question)
	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = uuid.NewString()
	}
	history := c.resolveHistory(ctx, userID, req)

	// pre-generated answers ride on the video document
	if cached, ok := video.PreGeneratedAnswers[key]; ok {
		c.recordTurns(ctx, conversationID, userID, videoID, req.Question, cached.Answer)
		return &dto.ChatResponse{
			Answer:            cached.Answer,
			Confidence:        cached.Confidence,
			RelatedCommentIDs: cached.RelatedCommentIDs,
			Cached:            true,
			ConversationID:    conversationID,
		}, nil
	}
	if c.answerCache != nil {
		cached, err := c.answerCache.Get(ctx, videoID, key)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Answer cache lookup failed")
		} else if cached != nil {
			c.recordTurns(ctx, conversationID, userID, videoID, req.Question, cached.Answer)
			return &dto.ChatResponse{
				Answer:            cached.Answer,
				Confidence:        cached.Confidence,
				RelatedCommentIDs: cached.RelatedCommentIDs,
				Cached:            true,
				ConversationID:    conversationID,
			}, nil
		}
	}

	// only uncached questions are metered
	if err := c.quotaUseCase.Consume(ctx, userID, model.FeatureAIQuestions); err != nil {
		return nil, err
	}

	answer, intent, err := c.generateAnswer(ctx, videoID, req.Question, history)
	if err != nil {
		c.quotaUseCase.Release(ctx, userID, model.FeatureAIQuestions)
		return nil, err
	}

	if c.answerCache != nil && answer.Confidence > 0 {
		if err := c.answerCache.Set(ctx, videoID, key, *answer, lazyAnswerTTL); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Failed to cache answer")
		}
	}
	c.recordTurns(ctx, conversationID, userID, videoID, req.Question, answer.Answer)

	return &dto.ChatResponse{
		Answer:            answer.Answer,
		Confidence:        answer.Confidence,
		RelatedCommentIDs: answer.RelatedCommentIDs,
		Cached:            false,
		Intent:            intent,
		ConversationID:    conversationID,
	}, nil
}

// resolveHistory prefers the client-supplied turns; with only a conversation
// id the thread's recent exchanges are loaded instead.
func (c *ChatUseCase) resolveHistory(ctx context.Context, userID string, req dto.ChatRequest) []dto.ChatTurn {
	if len(req.History) > 0 || req.ConversationID == "" || c.conversationRepository == nil {
		return req.History
	}
	conversation, err := c.conversationRepository.Get(ctx, req.ConversationID, userID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to load conversation")
		return nil
	}
	if conversation == nil {
		return nil
	}

	var history []dto.ChatTurn
	var pending *dto.ChatTurn
	for _, turn := range conversation.Turns {
		switch turn.Role {
		case "user":
			pending = &dto.ChatTurn{Question: turn.Content}
		case "assistant":
			if pending != nil {
				pending.Answer = turn.Content
				history = append(history, *pending)
				pending = nil
			}
		}
	}
	return history
}

// recordTurns appends the exchange to the conversation thread. Failures are
// logged, not surfaced; the answer already happened.
func (c *ChatUseCase) recordTurns(ctx context.Context, conversationID, userID, videoID, question, answer string) {
	if c.conversationRepository == nil {
		return
	}
	now := time.Now().UTC()
	err := c.conversationRepository.AppendTurns(ctx, conversationID, userID, videoID, []model.ConversationTurn{
		{Role: "user", Content: question, CreatedAt: now},
		{Role: "assistant", Content: answer, CreatedAt: now},
	})
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to record conversation turns")
	}
}

func (c *ChatUseCase) WarmAnswers(ctx context.Context, videoID string) error {
	answers := make(map[string]model.CachedAnswer, len(commonQuestions))
	for _, question := range commonQuestions {
		answer, _, err := c.generateAnswer(ctx, videoID, question, nil)
		if err != nil {
			logger.GetLogger().WithField("error", err).WithField("question", question).Warn("Failed to pre-generate answer")
			continue
		}
		answers[AnswerKey(question)] = *answer
	}
	if len(answers) == 0 {
		return fmt.Errorf("no answers could be pre-generated for video %s", videoID)
	}
	return c.videoRepository.SetAnswers(ctx, videoID, answers)
}

func (c *ChatUseCase) generateAnswer(ctx context.Context, videoID, question string, history []dto.ChatTurn) (*model.CachedAnswer, string, error) {
	intent := c.classifyIntent(ctx, question)

	comments, err := c.relevantComments(ctx, videoID, intent, question)
	if err != nil {
		return nil, intent, err
	}
	if len(comments) == 0 {
		return &model.CachedAnswer{
			Question:  question,
			Answer:    "I couldn't find any relevant comments to answer your question. Try rephrasing or ask a different question.",
			CreatedAt: time.Now().UTC(),
		}, intent, nil
	}

	raw, err := c.genAI.Generate(ctx, buildAnswerPrompt(question, comments, history),
		repository.GenerateOptions{Temperature: 0.7, MaxTokens: 500})
	if err != nil {
		return nil, intent, err
	}
	answer := strings.TrimSpace(raw)

	confidence := 0.8
	if len(comments) < 5 {
		confidence = 0.5
	} else if strings.Contains(answer, "I don't") || strings.Contains(strings.ToLower(answer), "unclear") {
		confidence = 0.6
	}

	related := make([]string, 0, 10)
	for _, comment := range comments {
		if len(related) == 10 {
			break
		}
		related = append(related, comment.CommentID)
	}

	return &model.CachedAnswer{
		Question:          question,
		Answer:            answer,
		Confidence:        confidence,
		RelatedCommentIDs: related,
		CreatedAt:         time.Now().UTC(),
	}, intent, nil
}

// classifyIntent buckets the question so context selection can prune to the
// relevant slice of comments. Failures degrade to "general".
func (c *ChatUseCase) classifyIntent(ctx context.Context, question string) string {
	prompt := fmt.Sprintf(`Classify the intent of this question about YouTube comments into ONE of these categories:
- complaints: asking about negative feedback, issues, problems
- questions: asking about viewer questions
- praise: asking about positive feedback, what people loved
- suggestions: asking about content ideas, what to make next
- specific_topic: asking about a specific topic/keyword
- general: general overview question

Question: "%s"

Respond with ONLY the category name, nothing else.`, question)

	raw, err := c.genAI.Generate(ctx, prompt, repository.GenerateOptions{Temperature: 0})
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Intent classification failed")
		return "general"
	}
	intent := strings.ToLower(strings.TrimSpace(raw))
	switch intent {
	case "complaints", "questions", "praise", "suggestions", "general":
		return intent
	case "specific_topic":
		return "topic"
	}
	return "general"
}

// relevantComments is the context pruner: instead of shipping every comment
// to the model it selects the slice the intent points at, capped at
// chatContextLimit.
func (c *ChatUseCase) relevantComments(ctx context.Context, videoID, intent, question string) ([]model.Comment, error) {
	categoryByIntent := map[string]model.Category{
		"complaints":  model.CategoryComplaint,
		"questions":   model.CategoryQuestion,
		"praise":      model.CategoryPraise,
		"suggestions": model.CategorySuggestion,
	}

	if category, ok := categoryByIntent[intent]; ok {
		comments, err := c.commentRepository.ListByCategory(ctx, videoID, category, chatContextLimit)
		if err != nil {
			return nil, err
		}
		if len(comments) > 0 {
			return comments, nil
		}
		// fall through to a general sample when the category is empty
	}

	if intent == "topic" {
		comments, _, err := c.commentRepository.ListByVideo(ctx, videoID, dto.CommentListRequest{
			Search:   extractKeyword(question),
			Sort:     "likes",
			PageSize: chatContextLimit,
		})
		if err != nil {
			return nil, err
		}
		if len(comments) > 0 {
			return comments, nil
		}
	}

	return c.stratifiedSample(ctx, videoID)
}

// stratifiedSample pulls the most-liked comments from every category so a
// general question sees the full spread of opinion, then tops up with the
// most-liked comments overall until the context window is full.
func (c *ChatUseCase) stratifiedSample(ctx context.Context, videoID string) ([]model.Comment, error) {
	categories := []model.Category{
		model.CategoryQuestion, model.CategoryPraise, model.CategoryComplaint,
		model.CategorySuggestion, model.CategoryNeutral, model.CategorySpam,
	}
	perCategory := chatContextLimit / len(categories)

	var sample []model.Comment
	seen := make(map[string]bool)
	for _, category := range categories {
		comments, err := c.commentRepository.ListByCategory(ctx, videoID, category, perCategory)
		if err != nil {
			return nil, err
		}
		for _, comment := range comments {
			seen[comment.CommentID] = true
			sample = append(sample, comment)
		}
	}

	// a skewed category distribution leaves slots unused; the most-liked
	// comments fill them (this also covers a fully unanalyzed video)
	if len(sample) < chatContextLimit {
		comments, _, err := c.commentRepository.ListByVideo(ctx, videoID, dto.CommentListRequest{
			Sort:     "likes",
			PageSize: chatContextLimit,
		})
		if err != nil {
			return nil, err
		}
		for _, comment := range comments {
			if len(sample) == chatContextLimit {
				break
			}
			if seen[comment.CommentID] {
				continue
			}
			sample = append(sample, comment)
		}
	}
	if len(sample) > chatContextLimit {
		sample = sample[:chatContextLimit]
	}
	return sample, nil
}

// extractKeyword drops stop words and returns the most promising search term.
func extractKeyword(question string) string {
	stop := map[string]bool{
		"what": true, "when": true, "where": true, "which": true, "about": true,
		"this": true, "that": true, "these": true, "those": true,
	}
	var best string
	for _, word := range strings.Fields(strings.ToLower(question)) {
		word = strings.Trim(word, "?.,!\"'")
		if len(word) > 3 && !stop[word] && len(word) > len(best) {
			best = word
		}
	}
	return best
}

func buildAnswerPrompt(question string, comments []model.Comment, history []dto.ChatTurn) string {
	var b strings.Builder

	// sliding window: only the last few turns travel with the prompt
	if len(history) > chatHistoryWindow {
		history = history[len(history)-chatHistoryWindow:]
	}
	if len(history) > 0 {
		b.WriteString("Previous conversation:\n")
		for _, turn := range history {
			fmt.Fprintf(&b, "User: %s\nAssistant: %s\n", turn.Question, turn.Answer)
		}
		b.WriteString("\n")
	}

	b.WriteString("You are analyzing YouTube comments for a content creator. Answer the user's question by providing SPECIFIC, DETAILED insights from the actual comments provided.\n\n")
	fmt.Fprintf(&b, "Question: %s\n\nComments from viewers:\n", question)
	for _, comment := range comments {
		text := comment.Text
		if len(text) > chatCommentTextCap {
			text = text[:chatCommentTextCap]
		}
		fmt.Fprintf(&b, "[%s] @%s: %s\n", comment.CommentID, comment.Author, text)
	}
	b.WriteString(`
IMPORTANT INSTRUCTIONS:
1. Read ALL the comments carefully and extract the ACTUAL information viewers are saying
2. Provide SPECIFIC examples and quotes from the comments
3. Mention viewer names (e.g., "@username said...") to make it personal and credible
4. Summarize patterns and common themes you see across multiple comments
5. If people are asking about something, tell the creator WHAT they're asking
6. Base your answer ONLY on what's actually in the comments - don't make assumptions
7. Use bullet points and clear structure for better readability
`)
	return b.String()
}
