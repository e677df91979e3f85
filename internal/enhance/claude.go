package enhance

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/tradelift/seogen/internal/model"
	"github.com/tradelift/seogen/internal/resilience"
	"github.com/tradelift/seogen/pkg/anthropic"
)

const sectionsUserPrompt = `Write two content sections for a page about %s in %s, %s.

Return exactly this JSON shape:
{"expertise": ["paragraph 1", "paragraph 2", "paragraph 3"], "testimonial": {"quote": "...", "author": "First L."}}

Requirements:
- "expertise": three paragraphs of 90-120 words each about local %s expertise: common problems in %s homes, local permits and code, climate and housing stock. Plain text, no HTML.
- "testimonial": one realistic customer quote of 40-60 words about this service, with the author as a first name and last initial.`

// ClaudeWriterConfig tunes the LLM-backed writer.
type ClaudeWriterConfig struct {
	Model             string
	MaxTokens         int64
	RequestsPerSecond float64
}

// ClaudeWriter produces enhanced sections with the Anthropic API. Calls
// are rate limited, retried on transient failures, and guarded by a
// circuit breaker; when a page's copy cannot be produced, the writer
// falls back to the deck-based CopyWriter so generation degrades instead
// of failing.
type ClaudeWriter struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	limiter   *rate.Limiter
	breaker   *resilience.CircuitBreaker
	retry     resilience.RetryConfig
	fallback  *CopyWriter

	mu    sync.Mutex
	usage anthropic.TokenUsage
}

func NewClaudeWriter(client anthropic.Client, cfg ClaudeWriterConfig, fallback *CopyWriter) *ClaudeWriter {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	retry := resilience.DefaultRetryConfig()
	retry.OnRetry = resilience.RetryLogger("anthropic", "sections")

	return &ClaudeWriter{
		client:    client,
		model:     cfg.Model,
		maxTokens: maxTokens,
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
		breaker: resilience.NewCircuitBreaker(resilience.CircuitConfig{
			OnStateChange: func(from, to resilience.CircuitState) {
				zap.L().Warn("anthropic circuit state change",
					zap.String("from", from.String()),
					zap.String("to", to.String()))
			},
		}),
		retry:    retry,
		fallback: fallback,
	}
}

// Sections generates enhanced copy via the API, falling back to the copy
// deck on any failure so a broken or exhausted API degrades quality
// rather than page availability.
func (w *ClaudeWriter) Sections(ctx context.Context, req Request) (*Sections, error) {
	sections, err := w.generate(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "enhance: sections")
		}
		zap.L().Warn("enhance: falling back to copy deck",
			zap.String("service", req.Service.ID),
			zap.String("location", req.Location.ID),
			zap.Error(err))
		return w.fallback.Sections(ctx, req)
	}
	return sections, nil
}

// Usage returns accumulated token usage across all calls.
func (w *ClaudeWriter) Usage() anthropic.TokenUsage {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.usage
}

func (w *ClaudeWriter) generate(ctx context.Context, req Request) (*Sections, error) {
	if err := w.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "enhance: rate limit wait")
	}

	msgReq := anthropic.MessageRequest{
		Model:     w.model,
		MaxTokens: w.maxTokens,
		System:    anthropic.BuildCachedSystemBlocks(businessContext(req.Business)),
		Messages: []anthropic.Message{{
			Role: "user",
			Content: fmt.Sprintf(sectionsUserPrompt,
				req.Service.Name, req.Location.City, req.Location.State,
				strings.ToLower(req.Service.Name), req.Location.City),
		}},
	}

	// The breaker wraps the whole retry cycle: one breaker event per page,
	// not per attempt.
	resp, err := resilience.ExecuteVal(ctx, w.breaker, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		return resilience.DoVal(ctx, w.retry, func(ctx context.Context) (*anthropic.MessageResponse, error) {
			return w.client.CreateMessage(ctx, msgReq)
		})
	})
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.usage.Add(resp.Usage)
	w.mu.Unlock()
	resp.Usage.LogCost(w.model, "/services/"+req.Service.ID+"/"+req.Location.ID)

	var payload struct {
		Expertise   []string    `json:"expertise"`
		Testimonial Testimonial `json:"testimonial"`
	}
	if err := json.Unmarshal([]byte(cleanJSON(resp.Text())), &payload); err != nil {
		return nil, eris.Wrap(err, "enhance: parse sections json")
	}
	if len(payload.Expertise) == 0 {
		return nil, eris.New("enhance: response missing expertise paragraphs")
	}
	if payload.Testimonial.Quote == "" {
		return nil, eris.New("enhance: response missing testimonial")
	}

	return &Sections{Expertise: payload.Expertise, Testimonial: payload.Testimonial}, nil
}

// businessContext builds the system prompt fact sheet. It is identical for
// every page of one business, which is what makes prompt caching pay off.
func businessContext(b model.Business) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You write website copy for %s, a local home services contractor.\n", b.Name)
	sb.WriteString("Business facts:\n")
	fmt.Fprintf(&sb, "- Name: %s\n", b.Name)
	if b.Phone != "" {
		fmt.Fprintf(&sb, "- Phone: %s\n", b.Phone)
	}
	if b.City != "" && b.State != "" {
		fmt.Fprintf(&sb, "- Based in: %s, %s\n", b.City, b.State)
	}
	if b.FoundedYear > 0 {
		fmt.Fprintf(&sb, "- Founded: %d\n", b.FoundedYear)
	}
	if b.Description != "" {
		fmt.Fprintf(&sb, "- About: %s\n", b.Description)
	}
	sb.WriteString("Write in a confident, plainspoken voice. Never invent certifications, awards, or named customers. Respond with JSON only.")
	return sb.String()
}

// cleanJSON extracts a JSON object from text that may contain markdown
// code fences or other wrapping.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}
