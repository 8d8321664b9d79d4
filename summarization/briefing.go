package summarization

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go-attackboard/config"
	"go-attackboard/views"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const topCategories = 5

// ErrDisabled is returned when no API key is configured or briefings are switched off.
var ErrDisabled = errors.New("briefing disabled")

// Briefer produces a short analyst narrative for a dashboard. The dashboard
// never changes, so the first successful narrative is reused.
type Briefer struct {
	client    *openai.Client
	model     string
	maxTokens int
	timeout   time.Duration
	logger    *zap.Logger

	mu   sync.Mutex
	text string
}

// NewBriefer returns nil when briefings are not active.
func NewBriefer(cfg config.BriefingConfig, logger *zap.Logger) *Briefer {
	if !cfg.Active() {
		return nil
	}
	return NewBrieferWithClient(openai.NewClient(cfg.APIKey), cfg, logger)
}

func NewBrieferWithClient(client *openai.Client, cfg config.BriefingConfig, logger *zap.Logger) *Briefer {
	return &Briefer{
		client:    client,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		timeout:   cfg.Timeout,
		logger:    logger,
	}
}

// Briefing returns the cached narrative, generating it on first use.
// Failed attempts are not cached.
func (b *Briefer) Briefing(ctx context.Context, d *views.Dashboard) (string, error) {
	if b == nil {
		return "", ErrDisabled
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.text != "" {
		return b.text, nil
	}

	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	b.logger.Info("Requesting briefing", zap.String("model", b.model))
	text, err := b.complete(ctx, BuildPrompt(d))
	if err != nil {
		return "", err
	}
	b.text = text
	return text, nil
}

func (b *Briefer) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := b.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: b.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are an analyst who writes short, neutral briefings about attack statistics for a dashboard.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   b.maxTokens,
			N:           1,
			Temperature: 0.3,
		},
	)
	if err != nil {
		return "", fmt.Errorf("openai chat completion error: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai returned empty response or choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// BuildPrompt renders the summary cards and the leading chart rows as plain text.
func BuildPrompt(d *views.Dashboard) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write a 3-4 sentence briefing for the dashboard %q.\n\n", d.Title)
	fmt.Fprintf(&sb, "Total attacks: %d\n", d.Summary.TotalAttacks)
	fmt.Fprintf(&sb, "Total casualties: %d\n", d.Summary.TotalCasualties)
	fmt.Fprintf(&sb, "Most used weapon type: %s\n", d.Summary.MostUsedWeaponType)

	writeChart(&sb, d.TargetChart)
	writeChart(&sb, d.WeaponChart)

	sb.WriteString("\nOnly use the numbers above. Do not speculate about causes.")
	return sb.String()
}

func writeChart(sb *strings.Builder, spec views.ChartSpec) {
	fmt.Fprintf(sb, "\n%s (top %d):\n", spec.Title, topCategories)
	for i, bar := range spec.Bars {
		if i == topCategories {
			break
		}
		fmt.Fprintf(sb, "- %s: %d casualties over %d attacks (%.2f per attack)\n",
			bar.Label, bar.Casualties, bar.Occurrences, bar.Ratio)
	}
}
