// Package phrasing implementa o Phraser externo sobre um chat model compatível com OpenAI
package phrasing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/vfg2006/rsa-auditor-api/internal/config"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/rewriting"
	"github.com/vfg2006/rsa-auditor-api/pkg/templating"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrEmptyReply   = errors.New("phrasing: resposta vazia do modelo")
	ErrInvalidReply = errors.New("phrasing: resposta fora do formato JSON esperado")
)

const (
	maxRetries = 2
	baseDelay  = 500 * time.Millisecond

	systemPrompt = "You write Google Ads responsive search ad assets. Reply with a single JSON object only."

	userPrompt = `Vertical: {{ vertical }}.
Brand: {{ brand }}.{% if category != "" %} Category: {{ category }}.{% endif %}{% if city != "" %} City: {{ city }}.{% endif %}
Top keywords: {{ keywords | join: ", " }}.
Problem to fix: {{ issue_type }} ({{ metric }} vs {{ benchmark }}). Suggested fix: {{ fix }}.
Write {{ headline_count }} headlines of at most {{ max_headline }} characters and {{ description_count }} descriptions of at most {{ max_description }} characters.
No exclamation marks in headlines, no ALL CAPS words, no dynamic insertion tokens.
Format: {"headlines": ["..."], "descriptions": ["..."]}`
)

// generator é o subconjunto do chat model usado aqui
type generator interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

type reply struct {
	Headlines    []string `json:"headlines"`
	Descriptions []string `json:"descriptions"`
}

type Client struct {
	model    generator
	limiter  *rate.Limiter
	renderer *templating.Renderer
	backoff  time.Duration
}

func NewClient(ctx context.Context, cfg config.LLM, renderer *templating.Renderer) (*Client, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		Timeout: cfg.Timeout(),
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao inicializar chat model: %w", err)
	}

	burst := cfg.QPS
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(float64(cfg.RPM)/60.0), burst)

	return newClient(chatModel, limiter, renderer), nil
}

func newClient(g generator, limiter *rate.Limiter, renderer *templating.Renderer) *Client {
	renderer.MustCompile(userPrompt)
	return &Client{
		model:    g,
		limiter:  limiter,
		renderer: renderer,
		backoff:  baseDelay,
	}
}

// Phrase pede ao modelo textos para uma issue; o gerador ainda sanitiza e valida o retorno
func (c *Client) Phrase(ctx context.Context, req rewriting.PhraseRequest) (rewriting.PhraseResult, error) {
	prompt, err := c.prompt(req)
	if err != nil {
		return rewriting.PhraseResult{}, err
	}
	messages := []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(prompt),
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return rewriting.PhraseResult{}, err
		}

		resp, err := c.model.Generate(ctx, messages)
		if err != nil {
			if isRateLimited(err) && attempt < maxRetries {
				lastErr = err
				if !sleep(ctx, c.backoff*time.Duration(1<<attempt)) {
					return rewriting.PhraseResult{}, ctx.Err()
				}
				continue
			}
			return rewriting.PhraseResult{}, err
		}

		result, err := parseReply(resp)
		if err != nil {
			lastErr = err
			logrus.WithFields(logrus.Fields{
				"rule":    req.Issue.SourceRule,
				"attempt": attempt + 1,
			}).WithError(err).Warn("Resposta do modelo descartada")
			continue
		}
		return result, nil
	}
	return rewriting.PhraseResult{}, lastErr
}

func (c *Client) prompt(req rewriting.PhraseRequest) (string, error) {
	rc := req.Context
	return c.renderer.Render(userPrompt, map[string]any{
		"vertical":          req.Vertical,
		"brand":             rc.Brand,
		"category":          rc.Category,
		"city":              rc.Geo.City,
		"keywords":          rc.TopKeywords,
		"issue_type":        req.Issue.Type,
		"metric":            req.Issue.Metric,
		"benchmark":         req.Issue.Benchmark,
		"fix":               req.Issue.Fix,
		"headline_count":    rc.Constraints.HeadlineCount,
		"description_count": rc.Constraints.DescriptionCount,
		"max_headline":      req.MaxHeadlineLength,
		"max_description":   req.MaxDescriptionLength,
	})
}

func parseReply(msg *schema.Message) (rewriting.PhraseResult, error) {
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return rewriting.PhraseResult{}, ErrEmptyReply
	}

	content := strings.TrimSpace(msg.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var r reply
	if err := json.Unmarshal([]byte(content), &r); err != nil {
		return rewriting.PhraseResult{}, fmt.Errorf("%w: %v", ErrInvalidReply, err)
	}
	if len(r.Headlines) == 0 && len(r.Descriptions) == 0 {
		return rewriting.PhraseResult{}, ErrEmptyReply
	}
	return rewriting.PhraseResult{Headlines: r.Headlines, Descriptions: r.Descriptions}, nil
}

func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "too many requests")
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
