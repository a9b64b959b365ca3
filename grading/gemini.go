package grading

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"aicareer/config"
	"aicareer/logger"

	"github.com/go-resty/resty/v2"
)

var (
	ErrUnavailable = errors.New("text generation service unavailable")
	ErrEmptyReply  = errors.New("text generation service returned no text")
)

// GeminiConfig configures the generateContent client.
type GeminiConfig struct {
	BaseURL      string
	APIKey       string
	Model        string
	Timeout      time.Duration
	MaxRetries   int
	RetryWait    time.Duration
	RetryMaxWait time.Duration
}

func GeminiConfigFrom(cfg *config.Config) GeminiConfig {
	return GeminiConfig{
		BaseURL:      cfg.GeminiBaseURL,
		APIKey:       cfg.GeminiAPIKey,
		Model:        cfg.GeminiModel,
		Timeout:      cfg.GeminiTimeout,
		MaxRetries:   cfg.GeminiMaxRetries,
		RetryWait:    time.Second,
		RetryMaxWait: 8 * time.Second,
	}
}

// Gemini calls the Gemini generateContent endpoint. It implements Reviewer
// and also serves the chat passthrough.
type Gemini struct {
	client *resty.Client
	model  string
	log    *logger.Logger
}

func NewGemini(cfg GeminiConfig, log *logger.Logger) *Gemini {
	log = log.With("component", "gemini")
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", cfg.APIKey).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(cfg.RetryMaxWait).
		AddRetryCondition(shouldRetry).
		AddRetryHook(func(resp *resty.Response, err error) {
			status := 0
			if resp != nil {
				status = resp.StatusCode()
			}
			log.Warn("Gemini request retrying", "status", status, "error", err)
		})
	return &Gemini{client: client, model: cfg.Model, log: log}
}

func shouldRetry(resp *resty.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled)
	}
	if resp == nil {
		return false
	}
	return isRetryableHTTPStatus(resp.StatusCode())
}

func isRetryableHTTPStatus(code int) bool {
	if code == http.StatusRequestTimeout || code == http.StatusTooManyRequests {
		return true
	}
	return code >= 500 && code <= 599
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// Review grades code against the task description. Whitespace-only code is
// rejected without a remote call and every failure is rejected.
func (g *Gemini) Review(ctx context.Context, code, taskDescription string) Verdict {
	if strings.TrimSpace(code) == "" {
		return Verdict{Status: StatusRejected, Feedback: EmptyCodeMessage}
	}
	reply, err := g.generate(ctx, []content{{Role: "user", Parts: []part{{Text: reviewPrompt(code, taskDescription)}}}})
	if err != nil {
		g.log.Error("Code review failed", "error", err)
		return Verdict{Status: StatusRejected, Feedback: UnavailableMessage}
	}
	return ParseVerdict(reply)
}

// Turn is one message of a chat history.
type Turn struct {
	Role string `json:"role" validate:"omitempty,oneof=user model assistant"`
	Text string `json:"text"`
}

// Chat sends prompt with history as conversational context and returns the
// generated text.
func (g *Gemini) Chat(ctx context.Context, history []Turn, prompt string) (string, error) {
	contents := make([]content, 0, len(history)+1)
	for _, t := range history {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		role := "user"
		if t.Role == "model" || t.Role == "assistant" {
			role = "model"
		}
		contents = append(contents, content{Role: role, Parts: []part{{Text: t.Text}}})
	}
	contents = append(contents, content{Role: "user", Parts: []part{{Text: prompt}}})
	return g.generate(ctx, contents)
}

func (g *Gemini) generate(ctx context.Context, contents []content) (string, error) {
	var out generateResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(generateRequest{Contents: contents}).
		SetResult(&out).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", g.model))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode())
	}
	if len(out.Candidates) == 0 {
		if out.PromptFeedback.BlockReason != "" {
			g.log.Warn("Gemini response blocked", "reason", out.PromptFeedback.BlockReason)
		}
		return "", ErrEmptyReply
	}

	var b strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ErrEmptyReply
	}
	return b.String(), nil
}
