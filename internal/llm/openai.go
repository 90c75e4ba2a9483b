package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// openaiClient implements LLMClient over any OpenAI-compatible chat
// completions endpoint.
type openaiClient struct {
	cfg      LLMConfig
	client   *openai.Client
	observer Observer
}

// NewOpenAIClient creates an LLMClient for cfg.Endpoint using cfg.APIKey.
func NewOpenAIClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		oc.BaseURL = cfg.Endpoint
	}
	return &openaiClient{
		cfg:      cfg,
		client:   openai.NewClientWithConfig(oc),
		observer: observer,
	}
}

func (c *openaiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	temp, maxTok := c.cfg.sampling(req)
	model := c.cfg.ModelFor(req)

	chat := openai.ChatCompletionRequest{
		Model:       model,
		Temperature: float32(temp),
		MaxTokens:   maxTok,
		Messages:    buildMessages(req),
	}
	if req.JSON {
		chat.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	return runWithRetries(ctx, c.cfg, req.Task, model, c.observer, func(ctx context.Context) (string, string, error) {
		resp, err := c.client.CreateChatCompletion(ctx, chat)
		if err != nil {
			return "", "", fmt.Errorf("openai chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", "", fmt.Errorf("openai returned no choices")
		}
		return resp.Choices[0].Message.Content, resp.Model, nil
	})
}

func buildMessages(req GenerateRequest) []openai.ChatCompletionMessage {
	var msgs []openai.ChatCompletionMessage
	if req.SystemPrompt != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	if len(req.Images) == 0 {
		return append(msgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: req.UserPrompt,
		})
	}

	parts := []openai.ChatMessagePart{{Type: openai.ChatMessagePartTypeText, Text: req.UserPrompt}}
	for _, img := range req.Images {
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL:    imageDataURL(img),
				Detail: openai.ImageURLDetailAuto,
			},
		})
	}
	return append(msgs, openai.ChatCompletionMessage{
		Role:         openai.ChatMessageRoleUser,
		MultiContent: parts,
	})
}

// imageDataURL encodes img as a data URL, sniffing its MIME type.
func imageDataURL(img []byte) string {
	mime := http.DetectContentType(img)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img)
}

func (c *openaiClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_, err := c.client.ListModels(ctx)
	return err == nil
}
