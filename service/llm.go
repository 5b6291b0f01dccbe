package service

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"tripplanner/config"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"github.com/pkg/errors"
)

// 消息角色
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message 带角色的一条消息
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TextGenerator 文本生成服务：发送消息，返回文本，或返回带状态码和响应体的错误
type TextGenerator interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}

// OpenAIGenerator 基于 OpenAI 兼容 chat/completions 接口的文本生成（默认通义千问兼容模式）
type OpenAIGenerator struct {
	client      openai.Client
	model       string
	temperature float64
	logger      *log.Logger
}

// NewOpenAIGenerator 创建文本生成客户端。重试次数固定为 0，失败直接交给调用方。
func NewOpenAIGenerator(cfg config.LLMConfig, logger *log.Logger) *OpenAIGenerator {
	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithMaxRetries(0),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout()}),
	)
	return &OpenAIGenerator{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		logger:      logger,
	}
}

// Generate 调用 chat/completions，要求返回 JSON 对象
func (g *OpenAIGenerator) Generate(ctx context.Context, messages []Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       g.model,
		Messages:    toChatMessages(messages),
		Temperature: openai.Float(g.temperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}

	// 非 JSON 的错误响应体 SDK 解析不了，这里先留一份原始状态码和响应体
	var failed *UpstreamError
	capture := option.WithMiddleware(func(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
		resp, err := next(req)
		if err != nil || resp.StatusCode < http.StatusMultipleChoices {
			return resp, err
		}
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, readErr
		}
		resp.Body = io.NopCloser(bytes.NewReader(body))
		failed = &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
		return resp, nil
	})

	start := time.Now()
	completion, err := g.client.Chat.Completions.New(ctx, params, capture)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if failed != nil {
			failed.Err = err
			g.logger.Warn("AI服务返回错误", "model", g.model, "status", failed.StatusCode)
			return "", failed
		}
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			g.logger.Warn("AI服务返回错误", "model", g.model, "status", apiErr.StatusCode)
			return "", &UpstreamError{StatusCode: apiErr.StatusCode, Body: apiErr.RawJSON(), Err: err}
		}
		g.logger.Warn("请求AI服务失败", "model", g.model, "error", err)
		return "", &UpstreamError{Err: err}
	}
	g.logger.Debug("AI服务调用完成", "model", g.model, "latency", time.Since(start), "choices", len(completion.Choices))

	if len(completion.Choices) == 0 {
		return "", &MalformedResponseError{Err: errors.New("AI服务未返回任何结果")}
	}
	return completion.Choices[0].Message.Content, nil
}

func toChatMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
