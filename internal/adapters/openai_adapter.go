package adapters

import (
	"context"
	"net/http"
	"strings"

	"ap-merch-web/internal/domain"

	"github.com/shouni/go-http-kit/pkg/httpkit"
)

const (
	opOpenAIChat  = "openai chat"
	opOpenAIImage = "openai image"
)

// OpenAIConfig は OpenAI 互換 API の接続設定です。
type OpenAIConfig struct {
	APIKey     string
	BaseURL    string
	ChatModel  string
	ImageModel string
}

// OpenAIAdapter は chat/completions と images/generations を呼び出します。
type OpenAIAdapter struct {
	cfg        OpenAIConfig
	httpClient httpkit.Doer
}

func NewOpenAIAdapter(httpClient httpkit.Doer, cfg OpenAIConfig) *OpenAIAdapter {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &OpenAIAdapter{cfg: cfg, httpClient: httpClient}
}

type chatRequest struct {
	Model    string           `json:"model"`
	Messages []domain.Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateText は最初の候補の本文を前後空白を除いて返します。
func (a *OpenAIAdapter) GenerateText(ctx context.Context, messages []domain.Message) (string, error) {
	var resp chatResponse
	err := doJSON(ctx, a.httpClient, jsonRequest{
		op:      opOpenAIChat,
		method:  http.MethodPost,
		url:     a.cfg.BaseURL + "/chat/completions",
		headers: a.authHeader(),
		body:    chatRequest{Model: a.cfg.ChatModel, Messages: messages},
	}, &resp)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", domain.EmptyError(opOpenAIChat, "no completion returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

type imageRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
	N       int    `json:"n"`
}

type imageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// GenerateImage は 1 枚だけ画像を要求し、その URL を返します。
func (a *OpenAIAdapter) GenerateImage(ctx context.Context, req domain.ImageRequest) (string, error) {
	var resp imageResponse
	err := doJSON(ctx, a.httpClient, jsonRequest{
		op:      opOpenAIImage,
		method:  http.MethodPost,
		url:     a.cfg.BaseURL + "/images/generations",
		headers: a.authHeader(),
		body: imageRequest{
			Model:   a.cfg.ImageModel,
			Prompt:  req.Prompt,
			Size:    req.Size,
			Quality: req.Quality,
			N:       1,
		},
	}, &resp)
	if err != nil {
		return "", err
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", domain.EmptyError(opOpenAIImage, "no image returned")
	}
	return resp.Data[0].URL, nil
}

func (a *OpenAIAdapter) authHeader() map[string]string {
	return map[string]string{"Authorization": "Bearer " + a.cfg.APIKey}
}
