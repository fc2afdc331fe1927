package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sirupsen/logrus"
)

// OpenAIClient implements TextClient and ImageClient against the OpenAI API
// using the official SDK. Image results delivered as URLs are downloaded with
// a dedicated HTTP client.
type OpenAIClient struct {
	client     openai.Client
	httpClient *resty.Client
	textModel  string
	imageModel string
	timeout    time.Duration
}

var (
	_ TextClient  = (*OpenAIClient)(nil)
	_ ImageClient = (*OpenAIClient)(nil)
)

// NewOpenAIClient creates a client for the given API key and model names
func NewOpenAIClient(apiKey, textModel, imageModel string, timeout time.Duration) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}
	if textModel == "" {
		return nil, errors.New("text model name is required")
	}
	if imageModel == "" {
		return nil, errors.New("image model name is required")
	}

	return &OpenAIClient{
		client:     openai.NewClient(option.WithAPIKey(apiKey)),
		httpClient: resty.New().SetTimeout(timeout),
		textModel:  textModel,
		imageModel: imageModel,
		timeout:    timeout,
	}, nil
}

// Complete sends a system + user message pair and returns the raw response text
func (c *OpenAIClient) Complete(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.textModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(int64(maxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// Synthesize generates one image at the requested size and returns its bytes
func (c *OpenAIClient) Synthesize(ctx context.Context, prompt string, size ImageSize) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:  prompt,
		Model:   openai.ImageModel(c.imageModel),
		N:       openai.Int(1),
		Size:    imageSizeParam(size),
		Quality: openai.ImageGenerateParamsQualityStandard,
	})
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("image generation returned no data")
	}

	img := resp.Data[0]
	if img.B64JSON != "" {
		return base64.StdEncoding.DecodeString(img.B64JSON)
	}
	if img.URL != "" {
		return c.download(ctx, img.URL)
	}

	return nil, errors.New("image generation returned neither URL nor inline data")
}

func (c *OpenAIClient) download(ctx context.Context, url string) ([]byte, error) {
	logrus.Debugf("Downloading generated image from %s", url)

	resp, err := c.httpClient.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("image download failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("image download returned status %d", resp.StatusCode())
	}

	return resp.Body(), nil
}

func imageSizeParam(size ImageSize) openai.ImageGenerateParamsSize {
	switch size {
	case ImageSizeLandscape:
		return openai.ImageGenerateParamsSize1792x1024
	default:
		return openai.ImageGenerateParamsSize1024x1024
	}
}
