package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"alfredoptarigan/resume-ranker/internal/config"
	"alfredoptarigan/resume-ranker/internal/logger"
)

// TextGenerator is the model backend the extractor and scorer talk to.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type GeminiService struct {
	client       *genai.Client
	modelName    string
	genConfig    *genai.GenerateContentConfig
	log          *zap.Logger
	maxLogLength int
}

func NewGeminiService(ctx context.Context, apiKey string, cfg config.GeminiConfig, log *zap.Logger, maxLogLength int) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiService{
		client:       client,
		modelName:    cfg.Model,
		genConfig:    GenerationConfig(cfg),
		log:          logger.WithModel(log, cfg.Model),
		maxLogLength: maxLogLength,
	}, nil
}

// GenerationConfig maps the configured sampling knobs onto a genai request config.
func GenerationConfig(cfg config.GeminiConfig) *genai.GenerateContentConfig {
	temperature, topP, topK := cfg.Temperature, cfg.TopP, cfg.TopK
	return &genai.GenerateContentConfig{
		Temperature:     &temperature,
		TopP:            &topP,
		TopK:            &topK,
		MaxOutputTokens: cfg.MaxOutputTokens,
	}
}

// GenerateText implements TextGenerator. A single attempt is made.
func (g *GeminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	g.log.Debug("gemini request", zap.String("prompt", logger.TruncateForLog(prompt, g.maxLogLength)))

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), g.genConfig)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}
	if resp == nil {
		return "", errors.New("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("no text content in response")
	}

	g.log.Debug("gemini response", zap.String("response", logger.TruncateForLog(text, g.maxLogLength)))

	return text, nil
}
