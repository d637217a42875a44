package ai

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"

	"echo-journal/config"
)

const transcribeInstruction = `Transcribe the attached audio recording verbatim. Return ONLY the spoken words as plain text, with no speaker labels, timestamps, or commentary. If the recording contains no intelligible speech, return an empty response.`

// GeminiClient implements both AI ports against the Gemini API.
type GeminiClient struct {
	client          *genai.Client
	generateModel   string
	transcribeModel string
}

func NewGeminiClient(ctx context.Context) (*GeminiClient, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, err
	}

	cfg := config.GetConfig().Gemini
	generateModel := cfg.GenerateModel
	if generateModel == "" {
		generateModel = "gemini-2.0-flash"
	}
	transcribeModel := cfg.TranscribeModel
	if transcribeModel == "" {
		transcribeModel = generateModel
	}

	return &GeminiClient{
		client:          client,
		generateModel:   generateModel,
		transcribeModel: transcribeModel,
	}, nil
}

// Generate runs one analysis task over the transcript and returns the raw
// model text for lenient decoding.
func (g *GeminiClient) Generate(ctx context.Context, task Task, input string) (string, error) {
	result, err := g.client.Models.GenerateContent(
		ctx,
		g.generateModel,
		genai.Text(input),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: task.Instruction}}},
			Temperature:       genai.Ptr(task.Temperature),
		},
	)
	if err != nil {
		return "", fmt.Errorf("%s task failed: %w", task.Name, err)
	}
	return result.Text(), nil
}

// Transcribe sends the audio bytes inline and returns the spoken text.
// An empty result is returned as-is; the caller decides whether that is
// fatal or a skip.
func (g *GeminiClient) Transcribe(ctx context.Context, audio []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "audio/webm"
	}

	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{Text: transcribeInstruction},
			{InlineData: &genai.Blob{MIMEType: contentType, Data: audio}},
		},
	}}

	result, err := g.client.Models.GenerateContent(
		ctx,
		g.transcribeModel,
		contents,
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(0)),
		},
	)
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}
	return strings.TrimSpace(result.Text()), nil
}
