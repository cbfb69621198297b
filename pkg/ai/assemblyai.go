package ai

import (
	"context"
	"fmt"
	"io"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// AssemblyAIClient transcribes audio with the official AssemblyAI SDK
type AssemblyAIClient struct {
	client       *aai.Client
	languageCode string
}

// NewAssemblyAIClient creates an AssemblyAI client using the provided config
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig) *AssemblyAIClient {
	return &AssemblyAIClient{
		client:       aai.NewClient(cfg.APIKey),
		languageCode: cfg.LanguageCode,
	}
}

// Name identifies the transcriber in logs
func (c *AssemblyAIClient) Name() string {
	return "assemblyai"
}

// Transcribe uploads the audio and waits for the transcript to complete
func (c *AssemblyAIClient) Transcribe(ctx context.Context, _ string, audio io.Reader) (string, error) {
	params := &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(true),
	}
	if c.languageCode != "" {
		params.LanguageCode = aai.TranscriptLanguageCode(c.languageCode)
	}

	transcript, err := c.client.Transcripts.TranscribeFromReader(ctx, audio, params)
	if err != nil {
		return "", fmt.Errorf("assemblyai transcription failed: %w", err)
	}

	if transcript.Status == aai.TranscriptStatusError {
		reason := "unknown error"
		if transcript.Error != nil {
			reason = *transcript.Error
		}
		return "", fmt.Errorf("assemblyai reported error: %s", reason)
	}

	if transcript.Text == nil || *transcript.Text == "" {
		return "", ErrEmptyResponse
	}
	return *transcript.Text, nil
}
