package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// RemoteSpeechClient posts audio to a speech-to-text endpoint as multipart form data
type RemoteSpeechClient struct {
	endpoint   string
	maxElapsed time.Duration
	client     *http.Client
}

// NewRemoteSpeechClient creates a speech client using values from the provided config
func NewRemoteSpeechClient(cfg *config.SpeechConfig) *RemoteSpeechClient {
	return &RemoteSpeechClient{
		endpoint:   cfg.URL,
		maxElapsed: cfg.MaxElapsed,
		client:     &http.Client{Timeout: cfg.Timeout},
	}
}

// SpeechResponse is the answer of the speech endpoint
type SpeechResponse struct {
	Transcription string `json:"transcription"`
}

// Name identifies the transcriber in logs
func (s *RemoteSpeechClient) Name() string {
	return "remote-stt"
}

// Transcribe uploads the audio under the "audio" form field and returns the transcription
func (s *RemoteSpeechClient) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	if filename == "" {
		filename = "audio.webm"
	}

	// The body is buffered so that retries can resend it
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("audio", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("failed to read audio: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", err
	}
	payload := body.Bytes()

	var text string
	transcribeFn := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", form.FormDataContentType())

		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("speech request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			serr := &StatusError{Service: "speech-to-text", StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
			if serr.Temporary() {
				return serr
			}
			return backoff.Permanent(serr)
		}

		var sr SpeechResponse
		if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode speech response: %w", err))
		}
		text = strings.TrimSpace(sr.Transcription)
		return nil
	}

	var bo backoff.BackOff = &backoff.StopBackOff{}
	if s.maxElapsed > 0 {
		eb := backoff.NewExponentialBackOff()
		eb.InitialInterval = time.Second
		eb.MaxElapsedTime = s.maxElapsed
		bo = eb
	}
	if err := backoff.Retry(transcribeFn, backoff.WithContext(bo, ctx)); err != nil {
		return "", err
	}
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
