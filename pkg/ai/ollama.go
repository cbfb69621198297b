package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// OllamaClient is a minimal client for a local Ollama daemon
type OllamaClient struct {
	baseURL    string
	model      string
	options    GenerateOptions
	maxElapsed time.Duration
	client     *http.Client
}

// NewOllamaClient creates an Ollama client using values from the provided config
func NewOllamaClient(cfg *config.OllamaConfig) *OllamaClient {
	return &OllamaClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		options: GenerateOptions{
			Temperature: cfg.Temperature,
			TopP:        cfg.TopP,
			TopK:        cfg.TopK,
			NumPredict:  cfg.NumPredict,
			Stop:        []string{"</summary>", "\n\n---", "Human:", "Assistant:"},
		},
		maxElapsed: cfg.MaxElapsed,
		client:     &http.Client{Timeout: cfg.Timeout},
	}
}

// GenerateOptions are the sampling options sent with a generate request
type GenerateOptions struct {
	Temperature float64  `json:"temperature"`
	TopP        float64  `json:"top_p"`
	TopK        int      `json:"top_k"`
	NumPredict  int      `json:"num_predict"`
	Stop        []string `json:"stop,omitempty"`
}

// GenerateRequest is the payload for /api/generate
type GenerateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options GenerateOptions `json:"options"`
}

// GenerateResponse is the non-streaming answer of /api/generate
type GenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// TagsResponse lists the locally installed models
type TagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Name identifies the generator in logs and stored records
func (o *OllamaClient) Name() string {
	return "ollama:" + o.model
}

// Model returns the configured model name
func (o *OllamaClient) Model() string {
	return o.model
}

// Generate sends the prompt to Ollama and returns the model's reply.
// Transport errors and 5xx answers are retried with exponential backoff.
func (o *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	b, err := json.Marshal(GenerateRequest{
		Model:   o.model,
		Prompt:  prompt,
		Stream:  false,
		Options: o.options,
	})
	if err != nil {
		return "", err
	}

	var reply string
	generateFn := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewReader(b))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := o.client.Do(req)
		if err != nil {
			return fmt.Errorf("ollama request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			serr := &StatusError{Service: "ollama", StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
			if serr.Temporary() {
				return serr
			}
			return backoff.Permanent(serr)
		}

		var gr GenerateResponse
		if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode ollama response: %w", err))
		}
		if strings.TrimSpace(gr.Response) == "" {
			return backoff.Permanent(ErrEmptyResponse)
		}
		reply = gr.Response
		return nil
	}

	if err := backoff.Retry(generateFn, backoff.WithContext(o.newBackOff(), ctx)); err != nil {
		return "", err
	}
	return reply, nil
}

// Tags returns the names of the models installed in the daemon
func (o *OllamaClient) Tags(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("connection timeout, ollama may not be running: %w", err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Service: "ollama", StatusCode: resp.StatusCode}
	}

	var tr TagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("failed to decode ollama tags: %w", err)
	}
	names := make([]string, 0, len(tr.Models))
	for _, m := range tr.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// newBackOff disables retries when no retry window is configured
func (o *OllamaClient) newBackOff() backoff.BackOff {
	if o.maxElapsed <= 0 {
		return &backoff.StopBackOff{}
	}
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 250 * time.Millisecond
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = o.maxElapsed
	return bo
}
