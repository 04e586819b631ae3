package transcript

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

// Provider generates the voiceover script for one product. The pipeline
// treats it as a black box: it only ever sees the returned string.
type Provider interface {
	Generate(ctx context.Context, title, description string) (string, error)
}

// NewDefaultProvider returns a Cohere-backed provider for the given API key,
// nil when the key is empty (callers then require pre-supplied narration).
func NewDefaultProvider(apiKey, model string) Provider {
	if apiKey == "" {
		return nil
	}
	return NewCohere(apiKey, model)
}

// Cohere implements Provider with the Cohere chat API.
type Cohere struct {
	client *cohereclient.Client
	model  string
}

// NewCohere builds a provider with the given API key and model.
func NewCohere(apiKey, model string) *Cohere {
	if model == "" {
		model = "command-r-08-2024"
	}
	// Force HTTP/1.1; the Cohere endpoint intermittently resets HTTP/2 streams.
	httpClient := &http.Client{
		Timeout: 60 * time.Second,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &Cohere{client: client, model: model}
}

// Generate asks for a one-minute product voiceover script.
func (c *Cohere) Generate(ctx context.Context, title, description string) (string, error) {
	prompt := fmt.Sprintf(
		"You are the world's best script writer for product videos under one minute. "+
			"Write a voiceover script for:\nTitle: %s\nDescription: %s\n"+
			"End with 'Available on Our Website.'",
		title, description,
	)

	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Message: prompt,
		Model:   &c.model,
	})
	if err != nil {
		return "", fmt.Errorf("cohere chat error: %w", err)
	}
	if resp == nil {
		return "", errors.New("cohere chat returned empty response")
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", errors.New("cohere chat returned empty script")
	}
	return text, nil
}
