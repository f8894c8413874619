// Package ai talks to the Gemini generateContent REST API and turns its
// replies into journal feedback, subtask suggestions and news items.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/julianstephens/girassol/internal/constants"
	"github.com/julianstephens/girassol/internal/errors"
)

// Request is one prompt to the model
type Request struct {
	Prompt string
	// JSON asks for an application/json reply. Schema, when set, constrains it.
	JSON   bool
	Schema map[string]any
	// Search enables grounding with web search results
	Search bool
}

// Response is the model's text plus any grounding links, in the order returned
type Response struct {
	Text          string
	GroundingURIs []string
}

// Generator produces a response for a prompt. Calls are one-shot.
type Generator interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

// Config selects the endpoint, model and credentials
type Config struct {
	APIKey   string
	Endpoint string
	Model    string
	Client   *http.Client
}

// Client is the HTTP Generator
type Client struct {
	apiKey   string
	endpoint string
	model    string
	client   *http.Client
}

func NewClient(cfg Config) *Client {
	c := &Client{
		apiKey:   cfg.APIKey,
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		model:    cfg.Model,
		client:   cfg.Client,
	}
	if c.endpoint == "" {
		c.endpoint = constants.DefaultAIEndpoint
	}
	if c.model == "" {
		c.model = constants.DefaultAIModel
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: constants.DefaultAITimeout}
	}
	return c
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string         `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
}

type tool struct {
	GoogleSearch *struct{} `json:"googleSearch,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
	Tools            []tool            `json:"tools,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content           content `json:"content"`
		GroundingMetadata struct {
			GroundingChunks []struct {
				Web struct {
					URI   string `json:"uri"`
					Title string `json:"title"`
				} `json:"web"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate sends req and returns the first candidate. Errors wrap ErrAICall.
func (c *Client) Generate(ctx context.Context, req Request) (Response, error) {
	if c.apiKey == "" {
		return Response{}, fmt.Errorf("%w: %w", errors.ErrAICall, ErrNotConfigured)
	}

	body, err := json.Marshal(buildRequest(req))
	if err != nil {
		return Response{}, fmt.Errorf("%w: failed to marshal request: %v", errors.ErrAICall, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.endpoint, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("%w: failed to create request: %v", errors.ErrAICall, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("%w: HTTP request failed: %v", errors.ErrAICall, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("%w: failed to read response body: %v", errors.ErrAICall, err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return Response{}, fmt.Errorf("%w: API error (%d): %s", errors.ErrAICall, resp.StatusCode, apiErr.Error.Message)
		}
		return Response{}, fmt.Errorf("%w: API error (%d): %s", errors.ErrAICall, resp.StatusCode, string(respBody))
	}

	var gr generateResponse
	if err := json.Unmarshal(respBody, &gr); err != nil {
		return Response{}, fmt.Errorf("%w: failed to decode response: %v", errors.ErrAICall, err)
	}
	if len(gr.Candidates) == 0 {
		return Response{}, fmt.Errorf("%w: no candidates returned", errors.ErrAICall)
	}

	cand := gr.Candidates[0]
	var text strings.Builder
	for _, p := range cand.Content.Parts {
		text.WriteString(p.Text)
	}
	out := Response{Text: strings.TrimSpace(text.String())}
	for _, ch := range cand.GroundingMetadata.GroundingChunks {
		out.GroundingURIs = append(out.GroundingURIs, ch.Web.URI)
	}
	return out, nil
}

func buildRequest(req Request) generateRequest {
	gr := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: req.Prompt}}}},
	}
	if req.JSON || req.Schema != nil {
		gr.GenerationConfig = &generationConfig{ResponseMimeType: "application/json", ResponseSchema: req.Schema}
	}
	if req.Search {
		gr.Tools = []tool{{GoogleSearch: &struct{}{}}}
	}
	return gr
}
