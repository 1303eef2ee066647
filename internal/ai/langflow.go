package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultLangflowURL is the hosted Langflow endpoint
const DefaultLangflowURL = "https://api.langflow.astra.datastax.com"

const langflowTimeout = 2 * time.Minute

// LangflowClient calls the Langflow run API
type LangflowClient struct {
	baseURL    string
	token      string
	langflowID string
	httpClient *http.Client
}

// NewLangflowClient creates a client for the given Langflow instance
func NewLangflowClient(baseURL, token, langflowID string) *LangflowClient {
	if baseURL == "" {
		baseURL = DefaultLangflowURL
	}
	return &LangflowClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		langflowID: langflowID,
		httpClient: &http.Client{Timeout: langflowTimeout},
	}
}

// RunRequest is the body of a flow run
type RunRequest struct {
	InputValue string                 `json:"input_value"`
	InputType  string                 `json:"input_type"`
	OutputType string                 `json:"output_type"`
	Tweaks     map[string]interface{} `json:"tweaks"`
}

// RunResponse is the subset of the run API response the enrichment needs
type RunResponse struct {
	SessionID string      `json:"session_id"`
	Outputs   []RunOutput `json:"outputs"`
}

// RunOutput groups the outputs of one flow input
type RunOutput struct {
	Outputs []ComponentOutput `json:"outputs"`
}

// ComponentOutput is the output of one flow component
type ComponentOutput struct {
	Results struct {
		Message *MessageText `json:"message"`
	} `json:"results"`
	Outputs struct {
		Message *struct {
			Message json.RawMessage `json:"message"`
		} `json:"message"`
	} `json:"outputs"`
}

// MessageText is a chat message carrying text
type MessageText struct {
	Text string `json:"text"`
}

// MessageText returns the text of the first component's chat message.
func (r *RunResponse) MessageText() (string, error) {
	if r == nil || len(r.Outputs) == 0 || len(r.Outputs[0].Outputs) == 0 {
		return "", fmt.Errorf("%w: no outputs in flow response", ErrMalformedResponse)
	}
	first := r.Outputs[0].Outputs[0]

	if first.Outputs.Message != nil && len(first.Outputs.Message.Message) > 0 {
		var msg MessageText
		if err := json.Unmarshal(first.Outputs.Message.Message, &msg); err == nil && msg.Text != "" {
			return msg.Text, nil
		}
		var text string
		if err := json.Unmarshal(first.Outputs.Message.Message, &text); err == nil && text != "" {
			return text, nil
		}
	}
	if first.Results.Message != nil && first.Results.Message.Text != "" {
		return first.Results.Message.Text, nil
	}

	return "", fmt.Errorf("%w: flow response has no message text", ErrMalformedResponse)
}

// Run executes flowID with input and tweaks and returns the decoded response.
func (c *LangflowClient) Run(ctx context.Context, flowID, input string, tweaks map[string]interface{}) (*RunResponse, error) {
	if strings.TrimSpace(c.token) == "" {
		return nil, fmt.Errorf("langflow application token is not configured")
	}
	if tweaks == nil {
		tweaks = map[string]interface{}{}
	}

	body, err := json.Marshal(RunRequest{
		InputValue: input,
		InputType:  "chat",
		OutputType: "chat",
		Tweaks:     tweaks,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal run request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/lf/%s/api/v1/run/%s?stream=false",
		c.baseURL, url.PathEscape(c.langflowID), url.PathEscape(flowID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to Langflow: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	log.Printf("[Langflow] Flow %s answered %d in %v: %s",
		flowID, resp.StatusCode, time.Since(startTime), truncateString(string(respBody), 500))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("Langflow API returned status %d: %s", resp.StatusCode, truncateString(string(respBody), 1000))
	}

	var runResp RunResponse
	if err := json.Unmarshal(respBody, &runResp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse Langflow response: %v", ErrMalformedResponse, err)
	}
	return &runResp, nil
}

// LangflowGenerator produces draft text by running a Langflow flow
type LangflowGenerator struct {
	client          *LangflowClient
	flowID          string
	promptComponent string
	instruction     string
}

// NewLangflowGenerator creates a generator running flowID. promptComponent
// is the id of the flow's prompt component that receives the template.
func NewLangflowGenerator(client *LangflowClient, flowID, promptComponent, instruction string) *LangflowGenerator {
	return &LangflowGenerator{
		client:          client,
		flowID:          flowID,
		promptComponent: promptComponent,
		instruction:     instruction,
	}
}

// Name returns the provider name
func (g *LangflowGenerator) Name() string {
	return "langflow"
}

// Generate runs the flow on transcript and returns the message text.
func (g *LangflowGenerator) Generate(ctx context.Context, transcript string) (string, error) {
	tweaks := BuildTweaks(g.promptComponent, transcript, g.instruction)
	resp, err := g.client.Run(ctx, g.flowID, transcript, tweaks)
	if err != nil {
		return "", err
	}
	return resp.MessageText()
}
