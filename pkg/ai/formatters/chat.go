package formatters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

type chatRequest struct {
	Agent string `json:"agent"`
	Input string `json:"input"`
}

type chatResponse struct {
	Agent  string `json:"agent"`
	Output string `json:"output"`
}

// chat posts one input to the ai-service chat endpoint and returns its
// output text. There is no retry.
func chat(ctx context.Context, client *http.Client, baseURL, input string, logger *slog.Logger) (string, error) {
	b, err := json.Marshal(chatRequest{Agent: "auto", Input: input})
	if err != nil {
		return "", err
	}
	logger.Debug("ai-service request", "url", baseURL+"/v1/chat", "bytes", len(b))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/v1/chat", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	rb, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	logger.Debug("ai-service response", "status", resp.StatusCode, "bytes", len(rb))

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai-service returned non-200 status: %d", resp.StatusCode)
	}
	var out chatResponse
	if err := json.Unmarshal(rb, &out); err != nil {
		return "", fmt.Errorf("decode ai-service response: %w", err)
	}
	if out.Output == "" {
		return "", fmt.Errorf("ai-service returned empty output")
	}
	return out.Output, nil
}
