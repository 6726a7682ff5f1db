package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

type TranscriptionRequest struct {
	FilePath    string
	Model       string
	Prompt      string
	Temperature float64
	Language    string
}

// Transcribe uploads an audio file and returns the transcript text. The
// multipart field names follow the provider contract for the transcription
// endpoint.
func (c *Client) Transcribe(ctx context.Context, apiKey string, trReq TranscriptionRequest) (string, error) {
	fields := map[string]string{
		"model":           trReq.Model,
		"prompt":          trReq.Prompt,
		"response_format": "json",
		"temperature":     strconv.FormatFloat(trReq.Temperature, 'f', 1, 64),
		"language":        trReq.Language,
	}
	files := map[string]string{"file": trReq.FilePath}

	req, err := c.multipartRequest(ctx, apiKey, "/audio/transcriptions", fields, files)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	body, err := readSuccess(resp)
	if err != nil {
		return "", err
	}

	var trResp struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &trResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	return trResp.Text, nil
}
