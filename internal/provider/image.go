package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type ImageGenerationRequest struct {
	Prompt string
	Count  int
	Size   string
}

type ImageEditRequest struct {
	Prompt        string
	Count         int
	Size          string
	BaseImagePath string
	MaskImagePath string // empty: no mask part
}

type ImageVariationRequest struct {
	Count         int
	Size          string
	BaseImagePath string
}

type imageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// GenerateImages requests image generation and returns the transient
// download URLs, one per image.
func (c *Client) GenerateImages(ctx context.Context, apiKey string, imgReq ImageGenerationRequest) ([]string, error) {
	payload, err := json.Marshal(map[string]any{
		"prompt":          imgReq.Prompt,
		"n":               imgReq.Count,
		"size":            imgReq.Size,
		"response_format": "url",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/images/generations", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	return c.imageURLs(req)
}

// EditImage uploads a base image plus an optional mask as multipart form
// data. The part names are fixed by the provider contract.
func (c *Client) EditImage(ctx context.Context, apiKey string, editReq ImageEditRequest) ([]string, error) {
	fields := map[string]string{
		"prompt":          editReq.Prompt,
		"n":               strconv.Itoa(editReq.Count),
		"size":            editReq.Size,
		"response_format": "url",
	}
	files := map[string]string{"image": editReq.BaseImagePath}
	if editReq.MaskImagePath != "" {
		files["mask"] = editReq.MaskImagePath
	}

	req, err := c.multipartRequest(ctx, apiKey, "/images/edits", fields, files)
	if err != nil {
		return nil, err
	}
	return c.imageURLs(req)
}

// ImageVariation uploads a base image and requests variations of it.
func (c *Client) ImageVariation(ctx context.Context, apiKey string, varReq ImageVariationRequest) ([]string, error) {
	fields := map[string]string{
		"n":               strconv.Itoa(varReq.Count),
		"size":            varReq.Size,
		"response_format": "url",
	}
	files := map[string]string{"image": varReq.BaseImagePath}

	req, err := c.multipartRequest(ctx, apiKey, "/images/variations", fields, files)
	if err != nil {
		return nil, err
	}
	return c.imageURLs(req)
}

// DownloadImage fetches a result URL without authentication. The bytes are
// accepted only if the response declares an image content type.
func (c *Client) DownloadImage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	body, err := readSuccess(resp)
	if err != nil {
		return nil, err
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "image") {
		return nil, fmt.Errorf("invalid content-type %q for image download", contentType)
	}
	return body, nil
}

func (c *Client) imageURLs(req *http.Request) ([]string, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image request: %w", err)
	}
	defer resp.Body.Close()

	body, err := readSuccess(resp)
	if err != nil {
		return nil, err
	}

	var imgResp imageResponse
	if err := json.Unmarshal(body, &imgResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	urls := make([]string, 0, len(imgResp.Data))
	for _, d := range imgResp.Data {
		urls = append(urls, d.URL)
	}
	return urls, nil
}

func (c *Client) multipartRequest(ctx context.Context, apiKey, path string, fields, files map[string]string) (*http.Request, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("write field %q: %w", name, err)
		}
	}
	for name, filePath := range files {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, fmt.Errorf("open %s file: %w", name, err)
		}
		part, err := writer.CreateFormFile(name, filepath.Base(filePath))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("create %s part: %w", name, err)
		}
		if _, err := io.Copy(part, f); err != nil {
			f.Close()
			return nil, fmt.Errorf("copy %s part: %w", name, err)
		}
		f.Close()
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+apiKey)
	return req, nil
}
