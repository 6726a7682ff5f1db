package handler

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/set-night/aibridge/internal/domain"
	"github.com/set-night/aibridge/internal/provider"
)

func (h *Handler) generateImage(ctx context.Context, req domain.Request, emit EmitFunc) error {
	urls, err := h.client.GenerateImages(ctx, req.APIKey, provider.ImageGenerationRequest{
		Prompt: req.Image.Prompt,
		Count:  req.Image.Count,
		Size:   req.Image.Size,
	})
	if err != nil {
		return err
	}
	return h.downloadImages(ctx, req, urls, req.Options.Image.ImageName, emit)
}

func (h *Handler) editImage(ctx context.Context, req domain.Request, emit EmitFunc) error {
	// The base and mask inputs are temporary copies; clean them up once the
	// upload has been attempted.
	defer os.Remove(req.ImageEdit.BaseImagePath)
	if req.ImageEdit.MaskImagePath != "" {
		defer os.Remove(req.ImageEdit.MaskImagePath)
	}

	urls, err := h.client.EditImage(ctx, req.APIKey, provider.ImageEditRequest{
		Prompt:        req.ImageEdit.Prompt,
		Count:         req.ImageEdit.Count,
		Size:          req.ImageEdit.Size,
		BaseImagePath: req.ImageEdit.BaseImagePath,
		MaskImagePath: req.ImageEdit.MaskImagePath,
	})
	if err != nil {
		return err
	}
	name := "edit-" + req.Options.Image.BaseImageName
	return h.downloadImages(ctx, req, urls, name, emit)
}

func (h *Handler) generateVariationImage(ctx context.Context, req domain.Request, emit EmitFunc) error {
	defer os.Remove(req.ImageEdit.BaseImagePath)

	urls, err := h.client.ImageVariation(ctx, req.APIKey, provider.ImageVariationRequest{
		Count:         req.ImageEdit.Count,
		Size:          req.ImageEdit.Size,
		BaseImagePath: req.ImageEdit.BaseImagePath,
	})
	if err != nil {
		return err
	}
	name := "variation-" + req.Options.Image.BaseImageName
	return h.downloadImages(ctx, req, urls, name, emit)
}

// downloadImages fetches each result URL in order, saves it under
// image/generated, and emits one IMAGE message per saved file. The first
// failed download aborts the transaction; already-saved files remain.
func (h *Handler) downloadImages(ctx context.Context, req domain.Request, urls []string, baseName string, emit EmitFunc) error {
	dir := filepath.Join(h.imageDir, "generated")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create image dir: %w", err)
	}

	for i, downloadURL := range urls {
		data, err := h.client.DownloadImage(ctx, downloadURL)
		if err != nil {
			return err
		}

		filePath := filepath.Join(dir, imageFileName(baseName, downloadURL, i))
		if err := os.WriteFile(filePath, data, 0o644); err != nil {
			return fmt.Errorf("save image: %w", err)
		}

		emit(domain.Message{
			TransactionID: req.TransactionID,
			Kind:          domain.MessageImage,
			Image:         &domain.ImageResult{FilePath: filePath},
			Options:       req.Options,
		})
	}
	return nil
}

// imageFileName derives the saved file name: an explicit name gets a .png
// extension and a -<i> suffix from the second image on; an empty name falls
// back to the basename of the download URL.
func imageFileName(name, downloadURL string, i int) string {
	if name == "" {
		if u, err := url.Parse(downloadURL); err == nil {
			if base := path.Base(u.Path); base != "." && base != "/" {
				return base
			}
		}
		name = "generated"
	}
	if i >= 1 {
		return fmt.Sprintf("%s-%d.png", name, i)
	}
	return name + ".png"
}
