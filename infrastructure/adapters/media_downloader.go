package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/annastatham03-png/shorts-renderer/application/ports/outbound"
	"github.com/annastatham03-png/shorts-renderer/domain"
	"github.com/google/uuid"
)

type mediaDownloader struct {
	logger outbound.LoggerPort
}

func NewMediaDownloader(logger outbound.LoggerPort) outbound.MediaDownloaderPort {
	return &mediaDownloader{
		logger: logger,
	}
}

func (d *mediaDownloader) Download(ctx context.Context, asset domain.MediaAsset, destDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", asset.URL, nil)
	if err != nil {
		d.logger.Error(err, "Failed to create asset download request")
		return "", err
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		d.logger.ErrorWithFields(err, "Failed to download asset", map[string]interface{}{
			"asset": asset.Key(),
			"url":   asset.URL,
		})
		return "", err
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			d.logger.Error(err, "Failed to close download body")
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("asset download returned status %d", resp.StatusCode)
	}

	ext := path.Ext(asset.URL)
	if ext == "" || len(ext) > 5 {
		ext = ".mp4"
	}
	localFile := filepath.Join(destDir, uuid.NewString()+ext)

	out, err := os.Create(localFile)
	if err != nil {
		d.logger.Error(err, "Failed to create local asset file")
		return "", err
	}
	defer func(out *os.File) {
		if err := out.Close(); err != nil {
			d.logger.Error(err, "Failed to close local asset file")
		}
	}(out)

	if _, err := io.Copy(out, resp.Body); err != nil {
		d.logger.Error(err, "Failed to write local asset file")
		return "", err
	}

	d.logger.DebugWithFields("Downloaded asset", map[string]interface{}{
		"asset": asset.Key(),
		"file":  localFile,
	})

	return localFile, nil
}
