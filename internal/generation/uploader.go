package generation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LocalUploader stores files on local disk and serves them from baseURL.
type LocalUploader struct {
	dir     string
	baseURL string
	log     *zap.Logger
}

func NewLocalUploader(dir, baseURL string, log *zap.Logger) (*LocalUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalUploader{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
	}, nil
}

func (u *LocalUploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	ext := filepath.Ext(filename)
	name := uuid.New().String() + ext

	path := filepath.Join(u.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	u.log.Debug("file stored", zap.String("path", path), zap.Int("bytes", len(data)))
	return u.baseURL + "/" + name, nil
}
