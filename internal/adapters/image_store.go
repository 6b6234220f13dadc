package adapters

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// ImageStore は生成画像のバイト列を保存し、取得可能な URL を返します。
type ImageStore interface {
	Store(ctx context.Context, data []byte, mimeType string) (string, error)
}

// GCSImageStore は GCS に画像を書き込み、署名付き URL を発行します。
type GCSImageStore struct {
	writer  remoteio.OutputWriter
	signer  remoteio.URLSigner
	baseURL string
	expiry  time.Duration
}

// NewGCSImageStore は baseURL ("gs://bucket/drops/images" 形式) 配下に保存するストアを生成します。
func NewGCSImageStore(writer remoteio.OutputWriter, signer remoteio.URLSigner, baseURL string, expiry time.Duration) *GCSImageStore {
	return &GCSImageStore{
		writer:  writer,
		signer:  signer,
		baseURL: strings.TrimRight(baseURL, "/"),
		expiry:  expiry,
	}
}

func (s *GCSImageStore) Store(ctx context.Context, data []byte, mimeType string) (string, error) {
	objectURL := s.baseURL + "/" + uuid.NewString() + extensionFor(mimeType)

	if err := s.writer.Write(ctx, objectURL, bytes.NewReader(data), mimeType); err != nil {
		return "", fmt.Errorf("画像の保存に失敗しました (path: %s): %w", objectURL, err)
	}

	signed, err := s.signer.GenerateSignedURL(ctx, objectURL, http.MethodGet, s.expiry)
	if err != nil {
		return "", fmt.Errorf("署名付きURLの生成に失敗しました (path: %s): %w", objectURL, err)
	}
	return signed, nil
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
