package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shouni/go-remote-io/pkg/remoteio"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// SeedWords はシード文を組み立てる 3 つの単語リストです。
type SeedWords struct {
	Adjectives []string `yaml:"adjectives"`
	Audiences  []string `yaml:"audiences"`
	Objects    []string `yaml:"objects"`
}

// Catalog はフォームのニッチ選択肢とシード用単語リストです。
type Catalog struct {
	Niches []string  `yaml:"niches"`
	Seeds  SeedWords `yaml:"seeds"`
}

// Contains は niche がカタログに含まれているかを返します。
func (c Catalog) Contains(niche string) bool {
	for _, n := range c.Niches {
		if n == niche {
			return true
		}
	}
	return false
}

// DefaultCatalog はバイナリに埋め込まれたカタログを返します。
func DefaultCatalog() (Catalog, error) {
	return ParseCatalog(defaultCatalogYAML)
}

// ParseCatalog は YAML を解析し、必須のリストが空でないことを確認します。
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("カタログの解析に失敗しました: %w", err)
	}
	if len(c.Niches) == 0 {
		return Catalog{}, errors.New("カタログに niches がありません")
	}
	if len(c.Seeds.Adjectives) == 0 || len(c.Seeds.Audiences) == 0 || len(c.Seeds.Objects) == 0 {
		return Catalog{}, errors.New("カタログの seeds に空のリストがあります")
	}
	return c, nil
}

// LoadCatalog は path からカタログを読み込みます。
// "gs://" で始まるパスは reader 経由で、それ以外はローカルファイルとして読み込みます。
// path が空の場合は埋め込みのカタログを返します。
func LoadCatalog(ctx context.Context, reader remoteio.InputReader, path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}

	var data []byte
	var err error
	if strings.HasPrefix(path, "gs://") {
		if reader == nil {
			return Catalog{}, fmt.Errorf("GCS 上のカタログ (%s) を読むには GCS_BUCKET の設定が必要です", path)
		}
		data, err = readRemote(ctx, reader, path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return Catalog{}, fmt.Errorf("カタログの読み込みに失敗しました (path: %s): %w", path, err)
	}
	return ParseCatalog(data)
}

func readRemote(ctx context.Context, reader remoteio.InputReader, path string) ([]byte, error) {
	rc, err := reader.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
