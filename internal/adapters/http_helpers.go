package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"ap-merch-web/internal/domain"

	"github.com/shouni/go-http-kit/pkg/httpkit"
)

// maxErrorBody はエラーメッセージに含めるレスポンス本文の上限バイト数です。
// 超えた分は切り捨て、truncatedMarker を付けます。
const maxErrorBody = 2048

const truncatedMarker = " ...(truncated)"

// jsonRequest は JSON API への 1 回分のリクエスト内容です。
type jsonRequest struct {
	op      string
	method  string
	url     string
	headers map[string]string
	body    any
}

// doJSON はリクエストを送信し、HTTP 200 の場合のみ out にデコードします。
// 失敗はすべて domain.StepError として返します。httpkit.Client.Do はリトライを行いません。
func doJSON(ctx context.Context, client httpkit.Doer, req jsonRequest, out any) error {
	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return domain.TransportError(req.op, fmt.Errorf("failed to marshal request: %w", err))
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, req.url, body)
	if err != nil {
		return domain.TransportError(req.op, fmt.Errorf("failed to create request: %w", err))
	}
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return domain.TransportError(req.op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.StatusError(req.op, resp.StatusCode, readErrorBody(resp.Body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.TransportError(req.op, fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

func readErrorBody(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody+1))
	if err != nil {
		return ""
	}
	if len(data) > maxErrorBody {
		return strings.TrimSpace(string(data[:maxErrorBody])) + truncatedMarker
	}
	return strings.TrimSpace(string(data))
}
