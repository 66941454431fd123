package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// maxResponseBytes bounds how much of a service response is read.
const maxResponseBytes = 4 << 20

// client is the JSON-over-HTTP transport shared by the service clients.
type client struct {
	name    string
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func newClient(name, baseURL string, timeout time.Duration, log *zap.Logger) client {
	if log == nil {
		log = zap.NewNop()
	}
	return client{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.With(zap.String("service", name)),
	}
}

// do sends in (when non-nil) as JSON and decodes the response into out.
func (c client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", c.name, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", c.name, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	rsp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %s %s: %w", c.name, method, path, err)
	}
	defer rsp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(rsp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%s: read response: %w", c.name, err)
	}
	c.log.Debug("prediction call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", rsp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if rsp.StatusCode < 200 || rsp.StatusCode > 299 {
		return &ServiceError{Service: c.name, Status: rsp.StatusCode, Message: errorText(data)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", c.name, err)
	}
	return nil
}

// errorText extracts {"error": "..."} from a failed response, falling back
// to the raw body.
func errorText(data []byte) string {
	var env struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &env) == nil && env.Error != "" {
		return env.Error
	}
	s := strings.TrimSpace(string(data))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
