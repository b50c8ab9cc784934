package rpc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
)

// HTTPTransportConfig configures the HTTP JSON-RPC transport.
type HTTPTransportConfig struct {
	URL      string        `env:"NODE_RPC_URL" validate:"required,url"`
	Username string        `env:"NODE_RPC_USER"`
	Password string        `env:"NODE_RPC_PASS"`
	Timeout  time.Duration `env:"NODE_RPC_TIMEOUT" env-default:"30s"`
}

// Validate checks the config for missing or malformed fields.
func (c HTTPTransportConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid transport config: %w", err)
	}
	return nil
}

// HTTPTransport sends each request as an HTTP POST and reads the reply
// body as the response document. Node daemons report method-level
// failures inside a JSON-RPC error envelope carried on a non-2xx
// status, so a non-2xx reply with a body is still handed to the
// decoder; only an empty body or an authentication rejection becomes a
// transport failure.
type HTTPTransport struct {
	conf   HTTPTransportConfig
	client *http.Client
}

// NewHTTPTransport builds a transport from a validated config.
func NewHTTPTransport(conf HTTPTransportConfig) (*HTTPTransport, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &HTTPTransport{
		conf:   conf,
		client: &http.Client{Timeout: conf.Timeout},
	}, nil
}

// Send implements Transport.
func (t *HTTPTransport) Send(ctx context.Context, req []byte) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.conf.URL, bytes.NewReader(req))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("error building http request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if t.conf.Username != "" {
		httpReq.SetBasicAuth(t.conf.Username, t.conf.Password)
	}

	httpRes, err := t.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer httpRes.Body.Close()

	if httpRes.StatusCode == http.StatusUnauthorized || httpRes.StatusCode == http.StatusForbidden {
		return nil, &TransportError{Err: fmt.Errorf("node rejected credentials: %s", httpRes.Status)}
	}

	body, err := io.ReadAll(httpRes.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("error reading response body: %w", err)}
	}
	if len(body) == 0 {
		return nil, &TransportError{Err: fmt.Errorf("empty response body: %s", httpRes.Status)}
	}
	return body, nil
}
