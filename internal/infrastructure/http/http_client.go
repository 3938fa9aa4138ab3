package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"ikedadada/go-onionoo/internal/domain/repository"
	"ikedadada/go-onionoo/internal/logging"
	vo "ikedadada/go-onionoo/internal/domain/value_object"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultMaxBytes  = 64 << 20
	DefaultUserAgent = "go-onionoo/1.0"

	// RequestIDHeader carries the per-fetch request id for log correlation.
	RequestIDHeader = "X-Request-ID"

	statusSnippetBytes = 512
)

var ErrBodyTooLarge = errors.New("response body too large")

// HTTPClient defines the interface for HTTP operations
type HTTPClient interface {
	FetchJSON(ctx context.Context, url string, result interface{}) error
}

// Options configures HTTPClientImpl. Zero values fall back to the defaults.
type Options struct {
	Client    *http.Client
	Timeout   time.Duration
	MaxBytes  int64
	UserAgent string
	Logger    logrus.FieldLogger
}

// HTTPClientImpl is the standard HTTP client implementation
type HTTPClientImpl struct {
	client    *http.Client
	maxBytes  int64
	userAgent string
	log       logrus.FieldLogger
}

// NewHTTPClient creates a new HTTP client
func NewHTTPClient(opt Options) HTTPClient {
	client := opt.Client
	if client == nil {
		timeout := opt.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	maxBytes := opt.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	// FetchJSON reads maxBytes+1 to detect oversize bodies.
	if maxBytes == math.MaxInt64 {
		maxBytes--
	}
	ua := opt.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	log := opt.Logger
	if log == nil {
		log = logging.Discard()
	}
	return &HTTPClientImpl{
		client:    client,
		maxBytes:  maxBytes,
		userAgent: ua,
		log:       log,
	}
}

// FetchJSON issues one GET and decodes the whole body into result.
// Transport failures and non-2xx statuses return *repository.NetworkError,
// malformed bodies return *repository.DecodeError.
func (d *HTTPClientImpl) FetchJSON(ctx context.Context, url string, result interface{}) error {
	reqID := vo.NewRequestID()
	log := d.log.WithFields(logrus.Fields{"url": url, "request_id": reqID.String()})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &repository.NetworkError{URL: url, Err: fmt.Errorf("build request failed: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", d.userAgent)
	req.Header.Set(RequestIDHeader, reqID.String())

	log.Info("request GET")
	resp, err := d.client.Do(req)
	if err != nil {
		log.WithError(err).Warn("request GET failed")
		return &repository.NetworkError{URL: url, Err: fmt.Errorf("HTTP request failed: %w", err)}
	}
	defer resp.Body.Close()

	log.WithField("status", resp.Status).Info("response GET")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, statusSnippetBytes))
		return &repository.NetworkError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s: %s", resp.Status, string(body)),
		}
	}

	// Read at most maxBytes+1 to detect overflow deterministically.
	body, err := io.ReadAll(io.LimitReader(resp.Body, d.maxBytes+1))
	if err != nil {
		return &repository.NetworkError{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body failed: %w", err)}
	}
	if int64(len(body)) > d.maxBytes {
		return &repository.NetworkError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w (>%d bytes)", ErrBodyTooLarge, d.maxBytes),
		}
	}

	if err := json.Unmarshal(body, result); err != nil {
		return &repository.DecodeError{Field: jsonErrorField(err), Err: fmt.Errorf("decode JSON failed: %w", err)}
	}
	log.WithField("bytes", len(body)).Debug("decoded response")
	return nil
}

func jsonErrorField(err error) string {
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) {
		return te.Field
	}
	return ""
}
