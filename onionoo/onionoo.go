// Package onionoo retrieves the public Tor relay directory from the Onionoo
// details endpoint and offers entry and exit node filters.
//
// Every fetch issues exactly one GET to DetailsURL. Nothing is cached, and
// failed requests are not retried: failures surface as *NetworkError or
// *DecodeError and no partial directory is ever returned.
package onionoo

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"ikedadada/go-onionoo/internal/domain/entity"
	"ikedadada/go-onionoo/internal/domain/repository"
	vo "ikedadada/go-onionoo/internal/domain/value_object"
	infrahttp "ikedadada/go-onionoo/internal/infrastructure/http"
	infrarepo "ikedadada/go-onionoo/internal/infrastructure/repository"
	"ikedadada/go-onionoo/internal/usecase"
)

// DetailsURL is the endpoint every fetch reads from.
const DetailsURL = infrarepo.DetailsURL

type (
	Relay        = entity.Relay
	Directory    = entity.Directory
	Fingerprint  = vo.Fingerprint
	Flag         = vo.Flag
	RelayFlags   = vo.RelayFlags
	ORAddress    = vo.ORAddress
	NetworkError = repository.NetworkError
	DecodeError  = repository.DecodeError
)

const (
	FlagGuard   = vo.FlagGuard
	FlagExit    = vo.FlagExit
	FlagRunning = vo.FlagRunning
)

var (
	ErrNetwork = repository.ErrNetwork
	ErrDecode  = repository.ErrDecode
)

// NewFingerprint validates s as a relay fingerprint for lookups.
func NewFingerprint(s string) (Fingerprint, error) { return vo.NewFingerprint(s) }

type clientOptions struct {
	detailsURL string
	http       infrahttp.Options
	log        logrus.FieldLogger
}

type Option func(*clientOptions)

// WithHTTPClient replaces the underlying *http.Client. WithTimeout is
// ignored when this option is set.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) { o.http.Client = c }
}

func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) { o.http.Timeout = d }
}

// WithMaxBytes caps the accepted response body size.
func WithMaxBytes(n int64) Option {
	return func(o *clientOptions) { o.http.MaxBytes = n }
}

func WithUserAgent(ua string) Option {
	return func(o *clientOptions) { o.http.UserAgent = ua }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(o *clientOptions) {
		o.log = l
		o.http.Logger = l
	}
}

// WithDetailsURL points the client at another details document, e.g. a
// local fixture server.
func WithDetailsURL(u string) Option {
	return func(o *clientOptions) { o.detailsURL = u }
}

// Client fetches the relay directory. It holds no mutable state and is safe
// for concurrent use; concurrent fetches are independent requests.
type Client struct {
	uc usecase.RelayDirectoryUseCase
}

func NewClient(opts ...Option) *Client {
	o := clientOptions{detailsURL: DetailsURL}
	for _, opt := range opts {
		opt(&o)
	}
	httpClient := infrahttp.NewHTTPClient(o.http)
	repo := infrarepo.NewRelayRepository(httpClient, o.detailsURL, o.log)
	return &Client{uc: usecase.NewRelayDirectoryUseCase(repo, o.log)}
}

// FetchAllRelays returns every relay in the order received.
func (c *Client) FetchAllRelays(ctx context.Context) (Directory, error) {
	out, err := c.uc.FetchAllRelays(ctx)
	return out.Directory, err
}

// FetchEntryNodes returns the relays carrying the Guard flag.
func (c *Client) FetchEntryNodes(ctx context.Context) (Directory, error) {
	out, err := c.uc.FetchEntryNodes(ctx)
	return out.Directory, err
}

// FetchExitNodes returns the relays carrying the Exit flag.
func (c *Client) FetchExitNodes(ctx context.Context) (Directory, error) {
	out, err := c.uc.FetchExitNodes(ctx)
	return out.Directory, err
}

var defaultClient = NewClient()

// FetchAllRelays fetches every relay with the default client.
func FetchAllRelays(ctx context.Context) (Directory, error) {
	return defaultClient.FetchAllRelays(ctx)
}

// FetchEntryNodes fetches the Guard relays with the default client.
func FetchEntryNodes(ctx context.Context) (Directory, error) {
	return defaultClient.FetchEntryNodes(ctx)
}

// FetchExitNodes fetches the Exit relays with the default client.
func FetchExitNodes(ctx context.Context) (Directory, error) {
	return defaultClient.FetchExitNodes(ctx)
}
