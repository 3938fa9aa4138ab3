package repository

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"ikedadada/go-onionoo/internal/domain/entity"
	"ikedadada/go-onionoo/internal/domain/repository"
	"ikedadada/go-onionoo/internal/infrastructure/http"
	"ikedadada/go-onionoo/internal/infrastructure/util"
	"ikedadada/go-onionoo/internal/logging"
)

// DetailsURL is the Onionoo details document of the public Tor network.
const DetailsURL = "https://onionoo.torproject.org/details"

type relayRepositoryImpl struct {
	httpClient http.HTTPClient
	url        string
	log        logrus.FieldLogger
}

// NewRelayRepository creates a RelayRepository backed by the Onionoo details
// document at detailsURL. Each FetchAll issues exactly one request.
func NewRelayRepository(httpClient http.HTTPClient, detailsURL string, log logrus.FieldLogger) repository.RelayRepository {
	if log == nil {
		log = logging.Discard()
	}
	return &relayRepositoryImpl{
		httpClient: httpClient,
		url:        detailsURL,
		log:        log,
	}
}

func (r *relayRepositoryImpl) FetchAll(ctx context.Context) (entity.Directory, error) {
	var doc detailsDocument
	if err := r.httpClient.FetchJSON(ctx, r.url, &doc); err != nil {
		return entity.Directory{}, err
	}

	dir, err := doc.toDirectory()
	if err != nil {
		var ve util.ValidationError
		if errors.As(err, &ve) {
			return entity.Directory{}, &repository.DecodeError{Field: ve.Field, Err: errors.New(ve.Message)}
		}
		return entity.Directory{}, &repository.DecodeError{Err: err}
	}

	r.log.WithFields(logrus.Fields{"url": r.url, "relays": dir.Len()}).Debug("relay directory decoded")
	return dir, nil
}
