package registry

// The award and funder vocabularies live in external read services. This
// package provides typed read proxies for them, plus a registry that hands
// out shared instances to the serializer. Tests (and embedders that resolve
// vocabularies some other way) can populate a Registry with their own
// implementations.

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/zenodo-rdm/bridge/config"
	"github.com/zenodo-rdm/bridge/rdm"
)

// reads award (grant) vocabulary entries by identifier
type AwardService interface {
	Read(ctx context.Context, id string) (rdm.Award, error)
}

// reads funder vocabulary entries by identifier
type FunderService interface {
	Read(ctx context.Context, id string) (rdm.Funder, error)
}

// a registry of vocabulary read services
type Registry struct {
	Awards  AwardService
	Funders FunderService
}

// the shared registry instance, created on first use
var instance *Registry

// returns the process-wide registry, backed by the configured vocabulary
// endpoints
func Default() *Registry {
	if instance == nil {
		timeout := time.Duration(config.Vocabularies.Timeout) * time.Second
		instance = &Registry{
			Awards:  NewAwardService(config.Vocabularies.Awards.URL, timeout),
			Funders: NewFunderService(config.Vocabularies.Funders.URL, timeout),
		}
	}
	return instance
}

// this helper performs a GET request for a single vocabulary entry and maps
// the status code to our error types, returning the raw response body
func fetchEntry(ctx context.Context, client *http.Client, baseURL,
	vocabulary, id string) ([]byte, error) {

	u, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, err
	}
	u = u.JoinPath(url.PathEscape(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return io.ReadAll(resp.Body)
	case http.StatusNotFound:
		return nil, NotFoundError{Vocabulary: vocabulary, Id: id}
	case http.StatusGone:
		return nil, DeletedError{Vocabulary: vocabulary, Id: id}
	default:
		// try to fish an error message out of the response body
		var message struct {
			Message string `json:"message"`
		}
		body, _ := io.ReadAll(resp.Body)
		json.Unmarshal(body, &message)
		return nil, InvalidResponseError{
			Vocabulary: vocabulary,
			StatusCode: resp.StatusCode,
			Message:    message.Message,
		}
	}
}
