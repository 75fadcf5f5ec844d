package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/zenodo-rdm/bridge/rdm"
)

// a read proxy for the funders vocabulary service
type funderService struct {
	// base URL for the service's read endpoint
	URL string
	// HTTP client with strict transport security
	Client http.Client
}

// constructs a proxy that reads funders from the service at the given base URL
func NewFunderService(baseURL string, timeout time.Duration) FunderService {
	return &funderService{
		URL:    baseURL,
		Client: SecureHttpClient(timeout),
	}
}

func (s *funderService) Read(ctx context.Context, id string) (rdm.Funder, error) {
	var funder rdm.Funder
	body, err := fetchEntry(ctx, &s.Client, s.URL, "funder", id)
	if err != nil {
		return funder, err
	}
	err = json.Unmarshal(body, &funder)
	return funder, err
}
