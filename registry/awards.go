package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/zenodo-rdm/bridge/rdm"
)

// a read proxy for the awards vocabulary service
type awardService struct {
	// base URL for the service's read endpoint
	URL string
	// HTTP client with strict transport security
	Client http.Client
}

// constructs a proxy that reads awards from the service at the given base URL
func NewAwardService(baseURL string, timeout time.Duration) AwardService {
	return &awardService{
		URL:    baseURL,
		Client: SecureHttpClient(timeout),
	}
}

func (s *awardService) Read(ctx context.Context, id string) (rdm.Award, error) {
	var award rdm.Award
	body, err := fetchEntry(ctx, &s.Client, s.URL, "award", id)
	if err != nil {
		return award, err
	}
	err = json.Unmarshal(body, &award)
	return award, err
}
