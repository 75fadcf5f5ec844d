package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/tidwall/gjson"

	"github.com/zenodo-rdm/bridge/config"
	"github.com/zenodo-rdm/bridge/registry"
)

const defaultAPIURL = "https://api.github.com"

// retrieves a named file from a release's source tree; a nil content with a
// nil error means the file does not exist
type RemoteFileRetriever interface {
	RetrieveRemoteFile(ctx context.Context, name string) ([]byte, error)
}

// a client for the GitHub REST API
type Client struct {
	// base URL for the API
	URL string
	// decrypted access token (empty for anonymous access)
	Token string
	// HTTP client with strict transport security
	Client http.Client
}

// constructs a GitHub API client from our configuration; stored access
// tokens are kept fernet-encrypted and decrypted here
func NewClient() (*Client, error) {
	client := Client{
		URL:    config.Github.APIURL,
		Client: registry.SecureHttpClient(30 * time.Second),
	}
	if client.URL == "" {
		client.URL = defaultAPIURL
	}

	if config.Github.Token != "" {
		key, err := fernet.DecodeKey(config.Github.Key)
		if err != nil {
			return nil, err
		}
		token := fernet.VerifyAndDecrypt([]byte(config.Github.Token), 0,
			[]*fernet.Key{key})
		if token == nil {
			return nil, InvalidTokenError{}
		}
		client.Token = string(token)
	}
	return &client, nil
}

// performs a GET request on the given resource with the given Accept header,
// returning the response
func (c *Client) get(ctx context.Context, resource, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/%s", c.URL, resource), http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)
	if c.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.Token))
	}
	return c.Client.Do(req)
}

// returns a retriever for files in the given repository at the given ref
// (usually a release tag)
func (c *Client) ReleaseFiles(repo, ref string) RemoteFileRetriever {
	return &fileRetriever{client: c, repo: repo, ref: ref}
}

// retrieves files through the contents API
type fileRetriever struct {
	client    *Client
	repo, ref string
}

func (r *fileRetriever) RetrieveRemoteFile(ctx context.Context, name string) ([]byte, error) {
	resource := fmt.Sprintf("repos/%s/contents/%s?ref=%s", r.repo,
		url.PathEscape(name), url.QueryEscape(r.ref))
	resp, err := r.client.get(ctx, resource, "application/vnd.github.raw+json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return io.ReadAll(resp.Body)
	case http.StatusNotFound:
		// the file does not exist in the release tree
		return nil, nil
	default:
		return nil, APIError{Resource: resource, StatusCode: resp.StatusCode}
	}
}

// fetches the contributors of the given repository, most-contributions first
func (c *Client) Contributors(ctx context.Context, repo string) ([]Contributor, error) {
	resource := fmt.Sprintf("repos/%s/contributors", repo)
	resp, err := c.get(ctx, resource, "application/vnd.github+json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, APIError{Resource: resource, StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var contributors []Contributor
	for _, entry := range gjson.ParseBytes(body).Array() {
		// bots don't belong on a citation
		if entry.Get("type").String() == "Bot" {
			continue
		}
		name := entry.Get("name").String()
		if name == "" {
			name = entry.Get("login").String()
		}
		contributors = append(contributors, Contributor{
			Name:        name,
			Affiliation: entry.Get("company").String(),
		})
	}
	return contributors, nil
}

// Parses a GitHub release webhook payload into a Release. Only the fields
// the metadata extraction needs are picked out of the payload.
func ParseReleasePayload(payload []byte) (Release, error) {
	if !gjson.ValidBytes(payload) {
		return Release{}, fmt.Errorf("Invalid release payload")
	}
	body := gjson.ParseBytes(payload)

	release := Release{
		Repo:            body.Get("repository.full_name").String(),
		RepoDescription: body.Get("repository.description").String(),
		Tag:             body.Get("release.tag_name").String(),
		Title:           body.Get("release.name").String(),
		Body:            body.Get("release.body").String(),
		PublishedAt:     body.Get("release.published_at").String(),
	}
	if release.Repo == "" || release.Tag == "" {
		return release, fmt.Errorf("Release payload lacks a repository or tag")
	}

	for _, asset := range body.Get("release.assets").Array() {
		release.Assets = append(release.Assets, Asset{
			Name: asset.Get("name").String(),
			Size: asset.Get("size").Int(),
		})
	}
	return release, nil
}
