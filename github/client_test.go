package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// a release webhook payload with the fields we pick out
const releasePayload = `{
	"action": "published",
	"release": {
		"tag_name": "v1.4.2",
		"name": "A big release",
		"body": "Now with more things.",
		"published_at": "2023-06-14T12:30:00Z",
		"assets": [
			{"name": "software.tar.gz", "size": 1024, "download_count": 3}
		]
	},
	"repository": {
		"full_name": "jane/software",
		"description": "Software that does things."
	}
}`

// tests whether a release webhook payload parses into a release
func TestParseReleasePayload(t *testing.T) {
	assert := assert.New(t)
	release, err := ParseReleasePayload([]byte(releasePayload))
	assert.Nil(err)

	assert.Equal("jane/software", release.Repo)
	assert.Equal("Software that does things.", release.RepoDescription)
	assert.Equal("v1.4.2", release.Tag)
	assert.Equal("A big release", release.Title)
	assert.Equal("Now with more things.", release.Body)
	assert.Equal("2023-06-14T12:30:00Z", release.PublishedAt)
	require.Len(t, release.Assets, 1)
	assert.Equal("software.tar.gz", release.Assets[0].Name)
	assert.Equal(int64(1024), release.Assets[0].Size)
}

// tests whether payloads without a repository or tag are rejected
func TestParseIncompleteReleasePayload(t *testing.T) {
	assert := assert.New(t)
	_, err := ParseReleasePayload([]byte(`{"release": {"name": "nameless"}}`))
	assert.NotNil(err)

	_, err = ParseReleasePayload([]byte(`not json`))
	assert.NotNil(err)
}

// tests whether release files are fetched through the contents API, with a
// missing file reported as nil content
func TestRetrieveRemoteFile(t *testing.T) {
	assert := assert.New(t)
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal("application/vnd.github.raw+json", r.Header.Get("Accept"))
			assert.Equal("Bearer token-123", r.Header.Get("Authorization"))
			assert.Equal("v1.4.2", r.URL.Query().Get("ref"))
			switch r.URL.Path {
			case "/repos/jane/software/contents/.zenodo.json":
				w.Write([]byte(`{"title": "My Software"}`))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
	defer server.Close()

	client := Client{URL: server.URL, Token: "token-123"}
	retriever := client.ReleaseFiles("jane/software", "v1.4.2")

	content, err := retriever.RetrieveRemoteFile(context.Background(), zenodoJsonFileName)
	assert.Nil(err)
	assert.Equal(`{"title": "My Software"}`, string(content))

	content, err = retriever.RetrieveRemoteFile(context.Background(), citationCffFileName)
	assert.Nil(err)
	assert.Nil(content)
}

// tests whether an unexpected status from the contents API surfaces as an
// API error
func TestRetrieveRemoteFileError(t *testing.T) {
	assert := assert.New(t)
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
	defer server.Close()

	client := Client{URL: server.URL}
	retriever := client.ReleaseFiles("jane/software", "v1.4.2")
	_, err := retriever.RetrieveRemoteFile(context.Background(), zenodoJsonFileName)
	assert.NotNil(err)
	apiErr, ok := err.(APIError)
	assert.True(ok)
	assert.Equal(http.StatusForbidden, apiErr.StatusCode)
}

// tests whether repository contributors are extracted, skipping bots and
// falling back to the login when no display name is set
func TestContributors(t *testing.T) {
	assert := assert.New(t)
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal("/repos/jane/software/contributors", r.URL.Path)
			w.Write([]byte(`[
				{"login": "jdoe", "name": "Jane Doe", "company": "Wonder University", "type": "User"},
				{"login": "octocat", "type": "User"},
				{"login": "dependabot[bot]", "type": "Bot"}
			]`))
		}))
	defer server.Close()

	client := Client{URL: server.URL}
	contributors, err := client.Contributors(context.Background(), "jane/software")
	assert.Nil(err)
	require.Len(t, contributors, 2)
	assert.Equal("Jane Doe", contributors[0].Name)
	assert.Equal("Wonder University", contributors[0].Affiliation)
	assert.Equal("octocat", contributors[1].Name)
}
