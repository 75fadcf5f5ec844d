package github

import (
	"fmt"
)

// This error type is returned when metadata carried in a release file
// (".zenodo.json" or "CITATION.cff") can't be extracted.
type MetadataError struct {
	// the name of the offending file
	File string
	// the underlying problem
	Err error
}

func (e MetadataError) Error() string {
	return fmt.Sprintf("Extra metadata failed for file %s: %s", e.File, e.Err.Error())
}

func (e MetadataError) Unwrap() error {
	return e.Err
}

// indicates that the GitHub API responded in a way we can't make sense of
type APIError struct {
	Resource   string
	StatusCode int
}

func (e APIError) Error() string {
	return fmt.Sprintf("GitHub API error for %s: %d", e.Resource, e.StatusCode)
}

// indicates that a stored access token couldn't be decrypted with the
// configured fernet key
type InvalidTokenError struct{}

func (e InvalidTokenError) Error() string {
	return "The stored GitHub access token could not be decrypted"
}
