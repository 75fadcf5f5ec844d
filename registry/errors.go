package registry

import (
	"fmt"
)

// This error type is returned when a vocabulary entry is sought but not found.
type NotFoundError struct {
	Vocabulary, Id string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("The %s entry '%s' was not found", e.Vocabulary, e.Id)
}

// indicates that a vocabulary entry existed at some point but has been deleted
type DeletedError struct {
	Vocabulary, Id string
}

func (e DeletedError) Error() string {
	return fmt.Sprintf("The %s entry '%s' has been deleted", e.Vocabulary, e.Id)
}

// indicates that a vocabulary service responded in a way we can't make sense of
type InvalidResponseError struct {
	Vocabulary string
	StatusCode int
	Message    string
}

func (e InvalidResponseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("Invalid response from the %s service (%d): %s",
			e.Vocabulary, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("Invalid response from the %s service (%d)",
		e.Vocabulary, e.StatusCode)
}

// This error type is returned when an HTTPS request is redirected to an
// insecure (HTTP) endpoint.
type DowngradedRedirectError struct {
	Endpoint string
}

func (e DowngradedRedirectError) Error() string {
	return fmt.Sprintf("HTTPS request redirected to insecure endpoint %s", e.Endpoint)
}
