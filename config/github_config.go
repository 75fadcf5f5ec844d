package config

import (
	"fmt"

	"github.com/fernet/fernet-go"
)

// a type with GitHub API access parameters
type githubConfig struct {
	// base URL for the GitHub REST API
	APIURL string `json:"api_url" yaml:"api_url"`
	// fernet key used to decrypt stored access tokens
	Key string `json:"key" yaml:"key"`
	// fernet-encrypted access token used for remote file retrieval
	Token string `json:"token" yaml:"token"`
}

// This helper validates the given GitHub parameters. The API URL is optional
// (it defaults to the public GitHub API), but a token must be accompanied by
// a well-formed fernet key.
func validateGithubParameters(params githubConfig) error {
	if params.Token != "" {
		if params.Key == "" {
			return fmt.Errorf("A GitHub token was provided without a fernet key!")
		}
		_, err := fernet.DecodeKey(params.Key)
		if err != nil {
			return fmt.Errorf("Invalid GitHub fernet key: %s", err.Error())
		}
	}
	return nil
}
