package config

// configuration for a single vocabulary read service
type vocabularyEndpointConfig struct {
	// base URL for the vocabulary's REST read endpoint
	URL string `json:"url" yaml:"url"`
}

// a type with vocabulary lookup service parameters
type vocabulariesConfig struct {
	// award (grant) vocabulary read service
	Awards vocabularyEndpointConfig `json:"awards" yaml:"awards"`
	// funder vocabulary read service
	Funders vocabularyEndpointConfig `json:"funders" yaml:"funders"`
	// timeout for vocabulary lookups (seconds)
	Timeout int `json:"timeout" yaml:"timeout"`
}
