package config

import (
	"fmt"
	"log"
	"os"

	"github.com/fernet/fernet-go"
	"gopkg.in/yaml.v3"
)

// a type with service configuration parameters
type serviceConfig struct {
	// Port on which the service listens.
	Port int `json:"port" yaml:"port"`
	// Maximum number of allowed incoming connections.
	MaxConnections int `json:"max_connections" yaml:"max_connections"`
	// Directory in which the service keeps its data files (token file,
	// release journal).
	DataDirectory string `json:"data_dir" yaml:"data_dir"`
	// Fernet key used to decrypt the service's access token file. If blank,
	// the token file is read as plaintext.
	Secret string `json:"secret" yaml:"secret"`
}

// global config variables
var Service serviceConfig
var Vocabularies vocabulariesConfig
var Github githubConfig

// This struct performs the unmarshalling from the YAML config file and then
// copies its fields to the globals above.
type configFile struct {
	Service      serviceConfig      `yaml:"service"`
	Vocabularies vocabulariesConfig `yaml:"vocabularies"`
	Github       githubConfig       `yaml:"github"`
}

// This helper reads configuration data, returning an error indicating success
// or failure. All environment variables of the form ${ENV_VAR} are expanded.
func readConfig(bytes []byte) error {
	// Before we do anything else, expand any provided environment variables.
	bytes = []byte(os.ExpandEnv(string(bytes)))

	var conf configFile
	conf.Service.Port = 8080
	conf.Service.MaxConnections = 100
	conf.Vocabularies.Timeout = 30
	err := yaml.Unmarshal(bytes, &conf)
	if err != nil {
		log.Printf("Couldn't parse configuration data: %s\n", err)
		return err
	}

	// copy the config data into place
	Service = conf.Service
	Vocabularies = conf.Vocabularies
	Github = conf.Github

	return err
}

// This helper validates the given service parameters, returning an
// error indicating success or failure.
func validateServiceParameters(params serviceConfig) error {
	if params.Port < 0 || params.Port > 65535 {
		return fmt.Errorf("Invalid port: %d (must be 0-65535)", params.Port)
	}
	if params.MaxConnections <= 0 {
		return fmt.Errorf("Invalid max_connections: %d (must be positive)",
			params.MaxConnections)
	}
	if params.Secret != "" {
		if _, err := fernet.DecodeKey(params.Secret); err != nil {
			return fmt.Errorf("Invalid service secret: %s", err.Error())
		}
	}
	return nil
}

// This helper validates the given config file, returning an error that
// indicates success or failure.
func validateConfig() error {
	err := validateServiceParameters(Service)
	if err != nil {
		return err
	}

	// Do we know where to find the award/funder vocabularies?
	if Vocabularies.Awards.URL == "" {
		return fmt.Errorf("No awards vocabulary URL was provided!")
	}
	if Vocabularies.Funders.URL == "" {
		return fmt.Errorf("No funders vocabulary URL was provided!")
	}
	if Vocabularies.Timeout <= 0 {
		return fmt.Errorf("Invalid vocabularies timeout: %d (must be positive)",
			Vocabularies.Timeout)
	}

	return validateGithubParameters(Github)
}

// Initializes the bridge service configuration using the given YAML byte
// data.
func Init(yamlData []byte) error {

	// Read the configuration from our YAML file.
	err := readConfig(yamlData)
	if err != nil {
		return err
	}

	// Validate the configuration.
	err = validateConfig()
	return err
}
