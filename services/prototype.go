package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humamux"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/net/netutil"

	"github.com/zenodo-rdm/bridge/auth"
	"github.com/zenodo-rdm/bridge/config"
	"github.com/zenodo-rdm/bridge/github"
	"github.com/zenodo-rdm/bridge/journal"
	"github.com/zenodo-rdm/bridge/legacy"
	"github.com/zenodo-rdm/bridge/rdm"
	"github.com/zenodo-rdm/bridge/registry"
)

// Version numbers
var majorVersion = 0
var minorVersion = 1
var patchVersion = 0

// Version string
var version = fmt.Sprintf("%d.%d.%d", majorVersion, minorVersion, patchVersion)

// This type implements the BridgeService interface, translating records
// between their legacy and structured representations and extracting deposit
// metadata from GitHub releases.
type prototype struct {
	// name of the service
	Name string
	// service version identifier
	Version string
	// time which the service was started
	StartTime time.Time
	// port on which the service currently runs
	Port int
	// router for REST endpoints
	Router *mux.Router
	// API wrapper
	API huma.API
	// HTTP server.
	Server *http.Server
	// matches access tokens to users
	Authenticator *auth.Authenticator
	// vocabulary read services used by the serializer
	Registry *registry.Registry
}

// authorizes clients for the service, returning the user's name and an error
// describing any issue encountered
func (service *prototype) authorize(authorizationHeader string) (auth.User, error) {
	if !strings.HasPrefix(authorizationHeader, "Bearer ") {
		return auth.User{}, huma.Error401Unauthorized("Invalid authorization header")
	}
	b64Token := authorizationHeader[len("Bearer "):]
	accessTokenBytes, err := base64.StdEncoding.DecodeString(b64Token)
	if err != nil {
		return auth.User{}, huma.Error401Unauthorized(err.Error())
	}
	accessToken := strings.TrimSpace(string(accessTokenBytes))

	user, err := service.Authenticator.GetUser(accessToken)
	if err != nil {
		return auth.User{}, huma.Error401Unauthorized(err.Error())
	}
	return user, nil
}

type ServiceInfoOutput struct {
	Body ServiceInfoResponse `doc:"information about the service itself"`
}

// handler method for the API root (no authorization needed for this one)
func (service *prototype) getRoot(ctx context.Context,
	input *struct{}) (*ServiceInfoOutput, error) {

	slog.Info("Querying root endpoint...")
	return &ServiceInfoOutput{
		Body: ServiceInfoResponse{
			Name:          service.Name,
			Version:       service.Version,
			Uptime:        int(service.uptime()),
			Documentation: "/docs",
		},
	}, nil
}

type LegacySerializationOutput struct {
	Body legacy.Record `doc:"The legacy rendition of the given structured record"`
}

// handler method for serializing a structured record to its legacy form
func (service *prototype) serializeToLegacy(ctx context.Context,
	input *struct {
		Authorization string     `header:"Authorization" doc:"Authorization header with encoded access token"`
		Body          rdm.Record `doc:"The structured record to serialize"`
		ContentType   string     `header:"Content-Type" doc:"Content-Type header (must be application/json)"`
	}) (*LegacySerializationOutput, error) {

	_, err := service.authorize(input.Authorization)
	if err != nil {
		return nil, err
	}

	slog.Info(fmt.Sprintf("Serializing record %s to its legacy form...", input.Body.Id))
	record, err := legacy.Serialize(ctx, input.Body, service.Registry)
	if err != nil {
		return nil, huma.Error502BadGateway(err.Error())
	}
	return &LegacySerializationOutput{Body: record}, nil
}

type RdmSerializationOutput struct {
	Body rdm.Record `doc:"The structured rendition of the given legacy metadata"`
}

// handler method for loading legacy metadata into its structured form
func (service *prototype) serializeToRdm(ctx context.Context,
	input *struct {
		Authorization string          `header:"Authorization" doc:"Authorization header with encoded access token"`
		Body          legacy.Metadata `doc:"The legacy metadata to load"`
		ContentType   string          `header:"Content-Type" doc:"Content-Type header (must be application/json)"`
	}) (*RdmSerializationOutput, error) {

	_, err := service.authorize(input.Authorization)
	if err != nil {
		return nil, err
	}

	slog.Info("Loading legacy metadata into its structured form...")
	record, err := legacy.Deserialize(input.Body)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}
	return &RdmSerializationOutput{Body: record}, nil
}

type ReleaseOutput struct {
	Body   ReleaseResponse `doc:"The metadata extracted for the processed release"`
	Status int
}

// handler method for processing a GitHub release webhook payload
func (service *prototype) processRelease(ctx context.Context,
	input *struct {
		Authorization string `header:"Authorization" doc:"Authorization header with encoded access token"`
		RawBody       []byte `doc:"A GitHub release webhook payload" contentType:"application/json"`
	}) (*ReleaseOutput, error) {

	_, err := service.authorize(input.Authorization)
	if err != nil {
		return nil, err
	}

	release, err := github.ParseReleasePayload(input.RawBody)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}
	slog.Info(fmt.Sprintf("Processing release %s of %s...", release.Tag, release.Repo))

	client, err := github.NewClient()
	if err != nil {
		return nil, err
	}
	release.Contributors, err = client.Contributors(ctx, release.Repo)
	if err != nil {
		// the default metadata simply goes without creators
		slog.Warn(fmt.Sprintf("Couldn't fetch contributors for %s: %s",
			release.Repo, err.Error()))
	}

	record := journal.Record{
		Id:        uuid.New(),
		Repo:      release.Repo,
		Tag:       release.Tag,
		StartTime: time.Now(),
		NumFiles:  len(release.Assets),
	}

	extractor := github.ReleaseMetadata{
		Release:   release,
		Retriever: client.ReleaseFiles(release.Repo, release.Tag),
	}
	metadata, extractionErr := extractor.Metadata(ctx)

	record.StopTime = time.Now()
	if extractionErr != nil {
		record.Status = "failed"
	} else {
		record.Status = "succeeded"
		record.Manifest, err = releaseManifest(release)
		if err != nil {
			slog.Error(fmt.Sprintf("Couldn't build a manifest for %s %s: %s",
				release.Repo, release.Tag, err.Error()))
		}
	}
	if err := journal.RecordRelease(record); err != nil {
		slog.Error(fmt.Sprintf("Couldn't journal release %s of %s: %s",
			release.Tag, release.Repo, err.Error()))
	}

	if extractionErr != nil {
		return nil, huma.Error422UnprocessableEntity(extractionErr.Error())
	}
	return &ReleaseOutput{
		Body: ReleaseResponse{
			Id:       record.Id,
			Repo:     release.Repo,
			Tag:      release.Tag,
			Metadata: metadata,
		},
		Status: http.StatusCreated,
	}, nil
}

type ReleaseRecordsOutput struct {
	Body []ReleaseRecordResponse `doc:"Journal records for releases processed within the given time window"`
}

// handler method for querying the release journal over a time window
func (service *prototype) getReleaseRecords(ctx context.Context,
	input *struct {
		Authorization string `header:"Authorization" doc:"Authorization header with encoded access token"`
		Since         string `query:"since" example:"2024-06-14T00:00:00Z" doc:"(Optional) the beginning of the time window (ISO8601)"`
		Until         string `query:"until" example:"2024-06-15T00:00:00Z" doc:"(Optional) the end of the time window (ISO8601)"`
	}) (*ReleaseRecordsOutput, error) {

	_, err := service.authorize(input.Authorization)
	if err != nil {
		return nil, err
	}

	since := time.Time{}
	if input.Since != "" {
		since, err = time.Parse(time.RFC3339, input.Since)
		if err != nil {
			return nil, huma.Error400BadRequest(fmt.Sprintf("Invalid since parameter: %s",
				input.Since))
		}
	}
	until := time.Now()
	if input.Until != "" {
		until, err = time.Parse(time.RFC3339, input.Until)
		if err != nil {
			return nil, huma.Error400BadRequest(fmt.Sprintf("Invalid until parameter: %s",
				input.Until))
		}
	}

	slog.Info("Querying the release journal...")
	records, err := journal.Records(since, until)
	if err != nil {
		return nil, err
	}
	output := &ReleaseRecordsOutput{
		Body: make([]ReleaseRecordResponse, 0, len(records)),
	}
	for _, record := range records {
		output.Body = append(output.Body, ReleaseRecordResponse{
			Id:        record.Id,
			Repo:      record.Repo,
			Tag:       record.Tag,
			RecordId:  record.RecordId,
			Status:    record.Status,
			StartTime: record.StartTime.Format(time.RFC3339),
			StopTime:  record.StopTime.Format(time.RFC3339),
			NumFiles:  record.NumFiles,
		})
	}
	return output, nil
}

// returns the uptime for the service in seconds
func (service *prototype) uptime() float64 {
	return time.Since(service.StartTime).Seconds()
}

// constructs a record bridge service given our configuration
func NewBridgeService() (BridgeService, error) {

	// validate our configuration
	if config.Vocabularies.Awards.URL == "" || config.Vocabularies.Funders.URL == "" {
		return nil, fmt.Errorf("No vocabulary endpoints were specified.")
	}

	service := new(prototype)
	service.Name = "RDM legacy bridge"
	service.Version = version
	service.Port = -1
	service.Registry = registry.Default()

	var err error
	service.Authenticator, err = auth.NewAuthenticator()
	if err != nil {
		return nil, err
	}

	// set up routing
	service.Router = mux.NewRouter()
	api := humamux.New(service.Router, huma.DefaultConfig(service.Name, service.Version))
	huma.Get(api, "/api/v1", service.getRoot)

	// API v1
	huma.Post(api, "/api/v1/serializations/legacy", service.serializeToLegacy)
	huma.Post(api, "/api/v1/serializations/rdm", service.serializeToRdm)
	huma.Post(api, "/api/v1/releases", service.processRelease)
	huma.Get(api, "/api/v1/releases", service.getReleaseRecords)

	return service, nil
}

// starts the record bridge service
func (service *prototype) Start(port int) error {
	slog.Info(fmt.Sprintf("Starting %s service on port %d...", service.Name, port))
	slog.Info(fmt.Sprintf("(Accepting up to %d connections)", config.Service.MaxConnections))

	service.StartTime = time.Now()

	// create a listener that limits the number of incoming connections
	service.Port = port
	listener, err := net.Listen("tcp", ":"+strconv.Itoa(port))
	if err != nil {
		return err
	}
	defer listener.Close()
	listener = netutil.LimitListener(listener, config.Service.MaxConnections)

	// start the server
	service.Server = &http.Server{
		Handler: service.Router}
	err = service.Server.Serve(listener)

	// we don't report the server closing as an error
	if err != http.ErrServerClosed {
		return err
	}
	return nil
}

// gracefully shuts down the service without interrupting active connections
func (service *prototype) Shutdown(ctx context.Context) error {
	if service.Server != nil {
		return service.Server.Shutdown(ctx)
	}
	return nil
}

// closes down the service abruptly, freeing all resources
func (service *prototype) Close() {
	if service.Server != nil {
		service.Server.Close()
	}
}
