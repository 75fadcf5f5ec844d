package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/zenodo-rdm/bridge/rdm"
)

// this type encodes a JSON object for responding to root queries
type ServiceInfoResponse struct {
	Name          string `json:"name" example:"rdm-bridge" doc:"The name of the service API"`
	Version       string `json:"version" example:"1.0.0" doc:"The version string (major.minor.patch)"`
	Uptime        int    `json:"uptime" example:"345600" doc:"The time the service has been up (seconds)"`
	Documentation string `json:"documentation" example:"/docs" doc:"The OpenAPI documentation endpoint"`
}

// a response for a release processing request (POST)
type ReleaseResponse struct {
	// release processing job ID
	Id uuid.UUID `json:"id" doc:"a UUID for the processed release"`
	// the repository ("owner/repo") and tag of the release
	Repo string `json:"repo"`
	Tag  string `json:"tag"`
	// the metadata extracted for the release
	Metadata rdm.Metadata `json:"metadata"`
}

// a single entry in a response for a release journal query (GET)
type ReleaseRecordResponse struct {
	// release processing job ID
	Id uuid.UUID `json:"id"`
	// the repository ("owner/repo") and tag of the release
	Repo string `json:"repo"`
	Tag  string `json:"tag"`
	// identifier of the deposit record created for the release (if any)
	RecordId string `json:"record_id,omitempty"`
	// outcome of the processing ("succeeded" or "failed")
	Status string `json:"status"`
	// times at which processing started and completed (ISO8601)
	StartTime string `json:"start_time"`
	StopTime  string `json:"stop_time"`
	// number of files published with the release
	NumFiles int `json:"num_files"`
}

// BridgeService defines the interface for our record bridge service.
type BridgeService interface {
	// Starts the service on the selected port, returning an error that indicates
	// success or failure.
	Start(port int) error
	// Gracefully shuts down the service without interrupting active connections.
	Shutdown(ctx context.Context) error
	// Closes down the service, freeing all resources.
	Close()
}
