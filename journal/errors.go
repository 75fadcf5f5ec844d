package journal

import (
	"fmt"

	"github.com/google/uuid"
)

// indicates that the journal is not open and cannot respond to the given request
type NotOpenError struct {
}

func (e NotOpenError) Error() string {
	return "The release journal is not open for reading or writing."
}

// indicates that the journal database could not be opened
type CantOpenError struct {
	Message string
}

func (e CantOpenError) Error() string {
	return fmt.Sprintf("The release journal could not be opened: %s", e.Message)
}

// indicates that the journal database could not be closed
type CantCloseError struct {
	Message string
}

func (e CantCloseError) Error() string {
	return fmt.Sprintf("The release journal could not be closed: %s", e.Message)
}

// indicates that the release with the given ID has no record in the journal
type RecordNotFoundError struct {
	Id uuid.UUID
}

func (e RecordNotFoundError) Error() string {
	return fmt.Sprintf("No release record was found with ID %s", e.Id.String())
}

// indicates that a new release record could not be created
type NewRecordError struct {
	Id      uuid.UUID
	Message string
}

func (e NewRecordError) Error() string {
	return fmt.Sprintf("Could not create a new release record with ID %s: %s", e.Id.String(), e.Message)
}

// indicates that a release record stored in the journal is malformed
type InvalidRecordError struct {
	Id      uuid.UUID
	Message string
}

func (e InvalidRecordError) Error() string {
	return fmt.Sprintf("Invalid record for release with ID %s: %s", e.Id.String(), e.Message)
}
