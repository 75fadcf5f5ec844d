package journal

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/frictionlessdata/datapackage-go/datapackage"
	"github.com/frictionlessdata/datapackage-go/validator"
	"github.com/google/uuid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/zenodo-rdm/bridge/config"
)

// This is the release journal, which logs all processed releases. The journal
// is a table of release records (one per processed release).

// a record storing all information relevant to a processed release
type Record struct {
	// UUID associated with the processing of the release
	Id uuid.UUID `json:"id"`
	// the repository ("owner/repo") and tag of the release
	Repo string `json:"repo"`
	Tag  string `json:"tag"`
	// identifier of the deposit record created for the release (if any)
	RecordId string `json:"record_id,omitempty"`
	// times at which processing started and completed
	StartTime time.Time `json:"start_time"`
	StopTime  time.Time `json:"stop_time"`
	// outcome of the processing ("succeeded" or "failed")
	Status string `json:"status"`
	// number of files published with the release
	NumFiles int `json:"num_files"`
	// manifest describing the release's files (stored separate from record)
	Manifest *datapackage.Package `json:"-"`
}

// initializes the release journal, reporting an error if its database can't
// be opened
func Init() error {
	if IsOpen() {
		return nil
	}

	// open the database before spawning the goroutine so a failure surfaces
	// to the caller
	dbPath := filepath.Join(config.Service.DataDirectory, "release_journal.db")
	conn, err := sqlite.OpenConn(dbPath, sqlite.OpenReadWrite|sqlite.OpenCreate|sqlite.OpenWAL)
	if err != nil {
		return &CantOpenError{Message: err.Error()}
	}
	if err := sqlitex.ExecuteScript(conn, journalSchema, nil); err != nil {
		conn.Close()
		return &CantOpenError{Message: err.Error()}
	}

	openChannels()
	go releaseJournalProcess(conn)
	return nil
}

// saves and closes the release journal (if it's been opened)
func Finalize() error {
	if IsOpen() {
		channels_.Input.Shutdown <- struct{}{}
		closeChannels()
	}
	return nil
}

// returns true if the journal is open for writing, false if not
func IsOpen() bool {
	if channels_.Open { // has Init() been called?
		channels_.Input.CheckIfOpen <- struct{}{}
		select {
		case isOpen := <-channels_.Output.IsOpen:
			return isOpen
		case <-time.After(1 * time.Second): // after a second, we assume the goroutine has crashed
			closeChannels()
			return false
		}
	}
	return false
}

// records a processed release
// record: the record containing all release processing information
func RecordRelease(record Record) error {
	switch record.Status {
	case "succeeded", "failed":
		// pass-through (see below)
	default:
		return &NewRecordError{
			Id:      record.Id,
			Message: fmt.Sprintf("Invalid status: %s", record.Status),
		}
	}

	if !IsOpen() {
		return &NotOpenError{}
	}

	channels_.Input.CreateRecord <- record
	return <-channels_.Output.Error
}

// retrieves the record for the release processing with the given ID
func ReleaseRecord(id uuid.UUID) (Record, error) {
	if !IsOpen() {
		return Record{}, &NotOpenError{}
	}
	channels_.Input.FetchRecord <- id
	select {
	case record := <-channels_.Output.Record:
		return record, nil
	case err := <-channels_.Output.Error:
		return Record{}, err
	}
}

// retrieves records for releases whose processing started and finished within
// the time range with the given (inclusive) bounds
// start: the beginning of the time period of interest
// stop: the end of the time period of interest
func Records(start, stop time.Time) ([]Record, error) {
	if !IsOpen() {
		return nil, &NotOpenError{}
	}
	channels_.Input.FetchRecords <- TimeRange{Start: start, Stop: stop}
	select {
	case records := <-channels_.Output.Records:
		return records, nil
	case err := <-channels_.Output.Error:
		return nil, err
	}
}

//-----------
// Internals
//-----------

// The release journal gets its own goroutine so it doesn't bring down the
// entire service if it crashes. Here we define "input" channels (main process
// -> goroutine) and "output" channels (goroutine -> main process) for passing
// data back and forth

type TimeRange struct {
	Start, Stop time.Time
}

var channels_ struct {
	Open  bool // true if channels are open, false if not
	Input struct {
		CreateRecord chan Record    // for creating new records
		CheckIfOpen  chan struct{}  // for checking to see whether the database is open
		FetchRecord  chan uuid.UUID // for fetching a single record by ID
		FetchRecords chan TimeRange // for fetching records within a time range
		Shutdown     chan struct{}  // for shutting down the database
	}

	Output struct {
		Record  chan Record   // for returning a single record
		Records chan []Record // for returning records
		Error   chan error    // for returning errors
		IsOpen  chan bool     // for answering queries about whether the database is open
	}
}

// schema for the journal database: one row per processed release, with the
// file manifest stored alongside as a JSON descriptor
const journalSchema = `
CREATE TABLE IF NOT EXISTS releases (
	id TEXT PRIMARY KEY,
	repo TEXT NOT NULL,
	tag TEXT NOT NULL,
	record_id TEXT,
	status TEXT NOT NULL,
	start_time TEXT NOT NULL,
	stop_time TEXT NOT NULL,
	num_files INTEGER,
	manifest TEXT
);
CREATE INDEX IF NOT EXISTS releases_by_start_time ON releases(start_time);
`

func releaseJournalProcess(conn *sqlite.Conn) {

	// handle requests
	running := true
	for running {
		select {

		case <-channels_.Input.CheckIfOpen:
			channels_.Output.IsOpen <- true // always true if this goroutine is running!

		case record := <-channels_.Input.CreateRecord:
			err := createRecord(conn, record)
			channels_.Output.Error <- err

		case id := <-channels_.Input.FetchRecord:
			record, err := fetchRecord(conn, id)
			if err != nil {
				channels_.Output.Error <- err
			} else {
				channels_.Output.Record <- record
			}

		case timeRange := <-channels_.Input.FetchRecords:
			records, err := fetchRecords(conn, timeRange.Start, timeRange.Stop)
			if err != nil {
				channels_.Output.Error <- err
			} else {
				channels_.Output.Records <- records
			}

		case <-channels_.Input.Shutdown:
			err := conn.Close()
			if err != nil {
				channels_.Output.Error <- &CantCloseError{
					Message: err.Error(),
				}
			}
			running = false
		}
	}
}

func openChannels() {
	channels_.Open = true
	channels_.Input.CreateRecord = make(chan Record)
	channels_.Input.CheckIfOpen = make(chan struct{})
	channels_.Input.FetchRecord = make(chan uuid.UUID)
	channels_.Input.FetchRecords = make(chan TimeRange)
	channels_.Input.Shutdown = make(chan struct{})
	channels_.Output.Record = make(chan Record)
	channels_.Output.Records = make(chan []Record)
	channels_.Output.Error = make(chan error)
	channels_.Output.IsOpen = make(chan bool)
}

func closeChannels() {
	channels_.Open = false
	close(channels_.Input.CreateRecord)
	close(channels_.Input.CheckIfOpen)
	close(channels_.Input.FetchRecord)
	close(channels_.Input.FetchRecords)
	close(channels_.Input.Shutdown)
	close(channels_.Output.Record)
	close(channels_.Output.Records)
	close(channels_.Output.Error)
	close(channels_.Output.IsOpen)
}

func createRecord(conn *sqlite.Conn, record Record) error {
	// if the release carries a manifest, store its JSON descriptor alongside
	var manifest string
	if record.Manifest != nil {
		jsonManifest, err := json.Marshal(record.Manifest.Descriptor())
		if err != nil {
			return &NewRecordError{
				Id:      record.Id,
				Message: err.Error(),
			}
		}
		manifest = string(jsonManifest)
	}

	err := sqlitex.Execute(conn,
		`INSERT INTO releases (id, repo, tag, record_id, status, start_time,
		 stop_time, num_files, manifest) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		&sqlitex.ExecOptions{
			Args: []any{
				record.Id.String(), record.Repo, record.Tag, record.RecordId,
				record.Status, record.StartTime.UTC().Format(time.RFC3339),
				record.StopTime.UTC().Format(time.RFC3339), record.NumFiles,
				manifest,
			},
		})
	if err != nil {
		return &NewRecordError{
			Id:      record.Id,
			Message: err.Error(),
		}
	}
	return nil
}

// reads a release record out of the given statement's current result row
func scanRecord(stmt *sqlite.Stmt) (Record, error) {
	id, err := uuid.Parse(stmt.ColumnText(0))
	if err != nil {
		return Record{}, err
	}
	record := Record{
		Id:       id,
		Repo:     stmt.ColumnText(1),
		Tag:      stmt.ColumnText(2),
		RecordId: stmt.ColumnText(3),
		Status:   stmt.ColumnText(4),
		NumFiles: stmt.ColumnInt(7),
	}
	record.StartTime, err = time.Parse(time.RFC3339, stmt.ColumnText(5))
	if err != nil {
		return Record{}, &InvalidRecordError{Id: id, Message: err.Error()}
	}
	record.StopTime, err = time.Parse(time.RFC3339, stmt.ColumnText(6))
	if err != nil {
		return Record{}, &InvalidRecordError{Id: id, Message: err.Error()}
	}

	// revive the manifest from its stored descriptor (this can be slow)
	if manifest := stmt.ColumnText(8); manifest != "" {
		record.Manifest, err = datapackage.FromString(manifest, "manifest.json",
			validator.InMemoryLoader())
		if err != nil {
			return Record{}, &InvalidRecordError{
				Id:      id,
				Message: "unable to retrieve the manifest for the release",
			}
		}
	}
	return record, nil
}

const recordColumns = `id, repo, tag, record_id, status, start_time, stop_time,
	num_files, manifest`

func fetchRecord(conn *sqlite.Conn, id uuid.UUID) (Record, error) {
	var record Record
	found := false
	err := sqlitex.Execute(conn,
		fmt.Sprintf("SELECT %s FROM releases WHERE id = ?", recordColumns),
		&sqlitex.ExecOptions{
			Args: []any{id.String()},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var err error
				record, err = scanRecord(stmt)
				found = err == nil
				return err
			},
		})
	if err != nil {
		return Record{}, err
	}
	if !found {
		return Record{}, &RecordNotFoundError{Id: id}
	}
	return record, nil
}

func fetchRecords(conn *sqlite.Conn, start, stop time.Time) ([]Record, error) {
	records := make([]Record, 0)
	err := sqlitex.Execute(conn,
		fmt.Sprintf(`SELECT %s FROM releases WHERE start_time >= ? AND
		 stop_time <= ? ORDER BY start_time`, recordColumns),
		&sqlitex.ExecOptions{
			Args: []any{
				start.UTC().Format(time.RFC3339),
				stop.UTC().Format(time.RFC3339),
			},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				record, err := scanRecord(stmt)
				if err != nil {
					return err
				}
				records = append(records, record)
				return nil
			},
		})
	return records, err
}
