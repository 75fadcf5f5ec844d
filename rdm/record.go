package rdm

// This package defines the structured (RDM) record representation used by the
// bridge. The types mirror the record shape served by the RDM REST API; only
// the fields consumed by the legacy serializer and the release adapter are
// modeled.

// a persistent identifier registered for a record
type PID struct {
	// the identifier itself (e.g. "10.5281/zenodo.1234")
	Identifier string `json:"identifier"`
	// the provider managing the identifier ("datacite", "external", ...)
	Provider string `json:"provider,omitempty"`
	// the provider client used for registration
	Client string `json:"client,omitempty"`
}

// a record owner reference
type Owner struct {
	// numeric user identifier
	User int `json:"user"`
}

// access information carried on a record's parent
type ParentAccess struct {
	// the users owning the record
	OwnedBy []Owner `json:"owned_by"`
}

// the parent (concept) record
type Parent struct {
	// parent record identifier
	Id string `json:"id"`
	// parent-level access information
	Access ParentAccess `json:"access"`
}

// embargo information for a record
type Embargo struct {
	// true if the embargo is currently active
	Active bool `json:"active"`
	// the date (ISO8601) on which the embargo lifts
	Until string `json:"until,omitempty"`
	// the reason for the embargo
	Reason string `json:"reason,omitempty"`
}

// access settings for a record and its files
type Access struct {
	// visibility of the record itself ("public" or "restricted")
	Record string `json:"record"`
	// visibility of the record's files ("public" or "restricted")
	Files string `json:"files"`
	// embargo settings, if any
	Embargo *Embargo `json:"embargo,omitempty"`
}

// an entry describing a single file attached to a record
type FileEntry struct {
	// the filename
	Key string `json:"key"`
	// the file's size in bytes
	Size int64 `json:"size"`
	// the file's checksum ("md5:...")
	Checksum string `json:"checksum"`
}

// a journal article's publishing venue (custom field journal:journal)
type Journal struct {
	Title  string `json:"title,omitempty"`
	Volume string `json:"volume,omitempty"`
	Issue  string `json:"issue,omitempty"`
	Pages  string `json:"pages,omitempty"`
}

// a conference or meeting (custom field meeting:meeting)
type Meeting struct {
	Title       string `json:"title,omitempty"`
	Acronym     string `json:"acronym,omitempty"`
	Dates       string `json:"dates,omitempty"`
	Place       string `json:"place,omitempty"`
	URL         string `json:"url,omitempty"`
	Session     string `json:"session,omitempty"`
	SessionPart string `json:"session_part,omitempty"`
}

// imprint information for a book or report (custom field imprint:imprint)
type Imprint struct {
	Title string `json:"title,omitempty"`
	ISBN  string `json:"isbn,omitempty"`
	Pages string `json:"pages,omitempty"`
	Place string `json:"place,omitempty"`
}

// the set of custom fields understood by the bridge
type CustomFields struct {
	Journal *Journal `json:"journal:journal,omitempty"`
	Meeting *Meeting `json:"meeting:meeting,omitempty"`
	Imprint *Imprint `json:"imprint:imprint,omitempty"`
	// the university awarding a thesis
	ThesisUniversity string `json:"thesis:university,omitempty"`
}

// a structured (RDM) record
type Record struct {
	// record identifier
	Id string `json:"id"`
	// creation and modification timestamps (ISO8601)
	Created string `json:"created"`
	Updated string `json:"updated"`
	// publication state flags
	IsPublished bool `json:"is_published"`
	IsDraft     bool `json:"is_draft"`
	// the parent (concept) record
	Parent Parent `json:"parent"`
	// persistent identifiers, keyed by scheme
	Pids map[string]PID `json:"pids"`
	// access settings
	Access Access `json:"access"`
	// the record's descriptive metadata
	Metadata Metadata `json:"metadata"`
	// custom fields (journal, meeting, imprint, thesis)
	CustomFields CustomFields `json:"custom_fields,omitempty"`
	// links to record resources, carried through as-is
	Links map[string]string `json:"links,omitempty"`
	// files attached to the record
	Files []FileEntry `json:"files,omitempty"`
}
