package legacy

// This package implements the translation between the structured (RDM) record
// representation and the flat record representation served by the legacy REST
// API. The types here model the legacy payload.

// a file attached to a legacy record
type File struct {
	// the filename
	Key string `json:"key"`
	// the file's size in bytes
	Size int64 `json:"size"`
	// the file's checksum
	Checksum string `json:"checksum"`
}

// a creator of a legacy record
type Creator struct {
	// display name ("Family, Given")
	Name string `json:"name"`
	// the creator's primary affiliation
	Affiliation string `json:"affiliation,omitempty"`
	// the creator's ORCID identifier
	Orcid string `json:"orcid,omitempty"`
	// the creator's GND identifier
	Gnd string `json:"gnd,omitempty"`
}

// a contributor: a creator with a DataCite contribution type
type Contributor struct {
	Creator
	// the contribution type (English DataCite role title)
	Type string `json:"type,omitempty"`
}

// the funder of a legacy grant
type GrantFunder struct {
	Name    string `json:"name"`
	Doi     string `json:"doi,omitempty"`
	Country string `json:"country,omitempty"`
}

// a grant (award) funding a legacy record
type Grant struct {
	// the award number assigned by the funder
	Code string `json:"code,omitempty"`
	// the internal identifier "<funder DOI or ROR>::<award id>"
	InternalId string `json:"internal_id,omitempty"`
	// the award title (English when available)
	Title   string `json:"title,omitempty"`
	Acronym string `json:"acronym,omitempty"`
	// identifiers carried on the award
	URL string `json:"url,omitempty"`
	Doi string `json:"doi,omitempty"`
	// the funder granting the award
	Funder *GrantFunder `json:"funder,omitempty"`
}

// the usage license of a legacy record (the legacy API accepts exactly one)
type License struct {
	Id string `json:"id"`
}

// a journal article's publishing venue
type Journal struct {
	Title  string `json:"title,omitempty"`
	Volume string `json:"volume,omitempty"`
	Issue  string `json:"issue,omitempty"`
	Pages  string `json:"pages,omitempty"`
}

// a conference or meeting
type Meeting struct {
	Title       string `json:"title,omitempty"`
	Acronym     string `json:"acronym,omitempty"`
	Dates       string `json:"dates,omitempty"`
	Place       string `json:"place,omitempty"`
	URL         string `json:"url,omitempty"`
	Session     string `json:"session,omitempty"`
	SessionPart string `json:"session_part,omitempty"`
}

// imprint information for a book or report
type Imprint struct {
	Publisher string `json:"publisher,omitempty"`
	Isbn      string `json:"isbn,omitempty"`
	Place     string `json:"place,omitempty"`
}

// the larger work a record is part of
type PartOf struct {
	Title string `json:"title,omitempty"`
	Pages string `json:"pages,omitempty"`
}

// thesis information
type Thesis struct {
	University string `json:"university,omitempty"`
}

// a geographic location associated with a record
type Location struct {
	Place       string   `json:"place,omitempty"`
	Description string   `json:"description,omitempty"`
	Lat         *float64 `json:"lat,omitempty"`
	Lon         *float64 `json:"lon,omitempty"`
}

// a lifecycle date; intervals are carried as start/end, and the entry type is
// one of "collected", "valid", or "withdrawn"
type DateEntry struct {
	Start       string `json:"start,omitempty"`
	End         string `json:"end,omitempty"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// an identifier related to a legacy record
type RelatedIdentifier struct {
	Identifier   string `json:"identifier"`
	Relation     string `json:"relation,omitempty"`
	ResourceType string `json:"resource_type,omitempty"`
	Scheme       string `json:"scheme,omitempty"`
}

// the DOI pre-reserved for a record
type PrereserveDOI struct {
	Doi   string `json:"doi"`
	Recid string `json:"recid"`
}

// the metadata block of a legacy record
type Metadata struct {
	// the record's general type and (for publications and images) its subtype
	UploadType      string `json:"upload_type,omitempty"`
	PublicationType string `json:"publication_type,omitempty"`
	ImageType       string `json:"image_type,omitempty"`

	Title           string        `json:"title,omitempty"`
	PublicationDate string        `json:"publication_date,omitempty"`
	Description     string        `json:"description,omitempty"`
	Creators        []Creator     `json:"creators,omitempty"`
	Contributors    []Contributor `json:"contributors,omitempty"`
	// free-text subjects
	Keywords []string `json:"keywords,omitempty"`
	// additional descriptions of type "other" and "methods"
	Notes  string `json:"notes,omitempty"`
	Method string `json:"method,omitempty"`

	License *License `json:"license,omitempty"`
	Grants  []Grant  `json:"grants,omitempty"`

	Journal *Journal `json:"journal,omitempty"`
	Meeting *Meeting `json:"meeting,omitempty"`
	Imprint *Imprint `json:"imprint,omitempty"`
	PartOf  *PartOf  `json:"part_of,omitempty"`
	Thesis  *Thesis  `json:"thesis,omitempty"`

	Locations []Location  `json:"locations,omitempty"`
	Version   string      `json:"version,omitempty"`
	Dates     []DateEntry `json:"dates,omitempty"`
	// flat bibliographic references
	References         []string            `json:"references,omitempty"`
	Language           string              `json:"language,omitempty"`
	RelatedIdentifiers []RelatedIdentifier `json:"related_identifiers,omitempty"`

	// "open", "embargoed", or "restricted"
	AccessRight string `json:"access_right,omitempty"`
	EmbargoDate string `json:"embargo_date,omitempty"`

	PrereserveDoi *PrereserveDOI `json:"prereserve_doi,omitempty"`
}

// a legacy record
type Record struct {
	Created  string `json:"created,omitempty"`
	Modified string `json:"modified,omitempty"`

	Id           string `json:"id,omitempty"`
	RecordId     string `json:"record_id,omitempty"`
	ConceptRecId string `json:"conceptrecid,omitempty"`

	Metadata Metadata `json:"metadata"`
	// top-level copy of the metadata title (always present, possibly blank)
	Title string `json:"title"`

	// links to record resources, carried through as-is
	Links map[string]string `json:"links,omitempty"`

	// numeric identifier of the owning user
	Owner int `json:"owner,omitempty"`

	// the record's files (not yet resolved by the serializer)
	Files []File `json:"files"`

	RecordURL string `json:"record_url,omitempty"`
	DoiURL    string `json:"doi_url,omitempty"`
	Doi       string `json:"doi,omitempty"`

	// "unsubmitted", "inprogress", or "done"
	State     string `json:"state,omitempty"`
	Submitted bool   `json:"submitted"`
}
