package rdm

// a reference to a vocabulary entry by identifier
type TypeRef struct {
	Id string `json:"id"`
}

// a scheme-qualified identifier (ORCID, GND, DOI, URL, ...)
type Identifier struct {
	Identifier string `json:"identifier"`
	Scheme     string `json:"scheme,omitempty"`
}

// a person or organization named on a record
type PersonOrOrg struct {
	// "personal" or "organizational"
	Type string `json:"type,omitempty"`
	// full display name ("Family, Given" for people)
	Name       string `json:"name"`
	GivenName  string `json:"given_name,omitempty"`
	FamilyName string `json:"family_name,omitempty"`
	// scheme-qualified identifiers (orcid, gnd, ...)
	Identifiers []Identifier `json:"identifiers,omitempty"`
}

// an affiliation of a creator or contributor
type Affiliation struct {
	Id   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// the role a contributor played, with localized titles
type Role struct {
	Id string `json:"id,omitempty"`
	// localized role titles, keyed by language ("en" matches the DataCite
	// property used by the legacy API)
	Title map[string]string `json:"title,omitempty"`
}

// a creator or contributor of a record
type Creator struct {
	PersonOrOrg  PersonOrOrg   `json:"person_or_org"`
	Affiliations []Affiliation `json:"affiliations,omitempty"`
	// contributors carry a role; creators don't
	Role *Role `json:"role,omitempty"`
}

// a subject: either a vocabulary entry (id) or a free-text keyword (subject)
type Subject struct {
	Id      string `json:"id,omitempty"`
	Subject string `json:"subject,omitempty"`
}

// a date associated with the record's lifecycle; the date string may be an
// EDTF level-0 interval ("2004-02-01/2005-02")
type Date struct {
	Date        string   `json:"date"`
	Type        *TypeRef `json:"type,omitempty"`
	Description string   `json:"description,omitempty"`
}

// an identifier related to the record
type RelatedIdentifier struct {
	Identifier   string   `json:"identifier"`
	Scheme       string   `json:"scheme,omitempty"`
	RelationType *TypeRef `json:"relation_type,omitempty"`
	ResourceType *TypeRef `json:"resource_type,omitempty"`
}

// a free-text bibliographic reference
type Reference struct {
	Reference string `json:"reference"`
}

// a funding entry linking a funder and (optionally) an award
type Funding struct {
	Funder *TypeRef `json:"funder,omitempty"`
	Award  *Award   `json:"award,omitempty"`
}

// an award (grant) vocabulary record; inside a record's funding entry only
// the id may be present, with the full record resolved through the awards
// service
type Award struct {
	Id string `json:"id,omitempty"`
	// the award number assigned by the funder
	Number string `json:"number,omitempty"`
	// localized award titles, keyed by language
	Title map[string]string `json:"title,omitempty"`
	// the award acronym
	Acronym string `json:"acronym,omitempty"`
	// scheme-qualified identifiers (url, doi)
	Identifiers []Identifier `json:"identifiers,omitempty"`
	// the funder granting the award
	Funder *TypeRef `json:"funder,omitempty"`
}

// a funder vocabulary record
type Funder struct {
	Id      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
	// scheme-qualified identifiers (doi, ror)
	Identifiers []Identifier `json:"identifiers,omitempty"`
}

// a geojson geometry carried on a location feature
type Geometry struct {
	Type string `json:"type,omitempty"`
	// point coordinates in [longitude, latitude] order
	Coordinates []float64 `json:"coordinates,omitempty"`
}

// a single location feature
type Feature struct {
	Place       string    `json:"place,omitempty"`
	Description string    `json:"description,omitempty"`
	Geometry    *Geometry `json:"geometry,omitempty"`
}

// the locations of a record (features is mandatory in RDM)
type Locations struct {
	Features []Feature `json:"features"`
}

// an additional description with a type (abstract, methods, other, ...)
type AdditionalDescription struct {
	Description string  `json:"description"`
	Type        TypeRef `json:"type"`
}

// the descriptive metadata of a structured record
type Metadata struct {
	// the record's resource type (e.g. "dataset", "publication-article")
	ResourceType *TypeRef `json:"resource_type,omitempty"`
	Title        string   `json:"title,omitempty"`
	// the publication date (EDTF level 0)
	PublicationDate string    `json:"publication_date,omitempty"`
	Description     string    `json:"description,omitempty"`
	Creators        []Creator `json:"creators,omitempty"`
	Contributors    []Creator `json:"contributors,omitempty"`
	Subjects        []Subject `json:"subjects,omitempty"`
	// usage rights; the legacy API accepts at most one
	Rights    []TypeRef `json:"rights,omitempty"`
	Languages []TypeRef `json:"languages,omitempty"`
	Dates     []Date    `json:"dates,omitempty"`
	Version   string    `json:"version,omitempty"`
	Publisher string    `json:"publisher,omitempty"`
	// alternate identifiers for the record itself
	Identifiers        []Identifier            `json:"identifiers,omitempty"`
	RelatedIdentifiers []RelatedIdentifier     `json:"related_identifiers,omitempty"`
	References         []Reference             `json:"references,omitempty"`
	Funding            []Funding               `json:"funding,omitempty"`
	Locations          *Locations              `json:"locations,omitempty"`
	AdditionalDescs    []AdditionalDescription `json:"additional_descriptions,omitempty"`
}
