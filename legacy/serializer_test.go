package legacy

// These tests exercise the dump direction of the translation: structured
// (RDM) records in, legacy records out. The award/funder read services are
// replaced with in-memory fakes.
import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenodo-rdm/bridge/rdm"
	"github.com/zenodo-rdm/bridge/registry"
)

// an in-memory awards service
type fakeAwards struct {
	awards map[string]rdm.Award
}

func (f *fakeAwards) Read(ctx context.Context, id string) (rdm.Award, error) {
	if award, ok := f.awards[id]; ok {
		return award, nil
	}
	return rdm.Award{}, registry.NotFoundError{Vocabulary: "award", Id: id}
}

// an in-memory funders service
type fakeFunders struct {
	funders map[string]rdm.Funder
}

func (f *fakeFunders) Read(ctx context.Context, id string) (rdm.Funder, error) {
	if funder, ok := f.funders[id]; ok {
		return funder, nil
	}
	return rdm.Funder{}, registry.NotFoundError{Vocabulary: "funder", Id: id}
}

// a registry whose services know about a single EC-funded award
func testRegistry() *registry.Registry {
	return &registry.Registry{
		Awards: &fakeAwards{
			awards: map[string]rdm.Award{
				"00k4n6c32::755021": {
					Id:      "00k4n6c32::755021",
					Number:  "755021",
					Title:   map[string]string{"en": "Open Research Infrastructure"},
					Acronym: "ORI",
					Identifiers: []rdm.Identifier{
						{Identifier: "https://cordis.europa.eu/project/id/755021", Scheme: "url"},
					},
					Funder: &rdm.TypeRef{Id: "00k4n6c32"},
				},
			},
		},
		Funders: &fakeFunders{
			funders: map[string]rdm.Funder{
				"00k4n6c32": {
					Id:      "00k4n6c32",
					Name:    "European Commission",
					Country: "BE",
					Identifiers: []rdm.Identifier{
						{Identifier: "10.13039/501100000780", Scheme: "doi"},
					},
				},
			},
		},
	}
}

// a published record with the fields most records carry
func testRecord() rdm.Record {
	return rdm.Record{
		Id:          "abc12-xyz34",
		Created:     "2023-01-10T08:00:00Z",
		Updated:     "2023-02-01T09:30:00Z",
		IsPublished: true,
		Parent: rdm.Parent{
			Id: "abc12-par01",
			Access: rdm.ParentAccess{
				OwnedBy: []rdm.Owner{{User: 1234}},
			},
		},
		Pids: map[string]rdm.PID{
			"doi": {Identifier: "10.5281/zenodo.1234", Provider: "datacite", Client: "datacite"},
		},
		Access: rdm.Access{Record: "public", Files: "public"},
		Links: map[string]string{
			"self_html": "https://zenodo.org/records/abc12-xyz34",
			"doi":       "https://doi.org/10.5281/zenodo.1234",
		},
		Metadata: rdm.Metadata{
			ResourceType:    &rdm.TypeRef{Id: "dataset"},
			Title:           "Test dataset",
			PublicationDate: "2023-01-10",
			Description:     "<p>A dataset used in tests.</p>",
			Version:         "1.0.0",
			Creators: []rdm.Creator{
				{
					PersonOrOrg: rdm.PersonOrOrg{
						Name: "Doe, Jane",
						Identifiers: []rdm.Identifier{
							{Identifier: "0000-0002-1825-0097", Scheme: "orcid"},
						},
					},
					Affiliations: []rdm.Affiliation{{Name: "CERN"}, {Name: "Second University"}},
				},
			},
		},
	}
}

// tests the top-level field mapping for a published record
func TestSerializeTopLevelFields(t *testing.T) {
	assert := assert.New(t)

	result, err := Serialize(context.Background(), testRecord(), testRegistry())
	require.Nil(t, err)

	assert.Equal("2023-01-10T08:00:00Z", result.Created)
	assert.Equal("2023-02-01T09:30:00Z", result.Modified)
	assert.Equal("abc12-xyz34", result.Id)
	assert.Equal("abc12-xyz34", result.RecordId)
	assert.Equal("abc12-par01", result.ConceptRecId)
	assert.Equal("Test dataset", result.Title)
	assert.Equal(1234, result.Owner)
	assert.Equal("10.5281/zenodo.1234", result.Doi)
	assert.Equal("https://zenodo.org/records/abc12-xyz34", result.RecordURL)
	assert.Equal("https://doi.org/10.5281/zenodo.1234", result.DoiURL)
	assert.Equal("done", result.State)
	assert.True(result.Submitted)
	assert.NotNil(result.Files)
	assert.Empty(result.Files)
}

// tests the draft state mapping
func TestSerializeState(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	record := testRecord()
	record.IsPublished = false
	result, err := Serialize(ctx, record, testRegistry())
	assert.Nil(err)
	assert.Equal("unsubmitted", result.State)
	assert.False(result.Submitted)

	record.IsPublished = true
	record.IsDraft = true
	result, err = Serialize(ctx, record, testRegistry())
	assert.Nil(err)
	assert.Equal("inprogress", result.State)
	assert.True(result.Submitted)
}

// tests that externally managed DOIs get a pre-reserved DOI injected, while
// locally managed DOIs pre-reserve the registered identifier
func TestSerializePrereserveDoi(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	record := testRecord()
	result, err := Serialize(ctx, record, testRegistry())
	assert.Nil(err)
	require.NotNil(t, result.Metadata.PrereserveDoi)
	assert.Equal("10.5281/zenodo.1234", result.Metadata.PrereserveDoi.Doi)
	assert.Equal("abc12-xyz34", result.Metadata.PrereserveDoi.Recid)

	record.Pids["doi"] = rdm.PID{Identifier: "10.1000/custom-doi", Provider: "external"}
	result, err = Serialize(ctx, record, testRegistry())
	assert.Nil(err)
	require.NotNil(t, result.Metadata.PrereserveDoi)
	assert.Equal("10.5281/zenodo.abc12-xyz34", result.Metadata.PrereserveDoi.Doi)
	assert.Equal("10.1000/custom-doi", result.Doi)
}

// tests the creator/contributor mapping (name, first affiliation, identifiers
// by scheme, and the contribution type from the English role title)
func TestSerializeCreatorsAndContributors(t *testing.T) {
	assert := assert.New(t)

	record := testRecord()
	record.Metadata.Contributors = []rdm.Creator{
		{
			PersonOrOrg: rdm.PersonOrOrg{
				Name: "Smith, John",
				Identifiers: []rdm.Identifier{
					{Identifier: "118540238", Scheme: "gnd"},
				},
			},
			Affiliations: []rdm.Affiliation{{Name: "University of Examples"}},
			Role: &rdm.Role{
				Id:    "datacurator",
				Title: map[string]string{"en": "Data curator", "de": "Datenkurator"},
			},
		},
	}

	result, err := Serialize(context.Background(), record, testRegistry())
	assert.Nil(err)

	require.Len(t, result.Metadata.Creators, 1)
	creator := result.Metadata.Creators[0]
	assert.Equal("Doe, Jane", creator.Name)
	assert.Equal("CERN", creator.Affiliation)
	assert.Equal("0000-0002-1825-0097", creator.Orcid)
	assert.Equal("", creator.Gnd)

	require.Len(t, result.Metadata.Contributors, 1)
	contributor := result.Metadata.Contributors[0]
	assert.Equal("Smith, John", contributor.Name)
	assert.Equal("University of Examples", contributor.Affiliation)
	assert.Equal("118540238", contributor.Gnd)
	assert.Equal("Data curator", contributor.Type)
}

// tests the resource type decomposition into upload type and subtype
func TestSerializeResourceType(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	record := testRecord()
	record.Metadata.ResourceType = &rdm.TypeRef{Id: "publication-article"}
	result, err := Serialize(ctx, record, testRegistry())
	assert.Nil(err)
	assert.Equal("publication", result.Metadata.UploadType)
	assert.Equal("article", result.Metadata.PublicationType)
	assert.Equal("", result.Metadata.ImageType)

	record.Metadata.ResourceType = &rdm.TypeRef{Id: "image-figure"}
	result, err = Serialize(ctx, record, testRegistry())
	assert.Nil(err)
	assert.Equal("image", result.Metadata.UploadType)
	assert.Equal("figure", result.Metadata.ImageType)
	assert.Equal("", result.Metadata.PublicationType)

	record.Metadata.ResourceType = &rdm.TypeRef{Id: "dataset"}
	result, err = Serialize(ctx, record, testRegistry())
	assert.Nil(err)
	assert.Equal("dataset", result.Metadata.UploadType)
	assert.Equal("", result.Metadata.PublicationType)
}

// tests EDTF level-0 interval splitting on lifecycle dates
func TestSerializeDates(t *testing.T) {
	assert := assert.New(t)

	record := testRecord()
	record.Metadata.Dates = []rdm.Date{
		{
			Date:        "2004-02-01/2005-02",
			Type:        &rdm.TypeRef{Id: "collected"},
			Description: "sampling period",
		},
		{
			Date: "2021-06-15",
			Type: &rdm.TypeRef{Id: "withdrawn"},
		},
	}

	result, err := Serialize(context.Background(), record, testRegistry())
	assert.Nil(err)
	require.Len(t, result.Metadata.Dates, 2)

	interval := result.Metadata.Dates[0]
	assert.Equal("2004-02-01", interval.Start)
	assert.Equal("2005-02", interval.End)
	assert.Equal("collected", interval.Type)
	assert.Equal("sampling period", interval.Description)

	// a single date can't be represented in a legacy date entry
	single := result.Metadata.Dates[1]
	assert.Equal("", single.Start)
	assert.Equal("", single.End)
	assert.Equal("withdrawn", single.Type)
}

// tests grant resolution through the award/funder services
func TestSerializeGrants(t *testing.T) {
	assert := assert.New(t)

	record := testRecord()
	record.Metadata.Funding = []rdm.Funding{
		{
			Funder: &rdm.TypeRef{Id: "ignored-in-favor-of-award-funder"},
			Award:  &rdm.Award{Id: "00k4n6c32::755021"},
		},
	}

	result, err := Serialize(context.Background(), record, testRegistry())
	assert.Nil(err)
	require.Len(t, result.Metadata.Grants, 1)

	grant := result.Metadata.Grants[0]
	assert.Equal("755021", grant.Code)
	// the funder's ROR id is remapped to its FundRef DOI
	assert.Equal("10.13039/501100000780::00k4n6c32::755021", grant.InternalId)
	assert.Equal("Open Research Infrastructure", grant.Title)
	assert.Equal("ORI", grant.Acronym)
	assert.Equal("https://cordis.europa.eu/project/id/755021", grant.URL)
	require.NotNil(t, grant.Funder)
	assert.Equal("European Commission", grant.Funder.Name)
	assert.Equal("10.13039/501100000780", grant.Funder.Doi)
	assert.Equal("BE", grant.Funder.Country)
}

// tests that unknown awards and funder-only funding entries are skipped
func TestSerializeGrantsSkipsUnsupportedFunding(t *testing.T) {
	assert := assert.New(t)

	record := testRecord()
	record.Metadata.Funding = []rdm.Funding{
		{Funder: &rdm.TypeRef{Id: "00k4n6c32"}}, // funder-only
		{Award: &rdm.Award{Id: "deleted-award"}},
		{Award: &rdm.Award{Id: "00k4n6c32::755021"}},
	}

	result, err := Serialize(context.Background(), record, testRegistry())
	assert.Nil(err)
	require.Len(t, result.Metadata.Grants, 1)
	assert.Equal("755021", result.Metadata.Grants[0].Code)
}

// tests that only the first right becomes the legacy license, with its id
// remapped
func TestSerializeLicense(t *testing.T) {
	assert := assert.New(t)

	record := testRecord()
	record.Metadata.Rights = []rdm.TypeRef{{Id: "cc-by-4.0"}, {Id: "mit"}}

	result, err := Serialize(context.Background(), record, testRegistry())
	assert.Nil(err)
	require.NotNil(t, result.Metadata.License)
	assert.Equal("cc-by", result.Metadata.License.Id)
}

// tests the access right mapping for all representable cases
func TestSerializeAccessRight(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	record := testRecord()
	result, err := Serialize(ctx, record, testRegistry())
	assert.Nil(err)
	assert.Equal("open", result.Metadata.AccessRight)

	record.Access = rdm.Access{Record: "public", Files: "restricted"}
	result, err = Serialize(ctx, record, testRegistry())
	assert.Nil(err)
	assert.Equal("restricted", result.Metadata.AccessRight)

	record.Access = rdm.Access{
		Record:  "public",
		Files:   "restricted",
		Embargo: &rdm.Embargo{Active: true, Until: "2030-01-01"},
	}
	result, err = Serialize(ctx, record, testRegistry())
	assert.Nil(err)
	assert.Equal("embargoed", result.Metadata.AccessRight)
	assert.Equal("2030-01-01", result.Metadata.EmbargoDate)

	// anything else (e.g. closed access) has no legacy mapping
	record.Access = rdm.Access{}
	result, err = Serialize(ctx, record, testRegistry())
	assert.Nil(err)
	assert.Equal("", result.Metadata.AccessRight)
}

// tests free-text subjects, vocabulary subjects, and additional descriptions
func TestSerializeSubjectsAndDescriptions(t *testing.T) {
	assert := assert.New(t)

	record := testRecord()
	record.Metadata.Subjects = []rdm.Subject{
		{Id: "http://id.nlm.nih.gov/mesh/A-D000007", Subject: "Abdominal Injuries"},
		{Subject: "genomics"},
		{Subject: "oceanography"},
	}
	record.Metadata.AdditionalDescs = []rdm.AdditionalDescription{
		{Description: "Funded in part by taxpayers.", Type: rdm.TypeRef{Id: "other"}},
		{Description: "Sequenced with a sequencer.", Type: rdm.TypeRef{Id: "methods"}},
		{Description: "An abstract.", Type: rdm.TypeRef{Id: "abstract"}},
	}

	result, err := Serialize(context.Background(), record, testRegistry())
	assert.Nil(err)
	// vocabulary subjects have no legacy mapping yet
	assert.Equal([]string{"genomics", "oceanography"}, result.Metadata.Keywords)
	assert.Equal("Funded in part by taxpayers.", result.Metadata.Notes)
	assert.Equal("Sequenced with a sequencer.", result.Metadata.Method)
}

// tests the custom field mapping, including the imprint/part_of split and the
// publisher folding into the imprint
func TestSerializeCustomFields(t *testing.T) {
	assert := assert.New(t)

	record := testRecord()
	record.Metadata.Publisher = "Example Press"
	record.CustomFields = rdm.CustomFields{
		Journal: &rdm.Journal{Title: "Journal of Examples", Volume: "32", Issue: "7", Pages: "1-10"},
		Meeting: &rdm.Meeting{Title: "ExampleConf", Acronym: "EC", Place: "Geneva"},
		Imprint: &rdm.Imprint{Title: "Collected Examples", ISBN: "978-3-16-148410-0",
			Pages: "15-23", Place: "Whoville"},
		ThesisUniversity: "University of Examples",
	}

	result, err := Serialize(context.Background(), record, testRegistry())
	assert.Nil(err)

	require.NotNil(t, result.Metadata.Journal)
	assert.Equal("Journal of Examples", result.Metadata.Journal.Title)
	assert.Equal("32", result.Metadata.Journal.Volume)

	require.NotNil(t, result.Metadata.Meeting)
	assert.Equal("ExampleConf", result.Metadata.Meeting.Title)
	assert.Equal("Geneva", result.Metadata.Meeting.Place)

	require.NotNil(t, result.Metadata.Imprint)
	assert.Equal("Example Press", result.Metadata.Imprint.Publisher)
	assert.Equal("978-3-16-148410-0", result.Metadata.Imprint.Isbn)
	assert.Equal("Whoville", result.Metadata.Imprint.Place)

	require.NotNil(t, result.Metadata.PartOf)
	assert.Equal("Collected Examples", result.Metadata.PartOf.Title)
	assert.Equal("15-23", result.Metadata.PartOf.Pages)

	require.NotNil(t, result.Metadata.Thesis)
	assert.Equal("University of Examples", result.Metadata.Thesis.University)
}

// tests locations, related identifiers, and the alternate identifier fold-in
func TestSerializeLocationsAndIdentifiers(t *testing.T) {
	assert := assert.New(t)

	record := testRecord()
	record.Metadata.Locations = &rdm.Locations{
		Features: []rdm.Feature{
			{
				Place:       "Geneva",
				Description: "CERN site",
				Geometry:    &rdm.Geometry{Type: "Point", Coordinates: []float64{6.05, 46.23}},
			},
			{Place: "Atlantis"},
		},
	}
	record.Metadata.RelatedIdentifiers = []rdm.RelatedIdentifier{
		{
			Identifier:   "10.1234/related",
			RelationType: &rdm.TypeRef{Id: "cites"},
			ResourceType: &rdm.TypeRef{Id: "dataset"},
		},
	}
	record.Metadata.Identifiers = []rdm.Identifier{
		{Identifier: "urn:isbn:0451450523", Scheme: "urn"},
	}
	record.Metadata.References = []rdm.Reference{
		{Reference: "Doe J. (2021). A paper."},
	}
	record.Metadata.Languages = []rdm.TypeRef{{Id: "eng"}, {Id: "deu"}}

	result, err := Serialize(context.Background(), record, testRegistry())
	assert.Nil(err)

	require.Len(t, result.Metadata.Locations, 2)
	geneva := result.Metadata.Locations[0]
	assert.Equal("Geneva", geneva.Place)
	assert.Equal("CERN site", geneva.Description)
	require.NotNil(t, geneva.Lon)
	require.NotNil(t, geneva.Lat)
	assert.Equal(6.05, *geneva.Lon)
	assert.Equal(46.23, *geneva.Lat)
	assert.Nil(result.Metadata.Locations[1].Lat)

	require.Len(t, result.Metadata.RelatedIdentifiers, 2)
	assert.Equal("cites", result.Metadata.RelatedIdentifiers[0].Relation)
	assert.Equal("dataset", result.Metadata.RelatedIdentifiers[0].ResourceType)
	assert.Equal("urn:isbn:0451450523", result.Metadata.RelatedIdentifiers[1].Identifier)
	assert.Equal("isAlternateIdentifier", result.Metadata.RelatedIdentifiers[1].Relation)

	assert.Equal([]string{"Doe J. (2021). A paper."}, result.Metadata.References)
	assert.Equal("eng", result.Metadata.Language)
}
