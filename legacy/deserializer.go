package legacy

import (
	"strings"

	"github.com/zenodo-rdm/bridge/rdm"
	"github.com/zenodo-rdm/bridge/vocabularies"
)

// Deserializes a legacy metadata block into a structured record fragment
// holding the metadata, custom fields, and access settings it carries. This
// is the direction the release adapter uses to turn `.zenodo.json` and
// citation metadata into structured form.
func Deserialize(md Metadata) (rdm.Record, error) {
	record := rdm.Record{
		Metadata: rdm.Metadata{
			Title:           md.Title,
			PublicationDate: md.PublicationDate,
			Description:     md.Description,
			Version:         md.Version,
		},
	}
	metadata := &record.Metadata

	metadata.ResourceType = deserializeResourceType(md)

	for _, creator := range md.Creators {
		metadata.Creators = append(metadata.Creators, deserializeCreator(creator.Name,
			creator.Affiliation, creator.Orcid, creator.Gnd, ""))
	}
	for _, contributor := range md.Contributors {
		metadata.Contributors = append(metadata.Contributors, deserializeCreator(
			contributor.Name, contributor.Affiliation, contributor.Orcid,
			contributor.Gnd, contributor.Type))
	}

	// keywords are free-text subjects
	for _, keyword := range md.Keywords {
		metadata.Subjects = append(metadata.Subjects, rdm.Subject{Subject: keyword})
	}

	if md.License != nil {
		metadata.Rights = []rdm.TypeRef{
			{Id: vocabularies.LegacyToRdmLicense(md.License.Id)},
		}
	}

	for _, grant := range md.Grants {
		if funding, ok := deserializeGrant(grant); ok {
			metadata.Funding = append(metadata.Funding, funding)
		}
	}

	for _, related := range md.RelatedIdentifiers {
		// alternate identifiers were folded into the related identifiers on
		// the way out; unfold them here
		if related.Relation == "isAlternateIdentifier" {
			metadata.Identifiers = append(metadata.Identifiers, rdm.Identifier{
				Identifier: related.Identifier,
				Scheme:     related.Scheme,
			})
			continue
		}
		entry := rdm.RelatedIdentifier{
			Identifier: related.Identifier,
			Scheme:     related.Scheme,
		}
		if related.Relation != "" {
			entry.RelationType = &rdm.TypeRef{Id: related.Relation}
		}
		if related.ResourceType != "" {
			entry.ResourceType = &rdm.TypeRef{Id: related.ResourceType}
		}
		metadata.RelatedIdentifiers = append(metadata.RelatedIdentifiers, entry)
	}

	for _, reference := range md.References {
		metadata.References = append(metadata.References, rdm.Reference{Reference: reference})
	}
	if md.Language != "" {
		metadata.Languages = []rdm.TypeRef{{Id: md.Language}}
	}

	metadata.Dates = deserializeDates(md.Dates)
	metadata.Locations = deserializeLocations(md.Locations)

	if md.Notes != "" {
		metadata.AdditionalDescs = append(metadata.AdditionalDescs, rdm.AdditionalDescription{
			Description: md.Notes,
			Type:        rdm.TypeRef{Id: "other"},
		})
	}
	if md.Method != "" {
		metadata.AdditionalDescs = append(metadata.AdditionalDescs, rdm.AdditionalDescription{
			Description: md.Method,
			Type:        rdm.TypeRef{Id: "methods"},
		})
	}

	record.CustomFields = deserializeCustomFields(md, metadata)
	record.Access = deserializeAccess(md)

	return record, nil
}

// reassembles the structured resource type id from the legacy upload type and
// subtype
func deserializeResourceType(md Metadata) *rdm.TypeRef {
	if md.UploadType == "" {
		return nil
	}
	id := md.UploadType
	switch md.UploadType {
	case "publication":
		if md.PublicationType != "" {
			id += "-" + md.PublicationType
		}
	case "image":
		if md.ImageType != "" {
			id += "-" + md.ImageType
		}
	}
	return &rdm.TypeRef{Id: id}
}

// builds a structured creator or contributor from legacy creator fields; a
// non-empty role title marks a contributor
func deserializeCreator(name, affiliation, orcid, gnd, role string) rdm.Creator {
	creator := rdm.Creator{
		PersonOrOrg: rdm.PersonOrOrg{
			Type: "personal",
			Name: name,
		},
	}
	if affiliation != "" {
		creator.Affiliations = []rdm.Affiliation{{Name: affiliation}}
	}
	if orcid != "" {
		creator.PersonOrOrg.Identifiers = append(creator.PersonOrOrg.Identifiers,
			rdm.Identifier{Identifier: orcid, Scheme: "orcid"})
	}
	if gnd != "" {
		creator.PersonOrOrg.Identifiers = append(creator.PersonOrOrg.Identifiers,
			rdm.Identifier{Identifier: gnd, Scheme: "gnd"})
	}
	if role != "" {
		creator.Role = &rdm.Role{Title: map[string]string{"en": role}}
	}
	return creator
}

// builds a structured funding entry from a legacy grant; grants with an
// internal id become award references, while bare grants are carried inline
func deserializeGrant(grant Grant) (rdm.Funding, bool) {
	if grant.InternalId != "" {
		// the internal id has the form "<funder DOI or ROR>::<award id>"
		parts := strings.SplitN(grant.InternalId, "::", 2)
		if len(parts) == 2 {
			return rdm.Funding{
				Funder: &rdm.TypeRef{Id: vocabularies.FunderRorForDoi(parts[0])},
				Award:  &rdm.Award{Id: parts[1]},
			}, true
		}
	}

	if grant.Code == "" {
		return rdm.Funding{}, false
	}
	award := rdm.Award{Number: grant.Code, Acronym: grant.Acronym}
	if grant.Title != "" {
		award.Title = map[string]string{"en": grant.Title}
	}
	if grant.URL != "" {
		award.Identifiers = append(award.Identifiers,
			rdm.Identifier{Identifier: grant.URL, Scheme: "url"})
	}
	if grant.Doi != "" {
		award.Identifiers = append(award.Identifiers,
			rdm.Identifier{Identifier: grant.Doi, Scheme: "doi"})
	}
	funding := rdm.Funding{Award: &award}
	if grant.Funder != nil && grant.Funder.Doi != "" {
		funding.Funder = &rdm.TypeRef{Id: vocabularies.FunderRorForDoi(grant.Funder.Doi)}
	}
	return funding, true
}

// rebuilds structured dates from legacy start/end entries; matching start and
// end collapse into a single date, differing ones into an EDTF level-0
// interval
func deserializeDates(dates []DateEntry) []rdm.Date {
	var result []rdm.Date
	for _, entry := range dates {
		date := rdm.Date{Description: entry.Description}
		if entry.Type != "" {
			date.Type = &rdm.TypeRef{Id: entry.Type}
		}
		switch {
		case entry.Start != "" && entry.End != "" && entry.Start != entry.End:
			date.Date = entry.Start + "/" + entry.End
		case entry.Start != "":
			date.Date = entry.Start
		case entry.End != "":
			date.Date = entry.End
		}
		result = append(result, date)
	}
	return result
}

// rebuilds the structured location features from legacy locations
func deserializeLocations(locations []Location) *rdm.Locations {
	if len(locations) == 0 {
		return nil
	}
	result := rdm.Locations{Features: make([]rdm.Feature, 0, len(locations))}
	for _, location := range locations {
		feature := rdm.Feature{
			Place:       location.Place,
			Description: location.Description,
		}
		if location.Lat != nil && location.Lon != nil {
			feature.Geometry = &rdm.Geometry{
				Type: "Point",
				// coordinates go back in [longitude, latitude] order
				Coordinates: []float64{*location.Lon, *location.Lat},
			}
		}
		result.Features = append(result.Features, feature)
	}
	return &result
}

// rebuilds the custom fields (journal, meeting, imprint, thesis) and lifts
// the imprint's publisher back onto the metadata
func deserializeCustomFields(md Metadata, metadata *rdm.Metadata) rdm.CustomFields {
	var fields rdm.CustomFields
	if md.Journal != nil {
		fields.Journal = &rdm.Journal{
			Title:  md.Journal.Title,
			Volume: md.Journal.Volume,
			Issue:  md.Journal.Issue,
			Pages:  md.Journal.Pages,
		}
	}
	if md.Meeting != nil {
		fields.Meeting = &rdm.Meeting{
			Title:       md.Meeting.Title,
			Acronym:     md.Meeting.Acronym,
			Dates:       md.Meeting.Dates,
			Place:       md.Meeting.Place,
			URL:         md.Meeting.URL,
			Session:     md.Meeting.Session,
			SessionPart: md.Meeting.SessionPart,
		}
	}
	if md.Imprint != nil || md.PartOf != nil {
		imprint := rdm.Imprint{}
		if md.Imprint != nil {
			imprint.ISBN = md.Imprint.Isbn
			imprint.Place = md.Imprint.Place
			metadata.Publisher = md.Imprint.Publisher
		}
		if md.PartOf != nil {
			imprint.Title = md.PartOf.Title
			imprint.Pages = md.PartOf.Pages
		}
		fields.Imprint = &imprint
	}
	if md.Thesis != nil {
		fields.ThesisUniversity = md.Thesis.University
	}
	return fields
}

// maps a legacy access right back onto structured access settings; an
// unrecognized access right leaves the settings empty
func deserializeAccess(md Metadata) rdm.Access {
	switch md.AccessRight {
	case "open":
		return rdm.Access{Record: "public", Files: "public"}
	case "restricted":
		return rdm.Access{Record: "public", Files: "restricted"}
	case "embargoed":
		return rdm.Access{
			Record: "public",
			Files:  "restricted",
			Embargo: &rdm.Embargo{
				Active: true,
				Until:  md.EmbargoDate,
			},
		}
	}
	return rdm.Access{}
}
