package legacy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zenodo-rdm/bridge/rdm"
	"github.com/zenodo-rdm/bridge/registry"
	"github.com/zenodo-rdm/bridge/vocabularies"
)

// DOIs pre-reserved for records with externally managed DOIs use this prefix
const prereserveDoiPrefix = "10.5281/zenodo."

// Serializes a structured record into its legacy representation. Award and
// funder references in the record's funding entries are resolved through the
// given registry's read services.
func Serialize(ctx context.Context, record rdm.Record, reg *registry.Registry) (Record, error) {
	result := Record{
		Created:      record.Created,
		Modified:     record.Updated,
		Id:           record.Id,
		RecordId:     record.Id,
		ConceptRecId: record.Parent.Id,
		Title:        record.Metadata.Title,
		Links:        record.Links,
		// the record's files are not yet resolved via a file service
		Files: make([]File, 0),
	}

	if len(record.Parent.Access.OwnedBy) > 0 {
		result.Owner = record.Parent.Access.OwnedBy[0].User
	}
	result.RecordURL = record.Links["self_html"]
	result.DoiURL = record.Links["doi"]

	// draft state
	result.State = "unsubmitted"
	if record.IsPublished {
		result.State = "done"
		if record.IsDraft {
			result.State = "inprogress"
		}
	}
	result.Submitted = record.IsPublished

	metadata, err := serializeMetadata(ctx, record, reg)
	if err != nil {
		return result, err
	}
	result.Metadata = metadata

	// pre-reserved DOI information; for external DOIs the pre-reserved DOI is
	// injected into the response
	if doi, ok := record.Pids["doi"]; ok {
		result.Doi = doi.Identifier
		prereserved := doi.Identifier
		if doi.Provider == "external" {
			prereserved = prereserveDoiPrefix + record.Id
		}
		result.Metadata.PrereserveDoi = &PrereserveDOI{
			Doi:   prereserved,
			Recid: record.Id,
		}
	}

	return result, nil
}

// serializes the metadata block of a structured record; the access settings
// and custom fields of the record feed into the legacy metadata, so the whole
// record is passed in
func serializeMetadata(ctx context.Context, record rdm.Record, reg *registry.Registry) (Metadata, error) {
	md := record.Metadata
	result := Metadata{
		Title:           md.Title,
		PublicationDate: md.PublicationDate,
		Description:     md.Description,
		Version:         md.Version,
	}

	for _, creator := range md.Creators {
		result.Creators = append(result.Creators, serializeCreator(creator))
	}
	for _, contributor := range md.Contributors {
		result.Contributors = append(result.Contributors, serializeContributor(contributor))
	}

	grants, err := serializeGrants(ctx, md.Funding, reg)
	if err != nil {
		return result, err
	}
	result.Grants = grants

	// the legacy API accepts only one license
	if len(md.Rights) > 0 {
		result.License = &License{
			Id: vocabularies.RdmToLegacyLicense(md.Rights[0].Id),
		}
	}

	serializeCustomFields(record, &result)

	result.Locations = serializeLocations(md.Locations)
	result.Dates = serializeDates(md.Dates)

	for _, reference := range md.References {
		result.References = append(result.References, reference.Reference)
	}

	// the legacy API accepts either ISO-639-1 or ISO-639-2 codes, and RDM
	// implements ISO-639-2, so no mapping is needed
	if len(md.Languages) > 0 {
		result.Language = md.Languages[0].Id
	}

	result.RelatedIdentifiers = serializeRelatedIdentifiers(md)

	serializeResourceType(md.ResourceType, &result)

	// subjects with a vocabulary id have no legacy mapping yet; free-text
	// subjects become keywords
	for _, subject := range md.Subjects {
		if subject.Id == "" && subject.Subject != "" {
			result.Keywords = append(result.Keywords, subject.Subject)
		}
	}

	for _, description := range md.AdditionalDescs {
		switch description.Type.Id {
		case "other":
			result.Notes = description.Description
		case "methods":
			result.Method = description.Description
		}
	}

	result.AccessRight = serializeAccessRight(record.Access)
	if record.Access.Embargo != nil {
		result.EmbargoDate = record.Access.Embargo.Until
	}

	return result, nil
}

// serializes a single creator
func serializeCreator(creator rdm.Creator) Creator {
	result := Creator{
		Name: creator.PersonOrOrg.Name,
	}
	if len(creator.Affiliations) > 0 {
		result.Affiliation = creator.Affiliations[0].Name
	}
	for _, identifier := range creator.PersonOrOrg.Identifiers {
		switch identifier.Scheme {
		case "orcid":
			result.Orcid = identifier.Identifier
		case "gnd":
			result.Gnd = identifier.Identifier
		}
	}
	return result
}

// serializes a single contributor; the contribution type is the English role
// title, which matches the DataCite property used by the legacy API
func serializeContributor(contributor rdm.Creator) Contributor {
	result := Contributor{
		Creator: serializeCreator(contributor),
	}
	if contributor.Role != nil {
		result.Type = contributor.Role.Title["en"]
	}
	return result
}

// serializes the funding entries of a record into legacy grants, resolving
// award references through the awards service; deleted or unknown awards and
// funder-only entries are skipped, since neither is supported by the legacy
// API
func serializeGrants(ctx context.Context, funding []rdm.Funding, reg *registry.Registry) ([]Grant, error) {
	var grants []Grant
	for _, item := range funding {
		award := item.Award
		if award == nil {
			continue
		}

		if award.Id != "" {
			resolved, err := reg.Awards.Read(ctx, award.Id)
			if err != nil {
				var notFound registry.NotFoundError
				var deleted registry.DeletedError
				if errors.As(err, &notFound) || errors.As(err, &deleted) {
					continue
				}
				return nil, err
			}
			award = &resolved
		}

		// the funding entry's own funder id is ignored in favor of the
		// award's funder
		funderId := ""
		if award.Funder != nil {
			funderId = award.Funder.Id
		} else if item.Funder != nil {
			funderId = item.Funder.Id
		}
		if funderId == "" {
			continue
		}

		// every vocabulary award is linked to a vocabulary funder, so this
		// read can only fail on a service error
		funder, err := reg.Funders.Read(ctx, funderId)
		if err != nil {
			return nil, err
		}

		grant := legacyGrant(*award)
		grant.Funder = legacyFunder(funder)
		grants = append(grants, grant)
	}
	return grants, nil
}

// serializes an award into a legacy grant (without its funder)
func legacyGrant(award rdm.Award) Grant {
	funderId := ""
	if award.Funder != nil {
		funderId = award.Funder.Id
	}
	grant := Grant{
		Code:       award.Number,
		InternalId: fmt.Sprintf("%s::%s", vocabularies.FunderDoiForRor(funderId), award.Id),
		Acronym:    award.Acronym,
	}

	// prefer the English title, falling back to any available language
	if title, ok := award.Title["en"]; ok {
		grant.Title = title
	} else {
		for _, title := range award.Title {
			grant.Title = title
			break
		}
	}

	for _, identifier := range award.Identifiers {
		switch identifier.Scheme {
		case "url":
			grant.URL = identifier.Identifier
		case "doi":
			grant.Doi = identifier.Identifier
		}
	}
	return grant
}

// serializes a funder vocabulary entry into a legacy grant funder
func legacyFunder(funder rdm.Funder) *GrantFunder {
	result := GrantFunder{
		Name:    funder.Name,
		Country: funder.Country,
	}
	for _, identifier := range funder.Identifiers {
		if identifier.Scheme == "doi" {
			result.Doi = identifier.Identifier
		}
	}
	return &result
}

// maps the custom fields of a record (and the publisher, which folds into the
// imprint) onto the legacy metadata
func serializeCustomFields(record rdm.Record, result *Metadata) {
	fields := record.CustomFields

	if fields.Journal != nil {
		result.Journal = &Journal{
			Title:  fields.Journal.Title,
			Volume: fields.Journal.Volume,
			Issue:  fields.Journal.Issue,
			Pages:  fields.Journal.Pages,
		}
	}
	if fields.Meeting != nil {
		result.Meeting = &Meeting{
			Title:       fields.Meeting.Title,
			Acronym:     fields.Meeting.Acronym,
			Dates:       fields.Meeting.Dates,
			Place:       fields.Meeting.Place,
			URL:         fields.Meeting.URL,
			Session:     fields.Meeting.Session,
			SessionPart: fields.Meeting.SessionPart,
		}
	}
	if fields.Imprint != nil {
		// the imprint absorbs the record's publisher, and its title and pages
		// double as the part_of block
		result.Imprint = &Imprint{
			Publisher: record.Metadata.Publisher,
			Isbn:      fields.Imprint.ISBN,
			Place:     fields.Imprint.Place,
		}
		result.PartOf = &PartOf{
			Title: fields.Imprint.Title,
			Pages: fields.Imprint.Pages,
		}
	}
	if fields.ThesisUniversity != "" {
		result.Thesis = &Thesis{University: fields.ThesisUniversity}
	}
}

// splits a structured resource type id into the legacy upload type and (for
// publications and images) its subtype: "publication-article" becomes
// upload_type "publication" with publication_type "article"
func serializeResourceType(resourceType *rdm.TypeRef, result *Metadata) {
	if resourceType == nil || resourceType.Id == "" {
		return
	}
	parts := strings.Split(resourceType.Id, "-")
	result.UploadType = parts[0]
	if len(parts) > 1 {
		subtype := parts[len(parts)-1]
		switch result.UploadType {
		case "publication":
			result.PublicationType = subtype
		case "image":
			result.ImageType = subtype
		}
	}
}

// serializes the record's lifecycle dates; EDTF level 0 specifies intervals
// using "/" (e.g. 2004-02-01/2005-02), and a legacy date entry can only carry
// an interval, so non-interval dates dump neither start nor end
func serializeDates(dates []rdm.Date) []DateEntry {
	var result []DateEntry
	for _, date := range dates {
		entry := DateEntry{Description: date.Description}
		if date.Type != nil {
			entry.Type = date.Type.Id
		}
		interval := strings.Split(date.Date, "/")
		if len(interval) == 2 {
			entry.Start = interval[0]
			entry.End = interval[1]
		}
		result = append(result, entry)
	}
	return result
}

// serializes the record's location features
func serializeLocations(locations *rdm.Locations) []Location {
	if locations == nil {
		return nil
	}
	var result []Location
	for _, feature := range locations.Features {
		location := Location{
			Place:       feature.Place,
			Description: feature.Description,
		}
		// coordinates come in [longitude, latitude] order
		if feature.Geometry != nil && len(feature.Geometry.Coordinates) >= 2 {
			lon := feature.Geometry.Coordinates[0]
			lat := feature.Geometry.Coordinates[1]
			location.Lon = &lon
			location.Lat = &lat
		}
		result = append(result, location)
	}
	return result
}

// serializes the record's related identifiers, appending its alternate
// identifiers with an "isAlternateIdentifier" relation
func serializeRelatedIdentifiers(md rdm.Metadata) []RelatedIdentifier {
	var result []RelatedIdentifier
	for _, related := range md.RelatedIdentifiers {
		entry := RelatedIdentifier{
			Identifier: related.Identifier,
			Scheme:     related.Scheme,
		}
		if related.RelationType != nil {
			entry.Relation = related.RelationType.Id
		}
		if related.ResourceType != nil {
			entry.ResourceType = related.ResourceType.Id
		}
		result = append(result, entry)
	}
	for _, alternate := range md.Identifiers {
		result = append(result, RelatedIdentifier{
			Identifier: alternate.Identifier,
			Scheme:     alternate.Scheme,
			Relation:   "isAlternateIdentifier",
		})
	}
	return result
}

// maps the record's access settings to a legacy access right; closed access
// has no legacy mapping, so records that are neither open, restricted, nor
// embargoed dump an empty access right
func serializeAccessRight(access rdm.Access) string {
	isOpen := access.Files == "public"
	isEmbargoed := access.Embargo != nil && access.Embargo.Active
	isRestricted := !isEmbargoed && access.Files == "restricted"

	if isOpen {
		return "open"
	} else if isRestricted {
		return "restricted"
	} else if isEmbargoed {
		return "embargoed"
	}
	return ""
}
