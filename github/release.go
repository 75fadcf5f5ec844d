package github

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/zenodo-rdm/bridge/legacy"
	"github.com/zenodo-rdm/bridge/rdm"
)

// names of the metadata files recognized in a release's source tree
const (
	zenodoJsonFileName  = ".zenodo.json"
	citationCffFileName = "CITATION.cff"
)

// a file published with a release
type Asset struct {
	// the asset's filename
	Name string `json:"name"`
	// the asset's size in bytes
	Size int64 `json:"size"`
}

// a repository contributor named on the default metadata
type Contributor struct {
	Name        string `json:"name"`
	Affiliation string `json:"affiliation,omitempty"`
}

// a version-control release from which deposit metadata is extracted
type Release struct {
	// the repository's full name ("owner/repo") and description
	Repo            string `json:"repo"`
	RepoDescription string `json:"repo_description,omitempty"`
	// the release tag and (optional) human-readable title
	Tag   string `json:"tag"`
	Title string `json:"title,omitempty"`
	// the release notes
	Body string `json:"body,omitempty"`
	// the release timestamp (ISO8601)
	PublishedAt string `json:"published_at,omitempty"`
	// the repository's contributors
	Contributors []Contributor `json:"contributors,omitempty"`
	// the files published with the release
	Assets []Asset `json:"assets,omitempty"`
}

// Extracts deposit metadata for a release: sensible defaults from the
// release itself, overridden by a `.zenodo.json` file when the repository
// carries one, else by a `CITATION.cff` file.
type ReleaseMetadata struct {
	// the release being processed
	Release Release
	// retrieves files from the release's source tree
	Retriever RemoteFileRetriever
}

// returns the default metadata derived from the release itself
func (m *ReleaseMetadata) Default() rdm.Metadata {
	release := m.Release

	title := release.Title
	if title == "" {
		title = release.Tag
	}
	description := release.Body
	if description == "" {
		description = release.RepoDescription
	}

	metadata := rdm.Metadata{
		ResourceType: &rdm.TypeRef{Id: "software"},
		Title:        fmt.Sprintf("%s: %s", release.Repo, title),
		Description:  description,
		Version:      release.Tag,
	}
	// the date portion of the release timestamp
	if len(release.PublishedAt) >= 10 {
		metadata.PublicationDate = release.PublishedAt[:10]
	}
	for _, contributor := range release.Contributors {
		creator := rdm.Creator{
			PersonOrOrg: rdm.PersonOrOrg{Type: "personal", Name: contributor.Name},
		}
		if contributor.Affiliation != "" {
			creator.Affiliations = []rdm.Affiliation{{Name: contributor.Affiliation}}
		}
		metadata.Creators = append(metadata.Creators, creator)
	}
	return metadata
}

// returns the metadata carried in the repository's `.zenodo.json` file, or
// nil if the release has no such file
func (m *ReleaseMetadata) Extra(ctx context.Context) (*rdm.Metadata, error) {
	content, err := m.Retriever.RetrieveRemoteFile(ctx, zenodoJsonFileName)
	if err != nil {
		slog.Error(fmt.Sprintf("Retrieving %s: %s", zenodoJsonFileName, err.Error()))
		return nil, MetadataError{File: zenodoJsonFileName, Err: err}
	}
	if content == nil {
		// the file does not exist
		return nil, nil
	}

	// the file holds a legacy metadata block, which we load into structured
	// form
	var legacyMetadata legacy.Metadata
	if err := json.Unmarshal(content, &legacyMetadata); err != nil {
		slog.Error(fmt.Sprintf("Parsing %s: %s", zenodoJsonFileName, err.Error()))
		return nil, MetadataError{File: zenodoJsonFileName, Err: err}
	}
	record, err := legacy.Deserialize(legacyMetadata)
	if err != nil {
		return nil, MetadataError{File: zenodoJsonFileName, Err: err}
	}
	return &record.Metadata, nil
}

// returns the metadata carried in the repository's `CITATION.cff` file, or
// nil if the release has no such file
func (m *ReleaseMetadata) Citation(ctx context.Context) (*rdm.Metadata, error) {
	content, err := m.Retriever.RetrieveRemoteFile(ctx, citationCffFileName)
	if err != nil {
		slog.Error(fmt.Sprintf("Retrieving %s: %s", citationCffFileName, err.Error()))
		return nil, MetadataError{File: citationCffFileName, Err: err}
	}
	if content == nil {
		return nil, nil
	}

	// loading the citation file is not enough: the citation metadata is
	// legacy-shaped and needs the extra legacy-to-structured step
	legacyMetadata, err := parseCitationFile(content)
	if err != nil {
		slog.Error(fmt.Sprintf("Parsing %s: %s", citationCffFileName, err.Error()))
		return nil, MetadataError{File: citationCffFileName, Err: err}
	}
	record, err := legacy.Deserialize(legacyMetadata)
	if err != nil {
		return nil, MetadataError{File: citationCffFileName, Err: err}
	}
	return &record.Metadata, nil
}

// extracts the metadata for the release: if `.zenodo.json` is there, it
// wins; otherwise `CITATION.cff` is consulted; the defaults fill whatever
// the files leave unsaid
func (m *ReleaseMetadata) Metadata(ctx context.Context) (rdm.Metadata, error) {
	output := m.Default()

	extra, err := m.Extra(ctx)
	if err != nil {
		return output, err
	}
	if extra != nil {
		return overlayMetadata(output, *extra), nil
	}

	citation, err := m.Citation(ctx)
	if err != nil {
		return output, err
	}
	if citation != nil {
		return overlayMetadata(output, *citation), nil
	}
	return output, nil
}

// overlays the fields present in the extracted metadata onto the defaults
func overlayMetadata(base, overlay rdm.Metadata) rdm.Metadata {
	if overlay.ResourceType != nil {
		base.ResourceType = overlay.ResourceType
	}
	if overlay.Title != "" {
		base.Title = overlay.Title
	}
	if overlay.PublicationDate != "" {
		base.PublicationDate = overlay.PublicationDate
	}
	if overlay.Description != "" {
		base.Description = overlay.Description
	}
	if overlay.Version != "" {
		base.Version = overlay.Version
	}
	if overlay.Publisher != "" {
		base.Publisher = overlay.Publisher
	}
	if len(overlay.Creators) > 0 {
		base.Creators = overlay.Creators
	}
	if len(overlay.Contributors) > 0 {
		base.Contributors = overlay.Contributors
	}
	if len(overlay.Subjects) > 0 {
		base.Subjects = overlay.Subjects
	}
	if len(overlay.Rights) > 0 {
		base.Rights = overlay.Rights
	}
	if len(overlay.Languages) > 0 {
		base.Languages = overlay.Languages
	}
	if len(overlay.Dates) > 0 {
		base.Dates = overlay.Dates
	}
	if len(overlay.Identifiers) > 0 {
		base.Identifiers = overlay.Identifiers
	}
	if len(overlay.RelatedIdentifiers) > 0 {
		base.RelatedIdentifiers = overlay.RelatedIdentifiers
	}
	if len(overlay.References) > 0 {
		base.References = overlay.References
	}
	if len(overlay.Funding) > 0 {
		base.Funding = overlay.Funding
	}
	if overlay.Locations != nil {
		base.Locations = overlay.Locations
	}
	if len(overlay.AdditionalDescs) > 0 {
		base.AdditionalDescs = overlay.AdditionalDescs
	}
	return base
}
