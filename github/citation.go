package github

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zenodo-rdm/bridge/legacy"
)

// the subset of the Citation File Format (https://citation-file-format.github.io)
// we map onto legacy metadata
type citationFile struct {
	Title    string `yaml:"title"`
	Abstract string `yaml:"abstract"`
	Authors  []struct {
		GivenNames  string `yaml:"given-names"`
		FamilyNames string `yaml:"family-names"`
		// organizational authors carry a plain name instead
		Name        string `yaml:"name"`
		Affiliation string `yaml:"affiliation"`
		Orcid       string `yaml:"orcid"`
	} `yaml:"authors"`
	Keywords     []string `yaml:"keywords"`
	License      string   `yaml:"license"`
	Version      string   `yaml:"version"`
	DateReleased string   `yaml:"date-released"`
}

// parses a CITATION.cff file into a legacy metadata block; citation files
// always describe software
func parseCitationFile(content []byte) (legacy.Metadata, error) {
	var citation citationFile
	if err := yaml.Unmarshal(content, &citation); err != nil {
		return legacy.Metadata{}, err
	}

	metadata := legacy.Metadata{
		UploadType:      "software",
		Title:           citation.Title,
		Description:     citation.Abstract,
		Keywords:        citation.Keywords,
		Version:         citation.Version,
		PublicationDate: citation.DateReleased,
	}
	if citation.License != "" {
		metadata.License = &legacy.License{Id: citation.License}
	}

	for _, author := range citation.Authors {
		creator := legacy.Creator{
			Name:        author.Name,
			Affiliation: author.Affiliation,
			// ORCIDs in citation files are given as URLs
			Orcid: strings.TrimPrefix(author.Orcid, "https://orcid.org/"),
		}
		if creator.Name == "" && author.FamilyNames != "" {
			creator.Name = fmt.Sprintf("%s, %s", author.FamilyNames, author.GivenNames)
		}
		metadata.Creators = append(metadata.Creators, creator)
	}

	return metadata, nil
}
