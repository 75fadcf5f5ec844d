package services

import (
	"encoding/json"
	"strings"

	"github.com/frictionlessdata/datapackage-go/datapackage"
	"github.com/frictionlessdata/datapackage-go/validator"

	"github.com/zenodo-rdm/bridge/github"
)

// builds a Frictionless data package describing the files published with the
// given release, or nil if the release has no files
func releaseManifest(release github.Release) (*datapackage.Package, error) {
	if len(release.Assets) == 0 {
		return nil, nil
	}

	resources := make([]map[string]interface{}, 0, len(release.Assets))
	for _, asset := range release.Assets {
		resources = append(resources, map[string]interface{}{
			"name":    resourceName(asset.Name),
			"path":    asset.Name,
			"bytes":   asset.Size,
			"profile": "data-resource",
		})
	}
	descriptor := map[string]interface{}{
		"name":      "manifest",
		"profile":   "data-package",
		"resources": resources,
	}

	data, err := json.Marshal(descriptor)
	if err != nil {
		return nil, err
	}
	return datapackage.FromString(string(data), "manifest.json", validator.InMemoryLoader())
}

// normalizes an asset filename into a valid data resource name (lowercase
// alphanumerics plus "._-")
func resourceName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, name)
}
