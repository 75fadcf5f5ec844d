package vocabularies

import "strings"

// a mapping from legacy license identifiers to their RDM (SPDX-style)
// equivalents; RDM ids not listed here are identical in both vocabularies
var legacyToRdmLicenses = map[string]string{
	"cc-zero":     "cc0-1.0",
	"cc-by":       "cc-by-4.0",
	"cc-by-sa":    "cc-by-sa-4.0",
	"cc-by-nc":    "cc-by-nc-4.0",
	"cc-by-nd":    "cc-by-nd-4.0",
	"cc-by-nc-sa": "cc-by-nc-sa-4.0",
	"cc-by-nc-nd": "cc-by-nc-nd-4.0",
	"agpl-v3":     "agpl-3.0-only",
	"gpl-v3":      "gpl-3.0-only",
	"lgpl-v3":     "lgpl-3.0-only",
}

// the reverse of legacyToRdmLicenses, built once at startup (lookups can be
// concurrent)
var rdmToLegacyLicenses = reverseTable(legacyToRdmLicenses)

// builds the reverse of a one-to-one lookup table
func reverseTable(table map[string]string) map[string]string {
	reversed := make(map[string]string)
	for key, value := range table {
		reversed[value] = key
	}
	return reversed
}

// Maps an RDM license identifier to its legacy equivalent. Identifiers
// without a legacy alias are passed through unchanged (both vocabularies use
// lowercased SPDX identifiers).
func RdmToLegacyLicense(id string) string {
	id = strings.ToLower(id)
	if legacyId, ok := rdmToLegacyLicenses[id]; ok {
		return legacyId
	}
	return id
}

// Maps a legacy license identifier to its RDM equivalent. Unrecognized
// identifiers are lowercased and passed through.
func LegacyToRdmLicense(id string) string {
	id = strings.ToLower(id)
	if rdmId, ok := legacyToRdmLicenses[id]; ok {
		return rdmId
	}
	return id
}
