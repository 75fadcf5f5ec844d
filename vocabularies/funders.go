package vocabularies

// a mapping from funder ROR identifiers to the FundRef DOIs used by the
// legacy API's grant identifiers
var funderRorToDoi = map[string]string{
	"05mmh0f86": "10.13039/501100000923", // Australian Research Council
	"013tf3c58": "10.13039/501100002428", // Austrian Science Fund
	"00k4n6c32": "10.13039/501100000780", // European Commission
	"05k73zm37": "10.13039/501100002341", // Academy of Finland
	"03n51vw80": "10.13039/501100004488", // Croatian Science Foundation
	"00snfqn58": "10.13039/501100001871", // Fundação para a Ciência e a Tecnologia
	"011kf5r70": "10.13039/501100000925", // National Health and Medical Research Council
	"01cwqze88": "10.13039/100000002",    // National Institutes of Health
	"021nxhr62": "10.13039/100000001",    // National Science Foundation
	"04jsz6e67": "10.13039/501100003246", // Nederlandse Organisatie voor Wetenschappelijk Onderzoek
	"00yjd3n13": "10.13039/501100001711", // Schweizerischer Nationalfonds
	"0271asj38": "10.13039/501100001602", // Science Foundation Ireland
	"029chgv08": "10.13039/100004440",    // Wellcome Trust
	"001aqnf71": "10.13039/100014013",    // UK Research and Innovation
}

// the reverse of funderRorToDoi, built once at startup (lookups can be
// concurrent)
var funderDoiToRor = reverseTable(funderRorToDoi)

// Maps a funder's ROR identifier to the FundRef DOI recognized by the legacy
// API. Funders without a registered DOI are identified by their ROR id.
func FunderDoiForRor(ror string) string {
	if doi, ok := funderRorToDoi[ror]; ok {
		return doi
	}
	return ror
}

// Maps a FundRef DOI back to the funder's ROR identifier. Unrecognized DOIs
// are passed through unchanged.
func FunderRorForDoi(doi string) string {
	if ror, ok := funderDoiToRor[doi]; ok {
		return ror
	}
	return doi
}
