package auth

// A record containing information about a user of the bridge service. A user
// authorizes with a personal access token maintained in the service's access
// token file.
type User struct {
	// name (human-readable and display-friendly)
	Name string
	// email address
	Email string
	// ORCID identifier associated with this user
	Orcid string
	// organization with which this user is affiliated
	Organization string
}
