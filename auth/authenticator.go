package auth

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fernet/fernet-go"

	"github.com/zenodo-rdm/bridge/config"
)

// This type accepts a valid access token in exchange for a user record. The
// token file is maintained manually, which is a short-term solution, but it
// provides a method for adding users without Acts of God.
type Authenticator struct {
	UserForToken map[string]User
}

// reads the access token file at the given path, decrypting it with the
// configured service secret when one is set
func ReadAccessTokenFile(tokenFilePath string) (map[string]User, error) {
	content, err := os.ReadFile(tokenFilePath)
	if err != nil {
		return nil, err
	}

	plainText := content
	if config.Service.Secret != "" {
		key, err := fernet.DecodeKey(config.Service.Secret)
		if err != nil {
			return nil, err
		}
		plainText = fernet.VerifyAndDecrypt(content, 0, []*fernet.Key{key})
		if plainText == nil {
			return nil, fmt.Errorf("Couldn't decrypt the access token file %s",
				tokenFilePath)
		}
	}

	// the plaintext content is a tab-delimited file with records like so:
	// Name\tEmail\tOrcid\tOrganization\tToken
	reader := csv.NewReader(bytes.NewReader(plainText))
	reader.Comma = '\t'
	reader.Comment = '#'
	reader.FieldsPerRecord = 5

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	userRecords := make(map[string]User)
	for _, record := range records {
		token := record[4]
		userRecords[token] = User{
			Name:         record[0],
			Email:        record[1],
			Orcid:        record[2],
			Organization: record[3],
		}
	}

	return userRecords, nil
}

func NewAuthenticator() (*Authenticator, error) {
	var a Authenticator
	var err error
	filePath := filepath.Join(config.Service.DataDirectory, "access.dat")
	a.UserForToken, err = ReadAccessTokenFile(filePath)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// given an access token, returns a User or an error
func (a *Authenticator) GetUser(accessToken string) (User, error) {
	if user, found := a.UserForToken[accessToken]; found {
		return user, nil
	} else {
		return User{}, errors.New("Invalid access token!")
	}
}
