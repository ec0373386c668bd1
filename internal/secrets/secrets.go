// Package secrets loads the --secrets JSON file: the sole source of
// credentials and the encryption password, kept out of the command line and
// environment so they don't leak into shell history or process listings.
package secrets

import (
	"encoding/json"
	"os"

	synclibErrors "github.com/chadvoegele/s7/internal/synclib/errors"
)

// Secrets holds everything a sync or restore invocation might need to
// authenticate against an endpoint. Fields are optional; which ones are
// required depends on the URI scheme(s) in play.
type Secrets struct {
	Password        string `json:"password"`
	AccessKeyID     string `json:"accessKeyId"`
	SecretAccessKey string `json:"secretAccessKey"`
	SessionToken    string `json:"sessionToken"`
	Region          string `json:"region"`
}

// Load reads and parses the secrets file at path. Unknown fields are
// ignored rather than rejected, so a secrets file shared across tool
// versions doesn't break when a field is added or removed.
func Load(path string) (Secrets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Secrets{}, synclibErrors.Wrap(synclibErrors.ErrConfiguration, "secrets: read "+path, err)
	}

	var s Secrets
	if err := json.Unmarshal(data, &s); err != nil {
		return Secrets{}, synclibErrors.Wrap(synclibErrors.ErrConfiguration, "secrets: parse "+path, err)
	}

	return s, nil
}
