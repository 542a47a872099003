// Package idgen derives stable internal group ids from seed strings.
package idgen

import (
	"strings"

	"github.com/google/uuid"
)

// Namespace scopes every generated id. Changing it changes every derived id.
var Namespace = uuid.MustParse("5f1c9a52-8c0e-4d0b-9a39-7d4c1e2b6a10")

// Generate returns a deterministic id for seed: the name-based (version 5)
// UUID of the trimmed seed within Namespace. Equal seeds always produce
// equal ids, across processes and machines.
func Generate(seed string) string {
	return uuid.NewSHA1(Namespace, []byte(strings.TrimSpace(seed))).String()
}

// IsGenerated reports whether id has the shape Generate produces.
func IsGenerated(id string) bool {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return false
	}
	return parsed.Version() == 5
}
