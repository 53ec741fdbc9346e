package data

import "crypto/rand"

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 25
)

// NewID returns a fresh 25-character lowercase-alphanumeric identifier
// starting with 'c', the primary-key format used across all tables.
func NewID() string {
	random := make([]byte, idLength-1)
	if _, err := rand.Read(random); err != nil {
		panic(err) // crypto/rand does not fail on supported platforms
	}

	id := make([]byte, idLength)
	id[0] = 'c'
	for i, b := range random {
		id[i+1] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return string(id)
}
