package order

import "github.com/google/uuid"

// IDLength is the number of characters kept from the random identifier
const IDLength = 8

// IDGenerator mints order identifiers
type IDGenerator interface {
	Mint() string
}

// IDGeneratorFunc adapts a plain function to IDGenerator
type IDGeneratorFunc func() string

// Mint calls f
func (f IDGeneratorFunc) Mint() string {
	return f()
}

// UUIDGenerator mints the first IDLength hex characters of a random (v4) UUID.
// The v4 UUID is read from crypto/rand, which leaves 32 bits of entropy after
// truncation. Uniqueness is probabilistic: no registry of issued ids is kept.
type UUIDGenerator struct{}

// NewUUIDGenerator creates a UUIDGenerator
func NewUUIDGenerator() UUIDGenerator {
	return UUIDGenerator{}
}

// Mint returns a new short order identifier
func (UUIDGenerator) Mint() string {
	return uuid.NewString()[:IDLength]
}
