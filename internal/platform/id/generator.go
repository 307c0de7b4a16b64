package id

import (
	"strings"

	"github.com/google/uuid"
)

// Generator creates opaque IDs for locally created references.
type Generator interface {
	NewID() string
}

// UUIDGenerator returns random UUIDs, optionally behind a prefix such as "sub_".
type UUIDGenerator struct {
	prefix string
}

func NewUUIDGenerator(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: strings.TrimSpace(prefix)}
}

func (g *UUIDGenerator) NewID() string {
	return g.prefix + uuid.NewString()
}
