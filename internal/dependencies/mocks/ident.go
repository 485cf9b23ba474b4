package mocks

import (
	"fmt"

	"github.com/bartdebruin-tp/matchmaker/internal/dependencies/ident"
)

// MockIdent is a mock implementation of the id generator for testing
type MockIdent struct {
	// IDs is a queue of ids to return from NewID
	IDs     []string
	idIndex int

	// seq numbers the fallback ids once the queue is exhausted
	seq int
}

// Ensure MockIdent implements Generator
var _ ident.Generator = (*MockIdent)(nil)

// NewMockIdent creates a new MockIdent
func NewMockIdent() *MockIdent {
	return &MockIdent{}
}

// NewID returns the next queued id, or a deterministic "id-N" fallback
func (g *MockIdent) NewID() string {
	if g.idIndex < len(g.IDs) {
		id := g.IDs[g.idIndex]
		g.idIndex++
		return id
	}
	g.seq++
	return fmt.Sprintf("id-%d", g.seq)
}

// QueueIDs adds ids to the result queue
func (g *MockIdent) QueueIDs(ids ...string) {
	g.IDs = append(g.IDs, ids...)
}
