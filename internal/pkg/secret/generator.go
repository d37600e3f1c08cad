package secret

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"

	"github.com/google/uuid"
)

// Generator produces record ids and temporary PINs. Tests substitute a
// deterministic implementation.
type Generator interface {
	NewID() string
	NewPIN() (string, error)
}

type randomGenerator struct{}

// NewGenerator returns the production generator: UUIDv7 ids and
// crypto/rand six-digit PINs.
func NewGenerator() Generator {
	return randomGenerator{}
}

func (randomGenerator) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

var pinSpace = big.NewInt(1_000_000)

func (randomGenerator) NewPIN() (string, error) {
	n, err := rand.Int(rand.Reader, pinSpace)
	if err != nil {
		return "", fmt.Errorf("generate pin: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Sequence is a deterministic Generator: ids are prefix-1, prefix-2, ... and
// PINs are served from the given list, cycling when exhausted.
type Sequence struct {
	Prefix string
	PINs   []string

	mu      sync.Mutex
	nextID  int
	nextPIN int
}

func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	prefix := s.Prefix
	if prefix == "" {
		prefix = "id"
	}
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func (s *Sequence) NewPIN() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.PINs) == 0 {
		return "", fmt.Errorf("sequence has no pins")
	}
	pin := s.PINs[s.nextPIN%len(s.PINs)]
	s.nextPIN++
	return pin, nil
}
