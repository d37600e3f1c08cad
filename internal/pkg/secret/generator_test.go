package secret

import (
	"testing"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomGenerator(t *testing.T) {
	g := NewGenerator()

	id := g.NewID()
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())

	for i := 0; i < 100; i++ {
		pin, err := g.NewPIN()
		require.NoError(t, err)
		assert.True(t, validator.IsValidPIN(pin), "pin %q", pin)
	}
}

func TestSequence(t *testing.T) {
	s := &Sequence{Prefix: "rec", PINs: []string{"111111", "222222"}}

	assert.Equal(t, "rec-1", s.NewID())
	assert.Equal(t, "rec-2", s.NewID())

	for _, want := range []string{"111111", "222222", "111111"} {
		pin, err := s.NewPIN()
		require.NoError(t, err)
		assert.Equal(t, want, pin)
	}

	_, err := (&Sequence{}).NewPIN()
	assert.Error(t, err)
}
