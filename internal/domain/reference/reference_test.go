package reference_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sku-matrix-api/internal/domain"
	"github.com/jhoicas/sku-matrix-api/internal/domain/reference"
)

func TestCompose_FormatoCanonico(t *testing.T) {
	ref, err := reference.Compose("25", "01", "10", 7)
	require.NoError(t, err)
	assert.Equal(t, "25-01-10007", ref)

	ref, err = reference.Compose("25", "01", "10", 999)
	require.NoError(t, err)
	assert.Equal(t, "25-01-10999", ref)
}

func TestCompose_Overflow(t *testing.T) {
	_, err := reference.Compose("25", "01", "10", 1000)
	assert.ErrorIs(t, err, domain.ErrSequenceOverflow)
}

func TestCompose_SecuenciaNoPositiva(t *testing.T) {
	_, err := reference.Compose("25", "01", "10", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompose_CodigosInvalidos(t *testing.T) {
	cases := [][3]string{
		{"2", "01", "10"},
		{"25", "011", "10"},
		{"25", "01", ""},
		{"2-", "01", "10"},
	}
	for _, c := range cases {
		_, err := reference.Compose(c[0], c[1], c[2], 1)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%v", c)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	ref, err := reference.Compose("AB", "02", "7X", 42)
	require.NoError(t, err)

	parts, err := reference.Parse(ref)
	require.NoError(t, err)
	assert.Equal(t, reference.Parts{Collection: "AB", Season: "02", Group: "7X", Sequence: 42}, parts)
}

func TestParse_Invalida(t *testing.T) {
	for _, ref := range []string{"", "25-01", "25-01-1000", "25-01-10abc", "25-01-10000"} {
		_, err := reference.Parse(ref)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, ref)
	}
}
