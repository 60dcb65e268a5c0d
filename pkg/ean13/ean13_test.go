package ean13_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sku-matrix-api/pkg/ean13"
)

// Vectores de códigos reales publicados (GS1).
func TestCheckDigit_VectoresConocidos(t *testing.T) {
	cases := []struct {
		body string
		want int
	}{
		{"400638133393", 1}, // 4006381333931
		{"590123412345", 7}, // 5901234123457
		{"789100031550", 7}, // 7891000315507
		{"000000000000", 0},
	}
	for _, tc := range cases {
		t.Run(tc.body, func(t *testing.T) {
			got, err := ean13.CheckDigit(tc.body)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// Para cualquier cuerpo, Validate acepta exactamente un dígito verificador.
func TestValidate_SoloUnDigitoEsValido(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for n := 0; n < 500; n++ {
		body := fmt.Sprintf("%012d", rng.Int63n(1_000_000_000_000))
		d, err := ean13.CheckDigit(body)
		require.NoError(t, err)

		for candidate := 0; candidate <= 9; candidate++ {
			err := ean13.Validate(fmt.Sprintf("%s%d", body, candidate))
			if candidate == d {
				assert.NoError(t, err, "cuerpo %s dígito %d", body, candidate)
			} else {
				assert.ErrorIs(t, err, ean13.ErrInvalidChecksum, "cuerpo %s dígito %d", body, candidate)
			}
		}
	}
}

func TestCompose(t *testing.T) {
	code, err := ean13.Compose("400638133393")
	require.NoError(t, err)
	assert.Equal(t, "4006381333931", code)
	assert.NoError(t, ean13.Validate(code))
}

// ── Errores ───────────────────────────────────────────────────────────────────

func TestValidate_LongitudInvalida(t *testing.T) {
	assert.ErrorIs(t, ean13.Validate("123"), ean13.ErrInvalidLength)
	assert.ErrorIs(t, ean13.Validate("40063813339310"), ean13.ErrInvalidLength)
	assert.ErrorIs(t, ean13.Validate(""), ean13.ErrInvalidLength)
}

func TestValidate_FormatoInvalido(t *testing.T) {
	assert.ErrorIs(t, ean13.Validate("40063813339A1"), ean13.ErrInvalidFormat)
	assert.ErrorIs(t, ean13.Validate("4006381-33931"), ean13.ErrInvalidFormat)
}

func TestCheckDigit_CuerpoInvalido(t *testing.T) {
	_, err := ean13.CheckDigit("12345")
	assert.ErrorIs(t, err, ean13.ErrInvalidLength)

	_, err = ean13.CheckDigit("12345678901x")
	assert.ErrorIs(t, err, ean13.ErrInvalidFormat)
}
