// Package reference compone y descompone la referencia legible de un producto:
// {colección}-{temporada}-{grupo}{secuencia con 3 dígitos}, ej. 25-01-10007.
package reference

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/sku-matrix-api/internal/domain"
)

const (
	codeLength     = 2
	sequenceDigits = 3
	// MaxSequence último valor representable en el campo de 3 dígitos.
	MaxSequence = 999
)

// Parts componentes de una referencia.
type Parts struct {
	Collection string
	Season     string
	Group      string
	Sequence   int64
}

// Compose arma la referencia. No asigna la secuencia: quien llama la obtiene con
// Peek (vista previa) o Allocate (al confirmar).
func Compose(collection, season, group string, sequence int64) (string, error) {
	if err := ValidateCodes(collection, season, group); err != nil {
		return "", err
	}
	if sequence < 1 {
		return "", fmt.Errorf("%w: secuencia %d", domain.ErrInvalidInput, sequence)
	}
	if sequence > MaxSequence {
		return "", fmt.Errorf("%w: %d no cabe en %d dígitos (%s-%s-%s)",
			domain.ErrSequenceOverflow, sequence, sequenceDigits, collection, season, group)
	}
	return fmt.Sprintf("%s-%s-%s%03d", collection, season, group, sequence), nil
}

// Parse descompone una referencia generada por Compose.
func Parse(ref string) (Parts, error) {
	pieces := strings.Split(ref, "-")
	if len(pieces) != 3 || len(pieces[2]) != codeLength+sequenceDigits {
		return Parts{}, fmt.Errorf("%w: referencia %q", domain.ErrInvalidInput, ref)
	}
	group, seqStr := pieces[2][:codeLength], pieces[2][codeLength:]
	if err := ValidateCodes(pieces[0], pieces[1], group); err != nil {
		return Parts{}, err
	}
	seq, err := strconv.ParseInt(seqStr, 10, 64)
	if err != nil || seq < 1 {
		return Parts{}, fmt.Errorf("%w: secuencia %q", domain.ErrInvalidInput, seqStr)
	}
	return Parts{Collection: pieces[0], Season: pieces[1], Group: group, Sequence: seq}, nil
}

// ValidateCodes exige códigos de exactamente 2 caracteres alfanuméricos.
func ValidateCodes(collection, season, group string) error {
	for name, code := range map[string]string{"colección": collection, "temporada": season, "grupo": group} {
		if len(code) != codeLength || !alphanumeric(code) {
			return fmt.Errorf("%w: código de %s %q debe tener %d caracteres", domain.ErrInvalidInput, name, code, codeLength)
		}
	}
	return nil
}

func alphanumeric(s string) bool {
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z') {
			return false
		}
	}
	return true
}
