// Package ean13 calcula y valida el dígito verificador de códigos de barras EAN-13.
package ean13

import (
	"errors"
	"fmt"
)

// Longitudes del código completo y del cuerpo (sin dígito verificador).
const (
	Length     = 13
	BodyLength = 12
)

var (
	ErrInvalidFormat   = errors.New("ean13: el código debe contener solo dígitos")
	ErrInvalidLength   = errors.New("ean13: longitud inválida")
	ErrInvalidChecksum = errors.New("ean13: dígito verificador inválido")
)

// CheckDigit calcula el dígito verificador de un cuerpo de 12 dígitos.
// Peso 1 en posiciones impares y 3 en pares (contando desde 1 a la izquierda);
// dígito = (10 - suma mod 10) mod 10.
func CheckDigit(body string) (int, error) {
	if len(body) != BodyLength {
		return 0, fmt.Errorf("%w: cuerpo de %d dígitos, se esperaban %d", ErrInvalidLength, len(body), BodyLength)
	}
	if !allDigits(body) {
		return 0, ErrInvalidFormat
	}
	return checkDigit(body), nil
}

// Compose devuelve el cuerpo con su dígito verificador agregado.
func Compose(body string) (string, error) {
	d, err := CheckDigit(body)
	if err != nil {
		return "", err
	}
	return body + string(rune('0'+d)), nil
}

// Validate verifica un código de 13 dígitos completo.
func Validate(code string) error {
	if len(code) != Length {
		return fmt.Errorf("%w: %d dígitos, se esperaban %d", ErrInvalidLength, len(code), Length)
	}
	if !allDigits(code) {
		return ErrInvalidFormat
	}
	expected := checkDigit(code[:BodyLength])
	got := int(code[BodyLength] - '0')
	if got != expected {
		return fmt.Errorf("%w: esperado %d, recibido %d", ErrInvalidChecksum, expected, got)
	}
	return nil
}

func checkDigit(body string) int {
	var sum int
	for i := 0; i < BodyLength; i++ {
		d := int(body[i] - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return (10 - sum%10) % 10
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
