package entity

import "fmt"

// SequenceKey identifica un contador: (colección, temporada) para referencias
// o BarcodeSequenceKey para el cuerpo de los EAN-13.
type SequenceKey struct {
	Collection string
	Season     string
}

// BarcodeSequenceKey es la llave reservada del contador de códigos de barras.
// El código de colección tiene 3 caracteres, por lo que nunca coincide con una
// colección real (siempre de 2).
var BarcodeSequenceKey = SequenceKey{Collection: "EAN", Season: "13"}

// IsBarcode indica si la llave es la del contador de códigos de barras.
func (k SequenceKey) IsBarcode() bool {
	return k == BarcodeSequenceKey
}

// String devuelve la forma "colección/temporada", usada en logs y llaves de cache.
func (k SequenceKey) String() string {
	return fmt.Sprintf("%s/%s", k.Collection, k.Season)
}
