package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// Secuencias y códigos
	ErrAllocationFailed = errors.New("no fue posible asignar el siguiente valor de la secuencia")
	ErrSequenceOverflow = errors.New("la secuencia excede el ancho del campo")

	// Grade / matriz de variantes
	ErrEmptyGrade    = errors.New("la grade no tiene tamaños")
	ErrEmptyColorSet = errors.New("no se seleccionaron colores")

	// Persistencia por lote
	ErrDuplicateBarcode = errors.New("código de barras duplicado")
	ErrInvalidReference = errors.New("color o tamaño inválido para el producto")

	// Matriz de stock
	ErrReferenceNotFound = errors.New("referencia no encontrada")
)
