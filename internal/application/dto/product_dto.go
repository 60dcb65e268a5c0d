package dto

import "time"

// ReferencePreviewResponse vista previa de la próxima referencia (no reservada).
type ReferencePreviewResponse struct {
	Reference string `json:"reference"`
	Sequence  int64  `json:"sequence"`
}

// CreateProductRequest entrada para crear un producto; la referencia se asigna en el servidor.
type CreateProductRequest struct {
	Collection  string `json:"collection"`
	Season      string `json:"season"`
	Group       string `json:"group"`
	GradeID     string `json:"grade_id"`
	Description string `json:"description"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string    `json:"id"`
	Reference   string    `json:"reference"`
	Collection  string    `json:"collection"`
	Season      string    `json:"season"`
	Group       string    `json:"group"`
	Sequence    int64     `json:"sequence"`
	GradeID     string    `json:"grade_id"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
