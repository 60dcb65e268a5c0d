package dto

// ErrorResponse cuerpo de error HTTP. Code es estable (MAYÚSCULAS_CON_GUIONES) y Message legible.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
