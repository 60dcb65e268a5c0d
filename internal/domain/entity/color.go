package entity

// Color de un producto. Code es el código corto mostrado en la UI (ej. "001").
type Color struct {
	ID          string
	Code        string
	Description string
}
