package entity

// Grade es un conjunto ordenado de tamaños asociado a una familia de productos.
type Grade struct {
	ID    string
	Name  string
	Sizes []Size // ordenados por Position
}

// Size es un tamaño de una grade (P, M, G, 38, 40...).
type Size struct {
	ID          string
	GradeID     string
	Label       string
	Description string
	Position    int
}

// HasSize indica si el tamaño pertenece a la grade.
func (g Grade) HasSize(sizeID string) bool {
	for _, s := range g.Sizes {
		if s.ID == sizeID {
			return true
		}
	}
	return false
}
