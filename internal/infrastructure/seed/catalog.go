// Package seed lee el catálogo base (grades, tamaños, colores y tiendas) exportado
// del ERP en CSV y lo vuelca como SQL idempotente o en el store en memoria.
package seed

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/sku-matrix-api/internal/domain/entity"
)

// Catalog catálogo base ya validado.
type Catalog struct {
	Grades []entity.Grade
	Colors []entity.Color
	Stores []entity.Store
}

// Target destino en memoria del catálogo (lo implementa *memory.Store).
type Target interface {
	AddGrade(g entity.Grade)
	AddColor(c entity.Color)
	AddStore(st entity.Store)
}

// Read interpreta el CSV. Cada fila empieza por su tipo:
//
//	grade,<id>,<nombre>
//	size,<id>,<grade_id>,<rótulo>,<posición>[,<descripción>]
//	color,<id>,<código>,<descripción>
//	store,<id>,<código>,<nombre>[,<activa>]
//
// Las líneas que empiezan por # se ignoran. charset "ISO-8859-1" convierte a UTF-8.
func Read(r io.Reader, charset string) (*Catalog, error) {
	if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") || strings.EqualFold(charset, "latin1") {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	grades := map[string]*entity.Grade{}
	var gradeOrder []string
	var sizes []entity.Size
	out := &Catalog{}
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("seed: fila %d: %w", line, err)
		}
		kind := strings.ToLower(strings.TrimSpace(rec[0]))
		switch kind {
		case "grade":
			if len(rec) < 3 {
				return nil, fmt.Errorf("seed: fila %d: grade requiere id y nombre", line)
			}
			id := strings.TrimSpace(rec[1])
			if _, dup := grades[id]; dup {
				return nil, fmt.Errorf("seed: fila %d: grade %s repetida", line, id)
			}
			grades[id] = &entity.Grade{ID: id, Name: strings.TrimSpace(rec[2])}
			gradeOrder = append(gradeOrder, id)
		case "size":
			if len(rec) < 5 {
				return nil, fmt.Errorf("seed: fila %d: size requiere id, grade, rótulo y posición", line)
			}
			pos, err := strconv.Atoi(strings.TrimSpace(rec[4]))
			if err != nil {
				return nil, fmt.Errorf("seed: fila %d: posición %q inválida", line, rec[4])
			}
			s := entity.Size{ID: strings.TrimSpace(rec[1]), GradeID: strings.TrimSpace(rec[2]), Label: strings.TrimSpace(rec[3]), Position: pos}
			if len(rec) > 5 {
				s.Description = strings.TrimSpace(rec[5])
			}
			sizes = append(sizes, s)
		case "color":
			if len(rec) < 4 {
				return nil, fmt.Errorf("seed: fila %d: color requiere id, código y descripción", line)
			}
			out.Colors = append(out.Colors, entity.Color{ID: strings.TrimSpace(rec[1]), Code: strings.TrimSpace(rec[2]), Description: strings.TrimSpace(rec[3])})
		case "store":
			if len(rec) < 4 {
				return nil, fmt.Errorf("seed: fila %d: store requiere id, código y nombre", line)
			}
			st := entity.Store{ID: strings.TrimSpace(rec[1]), Code: strings.TrimSpace(rec[2]), Name: strings.TrimSpace(rec[3]), Active: true}
			if len(rec) > 4 && strings.TrimSpace(rec[4]) != "" {
				active, err := strconv.ParseBool(strings.TrimSpace(rec[4]))
				if err != nil {
					return nil, fmt.Errorf("seed: fila %d: activa %q inválida", line, rec[4])
				}
				st.Active = active
			}
			out.Stores = append(out.Stores, st)
		default:
			return nil, fmt.Errorf("seed: fila %d: tipo %q desconocido", line, rec[0])
		}
	}

	for _, s := range sizes {
		g, ok := grades[s.GradeID]
		if !ok {
			return nil, fmt.Errorf("seed: tamaño %s referencia la grade inexistente %s", s.ID, s.GradeID)
		}
		g.Sizes = append(g.Sizes, s)
	}
	for _, id := range gradeOrder {
		g := grades[id]
		sort.SliceStable(g.Sizes, func(i, j int) bool { return g.Sizes[i].Position < g.Sizes[j].Position })
		out.Grades = append(out.Grades, *g)
	}
	return out, nil
}

// LoadInto copia el catálogo al destino en memoria.
func (c *Catalog) LoadInto(t Target) {
	for _, g := range c.Grades {
		t.AddGrade(g)
	}
	for _, col := range c.Colors {
		t.AddColor(col)
	}
	for _, st := range c.Stores {
		t.AddStore(st)
	}
}

// WriteSQL escribe los INSERT idempotentes (ON CONFLICT) para PostgreSQL.
func (c *Catalog) WriteSQL(w io.Writer) error {
	var b strings.Builder
	b.WriteString("-- Catálogo base: grades, tamaños, colores y tiendas\n\n")
	for _, g := range c.Grades {
		fmt.Fprintf(&b, "INSERT INTO grades (id, name) VALUES ('%s', '%s')\nON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name;\n",
			escapeSQL(g.ID), escapeSQL(g.Name))
		for _, s := range g.Sizes {
			fmt.Fprintf(&b, "INSERT INTO sizes (id, grade_id, label, description, position) VALUES ('%s', '%s', '%s', '%s', %d)\n",
				escapeSQL(s.ID), escapeSQL(g.ID), escapeSQL(s.Label), escapeSQL(s.Description), s.Position)
			b.WriteString("ON CONFLICT (id) DO UPDATE SET label = EXCLUDED.label, description = EXCLUDED.description, position = EXCLUDED.position;\n")
		}
	}
	if len(c.Colors) > 0 {
		b.WriteString("\nINSERT INTO colors (id, code, description) VALUES\n")
		for i, col := range c.Colors {
			fmt.Fprintf(&b, "  ('%s', '%s', '%s')%s\n", escapeSQL(col.ID), escapeSQL(col.Code), escapeSQL(col.Description), sep(i, len(c.Colors)))
		}
		b.WriteString("ON CONFLICT (id) DO UPDATE SET code = EXCLUDED.code, description = EXCLUDED.description;\n")
	}
	if len(c.Stores) > 0 {
		b.WriteString("\nINSERT INTO stores (id, code, name, active) VALUES\n")
		for i, st := range c.Stores {
			fmt.Fprintf(&b, "  ('%s', '%s', '%s', %t)%s\n", escapeSQL(st.ID), escapeSQL(st.Code), escapeSQL(st.Name), st.Active, sep(i, len(c.Stores)))
		}
		b.WriteString("ON CONFLICT (id) DO UPDATE SET code = EXCLUDED.code, name = EXCLUDED.name, active = EXCLUDED.active;\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func sep(i, n int) string {
	if i < n-1 {
		return ","
	}
	return ""
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
