package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/sku-matrix-api/internal/domain"
	"github.com/jhoicas/sku-matrix-api/pkg/ean13"
)

// ProvisionalPrefix abre el rango GS1 de circulación restringida (20-29); los códigos
// provisionales nunca comparten cuerpo con los emitidos bajo el prefijo de la empresa.
const ProvisionalPrefix = "2"

// IsProvisionalBarcode indica si el código cae en el rango provisional. El prefijo de la
// empresa nunca empieza por ProvisionalPrefix, así que no depende de la marca del cliente.
func IsProvisionalBarcode(barcode string) bool {
	return strings.HasPrefix(barcode, ProvisionalPrefix)
}

// ComposeBarcode arma el EAN-13 prefijo + secuencia con ceros a la izquierda + dígito verificador.
func ComposeBarcode(prefix string, seq int64) (string, error) {
	width := ean13.BodyLength - len(prefix)
	if width <= 0 {
		return "", fmt.Errorf("%w: prefijo %q sin espacio para la secuencia", domain.ErrInvalidInput, prefix)
	}
	if seq < 1 {
		return "", fmt.Errorf("%w: secuencia %d", domain.ErrInvalidInput, seq)
	}
	s := strconv.FormatInt(seq, 10)
	if len(s) > width {
		return "", fmt.Errorf("%w: secuencia %d no cabe en %d dígitos", domain.ErrSequenceOverflow, seq, width)
	}
	return ean13.Compose(prefix + strings.Repeat("0", width-len(s)) + s)
}

// localGenerator emite cuerpos provisionales a partir del reloj y un contador en memoria.
type localGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func newLocalGenerator(now func() time.Time) *localGenerator {
	return &localGenerator{now: now}
}

// next devuelve un código provisional estrictamente creciente dentro del proceso.
func (g *localGenerator) next() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	width := ean13.BodyLength - len(ProvisionalPrefix)
	limit := int64(1)
	for i := 0; i < width; i++ {
		limit *= 10
	}
	v := g.now().UnixMilli() % limit
	if v <= g.last {
		v = g.last + 1
	}
	if v >= limit {
		v = 1
	}
	g.last = v
	return ComposeBarcode(ProvisionalPrefix, v)
}
