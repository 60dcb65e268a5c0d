// Package memory implementa los puertos de persistencia en memoria. Se usa en modo
// desarrollo (STORAGE_BACKEND=memory) y en los tests de concurrencia.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/sku-matrix-api/internal/domain"
	"github.com/jhoicas/sku-matrix-api/internal/domain/entity"
	"github.com/jhoicas/sku-matrix-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository = (*Store)(nil)
	_ repository.GradeRepository   = gradeRepo{}
	_ repository.ColorRepository   = (*Store)(nil)
	_ repository.StoreRepository   = (*Store)(nil)
	_ repository.VariantRepository = (*Store)(nil)
	_ repository.StockRepository   = (*Store)(nil)
)

type stockKey struct {
	variantID string
	storeID   string
}

// Store guarda todo el estado bajo un único RWMutex.
type Store struct {
	mu            sync.RWMutex
	counters      map[entity.SequenceKey]int64
	products      map[string]*entity.Product
	productsByRef map[string]string
	grades        map[string]*entity.Grade
	colors        map[string]entity.Color
	stores        map[string]entity.Store
	variants      map[string]*entity.Variant // por código de barras
	stock         map[stockKey]int64
}

// New construye un store vacío.
func New() *Store {
	return &Store{
		counters:      make(map[entity.SequenceKey]int64),
		products:      make(map[string]*entity.Product),
		productsByRef: make(map[string]string),
		grades:        make(map[string]*entity.Grade),
		colors:        make(map[string]entity.Color),
		stores:        make(map[string]entity.Store),
		variants:      make(map[string]*entity.Variant),
		stock:         make(map[stockKey]int64),
	}
}

// ── Contadores ────────────────────────────────────────────────────────────────

// Current devuelve el último valor emitido para la llave (0 si nunca se usó).
func (s *Store) Current(ctx context.Context, key entity.SequenceKey) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters[key], nil
}

// Increment incrementa el contador bajo el lock de escritura.
func (s *Store) Increment(ctx context.Context, key entity.SequenceKey) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[key]++
	return s.counters[key], nil
}

// ── Catálogo (semillas) ───────────────────────────────────────────────────────

// AddGrade registra una grade con sus tamaños.
func (s *Store) AddGrade(g entity.Grade) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sizes := append([]entity.Size(nil), g.Sizes...)
	sort.SliceStable(sizes, func(i, j int) bool { return sizes[i].Position < sizes[j].Position })
	g.Sizes = sizes
	s.grades[g.ID] = &g
}

// AddColor registra un color.
func (s *Store) AddColor(c entity.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.colors[c.ID] = c
}

// AddStore registra una tienda.
func (s *Store) AddStore(st entity.Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stores[st.ID] = st
}

// ── ProductRepository ─────────────────────────────────────────────────────────

// Create registra el producto; la referencia es única.
func (s *Store) Create(_ context.Context, p *entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.productsByRef[p.Reference]; ok {
		return domain.ErrDuplicate
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	cp := *p
	s.products[p.ID] = &cp
	s.productsByRef[p.Reference] = p.ID
	return nil
}

// GetByID obtiene un producto por ID.
func (s *Store) GetByID(_ context.Context, id string) (*entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// GetByReference obtiene un producto por referencia.
func (s *Store) GetByReference(ctx context.Context, ref string) (*entity.Product, error) {
	s.mu.RLock()
	id, ok := s.productsByRef[ref]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return s.GetByID(ctx, id)
}

// ── Grade / Color / Store ─────────────────────────────────────────────────────

// Grades expone las grades como GradeRepository (GetByID choca con el de productos).
func (s *Store) Grades() repository.GradeRepository {
	return gradeRepo{s: s}
}

type gradeRepo struct{ s *Store }

func (r gradeRepo) GetByID(_ context.Context, id string) (*entity.Grade, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	g, ok := r.s.grades[id]
	if !ok {
		return nil, nil
	}
	cp := *g
	cp.Sizes = append([]entity.Size(nil), g.Sizes...)
	return &cp, nil
}

// GetByIDs devuelve los colores existentes en el orden pedido.
func (s *Store) GetByIDs(_ context.Context, ids []string) ([]entity.Color, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Color, 0, len(ids))
	for _, id := range ids {
		if c, ok := s.colors[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// List devuelve las tiendas filtradas, ordenadas por código.
func (s *Store) List(_ context.Context, ids []string, includeInactive bool) ([]entity.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	want := toSet(ids)
	out := make([]entity.Store, 0, len(s.stores))
	for _, st := range s.stores {
		if len(want) > 0 {
			if _, ok := want[st.ID]; !ok {
				continue
			}
		}
		if !st.Active && !includeInactive {
			continue
		}
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// ── VariantRepository / StockRepository (fuera de transacción) ───────────────

// GetByBarcode obtiene una variante por código de barras.
func (s *Store) GetByBarcode(_ context.Context, barcode string) (*entity.Variant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findByBarcode(s.variants, nil, barcode), nil
}

// GetBySKU obtiene la variante (producto, color, tamaño).
func (s *Store) GetBySKU(_ context.Context, productID, colorID, sizeID string) (*entity.Variant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findBySKU(s.variants, nil, productID, colorID, sizeID), nil
}

// Upsert inserta o actualiza por código de barras.
func (s *Store) Upsert(_ context.Context, v *entity.Variant) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return upsertVariant(s.variants, v)
}

// ListByProduct lista las variantes del producto por fecha de creación.
func (s *Store) ListByProduct(_ context.Context, productID string) ([]*entity.Variant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*entity.Variant
	for _, v := range s.variants {
		if v.ProductID == productID {
			cp := *v
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Barcode < out[j].Barcode
	})
	return out, nil
}

// UpsertSeed reemplaza la cantidad de la variante en la tienda.
func (s *Store) UpsertSeed(_ context.Context, row *entity.StockRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.stores[row.StoreID]; !ok {
		return fmt.Errorf("%w: tienda %s", domain.ErrInvalidReference, row.StoreID)
	}
	s.stock[stockKey{variantID: row.VariantID, storeID: row.StoreID}] = row.Quantity
	return nil
}

// ListCells proyecta el stock del producto a celdas (tienda, color, tamaño).
func (s *Store) ListCells(_ context.Context, q repository.StockQuery) ([]entity.StockCell, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byID := make(map[string]*entity.Variant)
	for _, v := range s.variants {
		if v.ProductID == q.ProductID {
			byID[v.ID] = v
		}
	}
	want := toSet(q.StoreIDs)
	var cells []entity.StockCell
	for k, qty := range s.stock {
		v, ok := byID[k.variantID]
		if !ok {
			continue
		}
		if len(want) > 0 {
			if _, ok := want[k.storeID]; !ok {
				continue
			}
		}
		st, ok := s.stores[k.storeID]
		if !ok || (!st.Active && !q.IncludeInactive) {
			continue
		}
		cells = append(cells, entity.StockCell{StoreID: k.storeID, ColorID: v.ColorID, SizeID: v.SizeID, Quantity: qty})
	}
	sort.Slice(cells, func(i, j int) bool {
		a, b := cells[i], cells[j]
		if a.StoreID != b.StoreID {
			return a.StoreID < b.StoreID
		}
		if a.ColorID != b.ColorID {
			return a.ColorID < b.ColorID
		}
		return a.SizeID < b.SizeID
	})
	return cells, nil
}

// ── Transacciones ─────────────────────────────────────────────────────────────

// RunVariant ejecuta fn con el lock de escritura tomado; los cambios se aplican
// solo si fn no devuelve error.
func (s *Store) RunVariant(ctx context.Context, fn func(
	variantRepo repository.VariantRepository,
	stockRepo repository.StockRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txView{s: s, variants: make(map[string]*entity.Variant), stock: make(map[stockKey]int64)}
	if err := fn(tx, tx); err != nil {
		return err
	}
	for barcode, v := range tx.variants {
		s.variants[barcode] = v
	}
	for k, qty := range tx.stock {
		s.stock[k] = qty
	}
	return nil
}

// txView superpone los cambios pendientes sobre el estado base. Se usa con el lock tomado.
type txView struct {
	s        *Store
	variants map[string]*entity.Variant
	stock    map[stockKey]int64
}

func (t *txView) GetByBarcode(_ context.Context, barcode string) (*entity.Variant, error) {
	return findByBarcode(t.s.variants, t.variants, barcode), nil
}

func (t *txView) GetBySKU(_ context.Context, productID, colorID, sizeID string) (*entity.Variant, error) {
	return findBySKU(t.s.variants, t.variants, productID, colorID, sizeID), nil
}

func (t *txView) Upsert(_ context.Context, v *entity.Variant) (bool, error) {
	existing := findByBarcode(t.s.variants, t.variants, v.Barcode)
	if existing != nil && !existing.SameSKU(*v) {
		return false, fmt.Errorf("%w: %s pertenece a otra variante", domain.ErrDuplicateBarcode, v.Barcode)
	}
	cp := *v
	if existing != nil {
		cp.ID = existing.ID
		cp.CreatedAt = existing.CreatedAt
	} else if cp.ID == "" {
		cp.ID = uuid.New().String()
	}
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	v.ID = cp.ID
	t.variants[v.Barcode] = &cp
	return existing == nil, nil
}

func (t *txView) ListByProduct(_ context.Context, productID string) ([]*entity.Variant, error) {
	var out []*entity.Variant
	seen := make(map[string]bool)
	for _, m := range []map[string]*entity.Variant{t.variants, t.s.variants} {
		for b, v := range m {
			if v.ProductID == productID && !seen[b] {
				seen[b] = true
				cp := *v
				out = append(out, &cp)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Barcode < out[j].Barcode })
	return out, nil
}

func (t *txView) UpsertSeed(_ context.Context, row *entity.StockRow) error {
	if _, ok := t.s.stores[row.StoreID]; !ok {
		return fmt.Errorf("%w: tienda %s", domain.ErrInvalidReference, row.StoreID)
	}
	t.stock[stockKey{variantID: row.VariantID, storeID: row.StoreID}] = row.Quantity
	return nil
}

func (t *txView) ListCells(context.Context, repository.StockQuery) ([]entity.StockCell, error) {
	return nil, domain.ErrInvalidInput
}

// ── helpers ───────────────────────────────────────────────────────────────────

func findByBarcode(base, staged map[string]*entity.Variant, barcode string) *entity.Variant {
	if v, ok := staged[barcode]; ok {
		cp := *v
		return &cp
	}
	if v, ok := base[barcode]; ok {
		cp := *v
		return &cp
	}
	return nil
}

func findBySKU(base, staged map[string]*entity.Variant, productID, colorID, sizeID string) *entity.Variant {
	for _, m := range []map[string]*entity.Variant{staged, base} {
		for _, v := range m {
			if v.ProductID == productID && v.ColorID == colorID && v.SizeID == sizeID {
				cp := *v
				return &cp
			}
		}
	}
	return nil
}

func upsertVariant(m map[string]*entity.Variant, v *entity.Variant) (bool, error) {
	cp := *v
	existing, ok := m[v.Barcode]
	if ok && !existing.SameSKU(*v) {
		return false, fmt.Errorf("%w: %s pertenece a otra variante", domain.ErrDuplicateBarcode, v.Barcode)
	}
	if ok {
		cp.ID = existing.ID
		cp.CreatedAt = existing.CreatedAt
	} else if cp.ID == "" {
		cp.ID = uuid.New().String()
	}
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	v.ID = cp.ID
	m[v.Barcode] = &cp
	return !ok, nil
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
