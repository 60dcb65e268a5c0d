package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/sku-matrix-api/internal/domain"
	"github.com/jhoicas/sku-matrix-api/internal/domain/entity"
	"github.com/jhoicas/sku-matrix-api/internal/domain/repository"
	"github.com/jhoicas/sku-matrix-api/pkg/ean13"
	"github.com/jhoicas/sku-matrix-api/pkg/logger"
)

// Códigos de error por ítem del lote.
const (
	ReasonInvalidChecksum  = "INVALID_CHECKSUM"
	ReasonInvalidReference = "INVALID_REFERENCE"
	ReasonDuplicateBarcode = "DUPLICATE_BARCODE"
	ReasonDuplicateSKU     = "DUPLICATE_SKU"
	ReasonAllocationFailed = "ALLOCATION_FAILED"
	ReasonPersistFailed    = "PERSIST_FAILED"
)

// PersistBatchInput lote de candidatos a persistir bajo un producto.
type PersistBatchInput struct {
	ProductReference string
	PriceTableID     string
	Items            []entity.VariantCandidate
}

// BatchItem resultado de un ítem persistido, con el código de barras definitivo.
type BatchItem struct {
	Index     int
	VariantID string
	ColorID   string
	SizeID    string
	Barcode   string
	Created   bool
}

// BatchItemError falla de un ítem; Index es la posición en el lote de entrada.
type BatchItemError struct {
	Index   int
	Reason  string
	Message string
}

// BatchResult resumen del lote. Un ítem fallido nunca aborta a los demás.
type BatchResult struct {
	CreatedCount int
	UpdatedCount int
	Items        []BatchItem
	Errors       []BatchItemError
}

// BatchPersister persiste candidatos de variantes, cada uno en su propia transacción.
type BatchPersister struct {
	products repository.ProductRepository
	grades   repository.GradeRepository
	colors   repository.ColorRepository
	variants repository.VariantRepository
	tx       VariantTxRunner
	alloc    SequenceAllocator
	prefix   string
	metrics  Metrics
	log      *logger.Logger
}

// NewBatchPersister construye el caso de uso. metrics puede ser nil.
func NewBatchPersister(
	products repository.ProductRepository,
	grades repository.GradeRepository,
	colors repository.ColorRepository,
	variants repository.VariantRepository,
	tx VariantTxRunner,
	alloc SequenceAllocator,
	prefix string,
	metrics Metrics,
	log *logger.Logger,
) *BatchPersister {
	return &BatchPersister{
		products: products,
		grades:   grades,
		colors:   colors,
		variants: variants,
		tx:       tx,
		alloc:    alloc,
		prefix:   prefix,
		metrics:  metrics,
		log:      log.Component("batch"),
	}
}

// itemError error interno con el código de motivo del ítem.
type itemError struct {
	reason string
	err    error
}

func (e *itemError) Error() string { return e.err.Error() }
func (e *itemError) Unwrap() error { return e.err }

func fail(reason string, err error) *itemError {
	return &itemError{reason: reason, err: err}
}

// PersistVariantBatch persiste los ítems del lote. Solo una referencia inexistente
// (o un error al leer el catálogo) hace fallar la llamada completa.
func (p *BatchPersister) PersistVariantBatch(ctx context.Context, in PersistBatchInput) (*BatchResult, error) {
	product, err := p.products.GetByReference(ctx, in.ProductReference)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrReferenceNotFound, in.ProductReference)
	}
	grade, err := p.grades.GetByID(ctx, product.GradeID)
	if err != nil {
		return nil, err
	}
	colors, err := p.loadColors(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	res := &BatchResult{Items: []BatchItem{}, Errors: []BatchItemError{}}
	claimed := make(map[string]int, len(in.Items))

	for i, item := range in.Items {
		out, ierr := p.persistItem(ctx, product, grade, colors, claimed, in.PriceTableID, i, item)
		if ierr != nil {
			p.log.Warn().Err(ierr.err).Int("index", i).Str("reason", ierr.reason).
				Str("reference", product.Reference).Msg("ítem del lote rechazado")
			res.Errors = append(res.Errors, BatchItemError{Index: i, Reason: ierr.reason, Message: ierr.err.Error()})
			p.observe(ierr.reason)
			continue
		}
		res.Items = append(res.Items, *out)
		if out.Created {
			res.CreatedCount++
			p.observe("created")
		} else {
			res.UpdatedCount++
			p.observe("updated")
		}
	}
	p.log.Info().Str("reference", product.Reference).Int("created", res.CreatedCount).
		Int("updated", res.UpdatedCount).Int("errors", len(res.Errors)).Msg("lote de variantes persistido")
	return res, nil
}

func (p *BatchPersister) persistItem(
	ctx context.Context,
	product *entity.Product,
	grade *entity.Grade,
	colors map[string]struct{},
	claimed map[string]int,
	priceTableID string,
	index int,
	item entity.VariantCandidate,
) (*BatchItem, *itemError) {
	if err := ctx.Err(); err != nil {
		return nil, fail(ReasonPersistFailed, err)
	}
	if err := ean13.Validate(item.Barcode); err != nil {
		return nil, fail(ReasonInvalidChecksum, fmt.Errorf("código %q: %w", item.Barcode, err))
	}
	if _, ok := colors[item.Color.ID]; !ok {
		return nil, fail(ReasonInvalidReference, fmt.Errorf("%w: color %s", domain.ErrInvalidReference, item.Color.ID))
	}
	if grade == nil || !grade.HasSize(item.Size.ID) {
		return nil, fail(ReasonInvalidReference, fmt.Errorf("%w: tamaño %s fuera de la grade", domain.ErrInvalidReference, item.Size.ID))
	}

	barcode := item.Barcode
	if item.Provisional || IsProvisionalBarcode(item.Barcode) {
		final, ierr := p.reconcile(ctx, product, item)
		if ierr != nil {
			return nil, ierr
		}
		barcode = final
	}
	if prev, dup := claimed[barcode]; dup {
		return nil, fail(ReasonDuplicateBarcode, fmt.Errorf("%w: %s ya usado en el ítem %d", domain.ErrDuplicateBarcode, barcode, prev))
	}
	claimed[barcode] = index

	now := time.Now()
	v := &entity.Variant{
		ProductID:        product.ID,
		ProductReference: product.Reference,
		ColorID:          item.Color.ID,
		SizeID:           item.Size.ID,
		Barcode:          barcode,
		UnitPrice:        item.UnitPrice,
		PriceTableID:     priceTableID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	var created bool
	err := p.tx.RunVariant(ctx, func(variants repository.VariantRepository, stock repository.StockRepository) error {
		owner, err := variants.GetByBarcode(ctx, barcode)
		if err != nil {
			return err
		}
		if owner != nil && !owner.SameSKU(*v) {
			return fmt.Errorf("%w: %s pertenece a otra variante (%s)", domain.ErrDuplicateBarcode, barcode, owner.ProductReference)
		}
		if owner == nil {
			sku, err := variants.GetBySKU(ctx, v.ProductID, v.ColorID, v.SizeID)
			if err != nil {
				return err
			}
			if sku != nil {
				return fmt.Errorf("%w: (%s, %s) ya tiene el código %s", domain.ErrDuplicate, v.ColorID, v.SizeID, sku.Barcode)
			}
		}
		created, err = variants.Upsert(ctx, v)
		if err != nil {
			return err
		}
		if !created {
			return nil
		}
		for _, seed := range item.StockSeeds {
			if seed.Quantity < 0 {
				return fmt.Errorf("%w: cantidad inicial negativa en tienda %s", domain.ErrInvalidInput, seed.StoreID)
			}
			row := &entity.StockRow{VariantID: v.ID, StoreID: seed.StoreID, Quantity: seed.Quantity, UpdatedAt: now}
			if err := stock.UpsertSeed(ctx, row); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		delete(claimed, barcode)
		switch {
		case errors.Is(err, domain.ErrDuplicateBarcode):
			return nil, fail(ReasonDuplicateBarcode, err)
		case errors.Is(err, domain.ErrDuplicate):
			return nil, fail(ReasonDuplicateSKU, err)
		case errors.Is(err, domain.ErrInvalidReference):
			return nil, fail(ReasonInvalidReference, err)
		default:
			return nil, fail(ReasonPersistFailed, err)
		}
	}
	return &BatchItem{
		Index:     index,
		VariantID: v.ID,
		ColorID:   v.ColorID,
		SizeID:    v.SizeID,
		Barcode:   barcode,
		Created:   created,
	}, nil
}

// reconcile reemplaza un código provisional: reutiliza el del SKU ya persistido o
// emite uno nuevo del contador.
func (p *BatchPersister) reconcile(ctx context.Context, product *entity.Product, item entity.VariantCandidate) (string, *itemError) {
	existing, err := p.variants.GetBySKU(ctx, product.ID, item.Color.ID, item.Size.ID)
	if err != nil {
		return "", fail(ReasonPersistFailed, err)
	}
	if existing != nil {
		return existing.Barcode, nil
	}
	seq, err := p.alloc.Allocate(ctx, entity.BarcodeSequenceKey)
	if err != nil {
		if errors.Is(err, domain.ErrAllocationFailed) {
			return "", fail(ReasonAllocationFailed, err)
		}
		return "", fail(ReasonPersistFailed, err)
	}
	code, err := ComposeBarcode(p.prefix, seq)
	if err != nil {
		return "", fail(ReasonAllocationFailed, err)
	}
	p.log.Debug().Str("provisional", item.Barcode).Str("barcode", code).Msg("código provisional re-emitido")
	return code, nil
}

func (p *BatchPersister) loadColors(ctx context.Context, items []entity.VariantCandidate) (map[string]struct{}, error) {
	ids := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if it.Color.ID != "" && !seen[it.Color.ID] {
			seen[it.Color.ID] = true
			ids = append(ids, it.Color.ID)
		}
	}
	set := make(map[string]struct{}, len(ids))
	if len(ids) == 0 {
		return set, nil
	}
	found, err := p.colors.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, c := range found {
		set[c.ID] = struct{}{}
	}
	return set, nil
}

func (p *BatchPersister) observe(result string) {
	if p.metrics != nil {
		p.metrics.ObserveBatchItem(result)
	}
}
