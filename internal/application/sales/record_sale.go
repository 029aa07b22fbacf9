// Package sales registra ventas de forma atómica y expone el libro de ventas.
package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/devicepos-api/internal/application/dto"
	"github.com/jhoicas/devicepos-api/internal/domain"
	"github.com/jhoicas/devicepos-api/internal/domain/entity"
	"github.com/jhoicas/devicepos-api/internal/domain/repository"
	"github.com/jhoicas/devicepos-api/pkg/logger"
	"github.com/jhoicas/devicepos-api/pkg/metrics"
)

// Config opciones del caso de uso.
type Config struct {
	AffinityEnabled bool
}

// SaleUseCase registra ventas (inventario + libro en una sola transacción) y las lista.
type SaleUseCase struct {
	txRunner TxRunner
	devices  repository.DeviceRepository
	sales    repository.SaleRepository
	cfg      Config
	log      *logger.Logger
	metrics  *metrics.Sales
	now      func() time.Time
}

// NewSaleUseCase construye el caso de uso. m puede ser nil.
func NewSaleUseCase(
	txRunner TxRunner,
	devices repository.DeviceRepository,
	sales repository.SaleRepository,
	cfg Config,
	log *logger.Logger,
	m *metrics.Sales,
) *SaleUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SaleUseCase{
		txRunner: txRunner,
		devices:  devices,
		sales:    sales,
		cfg:      cfg,
		log:      log.Component("sales"),
		metrics:  m,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type line struct {
	uid  string
	qty  int
	want entity.DeviceType // "" si el cliente no lo envió
}

// RecordSale valida la solicitud y, en una transacción, descuenta inventario línea por línea
// y persiste la venta. Cualquier fallo deja el catálogo y el libro sin cambios.
func (uc *SaleUseCase) RecordSale(ctx context.Context, in dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	lines, err := normalize(in)
	if err != nil {
		uc.metrics.ObserveRejected(metrics.ReasonValidation)
		return nil, err
	}

	sale := &entity.Sale{
		ID:            uuid.New().String(),
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		Location:      strings.TrimSpace(in.Location),
	}

	err = uc.txRunner.Run(ctx, func(devices repository.DeviceRepository, sales repository.SaleRepository) error {
		// dentro de la transacción: el orden del libro coincide con created_at
		sale.CreatedAt = uc.now()
		catalog, basket, err := checkLines(ctx, devices, lines)
		if err != nil {
			return err
		}
		items := make([]entity.SaleItem, 0, len(lines))
		total := decimal.Zero
		for _, ln := range lines {
			d, err := devices.DecrementStock(ctx, ln.uid, ln.qty, basket)
			if err != nil {
				return stockError(err, ln.uid, catalog[ln.uid])
			}
			item := snapshot(d, ln.qty)
			total = total.Add(item.TotalPrice)
			items = append(items, item)
		}
		sale.Items = items
		sale.TotalPrice = total
		if err := sales.Create(ctx, sale); err != nil {
			return fmt.Errorf("guardar venta: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.metrics.ObserveRejected(rejectReason(err))
		uc.log.Warn().Err(err).Int("items", len(lines)).Msg("venta rechazada")
		return nil, err
	}

	revenue, _ := sale.TotalPrice.Float64()
	uc.metrics.ObserveRecorded(sale.Units(), revenue)
	uc.log.Info().
		Str("sale_id", sale.ID).
		Int("items", len(sale.Items)).
		Str("total_price", sale.TotalPrice.String()).
		Str("payment_method", sale.PaymentMethod).
		Msg("venta registrada")

	if uc.cfg.AffinityEnabled {
		uc.updateAffinity(ctx, sale)
	}

	out := ToSaleResponse(sale)
	return &out, nil
}

func normalize(in dto.RecordSaleRequest) ([]line, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: items no puede estar vacío", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.PaymentMethod) == "" {
		return nil, fmt.Errorf("%w: payment_method es obligatorio", domain.ErrInvalidInput)
	}
	lines := make([]line, 0, len(in.Items))
	for i, it := range in.Items {
		uid := strings.TrimSpace(it.UID)
		if uid == "" {
			return nil, fmt.Errorf("%w: items[%d].uid es obligatorio", domain.ErrInvalidInput, i)
		}
		qty := it.QuantitySold
		if qty == 0 {
			qty = 1
		}
		if qty < 1 {
			return nil, fmt.Errorf("%w: items[%d].quantity_sold debe ser al menos 1", domain.ErrInvalidInput, i)
		}
		ln := line{uid: uid, qty: qty}
		if it.DeviceType != "" {
			t, ok := entity.ParseDeviceType(it.DeviceType)
			if !ok {
				return nil, fmt.Errorf("%w: items[%d].device_type %q no válido", domain.ErrInvalidInput, i, it.DeviceType)
			}
			ln.want = t
		}
		lines = append(lines, ln)
	}
	return lines, nil
}

// checkLines recorre las líneas en orden: existencia, tipo y stock acumulado.
// Devuelve el catálogo leído y si la canasta contiene un dispositivo principal.
func checkLines(ctx context.Context, devices repository.DeviceRepository, lines []line) (map[string]*entity.Device, entity.BasketKind, error) {
	catalog := make(map[string]*entity.Device, len(lines))
	requested := make(map[string]int, len(lines))
	basket := entity.BasketStandalone
	for _, ln := range lines {
		d, ok := catalog[ln.uid]
		if !ok {
			var err error
			d, err = devices.GetByUID(ctx, ln.uid)
			if err != nil {
				return nil, basket, fmt.Errorf("buscar dispositivo %s: %w", ln.uid, err)
			}
			if d == nil {
				return nil, basket, fmt.Errorf("%w: dispositivo con UID %s", domain.ErrNotFound, ln.uid)
			}
			catalog[ln.uid] = d
		}
		if ln.want != "" && ln.want != d.Type {
			return nil, basket, fmt.Errorf("%w: %s es %s, no %s", domain.ErrInvalidInput, d.Name, d.Type, ln.want)
		}
		requested[ln.uid] += ln.qty
		if d.InventoryQty < requested[ln.uid] {
			return nil, basket, insufficient(d, requested[ln.uid])
		}
		if d.Type.IsMain() {
			basket = entity.BasketWithDevice
		}
	}
	return catalog, basket, nil
}

func stockError(err error, uid string, d *entity.Device) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("%w: dispositivo con UID %s", domain.ErrNotFound, uid)
	case errors.Is(err, domain.ErrInsufficientStock) && d != nil:
		return fmt.Errorf("%w para %s", domain.ErrInsufficientStock, d.Name)
	default:
		return fmt.Errorf("descontar inventario %s: %w", uid, err)
	}
}

func insufficient(d *entity.Device, requested int) error {
	return fmt.Errorf("%w para %s: disponible %d, solicitado %d",
		domain.ErrInsufficientStock, d.Name, d.InventoryQty, requested)
}

func snapshot(d *entity.Device, qty int) entity.SaleItem {
	unit := d.UnitPrice()
	item := entity.SaleItem{
		UID:          d.UID,
		DeviceType:   d.Type,
		Name:         d.Name,
		Manufacturer: d.Manufacturer,
		QuantitySold: qty,
		FinalPrice:   unit,
		TotalPrice:   unit.Mul(decimal.NewFromInt(int64(qty))),
		Discount:     d.Discount,
	}
	if a, ok := d.Addon(); ok {
		item.Category = a.Category
	}
	return item
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return metrics.ReasonValidation
	case errors.Is(err, domain.ErrNotFound):
		return metrics.ReasonNotFound
	case errors.Is(err, domain.ErrInsufficientStock):
		return metrics.ReasonInsufficientStock
	default:
		return metrics.ReasonInternal
	}
}

// updateAffinity une los nombres de accesorios a cada dispositivo principal de la canasta y
// viceversa. Sus errores solo se registran: la venta ya está confirmada.
func (uc *SaleUseCase) updateAffinity(ctx context.Context, sale *entity.Sale) {
	var mains, addons []string
	seen := map[string]bool{}
	for _, it := range sale.Items {
		if seen[it.Name] {
			continue
		}
		seen[it.Name] = true
		switch {
		case it.DeviceType.IsMain():
			mains = append(mains, it.Name)
		case it.DeviceType == entity.DeviceTypeAddon:
			addons = append(addons, it.Name)
		}
	}
	if len(mains) == 0 || len(addons) == 0 {
		return
	}
	link := func(name string, others []string) {
		if err := uc.devices.AddAlsoBoughtTogether(ctx, name, others); err != nil {
			uc.metrics.ObserveAffinityFailure()
			uc.log.Warn().Err(err).Str("sale_id", sale.ID).Str("device", name).Msg("no se pudo actualizar also_bought_together")
		}
	}
	for _, name := range mains {
		link(name, addons)
	}
	for _, name := range addons {
		link(name, mains)
	}
}

// ListSales devuelve una página del libro, más recientes primero.
func (uc *SaleUseCase) ListSales(ctx context.Context, page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	list, err := uc.sales.List(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.sales.Count(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, ToSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Page: page.Page, Limit: page.Limit, Total: total},
	}, nil
}

// ToSaleResponse convierte la venta a su representación pública.
func ToSaleResponse(s *entity.Sale) dto.SaleResponse {
	items := make([]dto.SaleItemResponse, len(s.Items))
	for i, it := range s.Items {
		items[i] = dto.SaleItemResponse{
			UID:          it.UID,
			DeviceType:   string(it.DeviceType),
			Name:         it.Name,
			Category:     string(it.Category),
			Manufacturer: it.Manufacturer,
			QuantitySold: it.QuantitySold,
			FinalPrice:   it.FinalPrice,
			TotalPrice:   it.TotalPrice,
			Discount:     it.Discount,
		}
	}
	return dto.SaleResponse{
		ID:            s.ID,
		Items:         items,
		TotalPrice:    s.TotalPrice,
		PaymentMethod: s.PaymentMethod,
		Location:      s.Location,
		CreatedAt:     s.CreatedAt,
	}
}
