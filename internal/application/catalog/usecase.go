// Package catalog contiene los casos de uso del catálogo de dispositivos y accesorios.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/devicepos-api/internal/application/dto"
	"github.com/jhoicas/devicepos-api/internal/domain"
	"github.com/jhoicas/devicepos-api/internal/domain/entity"
	"github.com/jhoicas/devicepos-api/internal/domain/repository"
)

// Family restringe qué registros son visibles desde una ruta.
type Family int

const (
	FamilyAny    Family = iota // rutas /devices: cualquier registro por UID
	FamilyAddons               // rutas /addons: solo accesorios
)

func (f Family) admits(t entity.DeviceType) bool {
	return f == FamilyAny || t == entity.DeviceTypeAddon
}

func (f Family) label() string {
	if f == FamilyAddons {
		return "accesorio"
	}
	return "dispositivo"
}

// Acciones de ajuste de stock.
const (
	ActionAdd      = "add"
	ActionSubtract = "subtract"
)

// CatalogUseCase casos de uso CRUD del catálogo y ajuste de stock.
type CatalogUseCase struct {
	repo repository.DeviceRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.DeviceRepository) *CatalogUseCase {
	return &CatalogUseCase{repo: repo}
}

// CreateDevice da de alta un Mobile, Laptop o Tablet.
func (uc *CatalogUseCase) CreateDevice(ctx context.Context, in dto.CreateDeviceRequest) (*dto.DeviceResponse, error) {
	t, ok := entity.ParseDeviceType(in.DeviceType)
	if !ok || !t.IsMain() {
		return nil, fmt.Errorf("%w: device_type debe ser mobile, laptop o tablet", domain.ErrInvalidInput)
	}
	var variant entity.Variant
	switch t {
	case entity.DeviceTypeMobile:
		variant = entity.MobileSpec{CameraMP: in.CameraMP}
	case entity.DeviceTypeLaptop:
		variant = entity.LaptopSpec{Processor: in.Processor, HasTouchscreen: in.HasTouchscreen}
	case entity.DeviceTypeTablet:
		variant = entity.TabletSpec{StylusSupport: in.StylusSupport}
	}
	d := &entity.Device{
		UID:          in.UID,
		Name:         strings.TrimSpace(in.Name),
		Type:         t,
		Manufacturer: in.Manufacturer,
		Location:     in.Location,
		Hardware: entity.Hardware{
			Battery: in.Battery, RAM: in.RAM, Screen: in.Screen, ScreenSize: in.ScreenSize, Color: in.Color,
		},
		Variant: variant,
	}
	applyPricing(d, in.DevicePricing)
	return uc.create(ctx, d)
}

// CreateAddon da de alta un accesorio.
func (uc *CatalogUseCase) CreateAddon(ctx context.Context, in dto.CreateAddonRequest) (*dto.DeviceResponse, error) {
	category, ok := entity.ParseAddonCategory(in.Category)
	if !ok {
		return nil, fmt.Errorf("%w: category %q no válida", domain.ErrInvalidInput, in.Category)
	}
	d := &entity.Device{
		UID:          in.UID,
		Name:         strings.TrimSpace(in.Name),
		Type:         entity.DeviceTypeAddon,
		Manufacturer: in.Manufacturer,
		Location:     in.Location,
		Hardware:     entity.Hardware{Color: in.Color},
		Variant: entity.AddonSpec{
			Category:          category,
			Compatibility:     in.Compatibility,
			RelatedDeviceUIDs: in.RelatedDeviceUIDs,
		},
	}
	applyPricing(d, in.DevicePricing)
	return uc.create(ctx, d)
}

func applyPricing(d *entity.Device, p dto.DevicePricing) {
	d.CostPrice = p.CostPrice
	d.SalesPrice = p.SalesPrice
	d.FinalPrice = p.FinalPrice
	d.Discount = p.Discount
	d.InventoryQty = p.InventoryQty
	d.SoldQty = p.SoldQty
}

func (uc *CatalogUseCase) create(ctx context.Context, d *entity.Device) (*dto.DeviceResponse, error) {
	if d.UID == "" {
		d.UID = uuid.New().String()
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	if err := uc.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	out := ToDeviceResponse(d)
	return &out, nil
}

// Get obtiene un registro; ErrNotFound si no existe o no pertenece a la familia.
func (uc *CatalogUseCase) Get(ctx context.Context, uid string, family Family) (*dto.DeviceResponse, error) {
	d, err := uc.load(ctx, uid, family)
	if err != nil {
		return nil, err
	}
	out := ToDeviceResponse(d)
	return &out, nil
}

func (uc *CatalogUseCase) load(ctx context.Context, uid string, family Family) (*entity.Device, error) {
	d, err := uc.repo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if d == nil || !family.admits(d.Type) {
		return nil, fmt.Errorf("%w: %s con UID %s", domain.ErrNotFound, family.label(), uid)
	}
	return d, nil
}

// ListDevices lista dispositivos principales; device_type restringe a un tipo.
func (uc *CatalogUseCase) ListDevices(ctx context.Context, q dto.DeviceListQuery) (*dto.DeviceListResponse, error) {
	f := repository.DeviceFilter{Types: entity.MainDeviceTypes, Manufacturer: q.Manufacturer}
	if q.DeviceType != "" {
		t, ok := entity.ParseDeviceType(q.DeviceType)
		if !ok {
			return nil, fmt.Errorf("%w: device_type %q no válido", domain.ErrInvalidInput, q.DeviceType)
		}
		f.Types = []entity.DeviceType{t}
	}
	return uc.list(ctx, f, q.Pagination())
}

// ListAddons lista accesorios, opcionalmente por categoría.
func (uc *CatalogUseCase) ListAddons(ctx context.Context, q dto.AddonListQuery) (*dto.DeviceListResponse, error) {
	f := repository.DeviceFilter{Types: []entity.DeviceType{entity.DeviceTypeAddon}}
	if q.Category != "" {
		c, ok := entity.ParseAddonCategory(q.Category)
		if !ok {
			return nil, fmt.Errorf("%w: category %q no válida", domain.ErrInvalidInput, q.Category)
		}
		f.Category = c
	}
	return uc.list(ctx, f, q.Pagination())
}

func (uc *CatalogUseCase) list(ctx context.Context, f repository.DeviceFilter, page dto.PageRequest) (*dto.DeviceListResponse, error) {
	f.Limit, f.Offset = page.Limit, page.Offset()
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DeviceResponse, 0, len(list))
	for _, d := range list {
		items = append(items, ToDeviceResponse(d))
	}
	return &dto.DeviceListResponse{
		Items: items,
		Page:  dto.PageResponse{Page: page.Page, Limit: page.Limit},
	}, nil
}

// Delete elimina el registro y lo devuelve.
func (uc *CatalogUseCase) Delete(ctx context.Context, uid string, family Family) (*dto.DeviceResponse, error) {
	d, err := uc.load(ctx, uid, family)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Delete(ctx, uid); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s con UID %s", domain.ErrNotFound, family.label(), uid)
		}
		return nil, err
	}
	out := ToDeviceResponse(d)
	return &out, nil
}

// AdjustStock suma o resta unidades; restar por debajo de cero es ErrInsufficientStock.
func (uc *CatalogUseCase) AdjustStock(ctx context.Context, uid string, family Family, in dto.StockAdjustRequest) (*dto.StockAdjustResponse, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity debe ser mayor a cero", domain.ErrInvalidInput)
	}
	delta := in.Quantity
	switch in.Action {
	case ActionAdd:
	case ActionSubtract:
		delta = -delta
	default:
		return nil, fmt.Errorf("%w: action debe ser add o subtract", domain.ErrInvalidInput)
	}
	current, err := uc.load(ctx, uid, family)
	if err != nil {
		return nil, err
	}
	d, err := uc.repo.AdjustStock(ctx, uid, delta)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("%w: %s con UID %s", domain.ErrNotFound, family.label(), uid)
	case errors.Is(err, domain.ErrInsufficientStock):
		return nil, fmt.Errorf("%w: %s tiene %d unidades, no se pueden restar %d",
			domain.ErrInsufficientStock, current.Name, current.InventoryQty, in.Quantity)
	case err != nil:
		return nil, err
	}
	return &dto.StockAdjustResponse{
		Message:         "stock actualizado",
		UID:             d.UID,
		NewInventoryQty: d.InventoryQty,
		Device:          ToDeviceResponse(d),
	}, nil
}
