package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/devicepos-api/internal/domain"
	"github.com/jhoicas/devicepos-api/internal/domain/entity"
	"github.com/jhoicas/devicepos-api/internal/domain/repository"
	"github.com/jhoicas/devicepos-api/internal/infrastructure/memory"
)

func mobile(uid, name string, qty int) *entity.Device {
	return &entity.Device{
		UID: uid, Name: name, Type: entity.DeviceTypeMobile, Manufacturer: "Apple",
		CostPrice: decimal.NewFromInt(500), InventoryQty: qty, Variant: entity.MobileSpec{},
	}
}

func charger(uid, name string, qty int) *entity.Device {
	return &entity.Device{
		UID: uid, Name: name, Type: entity.DeviceTypeAddon,
		CostPrice: decimal.NewFromInt(5), InventoryQty: qty,
		Variant: entity.AddonSpec{Category: entity.AddonCharger},
	}
}

func TestDeviceRepo_CreateNombreDuplicado(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Devices()

	require.NoError(t, repo.Create(ctx, mobile("m1", "iPhone", 1)))
	err := repo.Create(ctx, mobile("m2", "iPhone", 1))
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestDeviceRepo_GetDevuelveCopia(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Devices()
	require.NoError(t, repo.Create(ctx, mobile("m1", "iPhone", 3)))

	got, err := repo.GetByUID(ctx, "m1")
	require.NoError(t, err)
	got.InventoryQty = 999

	again, _ := repo.GetByUID(ctx, "m1")
	assert.Equal(t, 3, again.InventoryQty)

	missing, err := repo.GetByUID(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDeviceRepo_ListFiltrosYPaginacion(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Devices()
	require.NoError(t, repo.Create(ctx, mobile("m1", "iPhone 13", 1)))
	require.NoError(t, repo.Create(ctx, mobile("m2", "iPhone 14", 1)))
	require.NoError(t, repo.Create(ctx, charger("a1", "Cargador", 1)))

	mobiles, err := repo.List(ctx, repository.DeviceFilter{Types: []entity.DeviceType{entity.DeviceTypeMobile}})
	require.NoError(t, err)
	assert.Len(t, mobiles, 2)

	page, err := repo.List(ctx, repository.DeviceFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "m2", page[0].UID)

	chargers, err := repo.List(ctx, repository.DeviceFilter{Category: entity.AddonCharger})
	require.NoError(t, err)
	require.Len(t, chargers, 1)
	assert.Equal(t, "a1", chargers[0].UID)
}

func TestDeviceRepo_DecrementStockCondicional(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Devices()
	require.NoError(t, repo.Create(ctx, charger("a1", "Cargador", 2)))

	d, err := repo.DecrementStock(ctx, "a1", 2, entity.BasketWithDevice)
	require.NoError(t, err)
	assert.Equal(t, 0, d.InventoryQty)
	assert.Equal(t, 2, d.SoldQty)
	assert.Equal(t, 2, d.SoldWithDevice)
	assert.Equal(t, 0, d.SoldStandalone)

	_, err = repo.DecrementStock(ctx, "a1", 1, entity.BasketStandalone)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = repo.DecrementStock(ctx, "zzz", 1, entity.BasketStandalone)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeviceRepo_AdjustStockNoBajaDeCero(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Devices()
	require.NoError(t, repo.Create(ctx, mobile("m1", "iPhone", 2)))

	d, err := repo.AdjustStock(ctx, "m1", 5)
	require.NoError(t, err)
	assert.Equal(t, 7, d.InventoryQty)

	_, err = repo.AdjustStock(ctx, "m1", -8)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestDeviceRepo_AlsoBoughtTogetherEsConjunto(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Devices()
	require.NoError(t, repo.Create(ctx, mobile("m1", "iPhone", 2)))

	require.NoError(t, repo.AddAlsoBoughtTogether(ctx, "iPhone", []string{"Cargador", "AirPods"}))
	require.NoError(t, repo.AddAlsoBoughtTogether(ctx, "iPhone", []string{"Cargador"}))

	d, _ := repo.GetByUID(ctx, "m1")
	assert.Equal(t, []string{"Cargador", "AirPods"}, d.AlsoBoughtTogether)
}

func TestSaleRepo_ListMasRecientesPrimero(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Sales()
	base := time.Now().UTC()
	for i, id := range []string{"s1", "s2", "s3"} {
		require.NoError(t, repo.Create(ctx, &entity.Sale{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Minute)}))
	}

	got, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "s3", got[0].ID)
	assert.Equal(t, "s2", got[1].ID)

	since, err := repo.ListSince(ctx, base.Add(time.Minute))
	require.NoError(t, err)
	assert.Len(t, since, 2)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestTxRunner_ErrorDescartaCambios(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Devices().Create(ctx, mobile("m1", "iPhone", 5)))

	boom := errors.New("boom")
	err := memory.NewTxRunner(store).Run(ctx, func(devices repository.DeviceRepository, sales repository.SaleRepository) error {
		if _, err := devices.DecrementStock(ctx, "m1", 3, entity.BasketStandalone); err != nil {
			return err
		}
		if err := sales.Create(ctx, &entity.Sale{ID: "s1"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	d, _ := store.Devices().GetByUID(ctx, "m1")
	assert.Equal(t, 5, d.InventoryQty, "el inventario no debe cambiar")
	n, _ := store.Sales().Count(ctx)
	assert.Zero(t, n, "no debe persistirse la venta")
}

func TestTxRunner_ExitoPublicaCambios(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Devices().Create(ctx, mobile("m1", "iPhone", 5)))

	err := memory.NewTxRunner(store).Run(ctx, func(devices repository.DeviceRepository, sales repository.SaleRepository) error {
		if _, err := devices.DecrementStock(ctx, "m1", 3, entity.BasketStandalone); err != nil {
			return err
		}
		return sales.Create(ctx, &entity.Sale{ID: "s1"})
	})
	require.NoError(t, err)

	d, _ := store.Devices().GetByUID(ctx, "m1")
	assert.Equal(t, 2, d.InventoryQty)
	assert.Equal(t, 3, d.SoldQty)
}

func TestUserRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Users()

	require.NoError(t, repo.Create(ctx, &entity.User{ID: "1", Username: "ana", Role: entity.RoleCashier}))
	require.NoError(t, repo.Create(ctx, &entity.User{ID: "2", Username: "beto", Role: entity.RoleOwner}))
	assert.ErrorIs(t, repo.Create(ctx, &entity.User{Username: "ana"}), domain.ErrUsernameTaken)

	cashiers, err := repo.List(ctx, entity.RoleCashier)
	require.NoError(t, err)
	require.Len(t, cashiers, 1)
	assert.Equal(t, "ana", cashiers[0].Username)

	assert.ErrorIs(t, repo.Update(ctx, &entity.User{Username: "zoe"}), domain.ErrUserNotFound)
	require.NoError(t, repo.Delete(ctx, "ana"))
	assert.ErrorIs(t, repo.Delete(ctx, "ana"), domain.ErrUserNotFound)
}
