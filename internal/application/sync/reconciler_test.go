package sync_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsync "github.com/tu-usuario/pos-retail/internal/application/sync"
	"github.com/tu-usuario/pos-retail/internal/domain"
	"github.com/tu-usuario/pos-retail/internal/domain/entity"
	"github.com/tu-usuario/pos-retail/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba: un cliente de plataforma programable por lote y repos
// en memoria que registran las escrituras del reconciliador.
// ──────────────────────────────────────────────────────────────────────────────

type mockPlatform struct {
	locations []appsync.Location
	listings  []appsync.ProductListing
	resolved  map[string]string
	levels    map[string][]appsync.InventoryLevel // clave: ids del lote unidos por coma
	failBatch map[string]error
	calls     []string
}

func batchKey(ids []string) string {
	key := ""
	for i, id := range ids {
		if i > 0 {
			key += ","
		}
		key += id
	}
	return key
}

func (m *mockPlatform) ListLocations(context.Context) ([]appsync.Location, error) {
	return m.locations, nil
}

func (m *mockPlatform) ListProducts(context.Context) ([]appsync.ProductListing, error) {
	return m.listings, nil
}

func (m *mockPlatform) ResolveInventoryItemIDs(_ context.Context, variantIDs []string) (map[string]string, error) {
	out := make(map[string]string)
	for _, v := range variantIDs {
		if itemID, ok := m.resolved[v]; ok {
			out[v] = itemID
		}
	}
	return out, nil
}

func (m *mockPlatform) GetInventoryLevels(_ context.Context, itemIDs []string) ([]appsync.InventoryLevel, error) {
	key := batchKey(itemIDs)
	m.calls = append(m.calls, key)
	if err, ok := m.failBatch[key]; ok {
		return nil, err
	}
	return m.levels[key], nil
}

type syncStoreRepo struct{ stores []*entity.Store }

func (r *syncStoreRepo) GetByID(string) (*entity.Store, error)    { return nil, nil }
func (r *syncStoreRepo) ListActive() ([]*entity.Store, error)     { return r.stores, nil }
func (r *syncStoreRepo) ListActiveWithExternalLocation() ([]*entity.Store, error) {
	var out []*entity.Store
	for _, s := range r.stores {
		if s.ExternalLocationID != "" {
			out = append(out, s)
		}
	}
	return out, nil
}
func (r *syncStoreRepo) UpdateExternalLocation(id, externalLocationID string) error {
	for _, s := range r.stores {
		if s.ID == id {
			s.ExternalLocationID = externalLocationID
			return nil
		}
	}
	return nil
}

type syncProductRepo struct{ products []*entity.Product }

func (r *syncProductRepo) GetByID(string) (*entity.Product, error) { return nil, nil }
func (r *syncProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (r *syncProductRepo) ListActive() ([]*entity.Product, error) { return r.products, nil }
func (r *syncProductRepo) ListActiveWithExternalVariant() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.ExternalVariantID != "" {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *syncProductRepo) UpdateExternalIDs(id, externalProductID, externalVariantID, externalItemID string) error {
	for _, p := range r.products {
		if p.ID == id {
			p.ExternalProductID = externalProductID
			p.ExternalVariantID = externalVariantID
			p.ExternalItemID = externalItemID
			return nil
		}
	}
	return nil
}

type syncInvRepo struct{ written map[string]int64 }

func newSyncInvRepo() *syncInvRepo { return &syncInvRepo{written: make(map[string]int64)} }

func (r *syncInvRepo) Get(productID, storeID string) (*entity.Inventory, error) {
	return &entity.Inventory{ProductID: productID, StoreID: storeID, Quantity: r.written[productID+"|"+storeID]}, nil
}
func (r *syncInvRepo) GetForUpdate(productID, storeID string) (*entity.Inventory, error) {
	return r.Get(productID, storeID)
}
func (r *syncInvRepo) Upsert(inv *entity.Inventory) error {
	r.written[inv.ProductID+"|"+inv.StoreID] = inv.Quantity
	return nil
}
func (r *syncInvRepo) ListAll() ([]*entity.Inventory, error) { return nil, nil }

func quietLogger() *logger.Logger { return logger.New(logger.Config{Level: "error"}) }

func linkedStores() *syncStoreRepo {
	return &syncStoreRepo{stores: []*entity.Store{
		{ID: "s1", Name: "Centro", Active: true, ExternalLocationID: "loc-1"},
		{ID: "s2", Name: "Norte", Active: true, ExternalLocationID: "loc-2"},
	}}
}

func linkedProducts(itemIDs ...string) *syncProductRepo {
	products := make([]*entity.Product, 0, len(itemIDs))
	for i, itemID := range itemIDs {
		products = append(products, &entity.Product{
			ID:                fmt.Sprintf("p%d", i+1),
			SKU:               fmt.Sprintf("SKU-%03d", i+1),
			Active:            true,
			ExternalVariantID: fmt.Sprintf("v%d", i+1),
			ExternalItemID:    itemID,
		})
	}
	return &syncProductRepo{products: products}
}

func TestSyncInventory_SobreescrituraAbsoluta(t *testing.T) {
	invRepo := newSyncInvRepo()
	invRepo.written["p1|s1"] = 99 // valor local viejo que debe quedar pisado

	client := &mockPlatform{
		levels: map[string][]appsync.InventoryLevel{
			"item-1,item-2": {
				{ExternalItemID: "item-1", ExternalLocationID: "loc-1", Available: 7},
				{ExternalItemID: "item-1", ExternalLocationID: "loc-2", Available: 0},
				{ExternalItemID: "item-2", ExternalLocationID: "loc-1", Available: 12},
			},
		},
	}

	rec := appsync.NewReconciler(client, linkedStores(), linkedProducts("item-1", "item-2"), invRepo, 50, 0, quietLogger())
	result, err := rec.SyncInventory(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalStoresConsidered)
	assert.Equal(t, 2, result.TotalProductsConsidered)
	assert.Equal(t, 3, result.UpdatedCount)
	assert.Empty(t, result.Errors)

	assert.Equal(t, int64(7), invRepo.written["p1|s1"])
	assert.Equal(t, int64(0), invRepo.written["p1|s2"])
	assert.Equal(t, int64(12), invRepo.written["p2|s1"])
	_, touched := invRepo.written["p2|s2"]
	assert.False(t, touched, "sin nivel reportado no se escribe nada")

	assert.Equal(t, appsync.StatusIdle, rec.Status().Status)
	assert.NotEmpty(t, rec.Status().LastSyncAt)
}

func TestSyncInventory_LoteFallidoNoAbortaLaCorrida(t *testing.T) {
	invRepo := newSyncInvRepo()
	client := &mockPlatform{
		levels: map[string][]appsync.InventoryLevel{
			"item-1,item-2": {{ExternalItemID: "item-1", ExternalLocationID: "loc-1", Available: 4}},
			"item-5,item-6": {{ExternalItemID: "item-5", ExternalLocationID: "loc-1", Available: 9}},
		},
		failBatch: map[string]error{
			"item-3,item-4": errors.New("timeout de la plataforma"),
		},
	}

	rec := appsync.NewReconciler(client, linkedStores(),
		linkedProducts("item-1", "item-2", "item-3", "item-4", "item-5", "item-6"),
		invRepo, 2, 0, quietLogger())
	result, err := rec.SyncInventory(context.Background())
	require.NoError(t, err, "la falla de un lote se reporta en el resumen, no como error")

	require.Len(t, client.calls, 3, "los tres lotes se intentan")
	assert.Equal(t, 2, result.UpdatedCount)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "lote 2")

	assert.Equal(t, int64(4), invRepo.written["p1|s1"])
	assert.Equal(t, int64(9), invRepo.written["p5|s1"])
	assert.Equal(t, appsync.StatusIdle, rec.Status().Status, "los errores parciales no marcan la corrida como fallida")
}

func TestSyncInventory_ResuelveYPersisteItemIDs(t *testing.T) {
	products := &syncProductRepo{products: []*entity.Product{
		{ID: "p1", SKU: "SKU-001", Active: true, ExternalVariantID: "v1"}, // sin item id aún
		{ID: "p2", SKU: "SKU-002", Active: true, ExternalVariantID: "v2", ExternalItemID: "item-2"},
		{ID: "p3", SKU: "SKU-003", Active: true, ExternalVariantID: "v3"}, // irresoluble
	}}
	client := &mockPlatform{
		resolved: map[string]string{"v1": "item-1"},
		levels: map[string][]appsync.InventoryLevel{
			"item-1,item-2": {{ExternalItemID: "item-1", ExternalLocationID: "loc-1", Available: 3}},
		},
	}

	rec := appsync.NewReconciler(client, linkedStores(), products, newSyncInvRepo(), 50, 0, quietLogger())
	result, err := rec.SyncInventory(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "item-1", products.products[0].ExternalItemID, "el id resuelto se persiste para la próxima corrida")
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "SKU-003")
}

func TestSyncInventory_SinVinculosAborta(t *testing.T) {
	t.Run("sin tiendas vinculadas", func(t *testing.T) {
		rec := appsync.NewReconciler(&mockPlatform{}, &syncStoreRepo{}, linkedProducts("item-1"),
			newSyncInvRepo(), 50, 0, quietLogger())
		_, err := rec.SyncInventory(context.Background())
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Equal(t, appsync.StatusFailed, rec.Status().Status)
		assert.NotEmpty(t, rec.Status().LastError)
	})

	t.Run("sin productos vinculados", func(t *testing.T) {
		rec := appsync.NewReconciler(&mockPlatform{}, linkedStores(), &syncProductRepo{},
			newSyncInvRepo(), 50, 0, quietLogger())
		_, err := rec.SyncInventory(context.Background())
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestSyncInventory_CorridaDuplicadaRechazada(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	client := &blockingPlatform{started: started, release: release}

	rec := appsync.NewReconciler(client, linkedStores(), linkedProducts("item-1"),
		newSyncInvRepo(), 50, 0, quietLogger())

	done := make(chan error, 1)
	go func() {
		_, err := rec.SyncInventory(context.Background())
		done <- err
	}()

	<-started
	assert.Equal(t, appsync.StatusSyncing, rec.Status().Status)
	_, err := rec.SyncInventory(context.Background())
	assert.ErrorIs(t, err, domain.ErrSyncInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, appsync.StatusIdle, rec.Status().Status)
}

// blockingPlatform bloquea la consulta de niveles hasta que el test lo libere,
// para observar el estado "syncing" en medio de una corrida.
type blockingPlatform struct {
	started chan struct{}
	release chan struct{}
	once    bool
}

func (b *blockingPlatform) ListLocations(context.Context) ([]appsync.Location, error) {
	return nil, nil
}
func (b *blockingPlatform) ListProducts(context.Context) ([]appsync.ProductListing, error) {
	return nil, nil
}
func (b *blockingPlatform) ResolveInventoryItemIDs(context.Context, []string) (map[string]string, error) {
	return map[string]string{}, nil
}
func (b *blockingPlatform) GetInventoryLevels(context.Context, []string) ([]appsync.InventoryLevel, error) {
	if !b.once {
		b.once = true
		close(b.started)
		<-b.release
	}
	return nil, nil
}

func TestSyncInventory_CancelacionEntreLotes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &mockPlatform{
		levels: map[string][]appsync.InventoryLevel{
			"item-1": {{ExternalItemID: "item-1", ExternalLocationID: "loc-1", Available: 1}},
		},
	}

	rec := appsync.NewReconciler(client, linkedStores(), linkedProducts("item-1", "item-2"),
		newSyncInvRepo(), 1, time.Hour, quietLogger())
	cancel() // la pausa entre lotes debe cortar de inmediato

	result, err := rec.SyncInventory(ctx)
	require.NoError(t, err)
	require.Len(t, client.calls, 1, "el segundo lote nunca se consulta")
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[len(result.Errors)-1], "cancelada")
}

func TestImportCatalog_VinculaPorNombreYSKU(t *testing.T) {
	stores := &syncStoreRepo{stores: []*entity.Store{
		{ID: "s1", Name: "Centro", Active: true},
		{ID: "s2", Name: "Sucursal Sur", Active: true},
	}}
	products := &syncProductRepo{products: []*entity.Product{
		{ID: "p1", SKU: "SKU-001", Active: true},
		{ID: "p2", SKU: "SKU-002", Active: true},
	}}
	client := &mockPlatform{
		locations: []appsync.Location{
			{ExternalLocationID: "loc-1", Name: "  centro ", Active: true}, // el nombre se normaliza
			{ExternalLocationID: "loc-9", Name: "Bodega", Active: false},   // inactiva, no empareja
		},
		listings: []appsync.ProductListing{
			{ExternalProductID: "ext-1", Variants: []appsync.Variant{
				{ExternalVariantID: "v1", SKU: "SKU-001", ExternalItemID: "item-1"},
				{ExternalVariantID: "v9", SKU: "SKU-EXTERNO"}, // sin producto local, se ignora
			}},
		},
	}

	importer := appsync.NewCatalogImporter(client, stores, products, quietLogger())
	result, err := importer.ImportCatalog(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.StoresLinked)
	assert.Equal(t, 1, result.ProductsLinked)
	assert.Equal(t, "loc-1", stores.stores[0].ExternalLocationID)
	assert.Equal(t, "item-1", products.products[0].ExternalItemID)

	// La tienda sin ubicación equivalente queda reportada.
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Sucursal Sur")
}
