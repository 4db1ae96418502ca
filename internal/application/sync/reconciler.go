package sync

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tu-usuario/pos-retail/internal/application/dto"
	appinventory "github.com/tu-usuario/pos-retail/internal/application/inventory"
	"github.com/tu-usuario/pos-retail/internal/domain"
	"github.com/tu-usuario/pos-retail/internal/domain/entity"
	"github.com/tu-usuario/pos-retail/internal/domain/repository"
	"github.com/tu-usuario/pos-retail/pkg/logger"
)

// Reconciler sobreescribe el libro de stock local con la disponibilidad reportada
// por la plataforma externa. Corre fuera de transacciones de venta: una falla a mitad
// de corrida deja pares actualizados y pares viejos (tradeoff aceptado, no oculto).
type Reconciler struct {
	client      PlatformClient
	storeRepo   repository.StoreRepository
	productRepo repository.ProductRepository
	invRepo     repository.InventoryRepository
	state       *State
	batchSize   int
	batchDelay  time.Duration
	log         *logger.Logger
}

// NewReconciler construye el reconciliador. batchSize acota los item ids por llamada
// a la plataforma (su API lo limita); batchDelay espacia los lotes para respetar
// los límites de tasa.
func NewReconciler(
	client PlatformClient,
	storeRepo repository.StoreRepository,
	productRepo repository.ProductRepository,
	invRepo repository.InventoryRepository,
	batchSize int,
	batchDelay time.Duration,
	log *logger.Logger,
) *Reconciler {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &Reconciler{
		client:      client,
		storeRepo:   storeRepo,
		productRepo: productRepo,
		invRepo:     invRepo,
		state:       NewState(),
		batchSize:   batchSize,
		batchDelay:  batchDelay,
		log:         log,
	}
}

// Status estado observable de la sincronización.
func (r *Reconciler) Status() dto.SyncStatusResponse {
	return r.state.Snapshot()
}

// SyncInventory ejecuta una corrida completa de reconciliación:
//  1. Tiendas con ubicación externa y productos con variante externa (aborta si falta algún conjunto).
//  2. Resolver inventory item ids (los ya conocidos no se vuelven a consultar).
//  3. Disponibilidad por lotes; un lote fallido se registra y no aborta los demás.
//  4. Sobreescritura absoluta del libro por cada par (producto, tienda); los errores
//     por par se acumulan en el resumen.
func (r *Reconciler) SyncInventory(ctx context.Context) (*dto.SyncResultResponse, error) {
	if err := r.state.Begin(); err != nil {
		return nil, err
	}
	result, err := r.run(ctx)
	r.state.Finish(err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Reconciler) run(ctx context.Context) (*dto.SyncResultResponse, error) {
	stores, err := r.storeRepo.ListActiveWithExternalLocation()
	if err != nil {
		return nil, err
	}
	if len(stores) == 0 {
		return nil, &domain.ValidationError{Message: "ninguna tienda tiene ubicación externa vinculada; importar catálogo primero"}
	}
	products, err := r.productRepo.ListActiveWithExternalVariant()
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, &domain.ValidationError{Message: "ningún producto tiene variante externa vinculada; importar catálogo primero"}
	}

	result := &dto.SyncResultResponse{
		TotalStoresConsidered:   len(stores),
		TotalProductsConsidered: len(products),
		Errors:                  []string{},
	}

	productByItemID, err := r.resolveItems(ctx, products, result)
	if err != nil {
		return nil, err
	}
	if len(productByItemID) == 0 {
		return nil, &domain.ValidationError{Message: "no se resolvió ningún inventory item id"}
	}

	itemIDs := make([]string, 0, len(productByItemID))
	for id := range productByItemID {
		itemIDs = append(itemIDs, id)
	}
	// Orden estable para que los lotes sean reproducibles entre corridas.
	sort.Strings(itemIDs)

	// item id -> location id -> disponible.
	available := r.fetchLevels(ctx, itemIDs, result)

	now := time.Now()
	for _, store := range stores {
		for itemID, byLocation := range available {
			qty, ok := byLocation[store.ExternalLocationID]
			if !ok {
				continue
			}
			product := productByItemID[itemID]
			if err := appinventory.UpsertAbsolute(r.invRepo, product.ID, store.ID, qty, now); err != nil {
				result.Errors = append(result.Errors,
					fmt.Sprintf("producto %s tienda %s: %v", product.SKU, store.Name, err))
				continue
			}
			result.UpdatedCount++
		}
	}

	r.log.Info().
		Int("stores", result.TotalStoresConsidered).
		Int("products", result.TotalProductsConsidered).
		Int("updated", result.UpdatedCount).
		Int("errors", len(result.Errors)).
		Msg("sincronización de inventario completada")
	return result, nil
}

// resolveItems arma el mapa inventory item id -> producto local. Los productos con
// item id ya almacenado no vuelven a la plataforma; el resto se resuelve vía el
// puerto por lote y el id resuelto se persiste para la próxima corrida.
func (r *Reconciler) resolveItems(ctx context.Context, products []*entity.Product, result *dto.SyncResultResponse) (map[string]*entity.Product, error) {
	byItemID := make(map[string]*entity.Product, len(products))
	var pending []string
	byVariantID := make(map[string]*entity.Product)
	for _, p := range products {
		if p.ExternalItemID != "" {
			byItemID[p.ExternalItemID] = p
			continue
		}
		pending = append(pending, p.ExternalVariantID)
		byVariantID[p.ExternalVariantID] = p
	}
	if len(pending) == 0 {
		return byItemID, nil
	}

	resolved, err := r.client.ResolveInventoryItemIDs(ctx, pending)
	if err != nil {
		return nil, fmt.Errorf("resolver inventory item ids: %w", err)
	}
	for variantID, p := range byVariantID {
		itemID, ok := resolved[variantID]
		if !ok {
			result.Errors = append(result.Errors,
				fmt.Sprintf("producto %s: variante externa %s sin inventory item id", p.SKU, variantID))
			continue
		}
		byItemID[itemID] = p
		if err := r.productRepo.UpdateExternalIDs(p.ID, p.ExternalProductID, p.ExternalVariantID, itemID); err != nil {
			r.log.Warn().Err(err).Str("sku", p.SKU).Msg("no se pudo guardar el inventory item id resuelto")
		}
	}
	return byItemID, nil
}

// fetchLevels consulta la disponibilidad por lotes de batchSize ids, con pausa entre
// lotes. Un lote que falla (timeout incluido) se registra y se salta: la corrida sigue.
func (r *Reconciler) fetchLevels(ctx context.Context, itemIDs []string, result *dto.SyncResultResponse) map[string]map[string]int64 {
	available := make(map[string]map[string]int64)
	for start := 0; start < len(itemIDs); start += r.batchSize {
		end := start + r.batchSize
		if end > len(itemIDs) {
			end = len(itemIDs)
		}
		batch := itemIDs[start:end]
		batchNum := start/r.batchSize + 1

		levels, err := r.client.GetInventoryLevels(ctx, batch)
		if err != nil {
			fetchErr := &domain.ExternalFetchError{Batch: batchNum, Err: err}
			r.log.Warn().Err(err).Int("batch", batchNum).Msg("lote de niveles de inventario falló")
			result.Errors = append(result.Errors, fetchErr.Error())
		} else {
			for _, lvl := range levels {
				if available[lvl.ExternalItemID] == nil {
					available[lvl.ExternalItemID] = make(map[string]int64)
				}
				available[lvl.ExternalItemID][lvl.ExternalLocationID] = lvl.Available
			}
		}

		if end < len(itemIDs) && r.batchDelay > 0 {
			select {
			case <-ctx.Done():
				result.Errors = append(result.Errors, fmt.Sprintf("corrida cancelada: %v", ctx.Err()))
				return available
			case <-time.After(r.batchDelay):
			}
		}
	}
	return available
}
