package sync

import (
	"context"
	"fmt"
	"strings"

	"github.com/tu-usuario/pos-retail/internal/application/dto"
	"github.com/tu-usuario/pos-retail/internal/domain/repository"
	"github.com/tu-usuario/pos-retail/pkg/logger"
)

// CatalogImporter vincula tiendas y productos locales con sus contrapartes externas:
// ubicaciones por nombre, variantes por SKU. No crea entidades, solo fija identificadores.
type CatalogImporter struct {
	client      PlatformClient
	storeRepo   repository.StoreRepository
	productRepo repository.ProductRepository
	log         *logger.Logger
}

// NewCatalogImporter construye el importador.
func NewCatalogImporter(
	client PlatformClient,
	storeRepo repository.StoreRepository,
	productRepo repository.ProductRepository,
	log *logger.Logger,
) *CatalogImporter {
	return &CatalogImporter{client: client, storeRepo: storeRepo, productRepo: productRepo, log: log}
}

// ImportCatalog trae ubicaciones y productos de la plataforma y guarda los vínculos.
// Los no emparejados se reportan en la lista de errores sin abortar la importación.
func (ci *CatalogImporter) ImportCatalog(ctx context.Context) (*dto.ImportResultResponse, error) {
	result := &dto.ImportResultResponse{Errors: []string{}}

	locations, err := ci.client.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar ubicaciones externas: %w", err)
	}
	stores, err := ci.storeRepo.ListActive()
	if err != nil {
		return nil, err
	}
	locationByName := make(map[string]Location, len(locations))
	for _, loc := range locations {
		if loc.Active {
			locationByName[normalizeName(loc.Name)] = loc
		}
	}
	for _, store := range stores {
		loc, ok := locationByName[normalizeName(store.Name)]
		if !ok {
			result.Errors = append(result.Errors,
				fmt.Sprintf("tienda %q sin ubicación externa equivalente", store.Name))
			continue
		}
		if store.ExternalLocationID == loc.ExternalLocationID {
			continue
		}
		if err := ci.storeRepo.UpdateExternalLocation(store.ID, loc.ExternalLocationID); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("tienda %q: %v", store.Name, err))
			continue
		}
		result.StoresLinked++
	}

	listings, err := ci.client.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar productos externos: %w", err)
	}
	for _, listing := range listings {
		for _, variant := range listing.Variants {
			if variant.SKU == "" {
				continue
			}
			product, err := ci.productRepo.GetBySKU(variant.SKU)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("sku %s: %v", variant.SKU, err))
				continue
			}
			if product == nil {
				continue // SKU externo sin producto local: no es un error
			}
			if err := ci.productRepo.UpdateExternalIDs(
				product.ID, listing.ExternalProductID, variant.ExternalVariantID, variant.ExternalItemID,
			); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("sku %s: %v", variant.SKU, err))
				continue
			}
			result.ProductsLinked++
		}
	}

	ci.log.Info().
		Int("stores_linked", result.StoresLinked).
		Int("products_linked", result.ProductsLinked).
		Int("errors", len(result.Errors)).
		Msg("importación de catálogo completada")
	return result, nil
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
