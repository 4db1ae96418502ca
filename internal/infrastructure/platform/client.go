// Package platform implementa el cliente REST hacia la plataforma de comercio externa
// (catálogo, ubicaciones y niveles de inventario multi-ubicación).
package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	appsync "github.com/tu-usuario/pos-retail/internal/application/sync"
	"github.com/tu-usuario/pos-retail/pkg/config"
)

// Ensure Client implementa el puerto de la aplicación.
var _ appsync.PlatformClient = (*Client)(nil)

// Client cliente REST de la plataforma. La API es lenta y con límites de tasa:
// cada llamada lleva su propio timeout además del timeout del http.Client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	timeout    time.Duration
}

// NewClient construye el cliente con la configuración de la app.
func NewClient(cfg config.PlatformConfig) *Client {
	timeout := cfg.CallTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.AccessToken,
		timeout:    timeout,
	}
}

// get ejecuta un GET autenticado con timeout propio y decodifica el JSON en out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("crear request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Access-Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decodificar respuesta de %s: %w", path, err)
	}
	return nil
}

// Formas del wire. La plataforma usa ids numéricos; localmente se manejan como string.
type wireLocation struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type wireVariant struct {
	ID              int64  `json:"id"`
	SKU             string `json:"sku"`
	Price           string `json:"price"`
	InventoryItemID int64  `json:"inventory_item_id"`
}

type wireProduct struct {
	ID       int64         `json:"id"`
	Title    string        `json:"title"`
	Variants []wireVariant `json:"variants"`
}

type wireLevel struct {
	InventoryItemID int64 `json:"inventory_item_id"`
	LocationID      int64 `json:"location_id"`
	Available       int64 `json:"available"`
}

func formatID(id int64) string { return strconv.FormatInt(id, 10) }

// ListLocations lista las ubicaciones de la plataforma.
func (c *Client) ListLocations(ctx context.Context) ([]appsync.Location, error) {
	var payload struct {
		Locations []wireLocation `json:"locations"`
	}
	if err := c.get(ctx, "/locations.json", nil, &payload); err != nil {
		return nil, err
	}
	locations := make([]appsync.Location, 0, len(payload.Locations))
	for _, loc := range payload.Locations {
		locations = append(locations, appsync.Location{
			ExternalLocationID: formatID(loc.ID),
			Name:               loc.Name,
			Active:             loc.Active,
		})
	}
	return locations, nil
}

// ListProducts lista el catálogo externo con variantes.
func (c *Client) ListProducts(ctx context.Context) ([]appsync.ProductListing, error) {
	var payload struct {
		Products []wireProduct `json:"products"`
	}
	if err := c.get(ctx, "/products.json", nil, &payload); err != nil {
		return nil, err
	}
	listings := make([]appsync.ProductListing, 0, len(payload.Products))
	for _, p := range payload.Products {
		listing := appsync.ProductListing{
			ExternalProductID: formatID(p.ID),
			Title:             p.Title,
			Variants:          make([]appsync.Variant, 0, len(p.Variants)),
		}
		for _, v := range p.Variants {
			price, err := decimal.NewFromString(v.Price)
			if err != nil {
				price = decimal.Zero
			}
			variant := appsync.Variant{
				ExternalVariantID: formatID(v.ID),
				SKU:               v.SKU,
				Price:             price,
			}
			if v.InventoryItemID != 0 {
				variant.ExternalItemID = formatID(v.InventoryItemID)
			}
			listing.Variants = append(listing.Variants, variant)
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

// ResolveInventoryItemIDs resuelve variant id -> inventory item id.
// La API solo expone la consulta por variante individual, así que esta implementación
// hace una llamada por variante detrás de la capacidad por lote; las variantes que
// fallan no aparecen en el mapa y el llamador decide qué hacer con ellas.
func (c *Client) ResolveInventoryItemIDs(ctx context.Context, variantIDs []string) (map[string]string, error) {
	resolved := make(map[string]string, len(variantIDs))
	for _, variantID := range variantIDs {
		var payload struct {
			Variant wireVariant `json:"variant"`
		}
		if err := c.get(ctx, "/variants/"+url.PathEscape(variantID)+".json", nil, &payload); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		if payload.Variant.InventoryItemID != 0 {
			resolved[variantID] = formatID(payload.Variant.InventoryItemID)
		}
	}
	return resolved, nil
}

// GetInventoryLevels consulta la disponibilidad de un lote de inventory item ids.
// El llamador es responsable de acotar el tamaño del lote (la API limita los ids por llamada).
func (c *Client) GetInventoryLevels(ctx context.Context, itemIDs []string) ([]appsync.InventoryLevel, error) {
	query := url.Values{}
	query.Set("inventory_item_ids", strings.Join(itemIDs, ","))
	var payload struct {
		InventoryLevels []wireLevel `json:"inventory_levels"`
	}
	if err := c.get(ctx, "/inventory_levels.json", query, &payload); err != nil {
		return nil, err
	}
	levels := make([]appsync.InventoryLevel, 0, len(payload.InventoryLevels))
	for _, lvl := range payload.InventoryLevels {
		levels = append(levels, appsync.InventoryLevel{
			ExternalItemID:     formatID(lvl.InventoryItemID),
			ExternalLocationID: formatID(lvl.LocationID),
			Available:          lvl.Available,
		})
	}
	return levels, nil
}
