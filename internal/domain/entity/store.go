package entity

import "time"

// Store representa una tienda o sucursal con inventario propio.
// ExternalLocationID vincula la tienda con una ubicación de la plataforma externa.
type Store struct {
	ID                 string
	Name               string
	ExternalLocationID string
	Active             bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
