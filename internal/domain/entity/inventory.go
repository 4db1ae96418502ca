package entity

import "time"

// Inventory representa el stock actual de un producto en una tienda.
// Llave compuesta (ProductID, StoreID); Quantity es entera y nunca negativa:
// los intentos que la violarían se rechazan antes de escribir.
type Inventory struct {
	ProductID string
	StoreID   string
	Quantity  int64
	UpdatedAt time.Time
}
