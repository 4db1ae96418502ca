package repository

import "github.com/tu-usuario/pos-retail/internal/domain/entity"

// CustomerRepository define el puerto de acceso a clientes.
// El teléfono es la llave natural de deduplicación del upsert en ventas.
type CustomerRepository interface {
	GetByID(id string) (*entity.Customer, error)
	GetByPhone(phone string) (*entity.Customer, error)
	Create(customer *entity.Customer) error
	Update(customer *entity.Customer) error
}
