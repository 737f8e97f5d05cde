package repository

import "github.com/jhoicas/distribucion-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para órdenes y sus líneas.
type OrderRepository interface {
	Create(o *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	// GetForUpdate bloquea la fila de la orden (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Order, error)
	// UpdateStatus actualiza el estado con semántica compare-and-swap:
	// retorna false si el estado persistido ya no es fromStatus.
	UpdateStatus(id, fromStatus, toStatus string) (bool, error)
	// UpdateKind cambia el tipo en sitio (conversión cotización -> venta),
	// sin tocar el estado. Retorna false si el tipo persistido no es fromKind.
	UpdateKind(id, fromKind, toKind string) (bool, error)
	// UpdateTotals persiste los campos financieros calculados.
	UpdateTotals(o *entity.Order) error
	CreateItem(item *entity.OrderItem) error
	UpdateItem(item *entity.OrderItem) error
	DeleteItem(itemID string) error
	// UpdateItemProduct re-apunta la línea a otro producto (materialización
	// de personalizados).
	UpdateItemProduct(itemID, productID string) error
	List(kind string, limit, offset int) ([]*entity.Order, error)
	// NextSerial reserva el siguiente consecutivo de despliegue.
	NextSerial() (int64, error)
}
