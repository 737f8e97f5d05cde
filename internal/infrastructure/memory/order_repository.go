package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación en memoria de OrderRepository.
type OrderRepo struct {
	store *Store
}

// NewOrderRepository construye el adaptador sobre el store.
func NewOrderRepository(store *Store) *OrderRepo {
	return &OrderRepo{store: store}
}

// Create guarda la orden con sus líneas.
func (r *OrderRepo) Create(o *entity.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	for i := range o.Items {
		if o.Items[i].ID == "" {
			o.Items[i].ID = uuid.New().String()
		}
		o.Items[i].OrderID = o.ID
	}
	r.store.orders[o.ID] = cloneOrder(o)
	return nil
}

// GetByID devuelve la orden o nil si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	o, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(o), nil
}

// GetForUpdate devuelve la orden. El bloqueo de fila lo da la serialización
// de transacciones del TxRunner.
func (r *OrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	return r.GetByID(id)
}

// UpdateStatus actualiza el estado con semántica compare-and-swap.
func (r *OrderRepo) UpdateStatus(id, fromStatus, toStatus string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.orders[id]
	if !ok || o.Status != fromStatus {
		return false, nil
	}
	o.Status = toStatus
	o.UpdatedAt = time.Now()
	return true, nil
}

// UpdateKind cambia el tipo con semántica compare-and-swap.
func (r *OrderRepo) UpdateKind(id, fromKind, toKind string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.orders[id]
	if !ok || o.Kind != fromKind {
		return false, nil
	}
	o.Kind = toKind
	o.UpdatedAt = time.Now()
	return true, nil
}

// UpdateTotals persiste los campos financieros recalculados.
func (r *OrderRepo) UpdateTotals(o *entity.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cur, ok := r.store.orders[o.ID]
	if !ok {
		return nil
	}
	cur.Subtotal = o.Subtotal
	cur.Discount = o.Discount
	cur.Tax = o.Tax
	cur.GrandTotal = o.GrandTotal
	cur.ListTotal = o.ListTotal
	cur.UpdatedAt = time.Now()
	return nil
}

// CreateItem agrega una línea a la orden.
func (r *OrderRepo) CreateItem(item *entity.OrderItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.orders[item.OrderID]
	if !ok {
		return nil
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	o.Items = append(o.Items, *item)
	o.UpdatedAt = time.Now()
	return nil
}

// UpdateItem actualiza una línea existente en sitio.
func (r *OrderRepo) UpdateItem(item *entity.OrderItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, o := range r.store.orders {
		for i := range o.Items {
			if o.Items[i].ID == item.ID {
				pos := o.Items[i].Position
				o.Items[i] = *item
				o.Items[i].Position = pos
				o.UpdatedAt = time.Now()
				return nil
			}
		}
	}
	return nil
}

// DeleteItem elimina una línea.
func (r *OrderRepo) DeleteItem(itemID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, o := range r.store.orders {
		for i := range o.Items {
			if o.Items[i].ID == itemID {
				o.Items = append(o.Items[:i], o.Items[i+1:]...)
				o.UpdatedAt = time.Now()
				return nil
			}
		}
	}
	return nil
}

// UpdateItemProduct re-apunta la línea a otro producto.
func (r *OrderRepo) UpdateItemProduct(itemID, productID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, o := range r.store.orders {
		for i := range o.Items {
			if o.Items[i].ID == itemID {
				o.Items[i].ProductID = productID
				return nil
			}
		}
	}
	return nil
}

// List lista órdenes, opcionalmente filtradas por tipo, más recientes primero.
func (r *OrderRepo) List(kind string, limit, offset int) ([]*entity.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var list []*entity.Order
	for _, o := range r.store.orders {
		if kind == "" || o.Kind == kind {
			list = append(list, cloneOrder(o))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, limit, offset), nil
}

// NextSerial reserva el siguiente consecutivo.
func (r *OrderRepo) NextSerial() (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.orderSerial++
	return r.store.orderSerial, nil
}
