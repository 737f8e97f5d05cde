package memory

import (
	"sync"

	"github.com/jhoicas/distribucion-api/internal/domain/entity"
)

// Store estado en memoria compartido por todos los repositorios del paquete.
// Pensado para desarrollo y pruebas: mismas semánticas que los adaptadores
// PostgreSQL (CAS por estado, creación perezosa de stock, historial
// solo-agregado) sin base de datos.
type Store struct {
	mu sync.RWMutex

	stocks     map[string]*entity.StockRecord // clave productID|warehouseID
	transfers  map[string]*entity.Transfer
	orders     map[string]*entity.Order
	accounts   map[string]*entity.CustomerAccount
	ledger     map[string]*entity.LedgerEntry
	history    []*entity.HistoryEntry
	products   map[string]*entity.Product
	warehouses map[string]*entity.Warehouse
	users      map[string]*entity.User

	transferSerial int64
	orderSerial    int64
	ledgerRef      int64
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		stocks:     make(map[string]*entity.StockRecord),
		transfers:  make(map[string]*entity.Transfer),
		orders:     make(map[string]*entity.Order),
		accounts:   make(map[string]*entity.CustomerAccount),
		ledger:     make(map[string]*entity.LedgerEntry),
		products:   make(map[string]*entity.Product),
		warehouses: make(map[string]*entity.Warehouse),
		users:      make(map[string]*entity.User),
	}
}

func stockKey(productID, warehouseID string) string {
	return productID + "|" + warehouseID
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset < 0 || offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// snapshot copia profunda de todo el estado, para rollback de transacciones.
type snapshot struct {
	stocks     map[string]*entity.StockRecord
	transfers  map[string]*entity.Transfer
	orders     map[string]*entity.Order
	accounts   map[string]*entity.CustomerAccount
	ledger     map[string]*entity.LedgerEntry
	history    []*entity.HistoryEntry
	products   map[string]*entity.Product
	warehouses map[string]*entity.Warehouse
	users      map[string]*entity.User

	transferSerial int64
	orderSerial    int64
	ledgerRef      int64
}

func (s *Store) takeSnapshot() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &snapshot{
		stocks:         make(map[string]*entity.StockRecord, len(s.stocks)),
		transfers:      make(map[string]*entity.Transfer, len(s.transfers)),
		orders:         make(map[string]*entity.Order, len(s.orders)),
		accounts:       make(map[string]*entity.CustomerAccount, len(s.accounts)),
		ledger:         make(map[string]*entity.LedgerEntry, len(s.ledger)),
		history:        make([]*entity.HistoryEntry, len(s.history)),
		products:       make(map[string]*entity.Product, len(s.products)),
		warehouses:     make(map[string]*entity.Warehouse, len(s.warehouses)),
		users:          make(map[string]*entity.User, len(s.users)),
		transferSerial: s.transferSerial,
		orderSerial:    s.orderSerial,
		ledgerRef:      s.ledgerRef,
	}
	for k, v := range s.stocks {
		snap.stocks[k] = cloneStock(v)
	}
	for k, v := range s.transfers {
		snap.transfers[k] = cloneTransfer(v)
	}
	for k, v := range s.orders {
		snap.orders[k] = cloneOrder(v)
	}
	for k, v := range s.accounts {
		snap.accounts[k] = cloneAccount(v)
	}
	for k, v := range s.ledger {
		snap.ledger[k] = cloneLedgerEntry(v)
	}
	copy(snap.history, s.history)
	for k, v := range s.products {
		snap.products[k] = cloneProduct(v)
	}
	for k, v := range s.warehouses {
		snap.warehouses[k] = cloneWarehouse(v)
	}
	for k, v := range s.users {
		snap.users[k] = cloneUser(v)
	}
	return snap
}

func (s *Store) restore(snap *snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stocks = snap.stocks
	s.transfers = snap.transfers
	s.orders = snap.orders
	s.accounts = snap.accounts
	s.ledger = snap.ledger
	s.history = snap.history
	s.products = snap.products
	s.warehouses = snap.warehouses
	s.users = snap.users
	s.transferSerial = snap.transferSerial
	s.orderSerial = snap.orderSerial
	s.ledgerRef = snap.ledgerRef
}

func cloneStock(s *entity.StockRecord) *entity.StockRecord {
	c := *s
	return &c
}

func cloneTransfer(t *entity.Transfer) *entity.Transfer {
	c := *t
	c.Items = make([]entity.TransferItem, len(t.Items))
	copy(c.Items, t.Items)
	return &c
}

func cloneOrder(o *entity.Order) *entity.Order {
	c := *o
	c.Items = make([]entity.OrderItem, len(o.Items))
	copy(c.Items, o.Items)
	return &c
}

func cloneAccount(a *entity.CustomerAccount) *entity.CustomerAccount {
	c := *a
	return &c
}

func cloneLedgerEntry(e *entity.LedgerEntry) *entity.LedgerEntry {
	c := *e
	return &c
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func cloneWarehouse(w *entity.Warehouse) *entity.Warehouse {
	c := *w
	return &c
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	return &c
}
