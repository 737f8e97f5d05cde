package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/distribucion-api/internal/application/dto"
	"github.com/jhoicas/distribucion-api/internal/application/stockops"
	"github.com/jhoicas/distribucion-api/internal/domain"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/order"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

// Reintentos ante conflicto de concurrencia (CAS de estado fallido).
const maxTransitionRetries = 3

// IVA plano aplicado sobre la base gravable (subtotal - descuento).
var taxRate = decimal.NewFromFloat(0.19)

// UseCase gobierna el ciclo de vida de órdenes (cotización, venta, venta a
// crédito, reposición). Las transiciones que tocan stock y las que emiten
// factura al libro del cliente corren dentro de una sola transacción.
type UseCase struct {
	txRunner      TxRunner
	orderRepo     repository.OrderRepository
	historyRepo   repository.HistoryRepository
	accountRepo   repository.AccountRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	notifier      Notifier
	cache         AvailabilityInvalidator // opcional, puede ser nil
}

// NewUseCase construye el caso de uso de órdenes.
func NewUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	historyRepo repository.HistoryRepository,
	accountRepo repository.AccountRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	notifier Notifier,
	cache AvailabilityInvalidator,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		orderRepo:     orderRepo,
		historyRepo:   historyRepo,
		accountRepo:   accountRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		notifier:      notifier,
		cache:         cache,
	}
}

// Create valida y persiste una orden nueva en PENDING. La materialización de
// líneas con producto placeholder corre como segunda fase del guardado, en
// la misma transacción, porque el SKU determinístico incrusta el consecutivo
// de la orden y este no existe antes de persistirla.
func (uc *UseCase) Create(ctx context.Context, actorID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if !order.ValidKind(in.Kind) || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Discount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	o := &entity.Order{
		ID:         uuid.New().String(),
		Kind:       in.Kind,
		Status:     entity.OrderStatusPending,
		CustomerID: in.CustomerID,
		SupplierID: in.SupplierID,
		Discount:   in.Discount,
		CreatedBy:  actorID,
	}
	if err := uc.checkCounterpart(o); err != nil {
		return nil, err
	}

	productsByID, err := uc.loadProducts(in.Items)
	if err != nil {
		return nil, err
	}
	items, err := uc.buildItems(o.ID, in.Items, productsByID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	computeTotals(o, productsByID)

	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now

	err = uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.StockRepository,
		historyRepo repository.HistoryRepository,
		_ repository.AccountRepository,
		_ repository.LedgerRepository,
		productRepo repository.ProductRepository,
	) error {
		serial, err := orderRepo.NextSerial()
		if err != nil {
			return err
		}
		o.Serial = serial
		if err := orderRepo.Create(o); err != nil {
			return err
		}
		if err := historyRepo.Append(&entity.HistoryEntry{
			ID:         uuid.New().String(),
			ParentType: entity.HistoryParentOrder,
			ParentID:   o.ID,
			Status:     o.Status,
			ActorID:    actorID,
			CreatedAt:  now,
		}); err != nil {
			return err
		}
		// Segunda fase: materializar personalizados ahora que la orden y sus
		// líneas tienen ID y consecutivo persistidos.
		return uc.materializeCustomItems(orderRepo, productRepo, o, productsByID, now)
	})
	if err != nil {
		return nil, err
	}

	uc.notifyTransition(o, actorID, "")
	return toOrderResponse(o), nil
}

// Update edita las líneas de una orden editable (PENDING, APPROVED o
// REJECTED) comparándolas por ID: las ausentes se borran, las coincidentes
// se actualizan en sitio conservando su ID (referencias aguas abajo de
// certificados y reportes), las nuevas se insertan.
func (uc *UseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 || in.Discount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	productsByID, err := uc.loadProducts(in.Items)
	if err != nil {
		return nil, err
	}

	var result *entity.Order
	err = uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.StockRepository,
		historyRepo repository.HistoryRepository,
		_ repository.AccountRepository,
		_ repository.LedgerRepository,
		productRepo repository.ProductRepository,
	) error {
		o, err := orderRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if !o.Editable() {
			return domain.ErrConflict
		}

		existing := make(map[string]*entity.OrderItem, len(o.Items))
		maxPos := 0
		for i := range o.Items {
			existing[o.Items[i].ID] = &o.Items[i]
			if o.Items[i].Position > maxPos {
				maxPos = o.Items[i].Position
			}
		}

		requested := make(map[string]bool, len(in.Items))
		var newItems []entity.OrderItem
		for _, it := range in.Items {
			if !it.Quantity.GreaterThan(decimal.Zero) {
				return domain.ErrInvalidInput
			}
			p := productsByID[it.ProductID]
			unitPrice := it.UnitPrice
			if unitPrice.IsZero() {
				unitPrice = p.Price
			}
			if it.ID == "" {
				maxPos++
				item := entity.OrderItem{
					ID:          uuid.New().String(),
					OrderID:     o.ID,
					ProductID:   it.ProductID,
					WarehouseID: it.WarehouseID,
					Quantity:    it.Quantity,
					UnitPrice:   unitPrice,
					LineTotal:   it.Quantity.Mul(unitPrice),
					Warranty:    it.Warranty,
					Position:    maxPos,
				}
				if err := orderRepo.CreateItem(&item); err != nil {
					return err
				}
				newItems = append(newItems, item)
				continue
			}
			prev, ok := existing[it.ID]
			if !ok {
				return domain.ErrInvalidInput
			}
			requested[it.ID] = true
			prev.ProductID = it.ProductID
			prev.WarehouseID = it.WarehouseID
			prev.Quantity = it.Quantity
			prev.UnitPrice = unitPrice
			prev.LineTotal = it.Quantity.Mul(unitPrice)
			prev.Warranty = it.Warranty
			if err := orderRepo.UpdateItem(prev); err != nil {
				return err
			}
		}
		kept := o.Items[:0]
		for i := range o.Items {
			if requested[o.Items[i].ID] {
				kept = append(kept, o.Items[i])
				continue
			}
			if err := orderRepo.DeleteItem(o.Items[i].ID); err != nil {
				return err
			}
		}
		o.Items = append(kept, newItems...)

		o.Discount = in.Discount
		computeTotals(o, productsByID)
		o.UpdatedAt = time.Now()
		if err := orderRepo.UpdateTotals(o); err != nil {
			return err
		}
		if err := historyRepo.Append(&entity.HistoryEntry{
			ID:         uuid.New().String(),
			ParentType: entity.HistoryParentOrder,
			ParentID:   o.ID,
			Status:     o.Status,
			ActorID:    actorID,
			Note:       "líneas actualizadas",
			CreatedAt:  o.UpdatedAt,
		}); err != nil {
			return err
		}
		if err := uc.materializeCustomItems(orderRepo, productRepo, o, productsByID, o.UpdatedAt); err != nil {
			return err
		}
		result = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(result), nil
}

// Transition ejecuta una transición de estado como unidad atómica, con
// reintento acotado ante ErrConcurrentModification.
func (uc *UseCase) Transition(ctx context.Context, actorID, id, targetStatus, note string) (*dto.OrderResponse, error) {
	var resp *dto.OrderResponse
	var err error
	for attempt := 0; attempt < maxTransitionRetries; attempt++ {
		resp, err = uc.transitionOnce(ctx, actorID, id, targetStatus, note)
		if !errors.Is(err, domain.ErrConcurrentModification) {
			return resp, err
		}
	}
	return nil, domain.ErrConcurrentModification
}

func (uc *UseCase) transitionOnce(ctx context.Context, actorID, id, targetStatus, note string) (*dto.OrderResponse, error) {
	var result *entity.Order
	var previous string

	err := uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
		historyRepo repository.HistoryRepository,
		accountRepo repository.AccountRepository,
		ledgerRepo repository.LedgerRepository,
		_ repository.ProductRepository,
	) error {
		o, err := orderRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		previous = o.Status
		if err := order.ValidateTransition(o.Kind, previous, targetStatus); err != nil {
			return err
		}

		// Efectos de stock: solo ciertas transiciones los producen; la
		// cancelación revierte los efectos de la etapa CONFIRMED según el
		// estado inmediatamente anterior.
		var changes []entity.StockChange
		if targetStatus == entity.OrderStatusCancelled {
			changes = order.RollbackDeltas(previous, o)
		} else {
			changes = order.TransitionDeltas(o, targetStatus)
		}
		if err := stockops.Apply(stockRepo, changes); err != nil {
			return err
		}

		// La confirmación de una venta emite la factura contra la cuenta
		// del cliente en la misma transacción. El efecto de una factura se
		// aplica siempre al crearse, a diferencia de abonos/reembolsos.
		if targetStatus == entity.OrderStatusConfirmed &&
			(o.Kind == entity.OrderKindSale || o.Kind == entity.OrderKindCreditSale) {
			if err := uc.issueInvoice(accountRepo, ledgerRepo, o, actorID); err != nil {
				return err
			}
		}

		ok, err := orderRepo.UpdateStatus(o.ID, previous, targetStatus)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrConcurrentModification
		}
		o.Status = targetStatus
		o.UpdatedAt = time.Now()
		result = o

		return historyRepo.Append(&entity.HistoryEntry{
			ID:         uuid.New().String(),
			ParentType: entity.HistoryParentOrder,
			ParentID:   o.ID,
			Status:     targetStatus,
			ActorID:    actorID,
			Note:       note,
			CreatedAt:  o.UpdatedAt,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateAvailability(ctx, result)
	uc.notifyTransition(result, actorID, previous)
	return toOrderResponse(result), nil
}

// issueInvoice bloquea la cuenta, valida el cupo para ventas a crédito y
// registra la factura con su efecto aplicado de inmediato.
func (uc *UseCase) issueInvoice(
	accountRepo repository.AccountRepository,
	ledgerRepo repository.LedgerRepository,
	o *entity.Order,
	actorID string,
) error {
	account, err := accountRepo.GetForUpdate(o.CustomerID)
	if err != nil {
		return err
	}
	if account == nil {
		return domain.ErrNotFound
	}
	newBalance := account.Balance.Add(o.GrandTotal)
	if o.Kind == entity.OrderKindCreditSale {
		if !account.CreditEnabled || newBalance.GreaterThan(account.CreditLimit) {
			return domain.ErrCreditLimitExceeded
		}
	}
	if err := accountRepo.UpdateBalance(account.ID, newBalance); err != nil {
		return err
	}
	reference, err := ledgerRepo.NextReference()
	if err != nil {
		return err
	}
	now := time.Now()
	return ledgerRepo.Create(&entity.LedgerEntry{
		ID:           uuid.New().String(),
		Reference:    reference,
		AccountID:    account.ID,
		Kind:         entity.LedgerKindInvoice,
		Amount:       o.GrandTotal,
		BalanceAfter: newBalance,
		Applied:      true,
		OrderID:      o.ID,
		CreatedBy:    actorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// ConvertQuotation cambia el tipo de QUOTATION a SALE en sitio, sin tocar el
// estado. Es un cambio de metadatos, no una transición: no aplica efectos de
// stock ni de libro retroactivamente.
func (uc *UseCase) ConvertQuotation(ctx context.Context, actorID, id string) (*dto.OrderResponse, error) {
	var result *entity.Order
	err := uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.StockRepository,
		historyRepo repository.HistoryRepository,
		_ repository.AccountRepository,
		_ repository.LedgerRepository,
		_ repository.ProductRepository,
	) error {
		o, err := orderRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if o.Kind != entity.OrderKindQuotation {
			return domain.ErrConflict
		}
		ok, err := orderRepo.UpdateKind(o.ID, entity.OrderKindQuotation, entity.OrderKindSale)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrConcurrentModification
		}
		o.Kind = entity.OrderKindSale
		o.UpdatedAt = time.Now()
		result = o
		return historyRepo.Append(&entity.HistoryEntry{
			ID:         uuid.New().String(),
			ParentType: entity.HistoryParentOrder,
			ParentID:   o.ID,
			Status:     o.Status,
			ActorID:    actorID,
			Note:       "cotización convertida a venta",
			CreatedAt:  o.UpdatedAt,
		})
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(result), nil
}

// Get devuelve la orden con sus líneas.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(o), nil
}

// History devuelve el rastro de auditoría de la orden.
func (uc *UseCase) History(ctx context.Context, id string) ([]dto.HistoryEntryResponse, error) {
	entries, err := uc.historyRepo.ListByParent(entity.HistoryParentOrder, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.HistoryEntryResponse{
			Status:    e.Status,
			ActorID:   e.ActorID,
			Note:      e.Note,
			CreatedAt: e.CreatedAt,
		})
	}
	return out, nil
}

// List lista órdenes, opcionalmente filtradas por tipo.
func (uc *UseCase) List(ctx context.Context, kind string, page dto.PageRequest) ([]*dto.OrderResponse, error) {
	if kind != "" && !order.ValidKind(kind) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.orderRepo.List(kind, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

// checkCounterpart valida la contraparte según el tipo: cliente para
// cotización/venta/crédito (debe existir su cuenta), proveedor para
// reposición.
func (uc *UseCase) checkCounterpart(o *entity.Order) error {
	if o.RequiresCustomer() {
		if o.CustomerID == "" {
			return domain.ErrInvalidInput
		}
		account, err := uc.accountRepo.GetByID(o.CustomerID)
		if err != nil {
			return err
		}
		if account == nil {
			return domain.ErrNotFound
		}
		return nil
	}
	// Reposición: la referencia del proveedor es dato externo (CRUD de
	// referencia fuera del núcleo); solo se exige presencia.
	if o.SupplierID == "" {
		return domain.ErrInvalidInput
	}
	return nil
}

func (uc *UseCase) loadProducts(items []dto.OrderItemRequest) (map[string]*entity.Product, error) {
	productsByID := make(map[string]*entity.Product, len(items))
	for _, it := range items {
		if it.ProductID == "" {
			return nil, domain.ErrInvalidInput
		}
		if _, ok := productsByID[it.ProductID]; ok {
			continue
		}
		p, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		productsByID[it.ProductID] = p
	}
	return productsByID, nil
}

func (uc *UseCase) buildItems(orderID string, in []dto.OrderItemRequest, productsByID map[string]*entity.Product) ([]entity.OrderItem, error) {
	items := make([]entity.OrderItem, 0, len(in))
	for i, it := range in {
		if !it.Quantity.GreaterThan(decimal.Zero) || it.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if it.WarehouseID != "" {
			w, err := uc.warehouseRepo.GetByID(it.WarehouseID)
			if err != nil {
				return nil, err
			}
			if w == nil {
				return nil, domain.ErrNotFound
			}
		}
		unitPrice := it.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = productsByID[it.ProductID].Price
		}
		items = append(items, entity.OrderItem{
			ID:          uuid.New().String(),
			OrderID:     orderID,
			ProductID:   it.ProductID,
			WarehouseID: it.WarehouseID,
			Quantity:    it.Quantity,
			UnitPrice:   unitPrice,
			LineTotal:   it.Quantity.Mul(unitPrice),
			Warranty:    it.Warranty,
			Position:    i + 1,
		})
	}
	return items, nil
}

// materializeCustomItems reemplaza las líneas que apuntan al producto
// placeholder por productos reales recién acuñados (clonados del
// placeholder, SKU determinístico con consecutivo de orden y posición) y
// re-apunta la línea.
func (uc *UseCase) materializeCustomItems(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	o *entity.Order,
	productsByID map[string]*entity.Product,
	now time.Time,
) error {
	for i := range o.Items {
		it := &o.Items[i]
		placeholder, ok := productsByID[it.ProductID]
		if !ok || !placeholder.Placeholder {
			continue
		}
		minted := entity.MaterializeFrom(placeholder, uuid.New().String(), o.Serial, it.Position, now)
		if err := productRepo.Create(minted); err != nil {
			return err
		}
		if err := orderRepo.UpdateItemProduct(it.ID, minted.ID); err != nil {
			return err
		}
		it.ProductID = minted.ID
	}
	return nil
}

// computeTotals calcula subtotal, base gravable, IVA, total y total a precio
// de lista a partir de las líneas.
func computeTotals(o *entity.Order, productsByID map[string]*entity.Product) {
	subtotal := decimal.Zero
	listTotal := decimal.Zero
	for _, it := range o.Items {
		subtotal = subtotal.Add(it.LineTotal)
		if p, ok := productsByID[it.ProductID]; ok {
			listTotal = listTotal.Add(it.Quantity.Mul(p.Price))
		}
	}
	base := subtotal.Sub(o.Discount)
	if base.IsNegative() {
		base = decimal.Zero
	}
	o.Subtotal = subtotal
	o.Tax = base.Mul(taxRate).Round(2)
	o.GrandTotal = base.Add(o.Tax)
	o.ListTotal = listTotal
}

func (uc *UseCase) invalidateAvailability(ctx context.Context, o *entity.Order) {
	if uc.cache == nil {
		return
	}
	for _, it := range o.Items {
		if it.WarehouseID == "" {
			continue
		}
		uc.cache.Invalidate(ctx, it.ProductID, it.WarehouseID)
	}
}

// notifyTransition notifica en-app a quien creó la orden y, si la orden
// tiene cliente con correo registrado, le envía un correo con el cambio de
// estado. Mejor esfuerzo: el Notifier registra sus propias fallas.
func (uc *UseCase) notifyTransition(o *entity.Order, actorID, previous string) {
	if uc.notifier == nil {
		return
	}
	uc.notifier.Notify(o.CreatedBy, "order."+o.Status, map[string]any{
		"order_id": o.ID,
		"serial":   o.SerialDisplay(),
		"kind":     o.Kind,
		"status":   o.Status,
		"previous": previous,
		"actor_id": actorID,
	})

	if o.CustomerID == "" {
		return
	}
	account, err := uc.accountRepo.GetByID(o.CustomerID)
	if err != nil || account == nil || account.Email == "" {
		return
	}
	subject := fmt.Sprintf("Orden %s: %s", o.SerialDisplay(), o.Status)
	body := fmt.Sprintf("Su orden %s pasó a %s.", o.SerialDisplay(), o.Status)
	if previous != "" {
		body = fmt.Sprintf("Su orden %s pasó de %s a %s.", o.SerialDisplay(), previous, o.Status)
	}
	uc.notifier.Email(account.Email, subject, body)
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:         o.ID,
		Serial:     o.SerialDisplay(),
		Kind:       o.Kind,
		Status:     o.Status,
		CustomerID: o.CustomerID,
		SupplierID: o.SupplierID,
		Items:      make([]dto.OrderItemResponse, 0, len(o.Items)),
		Subtotal:   o.Subtotal,
		Discount:   o.Discount,
		Tax:        o.Tax,
		GrandTotal: o.GrandTotal,
		ListTotal:  o.ListTotal,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			WarehouseID: it.WarehouseID,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
			Warranty:    it.Warranty,
		})
	}
	return resp
}
