package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/distribucion-api/internal/application/dto"
	"github.com/jhoicas/distribucion-api/internal/application/orders"
	"github.com/jhoicas/distribucion-api/internal/domain"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/infrastructure/memory"
)

const (
	sellerID      = "11111111-1111-1111-1111-111111111111"
	customerID    = "22222222-2222-2222-2222-222222222222"
	supplierID    = "33333333-3333-3333-3333-333333333333"
	productID     = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	placeholderID = "dddddddd-dddd-dddd-dddd-dddddddddddd"
	warehouseID   = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
	unknownUUID   = "99999999-9999-9999-9999-999999999999"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// recordingNotifier captura los eventos en-app y los correos despachados
// tras el commit de cada transición.
type recordingNotifier struct {
	events []string
	emails []string
}

func (n *recordingNotifier) Notify(recipientID, event string, payload map[string]any) {
	n.events = append(n.events, event)
}

func (n *recordingNotifier) Email(recipientEmail, subject, body string) {
	n.emails = append(n.emails, recipientEmail)
}

type fixture struct {
	store    *memory.Store
	uc       *orders.UseCase
	notifier *recordingNotifier
}

// newFixture siembra una bodega, un producto a precio de lista 100, el
// producto placeholder de personalizados y un cliente con cupo de 500.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()

	require.NoError(t, memory.NewWarehouseRepository(store).Create(&entity.Warehouse{ID: warehouseID, Name: "Bodega Central", CreatedAt: now}))
	require.NoError(t, memory.NewProductRepository(store).Create(&entity.Product{
		ID: productID, SKU: "SKU-001", Name: "Taladro industrial", Price: d("100"), CreatedAt: now,
	}))
	require.NoError(t, memory.NewProductRepository(store).Create(&entity.Product{
		ID: placeholderID, SKU: "CUSTOM", Name: "Producto personalizado", Placeholder: true, CreatedAt: now,
	}))
	require.NoError(t, memory.NewAccountRepository(store).Create(&entity.CustomerAccount{
		ID: customerID, Name: "Ferretería El Tornillo", Email: "compras@eltornillo.co",
		Balance: decimal.Zero, CreditLimit: d("500"), CreditEnabled: true, CreatedAt: now,
	}))

	notifier := &recordingNotifier{}
	uc := orders.NewUseCase(
		memory.NewTxRunner(store),
		memory.NewOrderRepository(store),
		memory.NewHistoryRepository(store),
		memory.NewAccountRepository(store),
		memory.NewProductRepository(store),
		memory.NewWarehouseRepository(store),
		notifier,
		nil, // sin caché de disponibilidad
	)
	return &fixture{store: store, uc: uc, notifier: notifier}
}

func (f *fixture) seedStock(t *testing.T, qty string) {
	t.Helper()
	require.NoError(t, memory.NewStockRepository(f.store).Upsert(&entity.StockRecord{
		ProductID: productID, WarehouseID: warehouseID, Actual: d(qty),
	}))
}

func (f *fixture) stock(t *testing.T) *entity.StockRecord {
	t.Helper()
	rec, err := memory.NewStockRepository(f.store).Get(productID, warehouseID)
	require.NoError(t, err)
	return rec
}

func (f *fixture) account(t *testing.T) *entity.CustomerAccount {
	t.Helper()
	a, err := memory.NewAccountRepository(f.store).GetByID(customerID)
	require.NoError(t, err)
	require.NotNil(t, a)
	return a
}

func (f *fixture) ledgerEntries(t *testing.T) []*entity.LedgerEntry {
	t.Helper()
	list, err := memory.NewLedgerRepository(f.store).ListByAccount(customerID, 50, 0)
	require.NoError(t, err)
	return list
}

// createOrder crea una orden del tipo dado con una línea de qty unidades a
// precio de lista.
func (f *fixture) createOrder(t *testing.T, kind, qty string) *dto.OrderResponse {
	t.Helper()
	in := dto.CreateOrderRequest{
		Kind: kind,
		Items: []dto.OrderItemRequest{
			{ProductID: productID, WarehouseID: warehouseID, Quantity: d(qty)},
		},
	}
	if kind == entity.OrderKindReplenishment {
		in.SupplierID = supplierID
	} else {
		in.CustomerID = customerID
	}
	resp, err := f.uc.Create(context.Background(), sellerID, in)
	require.NoError(t, err)
	return resp
}

func (f *fixture) transition(t *testing.T, id, status string) (*dto.OrderResponse, error) {
	t.Helper()
	return f.uc.Transition(context.Background(), sellerID, id, status, "")
}

func (f *fixture) mustTransition(t *testing.T, id string, statuses ...string) *dto.OrderResponse {
	t.Helper()
	var resp *dto.OrderResponse
	var err error
	for _, s := range statuses {
		resp, err = f.transition(t, id, s)
		require.NoError(t, err, "transición a %s", s)
	}
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación y totales
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_VentaCalculaTotales(t *testing.T) {
	f := newFixture(t)
	resp, err := f.uc.Create(context.Background(), sellerID, dto.CreateOrderRequest{
		Kind:       entity.OrderKindSale,
		CustomerID: customerID,
		Discount:   d("50"),
		Items: []dto.OrderItemRequest{
			{ProductID: productID, WarehouseID: warehouseID, Quantity: d("2")},                      // 2 x 100 lista
			{ProductID: productID, WarehouseID: warehouseID, Quantity: d("1"), UnitPrice: d("80")}, // precio pactado
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPending, resp.Status)
	assert.Equal(t, "OV-000001", resp.Serial)
	assert.True(t, resp.Subtotal.Equal(d("280")), "subtotal = 200 + 80")
	assert.True(t, resp.Discount.Equal(d("50")))
	assert.True(t, resp.Tax.Equal(d("43.70")), "IVA 19%% sobre base 230, se obtuvo %s", resp.Tax)
	assert.True(t, resp.GrandTotal.Equal(d("273.70")))
	assert.True(t, resp.ListTotal.Equal(d("300")), "a precio de lista: 3 x 100")

	// Crear nunca mueve stock.
	assert.True(t, f.stock(t).Actual.IsZero())
	assert.True(t, f.stock(t).Reservado.IsZero())
}

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item := dto.OrderItemRequest{ProductID: productID, Quantity: d("1")}

	cases := []struct {
		name string
		in   dto.CreateOrderRequest
		want error
	}{
		{"tipo desconocido", dto.CreateOrderRequest{Kind: "PURCHASE", Items: []dto.OrderItemRequest{item}}, domain.ErrInvalidInput},
		{"sin líneas", dto.CreateOrderRequest{Kind: entity.OrderKindSale, CustomerID: customerID}, domain.ErrInvalidInput},
		{"venta sin cliente", dto.CreateOrderRequest{Kind: entity.OrderKindSale, Items: []dto.OrderItemRequest{item}}, domain.ErrInvalidInput},
		{"cliente sin cuenta", dto.CreateOrderRequest{Kind: entity.OrderKindSale, CustomerID: unknownUUID, Items: []dto.OrderItemRequest{item}}, domain.ErrNotFound},
		{"reposición sin proveedor", dto.CreateOrderRequest{Kind: entity.OrderKindReplenishment, Items: []dto.OrderItemRequest{item}}, domain.ErrInvalidInput},
		{"descuento negativo", dto.CreateOrderRequest{Kind: entity.OrderKindSale, CustomerID: customerID, Discount: d("-1"), Items: []dto.OrderItemRequest{item}}, domain.ErrInvalidInput},
		{"cantidad cero", dto.CreateOrderRequest{Kind: entity.OrderKindSale, CustomerID: customerID, Items: []dto.OrderItemRequest{{ProductID: productID, Quantity: decimal.Zero}}}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Create(ctx, sellerID, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Confirmación de venta: stock + factura en una sola transacción
// ──────────────────────────────────────────────────────────────────────────────

func TestTransition_ConfirmarVentaReservaYFactura(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, "10")
	o := f.createOrder(t, entity.OrderKindSale, "2") // total = 200 * 1.19 = 238

	resp := f.mustTransition(t, o.ID, entity.OrderStatusApproved, entity.OrderStatusConfirmed)
	assert.Equal(t, entity.OrderStatusConfirmed, resp.Status)

	// Stock: se reserva sin descontar.
	s := f.stock(t)
	assert.True(t, s.Actual.Equal(d("10")))
	assert.True(t, s.Reservado.Equal(d("2")))

	// Libro: factura emitida y aplicada de inmediato.
	entries := f.ledgerEntries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.LedgerKindInvoice, entries[0].Kind)
	assert.True(t, entries[0].Applied)
	assert.Equal(t, o.ID, entries[0].OrderID)
	assert.True(t, entries[0].Amount.Equal(d("238")))
	assert.True(t, entries[0].BalanceAfter.Equal(d("238")))
	assert.True(t, f.account(t).Balance.Equal(d("238")))
}

func TestTransition_CreditoSinCupoRevierteTodo(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, "10")
	// 5 x 100 = 500, con IVA = 595 > cupo de 500.
	o := f.createOrder(t, entity.OrderKindCreditSale, "5")
	_, err := f.transition(t, o.ID, entity.OrderStatusApproved)
	require.NoError(t, err)

	_, err = f.transition(t, o.ID, entity.OrderStatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrCreditLimitExceeded)

	// Transacción revertida completa: estado, reserva, balance y libro.
	got, err := f.uc.Get(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusApproved, got.Status)
	assert.True(t, f.stock(t).Reservado.IsZero())
	assert.True(t, f.account(t).Balance.IsZero())
	assert.Empty(t, f.ledgerEntries(t))
}

func TestTransition_CreditoDentroDelCupo(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, "10")
	// 2 x 100 = 200, con IVA = 238 <= 500.
	o := f.createOrder(t, entity.OrderKindCreditSale, "2")
	f.mustTransition(t, o.ID, entity.OrderStatusApproved, entity.OrderStatusConfirmed)
	assert.True(t, f.account(t).Balance.Equal(d("238")))
}

func TestTransition_CreditoDeshabilitadoFalla(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, "10")
	a := f.account(t)
	a.CreditEnabled = false
	require.NoError(t, memory.NewAccountRepository(f.store).Update(a))

	o := f.createOrder(t, entity.OrderKindCreditSale, "1")
	_, err := f.transition(t, o.ID, entity.OrderStatusApproved)
	require.NoError(t, err)
	_, err = f.transition(t, o.ID, entity.OrderStatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrCreditLimitExceeded)
}

// La cotización no factura ni reserva: sus transiciones son puras.
func TestTransition_CotizacionNoTocaStockNiLibro(t *testing.T) {
	f := newFixture(t)
	o := f.createOrder(t, entity.OrderKindQuotation, "2")
	f.mustTransition(t, o.ID, entity.OrderStatusApproved)

	assert.True(t, f.stock(t).Reservado.IsZero())
	assert.Empty(t, f.ledgerEntries(t))
}

// ──────────────────────────────────────────────────────────────────────────────
// Entrega y cancelación
// ──────────────────────────────────────────────────────────────────────────────

func TestTransition_EntregaDescuentaStock(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, "10")
	o := f.createOrder(t, entity.OrderKindSale, "2")
	f.mustTransition(t, o.ID, entity.OrderStatusApproved, entity.OrderStatusConfirmed, entity.OrderStatusDelivered)

	s := f.stock(t)
	assert.True(t, s.Actual.Equal(d("8")))
	assert.True(t, s.Reservado.IsZero())
}

// Entregar sin existencias revierte la transición completa.
func TestTransition_EntregaSinStockFalla(t *testing.T) {
	f := newFixture(t)
	o := f.createOrder(t, entity.OrderKindSale, "2")
	f.mustTransition(t, o.ID, entity.OrderStatusApproved, entity.OrderStatusConfirmed)

	_, err := f.transition(t, o.ID, entity.OrderStatusDelivered)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := f.uc.Get(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusConfirmed, got.Status)
	assert.True(t, f.stock(t).Reservado.Equal(d("2")), "la reserva sigue intacta")
}

func TestTransition_CancelarVentaConfirmadaLiberaReserva(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, "10")
	o := f.createOrder(t, entity.OrderKindSale, "2")
	f.mustTransition(t, o.ID, entity.OrderStatusApproved, entity.OrderStatusConfirmed)

	resp, err := f.transition(t, o.ID, entity.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, resp.Status)

	s := f.stock(t)
	assert.True(t, s.Actual.Equal(d("10")))
	assert.True(t, s.Reservado.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Notificaciones post-commit
// ──────────────────────────────────────────────────────────────────────────────

func TestTransition_NotificaYEnviaCorreoAlCliente(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, "10")
	o := f.createOrder(t, entity.OrderKindSale, "2")
	f.mustTransition(t, o.ID, entity.OrderStatusApproved, entity.OrderStatusConfirmed)

	assert.Contains(t, f.notifier.events, "order."+entity.OrderStatusConfirmed)
	// Cada transición confirmada (y la creación) le escribe al cliente.
	assert.NotEmpty(t, f.notifier.emails)
	assert.Contains(t, f.notifier.emails, "compras@eltornillo.co")
}

func TestTransition_ReposicionNoEscribeCorreos(t *testing.T) {
	f := newFixture(t)
	o := f.createOrder(t, entity.OrderKindReplenishment, "6")
	f.mustTransition(t, o.ID, entity.OrderStatusApproved, entity.OrderStatusConfirmed)

	// Sin cliente no hay destinatario de correo; el canal en-app sí corre.
	assert.Empty(t, f.notifier.emails)
	assert.Contains(t, f.notifier.events, "order."+entity.OrderStatusConfirmed)
}

func TestTransition_FallidaNoDespachaNada(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, "1")
	o := f.createOrder(t, entity.OrderKindSale, "2")
	f.mustTransition(t, o.ID, entity.OrderStatusApproved)
	eventsBefore := len(f.notifier.events)
	emailsBefore := len(f.notifier.emails)

	_, err := f.transition(t, o.ID, entity.OrderStatusConfirmed)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Las notificaciones son post-commit: la transacción revertida no
	// despacha nada por ningún canal.
	assert.Len(t, f.notifier.events, eventsBefore)
	assert.Len(t, f.notifier.emails, emailsBefore)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reposición
// ──────────────────────────────────────────────────────────────────────────────

func TestTransition_ReposicionCicloCompleto(t *testing.T) {
	f := newFixture(t)
	o := f.createOrder(t, entity.OrderKindReplenishment, "6")

	f.mustTransition(t, o.ID, entity.OrderStatusApproved, entity.OrderStatusConfirmed)
	assert.True(t, f.stock(t).Transito.Equal(d("6")), "confirmar pone las unidades en tránsito")

	f.mustTransition(t, o.ID, entity.OrderStatusShipped)
	assert.True(t, f.stock(t).Transito.Equal(d("6")), "el despacho del proveedor no cambia contadores")

	f.mustTransition(t, o.ID, entity.OrderStatusReceived)
	s := f.stock(t)
	assert.True(t, s.Actual.Equal(d("6")))
	assert.True(t, s.Transito.IsZero())

	// Reposición no factura nada.
	assert.Empty(t, f.ledgerEntries(t))
}

func TestTransition_CancelarReposicionDespachadaLiberaTransito(t *testing.T) {
	f := newFixture(t)
	o := f.createOrder(t, entity.OrderKindReplenishment, "6")
	f.mustTransition(t, o.ID, entity.OrderStatusApproved, entity.OrderStatusConfirmed, entity.OrderStatusShipped)

	_, err := f.transition(t, o.ID, entity.OrderStatusCancelled)
	require.NoError(t, err)
	assert.True(t, f.stock(t).Transito.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Conversión de cotización
// ──────────────────────────────────────────────────────────────────────────────

func TestConvertQuotation_CambiaTipoEnSitio(t *testing.T) {
	f := newFixture(t)
	o := f.createOrder(t, entity.OrderKindQuotation, "2")

	resp, err := f.uc.ConvertQuotation(context.Background(), sellerID, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderKindSale, resp.Kind)
	assert.Equal(t, o.Status, resp.Status, "la conversión no toca el estado")
	assert.Equal(t, o.Serial, resp.Serial, "conserva el consecutivo")

	// Sin efectos retroactivos.
	assert.True(t, f.stock(t).Reservado.IsZero())
	assert.Empty(t, f.ledgerEntries(t))
}

func TestConvertQuotation_SoloCotizaciones(t *testing.T) {
	f := newFixture(t)
	o := f.createOrder(t, entity.OrderKindSale, "1")

	_, err := f.uc.ConvertQuotation(context.Background(), sellerID, o.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.uc.ConvertQuotation(context.Background(), sellerID, unknownUUID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición por diff de líneas
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_DiffDeLineas(t *testing.T) {
	f := newFixture(t)
	o, err := f.uc.Create(context.Background(), sellerID, dto.CreateOrderRequest{
		Kind:       entity.OrderKindSale,
		CustomerID: customerID,
		Items: []dto.OrderItemRequest{
			{ProductID: productID, WarehouseID: warehouseID, Quantity: d("2")},
			{ProductID: productID, WarehouseID: warehouseID, Quantity: d("5")},
		},
	})
	require.NoError(t, err)
	keptID := o.Items[0].ID

	resp, err := f.uc.Update(context.Background(), sellerID, o.ID, dto.UpdateOrderRequest{
		Items: []dto.OrderItemRequest{
			// La primera línea se conserva (mismo ID) con cantidad nueva.
			{ID: keptID, ProductID: productID, WarehouseID: warehouseID, Quantity: d("3")},
			// La segunda desaparece del request: se borra. Esta es nueva.
			{ProductID: productID, WarehouseID: warehouseID, Quantity: d("1"), UnitPrice: d("90")},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)

	assert.Equal(t, keptID, resp.Items[0].ID, "la línea coincidente conserva su ID")
	assert.True(t, resp.Items[0].Quantity.Equal(d("3")))
	assert.NotEqual(t, o.Items[1].ID, resp.Items[1].ID, "la línea nueva se acuña con ID propio")

	// Totales recalculados: 3x100 + 1x90 = 390.
	assert.True(t, resp.Subtotal.Equal(d("390")))
}

func TestUpdate_LineaConIDAjenoEsInvalida(t *testing.T) {
	f := newFixture(t)
	o := f.createOrder(t, entity.OrderKindSale, "2")

	_, err := f.uc.Update(context.Background(), sellerID, o.ID, dto.UpdateOrderRequest{
		Items: []dto.OrderItemRequest{
			{ID: unknownUUID, ProductID: productID, Quantity: d("1")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_SoloEstadosEditables(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, "10")
	o := f.createOrder(t, entity.OrderKindSale, "2")
	f.mustTransition(t, o.ID, entity.OrderStatusApproved, entity.OrderStatusConfirmed)

	_, err := f.uc.Update(context.Background(), sellerID, o.ID, dto.UpdateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: productID, Quantity: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Materialización de personalizados
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_MaterializaPlaceholder(t *testing.T) {
	f := newFixture(t)
	resp, err := f.uc.Create(context.Background(), sellerID, dto.CreateOrderRequest{
		Kind:       entity.OrderKindSale,
		CustomerID: customerID,
		Items: []dto.OrderItemRequest{
			{ProductID: productID, WarehouseID: warehouseID, Quantity: d("1")},
			{ProductID: placeholderID, Quantity: d("1"), UnitPrice: d("150"), Warranty: "6 meses"},
		},
	})
	require.NoError(t, err)

	// La línea ya no apunta al placeholder sino a un producto acuñado con SKU
	// determinístico: consecutivo de orden + posición de línea.
	require.Len(t, resp.Items, 2)
	minted := resp.Items[1]
	assert.NotEqual(t, placeholderID, minted.ProductID)

	p, err := memory.NewProductRepository(f.store).GetByID(minted.ProductID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "CUSTOM-OV000001-2", p.SKU)
	assert.False(t, p.Placeholder, "el producto acuñado es real")
	assert.Equal(t, "Producto personalizado", p.Name)

	// El placeholder original sigue intacto para la próxima orden.
	orig, err := memory.NewProductRepository(f.store).GetByID(placeholderID)
	require.NoError(t, err)
	require.NotNil(t, orig)
	assert.True(t, orig.Placeholder)
}

// ──────────────────────────────────────────────────────────────────────────────
// Historial y listado
// ──────────────────────────────────────────────────────────────────────────────

func TestHistory_RegistraCadaTransicion(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, "10")
	o := f.createOrder(t, entity.OrderKindSale, "1")
	f.mustTransition(t, o.ID, entity.OrderStatusApproved, entity.OrderStatusConfirmed, entity.OrderStatusDelivered)

	hist, err := f.uc.History(context.Background(), o.ID)
	require.NoError(t, err)
	require.Len(t, hist, 4)
	assert.Equal(t, entity.OrderStatusPending, hist[0].Status)
	assert.Equal(t, entity.OrderStatusDelivered, hist[3].Status)
}

func TestList_FiltraPorTipo(t *testing.T) {
	f := newFixture(t)
	f.createOrder(t, entity.OrderKindSale, "1")
	f.createOrder(t, entity.OrderKindQuotation, "1")
	f.createOrder(t, entity.OrderKindReplenishment, "1")

	sales, err := f.uc.List(context.Background(), entity.OrderKindSale, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, entity.OrderKindSale, sales[0].Kind)

	all, err := f.uc.List(context.Background(), "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = f.uc.List(context.Background(), "PURCHASE", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
