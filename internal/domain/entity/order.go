package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de orden.
const (
	OrderKindQuotation     = "QUOTATION"     // cotización
	OrderKindSale          = "SALE"          // venta de contado
	OrderKindCreditSale    = "CREDIT_SALE"   // venta a crédito
	OrderKindReplenishment = "REPLENISHMENT" // reposición desde proveedor
)

// Estados de una orden. El subconjunto permitido depende del tipo.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusApproved  = "APPROVED"
	OrderStatusRejected  = "REJECTED"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusReceived  = "RECEIVED"
	OrderStatusCancelled = "CANCELLED"
)

// Order representa una cotización, venta, venta a crédito o reposición.
// La contraparte es cliente (ventas/cotizaciones) o proveedor (reposición).
type Order struct {
	ID         string
	Serial     int64 // consecutivo de despliegue (OV-000123)
	Kind       string
	Status     string
	CustomerID string // ventas, ventas a crédito y cotizaciones
	SupplierID string // reposiciones
	Items      []OrderItem
	Subtotal   decimal.Decimal
	Discount   decimal.Decimal
	Tax        decimal.Decimal
	GrandTotal decimal.Decimal
	ListTotal  decimal.Decimal // total a precio de lista, sin descuento
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OrderItem línea de una orden. WarehouseID puede estar vacío (sin bodega
// asignada: la línea no produce efectos de stock).
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
	Warranty    string
	Position    int // posición 1-based dentro de la orden (SKU de personalizados)
}

// SerialDisplay devuelve el consecutivo con formato de despliegue.
func (o *Order) SerialDisplay() string {
	return fmt.Sprintf("OV-%06d", o.Serial)
}

// RequiresCustomer indica si el tipo exige cliente como contraparte.
func (o *Order) RequiresCustomer() bool {
	switch o.Kind {
	case OrderKindQuotation, OrderKindSale, OrderKindCreditSale:
		return true
	}
	return false
}

// Editable indica si la orden admite edición de líneas según su estado.
func (o *Order) Editable() bool {
	switch o.Status {
	case OrderStatusPending, OrderStatusApproved, OrderStatusRejected:
		return true
	}
	return false
}
