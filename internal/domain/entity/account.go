package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerAccount representa la cuenta corriente de un cliente.
// Balance positivo = el cliente debe dinero (cartera por cobrar).
// El balance se muta exclusivamente a través del libro de transacciones,
// nunca directamente desde órdenes o traslados.
type CustomerAccount struct {
	ID            string
	Name          string
	TaxID         string // NIT o Cédula
	Email         string
	Phone         string
	Balance       decimal.Decimal
	CreditLimit   decimal.Decimal
	CreditEnabled bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreditRoom devuelve el cupo de crédito restante (límite - balance).
func (a *CustomerAccount) CreditRoom() decimal.Decimal {
	return a.CreditLimit.Sub(a.Balance)
}
