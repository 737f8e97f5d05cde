package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/distribucion-api/internal/application/dto"
	"github.com/jhoicas/distribucion-api/internal/domain"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

// UseCase gobierna el libro de cuentas de clientes: registro de
// transacciones monetarias y confirmación/rechazo de abonos y reembolsos.
// Invariante: una transacción aporta su delta monetario a la cuenta
// exactamente una vez en toda su vida (nunca al crearse y otra vez al
// confirmarse).
type UseCase struct {
	txRunner    TxRunner
	accountRepo repository.AccountRepository
	ledgerRepo  repository.LedgerRepository
}

// NewUseCase construye el caso de uso del libro.
func NewUseCase(txRunner TxRunner, accountRepo repository.AccountRepository, ledgerRepo repository.LedgerRepository) *UseCase {
	return &UseCase{txRunner: txRunner, accountRepo: accountRepo, ledgerRepo: ledgerRepo}
}

// Record registra una transacción contra la cuenta. Facturas, notas y
// anticipos aplican su delta de inmediato; abonos y reembolsos nacen en
// PENDING con delta cero, diferido hasta ConfirmPayment. El nuevo balance y
// la entrada (con BalanceAfter estampado) se persisten atómicamente.
func (uc *UseCase) Record(ctx context.Context, actorID string, in dto.RecordEntryRequest) (*dto.LedgerEntryResponse, error) {
	if !entity.ValidLedgerKind(in.Kind) || !in.Amount.GreaterThan(decimal.Zero) || in.AccountID == "" {
		return nil, domain.ErrInvalidInput
	}

	var entry *entity.LedgerEntry
	err := uc.txRunner.RunLedger(ctx, func(
		accountRepo repository.AccountRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		account, err := accountRepo.GetForUpdate(in.AccountID)
		if err != nil {
			return err
		}
		if account == nil {
			return domain.ErrNotFound
		}

		paymentStatus := ""
		if entity.DeferredKind(in.Kind) {
			paymentStatus = entity.PaymentStatusPending
		}
		delta := entity.BalanceDelta(in.Kind, paymentStatus, in.Amount)
		newBalance := account.Balance.Add(delta)
		if !delta.IsZero() {
			if err := accountRepo.UpdateBalance(account.ID, newBalance); err != nil {
				return err
			}
		}

		reference, err := ledgerRepo.NextReference()
		if err != nil {
			return err
		}
		now := time.Now()
		entry = &entity.LedgerEntry{
			ID:            uuid.New().String(),
			Reference:     reference,
			AccountID:     account.ID,
			Kind:          in.Kind,
			Amount:        in.Amount,
			BalanceAfter:  newBalance,
			PaymentStatus: paymentStatus,
			Applied:       !entity.DeferredKind(in.Kind),
			OrderID:       in.OrderID,
			Note:          in.Note,
			CreatedBy:     actorID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		return ledgerRepo.Create(entry)
	})
	if err != nil {
		return nil, err
	}
	return toEntryResponse(entry), nil
}

// ConfirmPayment confirma un abono/reembolso pendiente: recalcula el delta
// (-amount) contra el balance actual de la cuenta al momento de la
// confirmación y lo aplica exactamente una vez. Un segundo intento falla
// con ErrConflict.
func (uc *UseCase) ConfirmPayment(ctx context.Context, actorID, entryID string) (*dto.LedgerEntryResponse, error) {
	return uc.resolvePayment(ctx, entryID, entity.PaymentStatusConfirmed)
}

// RejectPayment rechaza un abono/reembolso pendiente sin efecto monetario.
func (uc *UseCase) RejectPayment(ctx context.Context, actorID, entryID string) (*dto.LedgerEntryResponse, error) {
	return uc.resolvePayment(ctx, entryID, entity.PaymentStatusRejected)
}

func (uc *UseCase) resolvePayment(ctx context.Context, entryID, target string) (*dto.LedgerEntryResponse, error) {
	var entry *entity.LedgerEntry
	err := uc.txRunner.RunLedger(ctx, func(
		accountRepo repository.AccountRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		e, err := ledgerRepo.GetForUpdate(entryID)
		if err != nil {
			return err
		}
		if e == nil {
			return domain.ErrNotFound
		}
		if !entity.DeferredKind(e.Kind) || e.PaymentStatus != entity.PaymentStatusPending || e.Applied {
			return domain.ErrConflict
		}

		e.PaymentStatus = target
		if target == entity.PaymentStatusConfirmed {
			account, err := accountRepo.GetForUpdate(e.AccountID)
			if err != nil {
				return err
			}
			if account == nil {
				return domain.ErrNotFound
			}
			delta := entity.BalanceDelta(e.Kind, entity.PaymentStatusConfirmed, e.Amount)
			newBalance := account.Balance.Add(delta)
			if err := accountRepo.UpdateBalance(account.ID, newBalance); err != nil {
				return err
			}
			e.Applied = true
			e.BalanceAfter = newBalance
		}
		e.UpdatedAt = time.Now()

		ok, err := ledgerRepo.UpdatePaymentStatus(e, entity.PaymentStatusPending)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrConflict
		}
		entry = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toEntryResponse(entry), nil
}

// CreateAccount crea una cuenta de cliente con balance en cero.
func (uc *UseCase) CreateAccount(ctx context.Context, in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	if in.Name == "" || in.CreditLimit.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	a := &entity.CustomerAccount{
		ID:            uuid.New().String(),
		Name:          in.Name,
		TaxID:         in.TaxID,
		Email:         in.Email,
		Phone:         in.Phone,
		Balance:       decimal.Zero,
		CreditLimit:   in.CreditLimit,
		CreditEnabled: in.CreditEnabled,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.accountRepo.Create(a); err != nil {
		return nil, err
	}
	return toAccountResponse(a), nil
}

// GetAccount devuelve la cuenta con su balance denormalizado.
func (uc *UseCase) GetAccount(ctx context.Context, id string) (*dto.AccountResponse, error) {
	a, err := uc.accountRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return toAccountResponse(a), nil
}

// ListAccounts lista cuentas con paginación.
func (uc *UseCase) ListAccounts(ctx context.Context, page dto.PageRequest) ([]*dto.AccountResponse, error) {
	page.DefaultPage()
	list, err := uc.accountRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AccountResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAccountResponse(a))
	}
	return out, nil
}

// ListEntries lista las transacciones de una cuenta.
func (uc *UseCase) ListEntries(ctx context.Context, accountID string, page dto.PageRequest) ([]*dto.LedgerEntryResponse, error) {
	page.DefaultPage()
	list, err := uc.ledgerRepo.ListByAccount(accountID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LedgerEntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toEntryResponse(e))
	}
	return out, nil
}

func toEntryResponse(e *entity.LedgerEntry) *dto.LedgerEntryResponse {
	return &dto.LedgerEntryResponse{
		ID:            e.ID,
		Reference:     e.ReferenceDisplay(),
		AccountID:     e.AccountID,
		Kind:          e.Kind,
		Amount:        e.Amount,
		BalanceAfter:  e.BalanceAfter,
		PaymentStatus: e.PaymentStatus,
		Applied:       e.Applied,
		OrderID:       e.OrderID,
		Note:          e.Note,
		CreatedAt:     e.CreatedAt,
	}
}

func toAccountResponse(a *entity.CustomerAccount) *dto.AccountResponse {
	return &dto.AccountResponse{
		ID:            a.ID,
		Name:          a.Name,
		TaxID:         a.TaxID,
		Email:         a.Email,
		Phone:         a.Phone,
		Balance:       a.Balance,
		CreditLimit:   a.CreditLimit,
		CreditEnabled: a.CreditEnabled,
		CreatedAt:     a.CreatedAt,
	}
}
