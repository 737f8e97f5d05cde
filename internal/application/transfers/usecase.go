package transfers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/distribucion-api/internal/application/dto"
	"github.com/jhoicas/distribucion-api/internal/application/stockops"
	"github.com/jhoicas/distribucion-api/internal/domain"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
	"github.com/jhoicas/distribucion-api/internal/domain/transfer"
)

// Reintentos ante conflicto de concurrencia (CAS de estado fallido).
const maxTransitionRetries = 3

// UseCase gobierna el ciclo de vida de traslados entre bodegas:
// PENDING -> APPROVED -> IN_TRANSIT -> RECEIVED, con cancelación desde
// cualquier estado no terminal. Cada transición muta stock, estado e
// historial dentro de una sola transacción.
type UseCase struct {
	txRunner      TxRunner
	transferRepo  repository.TransferRepository
	historyRepo   repository.HistoryRepository
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
	userRepo      repository.UserRepository
	notifier      Notifier
	cache         AvailabilityInvalidator // opcional, puede ser nil
}

// NewUseCase construye el caso de uso de traslados.
func NewUseCase(
	txRunner TxRunner,
	transferRepo repository.TransferRepository,
	historyRepo repository.HistoryRepository,
	warehouseRepo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
	cache AvailabilityInvalidator,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		transferRepo:  transferRepo,
		historyRepo:   historyRepo,
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		userRepo:      userRepo,
		notifier:      notifier,
		cache:         cache,
	}
}

// Create valida y persiste un traslado nuevo en PENDING. No produce ningún
// efecto de stock: el primer efecto ocurre en APPROVED -> IN_TRANSIT.
func (uc *UseCase) Create(ctx context.Context, actorID string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	if len(in.Items) == 0 || in.FromWarehouseID == "" || in.ToWarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.FromWarehouseID == in.ToWarehouseID {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkWarehouses(in.FromWarehouseID, in.ToWarehouseID); err != nil {
		return nil, err
	}
	items, err := uc.buildItems(in.Items)
	if err != nil {
		return nil, err
	}

	serial, err := uc.transferRepo.NextSerial()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	t := &entity.Transfer{
		ID:              uuid.New().String(),
		Serial:          serial,
		Status:          entity.TransferStatusPending,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		RequestedBy:     actorID,
		Items:           items,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for i := range t.Items {
		t.Items[i].TransferID = t.ID
	}

	err = uc.txRunner.RunTransfer(ctx, func(
		transferRepo repository.TransferRepository,
		_ repository.StockRepository,
		historyRepo repository.HistoryRepository,
	) error {
		if err := transferRepo.Create(t); err != nil {
			return err
		}
		return historyRepo.Append(&entity.HistoryEntry{
			ID:         uuid.New().String(),
			ParentType: entity.HistoryParentTransfer,
			ParentID:   t.ID,
			Status:     t.Status,
			ActorID:    actorID,
			CreatedAt:  now,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.notifyTransition(t, actorID, "")
	return toTransferResponse(t), nil
}

// Update reemplaza las líneas en bloque. Solo traslados PENDING, solo el
// dueño o un admin. El chequeo de estado ocurre sobre la fila bloqueada,
// en la misma transacción que el reemplazo: una transición concurrente que
// confirme primero hace fallar la edición con ErrConflict.
func (uc *UseCase) Update(ctx context.Context, actorID, actorRole, id string, in dto.UpdateTransferRequest) (*dto.TransferResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	items, err := uc.buildItems(in.Items)
	if err != nil {
		return nil, err
	}

	var result *entity.Transfer
	err = uc.txRunner.RunTransfer(ctx, func(
		transferRepo repository.TransferRepository,
		_ repository.StockRepository,
		historyRepo repository.HistoryRepository,
	) error {
		t, err := transferRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if t == nil || t.Deleted {
			return domain.ErrNotFound
		}
		if t.RequestedBy != actorID && actorRole != entity.RoleAdmin {
			return domain.ErrForbidden
		}
		if !t.Editable() {
			return domain.ErrConflict
		}
		for i := range items {
			items[i].TransferID = t.ID
		}
		if err := transferRepo.ReplaceItems(t.ID, items); err != nil {
			return err
		}
		t.Items = items
		t.UpdatedAt = time.Now()
		result = t
		return historyRepo.Append(&entity.HistoryEntry{
			ID:         uuid.New().String(),
			ParentType: entity.HistoryParentTransfer,
			ParentID:   t.ID,
			Status:     t.Status,
			ActorID:    actorID,
			Note:       "líneas actualizadas",
			CreatedAt:  t.UpdatedAt,
		})
	})
	if err != nil {
		return nil, err
	}
	return toTransferResponse(result), nil
}

// Delete borra lógicamente un traslado PENDING (nada de stock se movió aún).
// Igual que Update, verifica el estado sobre la fila bloqueada dentro de la
// transacción del borrado.
func (uc *UseCase) Delete(ctx context.Context, actorID, actorRole, id string) error {
	return uc.txRunner.RunTransfer(ctx, func(
		transferRepo repository.TransferRepository,
		_ repository.StockRepository,
		_ repository.HistoryRepository,
	) error {
		t, err := transferRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if t == nil || t.Deleted {
			return domain.ErrNotFound
		}
		if t.RequestedBy != actorID && actorRole != entity.RoleAdmin {
			return domain.ErrForbidden
		}
		if !t.Editable() {
			return domain.ErrConflict
		}
		return transferRepo.SoftDelete(id)
	})
}

// Transition ejecuta una transición de estado como unidad atómica. Ante
// ErrConcurrentModification (CAS de estado fallido) reintenta la transición
// completa un número acotado de veces antes de propagar el error.
func (uc *UseCase) Transition(ctx context.Context, actorID, id, targetStatus, note string) (*dto.TransferResponse, error) {
	var resp *dto.TransferResponse
	var err error
	for attempt := 0; attempt < maxTransitionRetries; attempt++ {
		resp, err = uc.transitionOnce(ctx, actorID, id, targetStatus, note)
		if !errors.Is(err, domain.ErrConcurrentModification) {
			return resp, err
		}
	}
	return nil, domain.ErrConcurrentModification
}

func (uc *UseCase) transitionOnce(ctx context.Context, actorID, id, targetStatus, note string) (*dto.TransferResponse, error) {
	var result *entity.Transfer
	var previous string

	err := uc.txRunner.RunTransfer(ctx, func(
		transferRepo repository.TransferRepository,
		stockRepo repository.StockRepository,
		historyRepo repository.HistoryRepository,
	) error {
		t, err := transferRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if t == nil || t.Deleted {
			return domain.ErrNotFound
		}
		previous = t.Status
		if err := transfer.ValidateTransition(previous, targetStatus); err != nil {
			return err
		}

		switch targetStatus {
		case entity.TransferStatusApproved:
			// Compuerta de verificación: exige actual suficiente en origen,
			// sin mutar nada.
			if err := uc.approvalGate(stockRepo, t); err != nil {
				return err
			}
		case entity.TransferStatusCancelled:
			// El rollback es función del estado inmediatamente anterior,
			// capturado antes de mutar.
			if err := stockops.Apply(stockRepo, transfer.RollbackDeltas(previous, t)); err != nil {
				return err
			}
		default:
			if err := stockops.Apply(stockRepo, transfer.TransitionDeltas(t, previous, targetStatus)); err != nil {
				return err
			}
		}

		approvedBy := ""
		if targetStatus == entity.TransferStatusApproved {
			approvedBy = actorID
		}
		ok, err := transferRepo.UpdateStatus(t.ID, previous, targetStatus, approvedBy)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrConcurrentModification
		}

		t.Status = targetStatus
		if approvedBy != "" {
			t.ApprovedBy = approvedBy
		}
		t.UpdatedAt = time.Now()
		result = t

		return historyRepo.Append(&entity.HistoryEntry{
			ID:         uuid.New().String(),
			ParentType: entity.HistoryParentTransfer,
			ParentID:   t.ID,
			Status:     targetStatus,
			ActorID:    actorID,
			Note:       note,
			CreatedAt:  t.UpdatedAt,
		})
	})
	if err != nil {
		return nil, err
	}

	// Efectos secundarios fuera de la unidad atómica: solo tras commit.
	uc.invalidateAvailability(ctx, result)
	uc.notifyTransition(result, actorID, previous)
	return toTransferResponse(result), nil
}

// approvalGate verifica que el origen tenga actual >= cantidad para cada
// línea, nombrando el producto ofensor. Solo lectura.
func (uc *UseCase) approvalGate(stockRepo repository.StockRepository, t *entity.Transfer) error {
	items := make([]entity.TransferItem, len(t.Items))
	copy(items, t.Items)
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })

	required := make(map[string]decimal.Decimal)
	for _, it := range items {
		required[it.ProductID] = required[it.ProductID].Add(it.Quantity)
	}
	seen := make(map[string]bool)
	for _, it := range items {
		if seen[it.ProductID] {
			continue
		}
		seen[it.ProductID] = true
		record, err := stockRepo.GetOrCreateForUpdate(it.ProductID, t.FromWarehouseID)
		if err != nil {
			return err
		}
		if record.Actual.LessThan(required[it.ProductID]) {
			return &domain.InsufficientStockError{
				ProductID:   it.ProductID,
				WarehouseID: t.FromWarehouseID,
				Counter:     entity.CounterActual,
			}
		}
	}
	return nil
}

// Get devuelve el traslado con sus líneas.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.TransferResponse, error) {
	t, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil || t.Deleted {
		return nil, domain.ErrNotFound
	}
	return toTransferResponse(t), nil
}

// History devuelve el rastro de auditoría del traslado.
func (uc *UseCase) History(ctx context.Context, id string) ([]dto.HistoryEntryResponse, error) {
	entries, err := uc.historyRepo.ListByParent(entity.HistoryParentTransfer, id)
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

// List lista traslados con paginación.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.TransferResponse, error) {
	page.DefaultPage()
	list, err := uc.transferRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TransferResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTransferResponse(t))
	}
	return out, nil
}

func (uc *UseCase) checkWarehouses(fromID, toID string) error {
	from, err := uc.warehouseRepo.GetByID(fromID)
	if err != nil {
		return err
	}
	to, err := uc.warehouseRepo.GetByID(toID)
	if err != nil {
		return err
	}
	if from == nil || to == nil {
		return domain.ErrNotFound
	}
	return nil
}

func (uc *UseCase) buildItems(in []dto.TransferItemRequest) ([]entity.TransferItem, error) {
	items := make([]entity.TransferItem, 0, len(in))
	for _, it := range in {
		if it.ProductID == "" || !it.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		p, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		items = append(items, entity.TransferItem{
			ID:        uuid.New().String(),
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Note:      it.Note,
		})
	}
	return items, nil
}

func (uc *UseCase) invalidateAvailability(ctx context.Context, t *entity.Transfer) {
	if uc.cache == nil {
		return
	}
	for _, it := range t.Items {
		uc.cache.Invalidate(ctx, it.ProductID, t.FromWarehouseID)
		uc.cache.Invalidate(ctx, it.ProductID, t.ToWarehouseID)
	}
}

// notifyTransition notifica al dueño del traslado y a todos los admins,
// por el canal en-app y por correo. La cancelación enruta un evento
// distinto al manager responsable (quien aprobó) frente al resto de
// managers. Mejor esfuerzo: el Notifier registra sus propias fallas.
func (uc *UseCase) notifyTransition(t *entity.Transfer, actorID, previous string) {
	if uc.notifier == nil {
		return
	}
	payload := map[string]any{
		"transfer_id": t.ID,
		"serial":      t.SerialDisplay(),
		"status":      t.Status,
		"previous":    previous,
		"actor_id":    actorID,
	}
	event := "transfer." + t.Status
	subject := fmt.Sprintf("Traslado %s: %s", t.SerialDisplay(), t.Status)
	body := fmt.Sprintf("El traslado %s (%s -> %s) pasó a %s.",
		t.SerialDisplay(), t.FromWarehouseID, t.ToWarehouseID, t.Status)
	if previous != "" {
		body = fmt.Sprintf("El traslado %s (%s -> %s) pasó de %s a %s.",
			t.SerialDisplay(), t.FromWarehouseID, t.ToWarehouseID, previous, t.Status)
	}

	uc.notifier.Notify(t.RequestedBy, event, payload)
	uc.emailUser(t.RequestedBy, subject, body)

	admins, err := uc.userRepo.ListByRole(entity.RoleAdmin)
	if err != nil {
		return
	}
	for _, admin := range admins {
		if admin.ID == t.RequestedBy {
			continue
		}
		adminEvent := event
		if t.Status == entity.TransferStatusCancelled && admin.ID == t.ApprovedBy {
			adminEvent = "transfer.CANCELLED.responsible"
		}
		uc.notifier.Notify(admin.ID, adminEvent, payload)
		if admin.Email != "" {
			uc.notifier.Email(admin.Email, subject, body)
		}
	}
}

// emailUser resuelve el correo del usuario y despacha, mejor esfuerzo.
func (uc *UseCase) emailUser(userID, subject, body string) {
	u, err := uc.userRepo.GetByID(userID)
	if err != nil || u == nil || u.Email == "" {
		return
	}
	uc.notifier.Email(u.Email, subject, body)
}

func toTransferResponse(t *entity.Transfer) *dto.TransferResponse {
	resp := &dto.TransferResponse{
		ID:              t.ID,
		Serial:          t.SerialDisplay(),
		Status:          t.Status,
		FromWarehouseID: t.FromWarehouseID,
		ToWarehouseID:   t.ToWarehouseID,
		RequestedBy:     t.RequestedBy,
		ApprovedBy:      t.ApprovedBy,
		Items:           make([]dto.TransferItemResponse, 0, len(t.Items)),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
	for _, it := range t.Items {
		resp.Items = append(resp.Items, dto.TransferItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Note:      it.Note,
		})
	}
	return resp
}
