package lifecycle

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/credit-disputer/internal/domain"
)

var _ disputeRepo = &disputeRepoMock{}

type disputeRepoMock struct {
	GetByIDFunc              func(ctx context.Context, id uuid.UUID) (*domain.Dispute, error)
	GetByIDForUpdateFunc     func(ctx context.Context, id uuid.UUID) (*domain.Dispute, error)
	ListFunc                 func(ctx context.Context, f domain.DisputeFilter) ([]domain.Dispute, error)
	ListAwaitingResponseFunc func(ctx context.Context, ownerID *uuid.UUID, now time.Time, limit int) ([]domain.Dispute, error)
	CreateFunc               func(ctx context.Context, d domain.Dispute) (domain.Dispute, error)
	UpdateFunc               func(ctx context.Context, d domain.Dispute) error

	calls struct {
		GetByID []struct {
			ID uuid.UUID
		}
		GetByIDForUpdate []struct {
			ID uuid.UUID
		}
		List []struct {
			F domain.DisputeFilter
		}
		ListAwaitingResponse []struct {
			OwnerID *uuid.UUID
			Now     time.Time
			Limit   int
		}
		Create []struct {
			D domain.Dispute
		}
		Update []struct {
			D domain.Dispute
		}
	}
	lockGetByID              sync.RWMutex
	lockGetByIDForUpdate     sync.RWMutex
	lockList                 sync.RWMutex
	lockListAwaitingResponse sync.RWMutex
	lockCreate               sync.RWMutex
	lockUpdate               sync.RWMutex
}

func (mock *disputeRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Dispute, error) {
	if mock.GetByIDFunc == nil {
		panic("disputeRepoMock.GetByIDFunc: method is nil but disputeRepo.GetByID was just called")
	}
	callInfo := struct {
		ID uuid.UUID
	}{ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *disputeRepoMock) GetByIDCalls() []struct {
	ID uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *disputeRepoMock) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Dispute, error) {
	if mock.GetByIDForUpdateFunc == nil {
		panic("disputeRepoMock.GetByIDForUpdateFunc: method is nil but disputeRepo.GetByIDForUpdate was just called")
	}
	callInfo := struct {
		ID uuid.UUID
	}{ID: id}
	mock.lockGetByIDForUpdate.Lock()
	mock.calls.GetByIDForUpdate = append(mock.calls.GetByIDForUpdate, callInfo)
	mock.lockGetByIDForUpdate.Unlock()
	return mock.GetByIDForUpdateFunc(ctx, id)
}

func (mock *disputeRepoMock) GetByIDForUpdateCalls() []struct {
	ID uuid.UUID
} {
	mock.lockGetByIDForUpdate.RLock()
	calls := mock.calls.GetByIDForUpdate
	mock.lockGetByIDForUpdate.RUnlock()
	return calls
}

func (mock *disputeRepoMock) List(ctx context.Context, f domain.DisputeFilter) ([]domain.Dispute, error) {
	if mock.ListFunc == nil {
		panic("disputeRepoMock.ListFunc: method is nil but disputeRepo.List was just called")
	}
	callInfo := struct {
		F domain.DisputeFilter
	}{F: f}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

func (mock *disputeRepoMock) ListCalls() []struct {
	F domain.DisputeFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *disputeRepoMock) ListAwaitingResponse(ctx context.Context, ownerID *uuid.UUID, now time.Time, limit int) ([]domain.Dispute, error) {
	if mock.ListAwaitingResponseFunc == nil {
		panic("disputeRepoMock.ListAwaitingResponseFunc: method is nil but disputeRepo.ListAwaitingResponse was just called")
	}
	callInfo := struct {
		OwnerID *uuid.UUID
		Now     time.Time
		Limit   int
	}{OwnerID: ownerID, Now: now, Limit: limit}
	mock.lockListAwaitingResponse.Lock()
	mock.calls.ListAwaitingResponse = append(mock.calls.ListAwaitingResponse, callInfo)
	mock.lockListAwaitingResponse.Unlock()
	return mock.ListAwaitingResponseFunc(ctx, ownerID, now, limit)
}

func (mock *disputeRepoMock) ListAwaitingResponseCalls() []struct {
	OwnerID *uuid.UUID
	Now     time.Time
	Limit   int
} {
	mock.lockListAwaitingResponse.RLock()
	calls := mock.calls.ListAwaitingResponse
	mock.lockListAwaitingResponse.RUnlock()
	return calls
}

func (mock *disputeRepoMock) Create(ctx context.Context, d domain.Dispute) (domain.Dispute, error) {
	if mock.CreateFunc == nil {
		panic("disputeRepoMock.CreateFunc: method is nil but disputeRepo.Create was just called")
	}
	callInfo := struct {
		D domain.Dispute
	}{D: d}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, d)
}

func (mock *disputeRepoMock) CreateCalls() []struct {
	D domain.Dispute
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *disputeRepoMock) Update(ctx context.Context, d domain.Dispute) error {
	if mock.UpdateFunc == nil {
		panic("disputeRepoMock.UpdateFunc: method is nil but disputeRepo.Update was just called")
	}
	callInfo := struct {
		D domain.Dispute
	}{D: d}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, d)
}

func (mock *disputeRepoMock) UpdateCalls() []struct {
	D domain.Dispute
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

var _ historyRepo = &historyRepoMock{}

type historyRepoMock struct {
	AppendFunc        func(ctx context.Context, e domain.HistoryEntry) error
	ListByDisputeFunc func(ctx context.Context, disputeID uuid.UUID) ([]domain.HistoryEntry, error)

	calls struct {
		Append []struct {
			E domain.HistoryEntry
		}
		ListByDispute []struct {
			DisputeID uuid.UUID
		}
	}
	lockAppend        sync.RWMutex
	lockListByDispute sync.RWMutex
}

func (mock *historyRepoMock) Append(ctx context.Context, e domain.HistoryEntry) error {
	if mock.AppendFunc == nil {
		panic("historyRepoMock.AppendFunc: method is nil but historyRepo.Append was just called")
	}
	callInfo := struct {
		E domain.HistoryEntry
	}{E: e}
	mock.lockAppend.Lock()
	mock.calls.Append = append(mock.calls.Append, callInfo)
	mock.lockAppend.Unlock()
	return mock.AppendFunc(ctx, e)
}

func (mock *historyRepoMock) AppendCalls() []struct {
	E domain.HistoryEntry
} {
	mock.lockAppend.RLock()
	calls := mock.calls.Append
	mock.lockAppend.RUnlock()
	return calls
}

func (mock *historyRepoMock) ListByDispute(ctx context.Context, disputeID uuid.UUID) ([]domain.HistoryEntry, error) {
	if mock.ListByDisputeFunc == nil {
		panic("historyRepoMock.ListByDisputeFunc: method is nil but historyRepo.ListByDispute was just called")
	}
	callInfo := struct {
		DisputeID uuid.UUID
	}{DisputeID: disputeID}
	mock.lockListByDispute.Lock()
	mock.calls.ListByDispute = append(mock.calls.ListByDispute, callInfo)
	mock.lockListByDispute.Unlock()
	return mock.ListByDisputeFunc(ctx, disputeID)
}

func (mock *historyRepoMock) ListByDisputeCalls() []struct {
	DisputeID uuid.UUID
} {
	mock.lockListByDispute.RLock()
	calls := mock.calls.ListByDispute
	mock.lockListByDispute.RUnlock()
	return calls
}

var _ accountRepo = &accountRepoMock{}

type accountRepoMock struct {
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	UpdateStatusFunc func(ctx context.Context, id uuid.UUID, status domain.AccountStatus, at time.Time) error

	calls struct {
		GetByID []struct {
			ID uuid.UUID
		}
		UpdateStatus []struct {
			ID     uuid.UUID
			Status domain.AccountStatus
			At     time.Time
		}
	}
	lockGetByID      sync.RWMutex
	lockUpdateStatus sync.RWMutex
}

func (mock *accountRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	if mock.GetByIDFunc == nil {
		panic("accountRepoMock.GetByIDFunc: method is nil but accountRepo.GetByID was just called")
	}
	callInfo := struct {
		ID uuid.UUID
	}{ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *accountRepoMock) GetByIDCalls() []struct {
	ID uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *accountRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AccountStatus, at time.Time) error {
	if mock.UpdateStatusFunc == nil {
		panic("accountRepoMock.UpdateStatusFunc: method is nil but accountRepo.UpdateStatus was just called")
	}
	callInfo := struct {
		ID     uuid.UUID
		Status domain.AccountStatus
		At     time.Time
	}{ID: id, Status: status, At: at}
	mock.lockUpdateStatus.Lock()
	mock.calls.UpdateStatus = append(mock.calls.UpdateStatus, callInfo)
	mock.lockUpdateStatus.Unlock()
	return mock.UpdateStatusFunc(ctx, id, status, at)
}

func (mock *accountRepoMock) UpdateStatusCalls() []struct {
	ID     uuid.UUID
	Status domain.AccountStatus
	At     time.Time
} {
	mock.lockUpdateStatus.RLock()
	calls := mock.calls.UpdateStatus
	mock.lockUpdateStatus.RUnlock()
	return calls
}

var _ documentRepo = &documentRepoMock{}

type documentRepoMock struct {
	HasBureauResponseFunc func(ctx context.Context, disputeID uuid.UUID) (bool, error)

	calls struct {
		HasBureauResponse []struct {
			DisputeID uuid.UUID
		}
	}
	lockHasBureauResponse sync.RWMutex
}

func (mock *documentRepoMock) HasBureauResponse(ctx context.Context, disputeID uuid.UUID) (bool, error) {
	if mock.HasBureauResponseFunc == nil {
		panic("documentRepoMock.HasBureauResponseFunc: method is nil but documentRepo.HasBureauResponse was just called")
	}
	callInfo := struct {
		DisputeID uuid.UUID
	}{DisputeID: disputeID}
	mock.lockHasBureauResponse.Lock()
	mock.calls.HasBureauResponse = append(mock.calls.HasBureauResponse, callInfo)
	mock.lockHasBureauResponse.Unlock()
	return mock.HasBureauResponseFunc(ctx, disputeID)
}

func (mock *documentRepoMock) HasBureauResponseCalls() []struct {
	DisputeID uuid.UUID
} {
	mock.lockHasBureauResponse.RLock()
	calls := mock.calls.HasBureauResponse
	mock.lockHasBureauResponse.RUnlock()
	return calls
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct {
			Fn func(ctx context.Context) error
		}
	}
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	callInfo := struct {
		Fn func(ctx context.Context) error
	}{Fn: fn}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, callInfo)
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct {
	Fn func(ctx context.Context) error
} {
	mock.lockRunInTx.RLock()
	calls := mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}
