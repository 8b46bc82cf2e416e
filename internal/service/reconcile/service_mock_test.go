package reconcile

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/credit-disputer/internal/domain"
	"github.com/heartmarshall/credit-disputer/internal/service/escalation"
	"github.com/heartmarshall/credit-disputer/internal/service/letter"
	"github.com/heartmarshall/credit-disputer/internal/service/lifecycle"
)

var _ disputeReader = &disputeReaderMock{}

type disputeReaderMock struct {
	ListFunc func(ctx context.Context, f domain.DisputeFilter) ([]domain.Dispute, error)

	calls struct {
		List []struct {
			F domain.DisputeFilter
		}
	}
	lockList sync.RWMutex
}

func (mock *disputeReaderMock) List(ctx context.Context, f domain.DisputeFilter) ([]domain.Dispute, error) {
	if mock.ListFunc == nil {
		panic("disputeReaderMock.ListFunc: method is nil but disputeReader.List was just called")
	}
	callInfo := struct {
		F domain.DisputeFilter
	}{F: f}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

func (mock *disputeReaderMock) ListCalls() []struct {
	F domain.DisputeFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

var _ userReader = &userReaderMock{}

type userReaderMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)

	calls struct {
		GetByID []struct {
			ID uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
}

func (mock *userReaderMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if mock.GetByIDFunc == nil {
		panic("userReaderMock.GetByIDFunc: method is nil but userReader.GetByID was just called")
	}
	callInfo := struct {
		ID uuid.UUID
	}{ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *userReaderMock) GetByIDCalls() []struct {
	ID uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

var _ accountReader = &accountReaderMock{}

type accountReaderMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Account, error)

	calls struct {
		GetByID []struct {
			ID uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
}

func (mock *accountReaderMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	if mock.GetByIDFunc == nil {
		panic("accountReaderMock.GetByIDFunc: method is nil but accountReader.GetByID was just called")
	}
	callInfo := struct {
		ID uuid.UUID
	}{ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *accountReaderMock) GetByIDCalls() []struct {
	ID uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

var _ lifecycleService = &lifecycleServiceMock{}

type lifecycleServiceMock struct {
	DispatchFunc            func(ctx context.Context, id uuid.UUID, send lifecycle.Sender) (lifecycle.Outcome, error)
	ApplyCarrierStatusFunc  func(ctx context.Context, id uuid.UUID, cs domain.CarrierStatus) (lifecycle.Outcome, error)
	MarkInvalidTrackingFunc func(ctx context.Context, id uuid.UUID) (lifecycle.Outcome, error)
	SendFollowUpFunc        func(ctx context.Context, id uuid.UUID, send lifecycle.FollowUpSender) (lifecycle.Outcome, error)

	calls struct {
		Dispatch []struct {
			ID   uuid.UUID
			Send lifecycle.Sender
		}
		ApplyCarrierStatus []struct {
			ID uuid.UUID
			Cs domain.CarrierStatus
		}
		MarkInvalidTracking []struct {
			ID uuid.UUID
		}
		SendFollowUp []struct {
			ID   uuid.UUID
			Send lifecycle.FollowUpSender
		}
	}
	lockDispatch            sync.RWMutex
	lockApplyCarrierStatus  sync.RWMutex
	lockMarkInvalidTracking sync.RWMutex
	lockSendFollowUp        sync.RWMutex
}

func (mock *lifecycleServiceMock) Dispatch(ctx context.Context, id uuid.UUID, send lifecycle.Sender) (lifecycle.Outcome, error) {
	if mock.DispatchFunc == nil {
		panic("lifecycleServiceMock.DispatchFunc: method is nil but lifecycleService.Dispatch was just called")
	}
	callInfo := struct {
		ID   uuid.UUID
		Send lifecycle.Sender
	}{ID: id, Send: send}
	mock.lockDispatch.Lock()
	mock.calls.Dispatch = append(mock.calls.Dispatch, callInfo)
	mock.lockDispatch.Unlock()
	return mock.DispatchFunc(ctx, id, send)
}

func (mock *lifecycleServiceMock) DispatchCalls() []struct {
	ID   uuid.UUID
	Send lifecycle.Sender
} {
	mock.lockDispatch.RLock()
	calls := mock.calls.Dispatch
	mock.lockDispatch.RUnlock()
	return calls
}

func (mock *lifecycleServiceMock) ApplyCarrierStatus(ctx context.Context, id uuid.UUID, cs domain.CarrierStatus) (lifecycle.Outcome, error) {
	if mock.ApplyCarrierStatusFunc == nil {
		panic("lifecycleServiceMock.ApplyCarrierStatusFunc: method is nil but lifecycleService.ApplyCarrierStatus was just called")
	}
	callInfo := struct {
		ID uuid.UUID
		Cs domain.CarrierStatus
	}{ID: id, Cs: cs}
	mock.lockApplyCarrierStatus.Lock()
	mock.calls.ApplyCarrierStatus = append(mock.calls.ApplyCarrierStatus, callInfo)
	mock.lockApplyCarrierStatus.Unlock()
	return mock.ApplyCarrierStatusFunc(ctx, id, cs)
}

func (mock *lifecycleServiceMock) ApplyCarrierStatusCalls() []struct {
	ID uuid.UUID
	Cs domain.CarrierStatus
} {
	mock.lockApplyCarrierStatus.RLock()
	calls := mock.calls.ApplyCarrierStatus
	mock.lockApplyCarrierStatus.RUnlock()
	return calls
}

func (mock *lifecycleServiceMock) MarkInvalidTracking(ctx context.Context, id uuid.UUID) (lifecycle.Outcome, error) {
	if mock.MarkInvalidTrackingFunc == nil {
		panic("lifecycleServiceMock.MarkInvalidTrackingFunc: method is nil but lifecycleService.MarkInvalidTracking was just called")
	}
	callInfo := struct {
		ID uuid.UUID
	}{ID: id}
	mock.lockMarkInvalidTracking.Lock()
	mock.calls.MarkInvalidTracking = append(mock.calls.MarkInvalidTracking, callInfo)
	mock.lockMarkInvalidTracking.Unlock()
	return mock.MarkInvalidTrackingFunc(ctx, id)
}

func (mock *lifecycleServiceMock) MarkInvalidTrackingCalls() []struct {
	ID uuid.UUID
} {
	mock.lockMarkInvalidTracking.RLock()
	calls := mock.calls.MarkInvalidTracking
	mock.lockMarkInvalidTracking.RUnlock()
	return calls
}

func (mock *lifecycleServiceMock) SendFollowUp(ctx context.Context, id uuid.UUID, send lifecycle.FollowUpSender) (lifecycle.Outcome, error) {
	if mock.SendFollowUpFunc == nil {
		panic("lifecycleServiceMock.SendFollowUpFunc: method is nil but lifecycleService.SendFollowUp was just called")
	}
	callInfo := struct {
		ID   uuid.UUID
		Send lifecycle.FollowUpSender
	}{ID: id, Send: send}
	mock.lockSendFollowUp.Lock()
	mock.calls.SendFollowUp = append(mock.calls.SendFollowUp, callInfo)
	mock.lockSendFollowUp.Unlock()
	return mock.SendFollowUpFunc(ctx, id, send)
}

func (mock *lifecycleServiceMock) SendFollowUpCalls() []struct {
	ID   uuid.UUID
	Send lifecycle.FollowUpSender
} {
	mock.lockSendFollowUp.RLock()
	calls := mock.calls.SendFollowUp
	mock.lockSendFollowUp.RUnlock()
	return calls
}

var _ letterService = &letterServiceMock{}

type letterServiceMock struct {
	GenerateFunc         func(ctx context.Context, facts domain.DisputeFacts) letter.Letter
	GenerateFollowUpFunc func(ctx context.Context, facts domain.DisputeFacts, dir escalation.Directive, daysSince int) letter.Letter

	calls struct {
		Generate []struct {
			Facts domain.DisputeFacts
		}
		GenerateFollowUp []struct {
			Facts     domain.DisputeFacts
			Dir       escalation.Directive
			DaysSince int
		}
	}
	lockGenerate         sync.RWMutex
	lockGenerateFollowUp sync.RWMutex
}

func (mock *letterServiceMock) Generate(ctx context.Context, facts domain.DisputeFacts) letter.Letter {
	if mock.GenerateFunc == nil {
		panic("letterServiceMock.GenerateFunc: method is nil but letterService.Generate was just called")
	}
	callInfo := struct {
		Facts domain.DisputeFacts
	}{Facts: facts}
	mock.lockGenerate.Lock()
	mock.calls.Generate = append(mock.calls.Generate, callInfo)
	mock.lockGenerate.Unlock()
	return mock.GenerateFunc(ctx, facts)
}

func (mock *letterServiceMock) GenerateCalls() []struct {
	Facts domain.DisputeFacts
} {
	mock.lockGenerate.RLock()
	calls := mock.calls.Generate
	mock.lockGenerate.RUnlock()
	return calls
}

func (mock *letterServiceMock) GenerateFollowUp(ctx context.Context, facts domain.DisputeFacts, dir escalation.Directive, daysSince int) letter.Letter {
	if mock.GenerateFollowUpFunc == nil {
		panic("letterServiceMock.GenerateFollowUpFunc: method is nil but letterService.GenerateFollowUp was just called")
	}
	callInfo := struct {
		Facts     domain.DisputeFacts
		Dir       escalation.Directive
		DaysSince int
	}{Facts: facts, Dir: dir, DaysSince: daysSince}
	mock.lockGenerateFollowUp.Lock()
	mock.calls.GenerateFollowUp = append(mock.calls.GenerateFollowUp, callInfo)
	mock.lockGenerateFollowUp.Unlock()
	return mock.GenerateFollowUpFunc(ctx, facts, dir, daysSince)
}

func (mock *letterServiceMock) GenerateFollowUpCalls() []struct {
	Facts     domain.DisputeFacts
	Dir       escalation.Directive
	DaysSince int
} {
	mock.lockGenerateFollowUp.RLock()
	calls := mock.calls.GenerateFollowUp
	mock.lockGenerateFollowUp.RUnlock()
	return calls
}

var _ mailService = &mailServiceMock{}

type mailServiceMock struct {
	SendFunc       func(ctx context.Context, req domain.MailRequest) (string, error)
	PollStatusFunc func(ctx context.Context, trackingID string) (domain.CarrierStatus, error)

	calls struct {
		Send []struct {
			Req domain.MailRequest
		}
		PollStatus []struct {
			TrackingID string
		}
	}
	lockSend       sync.RWMutex
	lockPollStatus sync.RWMutex
}

func (mock *mailServiceMock) Send(ctx context.Context, req domain.MailRequest) (string, error) {
	if mock.SendFunc == nil {
		panic("mailServiceMock.SendFunc: method is nil but mailService.Send was just called")
	}
	callInfo := struct {
		Req domain.MailRequest
	}{Req: req}
	mock.lockSend.Lock()
	mock.calls.Send = append(mock.calls.Send, callInfo)
	mock.lockSend.Unlock()
	return mock.SendFunc(ctx, req)
}

func (mock *mailServiceMock) SendCalls() []struct {
	Req domain.MailRequest
} {
	mock.lockSend.RLock()
	calls := mock.calls.Send
	mock.lockSend.RUnlock()
	return calls
}

func (mock *mailServiceMock) PollStatus(ctx context.Context, trackingID string) (domain.CarrierStatus, error) {
	if mock.PollStatusFunc == nil {
		panic("mailServiceMock.PollStatusFunc: method is nil but mailService.PollStatus was just called")
	}
	callInfo := struct {
		TrackingID string
	}{TrackingID: trackingID}
	mock.lockPollStatus.Lock()
	mock.calls.PollStatus = append(mock.calls.PollStatus, callInfo)
	mock.lockPollStatus.Unlock()
	return mock.PollStatusFunc(ctx, trackingID)
}

func (mock *mailServiceMock) PollStatusCalls() []struct {
	TrackingID string
} {
	mock.lockPollStatus.RLock()
	calls := mock.calls.PollStatus
	mock.lockPollStatus.RUnlock()
	return calls
}

var _ notifier = &notifierMock{}

type notifierMock struct {
	NotifyFunc func(ctx context.Context, n domain.Notification) error

	calls struct {
		Notify []struct {
			N domain.Notification
		}
	}
	lockNotify sync.RWMutex
}

func (mock *notifierMock) Notify(ctx context.Context, n domain.Notification) error {
	if mock.NotifyFunc == nil {
		panic("notifierMock.NotifyFunc: method is nil but notifier.Notify was just called")
	}
	callInfo := struct {
		N domain.Notification
	}{N: n}
	mock.lockNotify.Lock()
	mock.calls.Notify = append(mock.calls.Notify, callInfo)
	mock.lockNotify.Unlock()
	return mock.NotifyFunc(ctx, n)
}

func (mock *notifierMock) NotifyCalls() []struct {
	N domain.Notification
} {
	mock.lockNotify.RLock()
	calls := mock.calls.Notify
	mock.lockNotify.RUnlock()
	return calls
}
