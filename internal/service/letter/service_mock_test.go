package letter

import (
	"context"
	"sync"
)

var _ aiWriter = &aiWriterMock{}

type aiWriterMock struct {
	WriteFunc func(ctx context.Context, system string, prompt string) (string, error)

	calls struct {
		Write []struct {
			System string
			Prompt string
		}
	}
	lockWrite sync.RWMutex
}

func (mock *aiWriterMock) Write(ctx context.Context, system string, prompt string) (string, error) {
	if mock.WriteFunc == nil {
		panic("aiWriterMock.WriteFunc: method is nil but aiWriter.Write was just called")
	}
	callInfo := struct {
		System string
		Prompt string
	}{System: system, Prompt: prompt}
	mock.lockWrite.Lock()
	mock.calls.Write = append(mock.calls.Write, callInfo)
	mock.lockWrite.Unlock()
	return mock.WriteFunc(ctx, system, prompt)
}

func (mock *aiWriterMock) WriteCalls() []struct {
	System string
	Prompt string
} {
	mock.lockWrite.RLock()
	calls := mock.calls.Write
	mock.lockWrite.RUnlock()
	return calls
}
