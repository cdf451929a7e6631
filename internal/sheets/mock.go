package sheets

import (
	"context"
	"sync"

	"github.com/Veraticus/drivetrain/internal/model"
	"github.com/Veraticus/drivetrain/internal/service"
)

var _ service.ReportWriter = (*MockWriter)(nil)

// MockWriter records pushes instead of calling Google.
type MockWriter struct {
	WriteFunc      func(ctx context.Context, ds *model.Dataset) error
	LastDataset    *model.Dataset
	WriteCalls     []WriteCall
	WriteCallCount int
	mu             sync.Mutex
}

// WriteCall represents a single call to Write.
type WriteCall struct {
	Error   error
	Dataset *model.Dataset
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{
		WriteCalls: make([]WriteCall, 0),
	}
}

// Write implements the ReportWriter interface.
func (m *MockWriter) Write(ctx context.Context, ds *model.Dataset) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount++
	m.LastDataset = ds

	var err error
	if m.WriteFunc != nil {
		err = m.WriteFunc(ctx, ds)
	}

	m.WriteCalls = append(m.WriteCalls, WriteCall{Dataset: ds, Error: err})
	return err
}

// GetWriteCalls returns a copy of all write calls.
func (m *MockWriter) GetWriteCalls() []WriteCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]WriteCall, len(m.WriteCalls))
	copy(calls, m.WriteCalls)
	return calls
}

// SetWriteError makes every following Write return err.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteFunc = func(context.Context, *model.Dataset) error {
		return err
	}
}
