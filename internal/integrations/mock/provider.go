package mock

import (
	"context"
	"errors"
	"sync"

	"supplier-hub/internal/integrations/dto"
)

var ErrUnavailable = errors.New("источник таблиц недоступен")

// Provider - провайдер таблиц без внешнего API: возвращает пустые наборы
// и запоминает, какие таблицы у него запрашивали.
type Provider struct {
	ShouldFail bool

	mu        sync.Mutex
	requested []string
}

func NewProvider() *Provider {
	return &Provider{}
}

func (m *Provider) Name() string {
	return "mock"
}

func (m *Provider) Requested() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.requested...)
}

func (m *Provider) record(spreadsheetID string) error {
	if m.ShouldFail {
		return ErrUnavailable
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requested = append(m.requested, spreadsheetID)
	return nil
}

func (m *Provider) FetchEmployees(_ context.Context, spreadsheetID string) ([]dto.SheetEmployee, error) {
	if err := m.record(spreadsheetID); err != nil {
		return nil, err
	}
	return []dto.SheetEmployee{}, nil
}

func (m *Provider) FetchGoals(_ context.Context, spreadsheetID string) (map[string][]dto.SheetGoal, error) {
	if m.ShouldFail {
		return nil, ErrUnavailable
	}
	return map[string][]dto.SheetGoal{}, nil
}

func (m *Provider) FetchCompetencies(_ context.Context, spreadsheetID string) (map[string][]dto.SheetCompetency, error) {
	if m.ShouldFail {
		return nil, ErrUnavailable
	}
	return map[string][]dto.SheetCompetency{}, nil
}

func (m *Provider) FetchFeedbacks(_ context.Context, spreadsheetID string) (map[string][]dto.SheetFeedback, error) {
	if m.ShouldFail {
		return nil, ErrUnavailable
	}
	return map[string][]dto.SheetFeedback{}, nil
}
