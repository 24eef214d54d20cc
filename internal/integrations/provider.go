package integrations

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"supplier-hub/internal/integrations/dto"
)

// SheetProvider читает данные из внешней таблицы по ее идентификатору.
type SheetProvider interface {
	Name() string
	FetchEmployees(ctx context.Context, spreadsheetID string) ([]dto.SheetEmployee, error)
	FetchGoals(ctx context.Context, spreadsheetID string) (map[string][]dto.SheetGoal, error)
	FetchCompetencies(ctx context.Context, spreadsheetID string) (map[string][]dto.SheetCompetency, error)
	FetchFeedbacks(ctx context.Context, spreadsheetID string) (map[string][]dto.SheetFeedback, error)
}

// FetchSnapshot запрашивает все четыре набора параллельно; любая ошибка отменяет остальные.
func FetchSnapshot(ctx context.Context, p SheetProvider, spreadsheetID string) (*dto.SheetSnapshot, error) {
	snap := &dto.SheetSnapshot{SpreadsheetID: spreadsheetID}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		snap.Employees, err = p.FetchEmployees(gctx, spreadsheetID)
		return err
	})
	g.Go(func() (err error) {
		snap.Goals, err = p.FetchGoals(gctx, spreadsheetID)
		return err
	})
	g.Go(func() (err error) {
		snap.Competencies, err = p.FetchCompetencies(gctx, spreadsheetID)
		return err
	})
	g.Go(func() (err error) {
		snap.Feedbacks, err = p.FetchFeedbacks(gctx, spreadsheetID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("провайдер '%s' не вернул данные таблицы %s: %w", p.Name(), spreadsheetID, err)
	}
	return snap, nil
}
