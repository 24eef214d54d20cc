package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	apperrors "supplier-hub/pkg/errors"
	"supplier-hub/pkg/wire"
)

// Collection - контракт удаленной коллекции одной сущности.
type Collection[E any] interface {
	ListAll(ctx context.Context) ([]E, error)
	ListByField(ctx context.Context, field string, value any) ([]E, error)
	GetByID(ctx context.Context, id string) (E, error)
	Create(ctx context.Context, e E) (E, error)
	Update(ctx context.Context, id string, e E) (E, error)
	Delete(ctx context.Context, id string) error
}

const orderByCreated = "created_at DESC"

// collection реализует Collection поверх любой wire.Table.
type collection[E any] struct {
	table   *wire.Table[E]
	storage Querier
	logger  *zap.Logger
}

func newCollection[E any](table *wire.Table[E], storage Querier, logger *zap.Logger) *collection[E] {
	return &collection[E]{table: table, storage: storage, logger: logger.With(zap.String("collection", table.Name))}
}

func (c *collection[E]) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return c.storage
}

func (c *collection[E]) selectBuilder() sq.SelectBuilder {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	return psql.Select(c.table.Columns()...).From(c.table.Name)
}

func (c *collection[E]) returning() string {
	return "RETURNING " + strings.Join(c.table.Columns(), ", ")
}

func (c *collection[E]) ListAll(ctx context.Context) ([]E, error) {
	return c.list(ctx, "listAll", c.selectBuilder().OrderBy(orderByCreated))
}

func (c *collection[E]) ListByField(ctx context.Context, field string, value any) ([]E, error) {
	if !c.table.Filterable(field) {
		return nil, apperrors.NewValidationError(field, "фильтрация по полю недоступна для %s", c.table.Name)
	}
	builder := c.selectBuilder().Where(sq.Eq{field: value}).OrderBy(orderByCreated)
	return c.list(ctx, "listByField", builder)
}

func (c *collection[E]) list(ctx context.Context, op string, builder sq.SelectBuilder) ([]E, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки SQL для %s: %w", op, err)
	}

	rows, err := c.storage.Query(ctx, query, args...)
	if err != nil {
		c.logger.Error("ошибка чтения коллекции", zap.String("op", op), zap.Error(err))
		return nil, apperrors.NewReadError(c.table.Name, op, err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		c.logger.Error("ошибка чтения строк", zap.String("op", op), zap.Error(err))
		return nil, apperrors.NewReadError(c.table.Name, op, err)
	}

	result := make([]E, 0, len(records))
	for _, record := range records {
		e, err := c.table.Decode(record)
		if err != nil {
			return nil, apperrors.NewReadError(c.table.Name, op, err)
		}
		result = append(result, e)
	}
	return result, nil
}

func (c *collection[E]) GetByID(ctx context.Context, id string) (E, error) {
	var zero E
	if _, err := uuid.Parse(id); err != nil {
		return zero, apperrors.NewNotFoundError(c.table.Name, id)
	}

	query, args, err := c.selectBuilder().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return zero, fmt.Errorf("ошибка сборки SQL для getById: %w", err)
	}

	rows, err := c.storage.Query(ctx, query, args...)
	if err != nil {
		return zero, apperrors.NewReadError(c.table.Name, "getById", err)
	}
	record, err := pgx.CollectExactlyOneRow(rows, pgx.RowToMap)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, apperrors.NewNotFoundError(c.table.Name, id)
		}
		return zero, apperrors.NewReadError(c.table.Name, "getById", err)
	}
	e, err := c.table.Decode(record)
	if err != nil {
		return zero, apperrors.NewReadError(c.table.Name, "getById", err)
	}
	return e, nil
}

func (c *collection[E]) Create(ctx context.Context, e E) (E, error) {
	return c.create(ctx, c.storage, e)
}

func (c *collection[E]) create(ctx context.Context, q Querier, e E) (E, error) {
	var zero E
	values, err := c.table.Encode(&e)
	if err != nil {
		return zero, apperrors.NewWriteError(c.table.Name, "insert", err)
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Insert(c.table.Name).SetMap(values).Suffix(c.returning()).ToSql()
	if err != nil {
		return zero, fmt.Errorf("ошибка сборки запроса Create: %w", err)
	}

	created, err := c.writeOne(ctx, q, "insert", "", query, args)
	if err != nil {
		return zero, err
	}
	c.logger.Debug("запись создана")
	return created, nil
}

func (c *collection[E]) Update(ctx context.Context, id string, e E) (E, error) {
	var zero E
	if _, err := uuid.Parse(id); err != nil {
		return zero, apperrors.NewNotFoundError(c.table.Name, id)
	}

	values, err := c.table.Encode(&e)
	if err != nil {
		return zero, apperrors.NewWriteError(c.table.Name, "update", err)
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update(c.table.Name).
		SetMap(values).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix(c.returning()).
		ToSql()
	if err != nil {
		return zero, fmt.Errorf("ошибка сборки запроса Update: %w", err)
	}

	return c.writeOne(ctx, c.storage, "update", id, query, args)
}

// writeOne выполняет INSERT/UPDATE ... RETURNING и декодирует единственную строку.
func (c *collection[E]) writeOne(ctx context.Context, q Querier, op, id, query string, args []any) (E, error) {
	var zero E
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		c.logger.Error("запись отклонена", zap.String("op", op), zap.String("id", id), zap.Error(err))
		return zero, apperrors.NewWriteError(c.table.Name, op, err)
	}
	record, err := pgx.CollectExactlyOneRow(rows, pgx.RowToMap)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, apperrors.NewNotFoundError(c.table.Name, id)
		}
		c.logger.Error("запись отклонена", zap.String("op", op), zap.String("id", id), zap.Error(err))
		return zero, apperrors.NewWriteError(c.table.Name, op, err)
	}
	e, err := c.table.Decode(record)
	if err != nil {
		return zero, apperrors.NewWriteError(c.table.Name, op, err)
	}
	return e, nil
}

// Delete не идемпотентен: удаление несуществующего id - ошибка.
func (c *collection[E]) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewNotFoundError(c.table.Name, id)
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Delete(c.table.Name).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса Delete: %w", err)
	}

	result, err := c.storage.Exec(ctx, query, args...)
	if err != nil {
		c.logger.Error("удаление отклонено", zap.String("id", id), zap.Error(err))
		return apperrors.NewWriteError(c.table.Name, "delete", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(c.table.Name, id)
	}
	return nil
}
