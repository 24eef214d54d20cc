package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"supplier-hub/internal/entities"
	"supplier-hub/pkg/wire"
)

const supplierTable = "suppliers"

// supplierWire: metrics, nonConformities, recommendations и documents в таблице не хранятся.
var supplierWire = &wire.Table[entities.Supplier]{
	Name: supplierTable,
	Fields: []wire.Field[entities.Supplier]{
		{Column: "id", Bind: func(s *entities.Supplier) any { return &s.ID }, ReadOnly: true, Filter: true},
		{Column: "name", Bind: func(s *entities.Supplier) any { return &s.Name }, Filter: true},
		{Column: "legal_name", Bind: func(s *entities.Supplier) any { return &s.LegalName }},
		{Column: "document_number", Bind: func(s *entities.Supplier) any { return &s.DocumentNumber }, Filter: true},
		{Column: "category", Bind: func(s *entities.Supplier) any { return &s.Category }, Filter: true},
		{Column: "email", Bind: func(s *entities.Supplier) any { return &s.Email }, Filter: true},
		{Column: "phone", Bind: func(s *entities.Supplier) any { return &s.Phone }},
		{Column: "whatsapp", Bind: func(s *entities.Supplier) any { return &s.Whatsapp }, Sparse: true},
		{Column: "address", Bind: func(s *entities.Supplier) any { return &s.Address }, Sparse: true},
		{Column: "location_url", Bind: func(s *entities.Supplier) any { return &s.LocationURL }, Sparse: true},
		{Column: "average_rating", Bind: func(s *entities.Supplier) any { return &s.AverageRating }, Default: 0.0},
		{Column: "last_evaluation", Bind: func(s *entities.Supplier) any { return &s.LastEvaluation }, Sparse: true},
		{Column: "status", Bind: func(s *entities.Supplier) any { return &s.Status }, Default: string(entities.SupplierStatusActive), Filter: true},
		{Column: "custom_fields", Bind: func(s *entities.Supplier) any { return &s.CustomFields }, Sparse: true},
		{Column: "google_sheet_id", Bind: func(s *entities.Supplier) any { return &s.GoogleSheetID }, Sparse: true},
		{Column: "created_at", Bind: func(s *entities.Supplier) any { return &s.CreatedAt }, ReadOnly: true},
		{Column: "updated_at", Bind: func(s *entities.Supplier) any { return &s.UpdatedAt }, ReadOnly: true},
	},
	Defaults: func(s *entities.Supplier) {
		entities.ApplySupplierDefaults(s, s.UpdatedAt)
	},
}

type SupplierRepositoryInterface interface {
	Collection[entities.Supplier]
	// CreateBatch создает все записи в одной транзакции: либо все, либо ни одной.
	CreateBatch(ctx context.Context, batch []entities.Supplier) ([]entities.Supplier, error)
}

type SupplierRepository struct {
	*collection[entities.Supplier]
	txManager TxManagerInterface
}

func NewSupplierRepository(storage Beginner, logger *zap.Logger) SupplierRepositoryInterface {
	return &SupplierRepository{
		collection: newCollection(supplierWire, storage, logger),
		txManager:  NewTxManager(storage),
	}
}

func (r *SupplierRepository) CreateBatch(ctx context.Context, batch []entities.Supplier) ([]entities.Supplier, error) {
	created := make([]entities.Supplier, 0, len(batch))
	err := r.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		for _, s := range batch {
			c, err := r.create(ctx, r.getQuerier(tx), s)
			if err != nil {
				return err
			}
			created = append(created, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.logger.Info("пакет поставщиков создан", zap.Int("count", len(created)))
	return created, nil
}
