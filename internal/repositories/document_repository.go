package repositories

import (
	"go.uber.org/zap"

	"supplier-hub/internal/entities"
	"supplier-hub/pkg/wire"
)

const documentTable = "documents"

var documentWire = &wire.Table[entities.Document]{
	Name: documentTable,
	Fields: []wire.Field[entities.Document]{
		{Column: "id", Bind: func(d *entities.Document) any { return &d.ID }, ReadOnly: true, Filter: true},
		{Column: "name", Bind: func(d *entities.Document) any { return &d.Name }},
		{Column: "url", Bind: func(d *entities.Document) any { return &d.URL }},
		{Column: "type", Bind: func(d *entities.Document) any { return &d.Type }, Filter: true},
		{Column: "size", Bind: func(d *entities.Document) any { return &d.Size }, Default: int64(0)},
		{Column: "uploaded_by", Bind: func(d *entities.Document) any { return &d.UploadedBy }, Filter: true},
		{Column: "uploaded_at", Bind: func(d *entities.Document) any { return &d.UploadedAt }},
		{Column: "supplier_id", Bind: func(d *entities.Document) any { return &d.SupplierID }, Sparse: true, Filter: true},
		{Column: "evaluation_id", Bind: func(d *entities.Document) any { return &d.EvaluationID }, Sparse: true, Filter: true},
		{Column: "non_conformity_id", Bind: func(d *entities.Document) any { return &d.NonConformityID }, Sparse: true, Filter: true},
		{Column: "created_at", Bind: func(d *entities.Document) any { return &d.CreatedAt }, ReadOnly: true},
		{Column: "updated_at", Bind: func(d *entities.Document) any { return &d.UpdatedAt }, ReadOnly: true},
	},
}

type DocumentRepositoryInterface interface {
	Collection[entities.Document]
}

func NewDocumentRepository(storage Querier, logger *zap.Logger) DocumentRepositoryInterface {
	return newCollection(documentWire, storage, logger)
}
