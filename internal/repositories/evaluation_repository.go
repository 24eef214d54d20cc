package repositories

import (
	"go.uber.org/zap"

	"supplier-hub/internal/entities"
	"supplier-hub/pkg/wire"
)

const evaluationTable = "evaluations"

var evaluationWire = &wire.Table[entities.Evaluation]{
	Name: evaluationTable,
	Fields: []wire.Field[entities.Evaluation]{
		{Column: "id", Bind: func(e *entities.Evaluation) any { return &e.ID }, ReadOnly: true, Filter: true},
		{Column: "supplier_id", Bind: func(e *entities.Evaluation) any { return &e.SupplierID }, Filter: true},
		{Column: "evaluator", Bind: func(e *entities.Evaluation) any { return &e.Evaluator }, Filter: true},
		{Column: "date", Bind: func(e *entities.Evaluation) any { return &e.Date }},
		{Column: "ratings", Bind: func(e *entities.Evaluation) any { return &e.Ratings }},
		{Column: "comments", Bind: func(e *entities.Evaluation) any { return &e.Comments }, Default: ""},
		{Column: "type", Bind: func(e *entities.Evaluation) any { return &e.Type }, Filter: true},
		{Column: "purchase_order_number", Bind: func(e *entities.Evaluation) any { return &e.PurchaseOrderNumber }, Default: "", Filter: true},
		{Column: "created_at", Bind: func(e *entities.Evaluation) any { return &e.CreatedAt }, ReadOnly: true},
		{Column: "updated_at", Bind: func(e *entities.Evaluation) any { return &e.UpdatedAt }, ReadOnly: true},
	},
	Defaults: entities.ApplyEvaluationDefaults,
}

type EvaluationRepositoryInterface interface {
	Collection[entities.Evaluation]
}

func NewEvaluationRepository(storage Querier, logger *zap.Logger) EvaluationRepositoryInterface {
	return newCollection(evaluationWire, storage, logger)
}
