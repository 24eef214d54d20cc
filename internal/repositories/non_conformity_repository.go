package repositories

import (
	"go.uber.org/zap"

	"supplier-hub/internal/entities"
	"supplier-hub/pkg/wire"
)

const nonConformityTable = "non_conformities"

var nonConformityWire = &wire.Table[entities.NonConformity]{
	Name: nonConformityTable,
	Fields: []wire.Field[entities.NonConformity]{
		{Column: "id", Bind: func(n *entities.NonConformity) any { return &n.ID }, ReadOnly: true, Filter: true},
		{Column: "supplier_id", Bind: func(n *entities.NonConformity) any { return &n.SupplierID }, Filter: true},
		{Column: "type", Bind: func(n *entities.NonConformity) any { return &n.Type }, Filter: true},
		{Column: "severity", Bind: func(n *entities.NonConformity) any { return &n.Severity }, Filter: true},
		{Column: "description", Bind: func(n *entities.NonConformity) any { return &n.Description }},
		{Column: "reported_date", Bind: func(n *entities.NonConformity) any { return &n.ReportedDate }},
		{Column: "status", Bind: func(n *entities.NonConformity) any { return &n.Status }, Filter: true},
		{Column: "resolution_deadline", Bind: func(n *entities.NonConformity) any { return &n.ResolutionDeadline }},
		{Column: "resolution_date", Bind: func(n *entities.NonConformity) any { return &n.ResolutionDate }, Sparse: true},
		{Column: "resolution", Bind: func(n *entities.NonConformity) any { return &n.Resolution }, Sparse: true},
		{Column: "escalation_reason", Bind: func(n *entities.NonConformity) any { return &n.EscalationReason }, Sparse: true},
		{Column: "impact", Bind: func(n *entities.NonConformity) any { return &n.Impact }, Default: ""},
		{Column: "created_at", Bind: func(n *entities.NonConformity) any { return &n.CreatedAt }, ReadOnly: true},
		{Column: "updated_at", Bind: func(n *entities.NonConformity) any { return &n.UpdatedAt }, ReadOnly: true},
	},
	Defaults: entities.ApplyNonConformityDefaults,
}

type NonConformityRepositoryInterface interface {
	Collection[entities.NonConformity]
}

func NewNonConformityRepository(storage Querier, logger *zap.Logger) NonConformityRepositoryInterface {
	return newCollection(nonConformityWire, storage, logger)
}
