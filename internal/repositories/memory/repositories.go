package memory

import (
	"context"
	"time"

	"supplier-hub/internal/entities"
	"supplier-hub/internal/repositories"
	"supplier-hub/pkg/utils"
)

type Suppliers struct {
	*Collection[entities.Supplier]
}

// CreateBatch: все записи пакета или ни одной.
func (s *Suppliers) CreateBatch(_ context.Context, batch []entities.Supplier) ([]entities.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := s.items
	out := make([]entities.Supplier, 0, len(batch))
	for _, sup := range batch {
		created, err := s.insert(sup)
		if err != nil {
			s.items = saved
			return nil, err
		}
		out = append(out, created)
	}
	return out, nil
}

// Repositories - набор коллекций в памяти для запуска без базы и для тестов.
type Repositories struct {
	Suppliers       *Suppliers
	Evaluations     *Collection[entities.Evaluation]
	NonConformities *Collection[entities.NonConformity]
	Documents       *Collection[entities.Document]
}

func New(now func() time.Time) *Repositories {
	return &Repositories{
		Suppliers: &Suppliers{newCollection(repositories.SupplierTable(), now,
			func(s *entities.Supplier) *string { return &s.ID },
			func(s *entities.Supplier, created bool, at time.Time) {
				if created {
					s.CreatedAt = at
				}
				s.UpdatedAt = at
				// вложенные коллекции и метрики в таблице не хранятся
				s.NonConformities, s.Documents, s.Recommendations = nil, nil, nil
				entities.ApplySupplierDefaults(s, s.UpdatedAt)
			},
			map[string]func(entities.Supplier) any{
				"id":              func(s entities.Supplier) any { return s.ID },
				"name":            func(s entities.Supplier) any { return s.Name },
				"document_number": func(s entities.Supplier) any { return s.DocumentNumber },
				"category":        func(s entities.Supplier) any { return s.Category },
				"email":           func(s entities.Supplier) any { return s.Email },
				"status":          func(s entities.Supplier) any { return string(s.Status) },
			})},
		Evaluations: newCollection(repositories.EvaluationTable(), now,
			func(e *entities.Evaluation) *string { return &e.ID },
			func(e *entities.Evaluation, created bool, at time.Time) {
				if created {
					e.CreatedAt = at
				}
				e.UpdatedAt = at
				e.Attachments = nil
				entities.ApplyEvaluationDefaults(e)
			},
			map[string]func(entities.Evaluation) any{
				"id":          func(e entities.Evaluation) any { return e.ID },
				"supplier_id": func(e entities.Evaluation) any { return e.SupplierID },
				"evaluator":   func(e entities.Evaluation) any { return e.Evaluator },
				"type":        func(e entities.Evaluation) any { return string(e.Type) },

				"purchase_order_number": func(e entities.Evaluation) any { return e.PurchaseOrderNumber },
			}),
		NonConformities: newCollection(repositories.NonConformityTable(), now,
			func(nc *entities.NonConformity) *string { return &nc.ID },
			func(nc *entities.NonConformity, created bool, at time.Time) {
				if created {
					nc.CreatedAt = at
				}
				nc.UpdatedAt = at
				nc.Attachments = nil
				entities.ApplyNonConformityDefaults(nc)
			},
			map[string]func(entities.NonConformity) any{
				"id":          func(nc entities.NonConformity) any { return nc.ID },
				"supplier_id": func(nc entities.NonConformity) any { return nc.SupplierID },
				"type":        func(nc entities.NonConformity) any { return string(nc.Type) },
				"status":      func(nc entities.NonConformity) any { return string(nc.Status) },
				"severity":    func(nc entities.NonConformity) any { return string(nc.Severity) },
			}),
		Documents: newCollection(repositories.DocumentTable(), now,
			func(d *entities.Document) *string { return &d.ID },
			func(d *entities.Document, created bool, at time.Time) {
				if created {
					d.CreatedAt = at
				}
				d.UpdatedAt = at
			},
			map[string]func(entities.Document) any{
				"id":                func(d entities.Document) any { return d.ID },
				"supplier_id":       func(d entities.Document) any { return utils.SafeDeref(d.SupplierID) },
				"evaluation_id":     func(d entities.Document) any { return utils.SafeDeref(d.EvaluationID) },
				"non_conformity_id": func(d entities.Document) any { return utils.SafeDeref(d.NonConformityID) },
			}),
	}
}

var (
	_ repositories.SupplierRepositoryInterface      = (*Suppliers)(nil)
	_ repositories.EvaluationRepositoryInterface    = (*Collection[entities.Evaluation])(nil)
	_ repositories.NonConformityRepositoryInterface = (*Collection[entities.NonConformity])(nil)
	_ repositories.DocumentRepositoryInterface      = (*Collection[entities.Document])(nil)
)
