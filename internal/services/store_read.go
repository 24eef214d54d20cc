package services

import (
	"time"

	"supplier-hub/internal/entities"
)

// Snapshot - согласованный срез кеша на момент вызова.
type Snapshot struct {
	Ready          bool                  `json:"ready"`
	Suppliers      []entities.Supplier   `json:"suppliers"`
	Evaluations    []entities.Evaluation `json:"evaluations"`
	ColumnMappings map[string]string     `json:"columnMappings"`
}

type NonConformityFilter struct {
	SupplierID string
	Status     entities.NonConformityStatus
	Severity   entities.Severity
	Since      *time.Time
}

func (f NonConformityFilter) match(nc entities.NonConformity) bool {
	if f.SupplierID != "" && nc.SupplierID != f.SupplierID {
		return false
	}
	if f.Status != "" && nc.Status != f.Status {
		return false
	}
	if f.Severity != "" && nc.Severity != f.Severity {
		return false
	}
	if f.Since != nil && nc.ReportedDate.Before(*f.Since) {
		return false
	}
	return true
}

func (s *Store) Snapshot() Snapshot {
	st := s.snapshotState()
	v := newView(st)
	return Snapshot{
		Ready:          st.ready,
		Suppliers:      v.suppliers(),
		Evaluations:    v.evaluations(st.evaluations),
		ColumnMappings: copyMap(st.columnMappings),
	}
}

func (s *Store) Suppliers() []entities.Supplier {
	return newView(s.snapshotState()).suppliers()
}

func (s *Store) Supplier(id string) (entities.Supplier, bool) {
	st := s.snapshotState()
	for _, sup := range st.suppliers {
		if sup.ID == id {
			return newView(st).supplier(sup), true
		}
	}
	return entities.Supplier{}, false
}

func (s *Store) projectSupplier(sup entities.Supplier) entities.Supplier {
	return newView(s.snapshotState()).supplier(sup)
}

func (s *Store) Evaluations() []entities.Evaluation {
	st := s.snapshotState()
	return newView(st).evaluations(st.evaluations)
}

func (s *Store) EvaluationsBySupplier(supplierID string) []entities.Evaluation {
	st := s.snapshotState()
	own := without(st.evaluations, func(e entities.Evaluation) bool { return e.SupplierID != supplierID })
	return newView(st).evaluations(own)
}

func (s *Store) NonConformities(filter NonConformityFilter) []entities.NonConformity {
	st := s.snapshotState()
	v := newView(st)
	out := make([]entities.NonConformity, 0)
	for _, nc := range st.nonConformities {
		if filter.match(nc) {
			out = append(out, v.nonConformity(nc))
		}
	}
	return out
}

func (s *Store) Evaluation(id string) (entities.Evaluation, bool) {
	st := s.snapshotState()
	for _, e := range st.evaluations {
		if e.ID == id {
			return newView(st).evaluations([]entities.Evaluation{e})[0], true
		}
	}
	return entities.Evaluation{}, false
}

func (s *Store) NonConformity(id string) (entities.NonConformity, bool) {
	st := s.snapshotState()
	for _, nc := range st.nonConformities {
		if nc.ID == id {
			return newView(st).nonConformity(nc), true
		}
	}
	return entities.NonConformity{}, false
}

func (s *Store) ColumnMappings() map[string]string {
	return copyMap(s.snapshotState().columnMappings)
}

// view проецирует плоские коллекции во вложенную форму.
// Индексы строятся один раз на срез состояния.
type view struct {
	st          *storeState
	ncBySupp    map[string][]entities.NonConformity
	docsBySupp  map[string][]entities.Document
	docsByEval  map[string][]entities.Document
	docsByNonCo map[string][]entities.Document
}

func newView(st *storeState) *view {
	v := &view{
		st:          st,
		ncBySupp:    make(map[string][]entities.NonConformity),
		docsBySupp:  make(map[string][]entities.Document),
		docsByEval:  make(map[string][]entities.Document),
		docsByNonCo: make(map[string][]entities.Document),
	}
	for _, d := range st.documents {
		if d.SupplierID != nil {
			v.docsBySupp[*d.SupplierID] = append(v.docsBySupp[*d.SupplierID], d)
		}
		if d.EvaluationID != nil {
			v.docsByEval[*d.EvaluationID] = append(v.docsByEval[*d.EvaluationID], d)
		}
		if d.NonConformityID != nil {
			v.docsByNonCo[*d.NonConformityID] = append(v.docsByNonCo[*d.NonConformityID], d)
		}
	}
	for _, nc := range st.nonConformities {
		v.ncBySupp[nc.SupplierID] = append(v.ncBySupp[nc.SupplierID], v.nonConformity(nc))
	}
	return v
}

func (v *view) suppliers() []entities.Supplier {
	out := make([]entities.Supplier, 0, len(v.st.suppliers))
	for _, sup := range v.st.suppliers {
		out = append(out, v.supplier(sup))
	}
	return out
}

func (v *view) supplier(sup entities.Supplier) entities.Supplier {
	sup.NonConformities = orEmpty(v.ncBySupp[sup.ID])
	sup.Documents = orEmpty(v.docsBySupp[sup.ID])
	sup.Recommendations = appendCopy(orEmpty(sup.Recommendations))
	sup.CustomFields = copyMap(sup.CustomFields)
	return sup
}

func (v *view) evaluations(items []entities.Evaluation) []entities.Evaluation {
	out := make([]entities.Evaluation, 0, len(items))
	for _, e := range items {
		e.Attachments = orEmpty(v.docsByEval[e.ID])
		out = append(out, e)
	}
	return out
}

func (v *view) nonConformity(nc entities.NonConformity) entities.NonConformity {
	nc.Attachments = orEmpty(v.docsByNonCo[nc.ID])
	return nc
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, val := range m {
		out[k] = val
	}
	return out
}
