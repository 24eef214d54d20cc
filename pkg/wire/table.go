// Package wire переводит записи удаленного хранилища (плоские, snake_case)
// в сущности, которыми оперирует стор, и обратно.
//
// Каждая таблица описывается декларативно: список правил Field, по одному на колонку.
// Колонки, которых нет в удаленной схеме, заполняет хук Defaults при чтении,
// а при записи они просто не попадают в карту колонок.
package wire

import (
	"fmt"
	"reflect"
)

// Field - правило перевода одной колонки.
type Field[E any] struct {
	Column string
	// Bind возвращает указатель на поле сущности.
	Bind func(e *E) any
	// Default подставляется, когда колонка отсутствует или равна NULL.
	Default any
	// Sparse: поле уходит в запись только если непустое.
	Sparse bool
	// ReadOnly: значение назначает сервер (id, created_at), в запись не попадает.
	ReadOnly bool
	// Filter разрешает запросы вида column = value.
	Filter bool
}

type Table[E any] struct {
	Name     string
	Fields   []Field[E]
	Defaults func(e *E)
}

func (t *Table[E]) Columns() []string {
	cols := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		cols = append(cols, f.Column)
	}
	return cols
}

func (t *Table[E]) Filterable(column string) bool {
	for _, f := range t.Fields {
		if f.Column == column {
			return f.Filter
		}
	}
	return false
}

// Decode собирает сущность из строки, прочитанной из хранилища.
func (t *Table[E]) Decode(row map[string]any) (E, error) {
	var e E
	for _, f := range t.Fields {
		target := f.Bind(&e)
		v, ok := row[f.Column]
		if !ok || v == nil {
			if f.Default == nil {
				continue
			}
			v = f.Default
		}
		if err := assign(target, v); err != nil {
			return e, fmt.Errorf("%s.%s: %w", t.Name, f.Column, err)
		}
	}
	if t.Defaults != nil {
		t.Defaults(&e)
	}
	return e, nil
}

// Encode готовит карту колонок для INSERT/UPDATE.
// Пустые sparse-поля пропускаются, а не пишутся как NULL.
func (t *Table[E]) Encode(e *E) (map[string]any, error) {
	out := make(map[string]any, len(t.Fields))
	for _, f := range t.Fields {
		if f.ReadOnly {
			continue
		}
		ptr := reflect.ValueOf(f.Bind(e))
		if ptr.Kind() != reflect.Pointer || ptr.IsNil() {
			return nil, fmt.Errorf("%s.%s: bind должен вернуть указатель, получено %T", t.Name, f.Column, f.Bind(e))
		}
		val := ptr.Elem()
		if f.Sparse && isEmpty(val) {
			continue
		}
		out[f.Column] = wireValue(val)
	}
	return out, nil
}

// Merge переносит в dst то, что Encode отправил бы в UPDATE:
// ReadOnly-поля и пустые sparse-поля dst сохраняет.
func (t *Table[E]) Merge(dst, src *E) {
	for _, f := range t.Fields {
		if f.ReadOnly {
			continue
		}
		val := reflect.ValueOf(f.Bind(src)).Elem()
		if f.Sparse && isEmpty(val) {
			continue
		}
		reflect.ValueOf(f.Bind(dst)).Elem().Set(val)
	}
}
