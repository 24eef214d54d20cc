package wire

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type grade string

type sample struct {
	ID      string
	Name    string
	Grade   grade
	Score   float64
	Count   int
	Note    *string
	Seen    *time.Time
	Tags    map[string]string
	Scores  struct{ A, B float64 }
	Derived []string
}

func sampleTable() *Table[sample] {
	return &Table[sample]{
		Name: "samples",
		Fields: []Field[sample]{
			{Column: "id", Bind: func(s *sample) any { return &s.ID }, ReadOnly: true},
			{Column: "name", Bind: func(s *sample) any { return &s.Name }, Filter: true},
			{Column: "grade", Bind: func(s *sample) any { return &s.Grade }, Default: "b"},
			{Column: "score", Bind: func(s *sample) any { return &s.Score }, Default: 0.0},
			{Column: "count", Bind: func(s *sample) any { return &s.Count }},
			{Column: "note", Bind: func(s *sample) any { return &s.Note }, Sparse: true},
			{Column: "seen_at", Bind: func(s *sample) any { return &s.Seen }, Sparse: true},
			{Column: "tags", Bind: func(s *sample) any { return &s.Tags }, Sparse: true},
			{Column: "scores", Bind: func(s *sample) any { return &s.Scores }},
		},
		Defaults: func(s *sample) {
			if s.Derived == nil {
				s.Derived = []string{}
			}
		},
	}
}

func TestDecode(t *testing.T) {
	id := uuid.New()
	seen := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	got, err := sampleTable().Decode(map[string]any{
		"id":      [16]byte(id),
		"name":    "Acme",
		"grade":   nil,
		"score":   int32(4),
		"count":   int64(7),
		"note":    "fragile",
		"seen_at": seen,
		"tags":    []byte(`{"region":"south"}`),
		"scores":  map[string]any{"A": 1.5, "B": 2},
	})
	require.NoError(t, err)

	assert.Equal(t, id.String(), got.ID)
	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, grade("b"), got.Grade, "NULL заменяется значением по умолчанию")
	assert.Equal(t, 4.0, got.Score)
	assert.Equal(t, 7, got.Count)
	require.NotNil(t, got.Note)
	assert.Equal(t, "fragile", *got.Note)
	require.NotNil(t, got.Seen)
	assert.True(t, seen.Equal(*got.Seen))
	assert.Equal(t, map[string]string{"region": "south"}, got.Tags)
	assert.Equal(t, 1.5, got.Scores.A)
	assert.Equal(t, 2.0, got.Scores.B)
	assert.Equal(t, []string{}, got.Derived)
}

func TestDecode_MissingOptionalColumnsStayAbsent(t *testing.T) {
	got, err := sampleTable().Decode(map[string]any{"id": "1", "name": "Acme"})
	require.NoError(t, err)

	assert.Nil(t, got.Note)
	assert.Nil(t, got.Seen)
	assert.Nil(t, got.Tags)
}

func TestDecode_TypeMismatch(t *testing.T) {
	_, err := sampleTable().Decode(map[string]any{"score": true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "samples.score")
}

func TestEncode_SparseAndReadOnly(t *testing.T) {
	empty := ""
	s := sample{ID: "ignored", Name: "Acme", Grade: "a", Score: 3.5, Note: &empty, Tags: map[string]string{}}

	got, err := sampleTable().Encode(&s)
	require.NoError(t, err)

	assert.NotContains(t, got, "id")
	assert.NotContains(t, got, "note")
	assert.NotContains(t, got, "seen_at")
	assert.NotContains(t, got, "tags")
	assert.Equal(t, "Acme", got["name"])
	assert.Equal(t, "a", got["grade"])
	assert.IsType(t, "", got["grade"])
	assert.Equal(t, 3.5, got["score"])
	assert.Equal(t, int64(0), got["count"])
}

func TestEncode_SparsePresent(t *testing.T) {
	note := "fragile"
	seen := time.Now()
	s := sample{Note: &note, Seen: &seen, Tags: map[string]string{"k": "v"}}

	got, err := sampleTable().Encode(&s)
	require.NoError(t, err)

	assert.Equal(t, "fragile", got["note"])
	assert.Equal(t, seen, got["seen_at"])
	assert.Equal(t, map[string]string{"k": "v"}, got["tags"])
}

func TestFilterable(t *testing.T) {
	tbl := sampleTable()
	assert.True(t, tbl.Filterable("name"))
	assert.False(t, tbl.Filterable("score"))
	assert.False(t, tbl.Filterable("unknown; DROP TABLE samples"))
	assert.Len(t, tbl.Columns(), 9)
}

func TestMerge_KeepsReadOnlyAndEmptySparse(t *testing.T) {
	note := "fragile"
	stored := sample{ID: "s-1", Name: "Acme", Count: 3, Note: &note, Tags: map[string]string{"k": "v"}}

	sampleTable().Merge(&stored, &sample{ID: "other", Name: "Acme 2", Grade: "a"})

	assert.Equal(t, "s-1", stored.ID)
	assert.Equal(t, "Acme 2", stored.Name)
	assert.Equal(t, grade("a"), stored.Grade)
	assert.Equal(t, 0, stored.Count)
	require.NotNil(t, stored.Note)
	assert.Equal(t, "fragile", *stored.Note)
	assert.Equal(t, map[string]string{"k": "v"}, stored.Tags)
}
