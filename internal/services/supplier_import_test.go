package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"supplier-hub/internal/entities"
	apperrors "supplier-hub/pkg/errors"
)

const suppliersCSV = `Nome,Email,Categoria,Telefone,Endereço,Região
Acme,a@acme.com,raw-materials,+551199999999,Rua A 10,Sul
,,,,,
Beta,b@beta.com,logistics,,,Norte
`

var brMappings = map[string]string{
	"Nome":      "name",
	"Email":     "email",
	"Categoria": "category",
	"Telefone":  "phone",
	"Endereço":  "address",
	"Região":    "region",
}

func TestSupplierImporter_CSV(t *testing.T) {
	store, repos := newTestStore(t)
	importer := NewSupplierImporter(store, zap.NewNop())

	res, err := importer.Import(context.Background(), strings.NewReader(suppliersCSV), "fornecedores.csv", brMappings)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Rows)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Suppliers, 2)
	assert.Equal(t, 2, repos.Suppliers.Len())

	byName := map[string]entities.Supplier{}
	for _, s := range store.Suppliers() {
		byName[s.Name] = s
	}
	require.Contains(t, byName, "Acme")
	require.NotNil(t, byName["Acme"].Address)
	assert.Equal(t, "Rua A 10", *byName["Acme"].Address)
	assert.Equal(t, "Sul", byName["Acme"].CustomFields["region"])
	assert.Nil(t, byName["Beta"].Address)
	assert.Equal(t, entities.SupplierStatusActive, byName["Beta"].Status)

	// сопоставления сохраняются для следующего импорта
	assert.Equal(t, "category", store.ColumnMappings()["Categoria"])
}

func TestSupplierImporter_UsesSavedMappings(t *testing.T) {
	store, _ := newTestStore(t)
	store.SetColumnMappings(brMappings)
	importer := NewSupplierImporter(store, zap.NewNop())

	csv := "Nome;Email;Categoria\nAcme;a@acme.com;raw-materials\n"
	res, err := importer.Import(context.Background(), strings.NewReader(csv), "f.csv", nil)
	require.NoError(t, err)
	require.Len(t, res.Suppliers, 1)
	assert.Equal(t, "raw-materials", res.Suppliers[0].Category)
}

func TestSupplierImporter_MissingRequiredMapping(t *testing.T) {
	store, repos := newTestStore(t)
	importer := NewSupplierImporter(store, zap.NewNop())

	_, err := importer.Import(context.Background(), strings.NewReader(suppliersCSV), "f.csv",
		map[string]string{"Nome": "name", "Telefone": "phone"})

	var validation *apperrors.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Message, "email")
	assert.Contains(t, validation.Message, "category")
	assert.Equal(t, 0, repos.Suppliers.Len())
}

func TestSupplierImporter_BatchRejected(t *testing.T) {
	store, repos := newTestStore(t)
	repos.failAt = 2
	importer := NewSupplierImporter(store, zap.NewNop())

	_, err := importer.Import(context.Background(), strings.NewReader(suppliersCSV), "f.csv", brMappings)

	require.Error(t, err)
	assert.Empty(t, store.Suppliers())
	assert.Equal(t, 0, repos.Suppliers.Len())
}

func TestSupplierImporter_XLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]string{"Nome", "Email", "Categoria"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]string{"Gama", "g@gama.com", "services"}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	store, _ := newTestStore(t)
	importer := NewSupplierImporter(store, zap.NewNop())

	preview, err := importer.Preview(bytes.NewReader(buf.Bytes()), "f.xlsx")
	require.NoError(t, err)
	assert.Equal(t, []string{"Nome", "Email", "Categoria"}, preview.Columns)
	require.Len(t, preview.Rows, 1)
	assert.Equal(t, "Gama", preview.Rows[0]["Nome"])
	assert.Empty(t, preview.Mappings)

	res, err := importer.Import(context.Background(), bytes.NewReader(buf.Bytes()), "f.xlsx", brMappings)
	require.NoError(t, err)
	require.Len(t, res.Suppliers, 1)
	assert.Equal(t, "g@gama.com", res.Suppliers[0].Email)
}

func TestReadTable_Errors(t *testing.T) {
	_, _, err := ReadTable(strings.NewReader("x"), "f.pdf")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, _, err = ReadTable(strings.NewReader(""), "f.csv")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, _, err = ReadTable(strings.NewReader("not a zip"), "f.xlsx")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestWriteSuppliersReport(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	sup := addAcme(t, store)
	_, err := store.AddEvaluation(ctx, entities.Evaluation{SupplierID: sup.ID, Ratings: entities.Ratings{Quality: 4, Price: 3, Delivery: 5, Communication: 4}})
	require.NoError(t, err)
	_, err = store.AddNonConformity(ctx, entities.NonConformity{SupplierID: sup.ID, Description: "atraso"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSuppliersReport(&buf, store.Snapshot(), testNow))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reportSuppliersSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, supplierReportHeaders, rows[0])
	assert.Equal(t, "Acme", rows[1][0])
	assert.Equal(t, "1", rows[1][8])

	ncRows, err := f.GetRows(reportNonConformitiesSheet)
	require.NoError(t, err)
	require.Len(t, ncRows, 2)
	assert.Equal(t, "atraso", ncRows[1][4])
	assert.Equal(t, "10.03.2026", ncRows[1][5])

	assert.Equal(t, "suppliers_2026-03-10.xlsx", ReportFileName(testNow))
}
