package repositories

import (
	"supplier-hub/internal/entities"
	"supplier-hub/pkg/wire"
)

// Правила колонок нужны и коллекциям в памяти, чтобы запись
// вела себя одинаково на обоих бэкендах.

func SupplierTable() *wire.Table[entities.Supplier] { return supplierWire }

func EvaluationTable() *wire.Table[entities.Evaluation] { return evaluationWire }

func NonConformityTable() *wire.Table[entities.NonConformity] { return nonConformityWire }

func DocumentTable() *wire.Table[entities.Document] { return documentWire }
