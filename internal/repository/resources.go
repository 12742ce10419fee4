package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"farmstead/internal/model"
)

// Row definitions for every farm resource served by the generic CRUD
// contract. Adding a resource means adding a table, a model and one
// definition here.

func NewCropRecords(pool *pgxpool.Pool) *Records[model.Crop] {
	return NewRecords(pool, RowDef[model.Crop]{
		Name:    "Crop",
		Table:   "crops",
		Columns: []string{"crop_type", "scientific_name", "planted", "expected_harvest", "location", "harvest_notification_sent"},
		OrderBy: "crop_type",
		Scan: func(row RowScanner) (model.Crop, error) {
			var c model.Crop
			err := row.Scan(&c.ID, &c.CropType, &c.ScientificName, &c.Planted,
				&c.ExpectedHarvest, &c.Location, &c.HarvestNotificationSent)
			return c, err
		},
		Values: func(c model.Crop) []any {
			return []any{c.CropType, c.ScientificName, c.Planted, c.ExpectedHarvest, c.Location, c.HarvestNotificationSent}
		},
	})
}

func NewBatchRecords(pool *pgxpool.Pool) *Records[model.Batch] {
	return NewRecords(pool, RowDef[model.Batch]{
		Name:    "Batch",
		Table:   "batches",
		Columns: []string{"batch_name", "animal", "raised_for", "start_date"},
		OrderBy: "start_date DESC",
		Scan: func(row RowScanner) (model.Batch, error) {
			var b model.Batch
			err := row.Scan(&b.ID, &b.BatchName, &b.Animal, &b.RaisedFor, &b.StartDate)
			return b, err
		},
		Values: func(b model.Batch) []any {
			return []any{b.BatchName, b.Animal, b.RaisedFor, b.StartDate}
		},
	})
}

func NewLivestockRecords(pool *pgxpool.Pool) *Records[model.LivestockRecord] {
	return NewRecords(pool, RowDef[model.LivestockRecord]{
		Name:    "Livestock record",
		Table:   "livestock_records",
		Columns: []string{"record_type", "record_date", "livestock_type", "feed_type", "quantity", "quality", "cause", "price"},
		OrderBy: "record_date DESC",
		Scan: func(row RowScanner) (model.LivestockRecord, error) {
			var rec model.LivestockRecord
			err := row.Scan(&rec.ID, &rec.RecordType, &rec.RecordDate, &rec.LivestockType,
				&rec.FeedType, &rec.Quantity, &rec.Quality, &rec.Cause, &rec.Price)
			return rec, err
		},
		Values: func(rec model.LivestockRecord) []any {
			return []any{rec.RecordType, rec.RecordDate, rec.LivestockType, rec.FeedType,
				rec.Quantity, rec.Quality, rec.Cause, rec.Price}
		},
	})
}

func NewMedicalRecords(pool *pgxpool.Pool) *Records[model.MedicalRecord] {
	return NewRecords(pool, RowDef[model.MedicalRecord]{
		Name:    "Medical record",
		Table:   "medical_records",
		Columns: []string{"crop_type", "record_date", "symptoms", "diagnosis", "treatment", "notes"},
		OrderBy: "record_date DESC",
		Scan: func(row RowScanner) (model.MedicalRecord, error) {
			var rec model.MedicalRecord
			err := row.Scan(&rec.ID, &rec.CropType, &rec.RecordDate, &rec.Symptoms,
				&rec.Diagnosis, &rec.Treatment, &rec.Notes)
			return rec, err
		},
		Values: func(rec model.MedicalRecord) []any {
			return []any{rec.CropType, rec.RecordDate, rec.Symptoms, rec.Diagnosis, rec.Treatment, rec.Notes}
		},
	})
}

func NewLivestockMedicalRecords(pool *pgxpool.Pool) *Records[model.LivestockMedicalRecord] {
	return NewRecords(pool, RowDef[model.LivestockMedicalRecord]{
		Name:    "Livestock medical record",
		Table:   "livestock_medical_records",
		Columns: []string{"record_type", "parent_batch", "disease_type", "dosage", "medication", "record_date", "notes"},
		OrderBy: "record_date DESC",
		Scan: func(row RowScanner) (model.LivestockMedicalRecord, error) {
			var rec model.LivestockMedicalRecord
			err := row.Scan(&rec.ID, &rec.RecordType, &rec.ParentBatch, &rec.DiseaseType,
				&rec.Dosage, &rec.Medication, &rec.RecordDate, &rec.Notes)
			return rec, err
		},
		Values: func(rec model.LivestockMedicalRecord) []any {
			return []any{rec.RecordType, rec.ParentBatch, rec.DiseaseType, rec.Dosage,
				rec.Medication, rec.RecordDate, rec.Notes}
		},
	})
}

func NewHarvestingRecords(pool *pgxpool.Pool) *Records[model.HarvestingRecord] {
	return NewRecords(pool, RowDef[model.HarvestingRecord]{
		Name:    "Harvesting record",
		Table:   "harvesting_records",
		Columns: []string{"crop_type", "harvested_date", "quantity", "notes"},
		OrderBy: "harvested_date DESC",
		Scan: func(row RowScanner) (model.HarvestingRecord, error) {
			var rec model.HarvestingRecord
			err := row.Scan(&rec.ID, &rec.CropType, &rec.HarvestedDate, &rec.Quantity, &rec.Notes)
			return rec, err
		},
		Values: func(rec model.HarvestingRecord) []any {
			return []any{rec.CropType, rec.HarvestedDate, rec.Quantity, rec.Notes}
		},
	})
}

func NewBreedingRecords(pool *pgxpool.Pool) *Records[model.BreedingRecord] {
	return NewRecords(pool, RowDef[model.BreedingRecord]{
		Name:    "Breeding record",
		Table:   "breeding_records",
		Columns: []string{"parent_batch", "breed_type", "breeding_date", "expected_offspring", "notes"},
		OrderBy: "breeding_date DESC",
		Scan: func(row RowScanner) (model.BreedingRecord, error) {
			var rec model.BreedingRecord
			err := row.Scan(&rec.ID, &rec.ParentBatch, &rec.BreedType, &rec.BreedingDate,
				&rec.ExpectedOffspring, &rec.Notes)
			return rec, err
		},
		Values: func(rec model.BreedingRecord) []any {
			return []any{rec.ParentBatch, rec.BreedType, rec.BreedingDate, rec.ExpectedOffspring, rec.Notes}
		},
	})
}

func NewTransactionRecords(pool *pgxpool.Pool) *Records[model.Transaction] {
	return NewRecords(pool, RowDef[model.Transaction]{
		Name:    "Transaction",
		Table:   "transactions",
		Columns: []string{"type", "category", "batch", "units", "cost_per_unit", "record_date", "notes"},
		OrderBy: "record_date DESC",
		Scan: func(row RowScanner) (model.Transaction, error) {
			var t model.Transaction
			err := row.Scan(&t.ID, &t.Type, &t.Category, &t.Batch, &t.Units,
				&t.CostPerUnit, &t.RecordDate, &t.Notes)
			return t, err
		},
		Values: func(t model.Transaction) []any {
			return []any{t.Type, t.Category, t.Batch, t.Units, t.CostPerUnit, t.RecordDate, t.Notes}
		},
	})
}

func NewInventoryRecords(pool *pgxpool.Pool) *Records[model.InventoryItem] {
	return NewRecords(pool, RowDef[model.InventoryItem]{
		Name:    "Inventory item",
		Table:   "inventory_items",
		Columns: []string{"name", "category", "quantity", "unit", "low_stock_notification_sent"},
		OrderBy: "name",
		Scan: func(row RowScanner) (model.InventoryItem, error) {
			var item model.InventoryItem
			err := row.Scan(&item.ID, &item.Name, &item.Category, &item.Quantity,
				&item.Unit, &item.LowStockNotificationSent)
			return item, err
		},
		Values: func(item model.InventoryItem) []any {
			return []any{item.Name, item.Category, item.Quantity, item.Unit, item.LowStockNotificationSent}
		},
	})
}

func NewPestEntries(pool *pgxpool.Pool) *Records[model.PestEntry] {
	return NewRecords(pool, RowDef[model.PestEntry]{
		Name:    "Pest entry",
		Table:   "pest_entries",
		Columns: []string{"name", "details", "control", "type"},
		OrderBy: "name",
		Scan: func(row RowScanner) (model.PestEntry, error) {
			var p model.PestEntry
			err := row.Scan(&p.ID, &p.Name, &p.Details, &p.Control, &p.Type)
			return p, err
		},
		Values: func(p model.PestEntry) []any {
			return []any{p.Name, p.Details, p.Control, p.Type}
		},
	})
}
