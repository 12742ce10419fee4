package model

// ValidationError marks a missing or malformed request field. It unwraps to
// ErrInvalidInput so handlers can map it to a 400 uniformly.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " is required"
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func required(field string, ok bool) error {
	if ok {
		return nil
	}
	return &ValidationError{Field: field}
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (c Crop) Validate() error {
	return firstErr(
		required("cropType", c.CropType != ""),
		required("scientificName", c.ScientificName != ""),
	)
}

func (b Batch) Validate() error {
	return firstErr(
		required("batchName", b.BatchName != ""),
		required("selectAnimal", b.Animal != ""),
		required("startDate", !b.StartDate.IsZero()),
	)
}

func (r LivestockRecord) Validate() error {
	return firstErr(
		required("recordType", r.RecordType != ""),
		required("date", !r.RecordDate.IsZero()),
	)
}

func (r MedicalRecord) Validate() error {
	return firstErr(
		required("cropType", r.CropType != ""),
		required("date", !r.RecordDate.IsZero()),
		required("symptoms", r.Symptoms != ""),
		required("diagnosis", r.Diagnosis != ""),
		required("treatment", r.Treatment != ""),
	)
}

func (r LivestockMedicalRecord) Validate() error {
	return firstErr(
		required("recordType", r.RecordType != ""),
		required("parentBatch", r.ParentBatch != ""),
		required("recordDate", !r.RecordDate.IsZero()),
	)
}

func (r HarvestingRecord) Validate() error {
	return firstErr(
		required("cropType", r.CropType != ""),
		required("harvestedDate", !r.HarvestedDate.IsZero()),
		required("quantity", r.Quantity > 0),
	)
}

func (r BreedingRecord) Validate() error {
	return firstErr(
		required("parentBatch", r.ParentBatch != ""),
		required("breedType", r.BreedType != ""),
		required("breedingDate", !r.BreedingDate.IsZero()),
	)
}

func (t Transaction) Validate() error {
	if t.Type != TransactionIncome && t.Type != TransactionExpense {
		return &ValidationError{Field: "type"}
	}
	return firstErr(
		required("category", t.Category != ""),
		required("units", t.Units > 0),
		required("costPerUnit", t.CostPerUnit >= 0),
		required("recordDate", !t.RecordDate.IsZero()),
	)
}

func (i InventoryItem) Validate() error {
	return firstErr(
		required("name", i.Name != ""),
		required("quantity", i.Quantity >= 0),
	)
}

func (p PestEntry) Validate() error {
	return firstErr(
		required("name", p.Name != ""),
		required("type", p.Type != ""),
	)
}
