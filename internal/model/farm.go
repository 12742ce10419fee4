package model

import "time"

// Crop is a planted crop record.
type Crop struct {
	ID                      string     `json:"id"`
	CropType                string     `json:"cropType"`
	ScientificName          string     `json:"scientificName"`
	Planted                 *time.Time `json:"planted,omitempty"`
	ExpectedHarvest         *time.Time `json:"expectedHarvest,omitempty"`
	Location                string     `json:"location,omitempty"`
	HarvestNotificationSent bool       `json:"harvestNotificationSent"`
}

// Batch is a group of animals raised together.
type Batch struct {
	ID        string    `json:"id"`
	BatchName string    `json:"batchName"`
	Animal    string    `json:"selectAnimal"`
	RaisedFor string    `json:"raisedFor"`
	StartDate time.Time `json:"startDate"`
}

// LivestockRecord is a daily production or loss entry
// (feeding, egg, milk, death, harvest-sale).
type LivestockRecord struct {
	ID            string    `json:"id"`
	RecordType    string    `json:"recordType"`
	RecordDate    time.Time `json:"date"`
	LivestockType string    `json:"livestockType,omitempty"`
	FeedType      string    `json:"feedType,omitempty"`
	Quantity      float64   `json:"quantity,omitempty"`
	Quality       string    `json:"quality,omitempty"`
	Cause         string    `json:"cause,omitempty"`
	Price         float64   `json:"price,omitempty"`
}

// MedicalRecord tracks a crop health issue and its treatment.
type MedicalRecord struct {
	ID         string    `json:"id"`
	CropType   string    `json:"cropType"`
	RecordDate time.Time `json:"date"`
	Symptoms   string    `json:"symptoms"`
	Diagnosis  string    `json:"diagnosis"`
	Treatment  string    `json:"treatment"`
	Notes      string    `json:"notes,omitempty"`
}

// LivestockMedicalRecord tracks vaccinations and treatments per batch.
type LivestockMedicalRecord struct {
	ID          string    `json:"id"`
	RecordType  string    `json:"recordType"`
	ParentBatch string    `json:"parentBatch"`
	DiseaseType string    `json:"diseaseType,omitempty"`
	Dosage      string    `json:"dosage,omitempty"`
	Medication  string    `json:"medication,omitempty"`
	RecordDate  time.Time `json:"recordDate"`
	Notes       string    `json:"notes,omitempty"`
}

type HarvestingRecord struct {
	ID            string    `json:"id"`
	CropType      string    `json:"cropType"`
	HarvestedDate time.Time `json:"harvestedDate"`
	Quantity      float64   `json:"quantity"`
	Notes         string    `json:"notes,omitempty"`
}

type BreedingRecord struct {
	ID                string    `json:"id"`
	ParentBatch       string    `json:"parentBatch"`
	BreedType         string    `json:"breedType"`
	BreedingDate      time.Time `json:"breedingDate"`
	ExpectedOffspring int       `json:"expectedOffspring"`
	Notes             string    `json:"notes,omitempty"`
}

const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

// Transaction is a finance ledger entry. The amount of a transaction is
// Units * CostPerUnit; it is never stored denormalized.
type Transaction struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Batch       string    `json:"batch"`
	Units       float64   `json:"units"`
	CostPerUnit float64   `json:"costPerUnit"`
	RecordDate  time.Time `json:"recordDate"`
	Notes       string    `json:"notes,omitempty"`
}

type InventoryItem struct {
	ID                       string  `json:"id"`
	Name                     string  `json:"name"`
	Category                 string  `json:"category,omitempty"`
	Quantity                 float64 `json:"quantity"`
	Unit                     string  `json:"unit,omitempty"`
	LowStockNotificationSent bool    `json:"lowStockNotificationSent"`
}

// PestEntry is a reference entry about a pest or pesticide.
type PestEntry struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Details string `json:"details"`
	Control string `json:"control"`
	Type    string `json:"type"`
}

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	Link      string    `json:"link,omitempty"`
	CreatedAt time.Time `json:"date"`
}

// Notification types accepted by the notifications table.
const (
	NotifyCrop      = "crop"
	NotifyLivestock = "livestock"
	NotifyWeather   = "weather"
	NotifyInventory = "inventory"
	NotifyFinance   = "finance"
	NotifySystem    = "system"
)
