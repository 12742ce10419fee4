package model

// FinanceSummary is the headline report for a month or a year, with growth
// rates computed against the preceding period of equal length.
type FinanceSummary struct {
	Income           float64        `json:"income"`
	Expenses         float64        `json:"expenses"`
	Profit           float64        `json:"profit"`
	TransactionCount int            `json:"transactionCount"`
	IncomeGrowth     float64        `json:"incomeGrowth"`
	ExpenseGrowth    float64        `json:"expenseGrowth"`
	ProfitGrowth     float64        `json:"profitGrowth"`
	MonthlyData      []MonthlyPoint `json:"monthlyData"`
}

// MonthlyPoint is one month of income/expense totals. Date is "YYYY-M".
type MonthlyPoint struct {
	Date     string  `json:"date,omitempty"`
	Month    int     `json:"month,omitempty"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
}

type CategoryTotal struct {
	Category              string  `json:"category"`
	Total                 float64 `json:"total"`
	Count                 int     `json:"count"`
	AveragePerTransaction float64 `json:"averagePerTransaction"`
}

type BatchPerformance struct {
	Batch         string  `json:"batch"`
	Income        float64 `json:"income"`
	Expenses      float64 `json:"expenses"`
	Profit        float64 `json:"profit"`
	TotalUnits    float64 `json:"totalUnits"`
	ProfitPerUnit float64 `json:"profitPerUnit"`
}

type CropAnalytics struct {
	Crops          []CropTypeCount    `json:"crops"`
	MedicalRecords []DailyIssueCount  `json:"medicalRecords"`
	HarvestRecords []CropTypeQuantity `json:"harvestRecords"`
}

type CropTypeCount struct {
	CropType string `json:"cropType"`
	Count    int    `json:"count"`
}

type DailyIssueCount struct {
	Date       string `json:"date"`
	IssueCount int    `json:"issueCount"`
}

type CropTypeQuantity struct {
	CropType string  `json:"cropType"`
	Quantity float64 `json:"quantity"`
}

// Dashboard is the landing-page rollup: last twelve months of yield and
// finance series plus headline totals.
type Dashboard struct {
	CropYield     []YieldPoint     `json:"cropYield"`
	FinancialData []FinancialPoint `json:"financialData"`
	Stats         DashboardStats   `json:"stats"`
}

type YieldPoint struct {
	Month string  `json:"month"`
	Yield float64 `json:"yield"`
}

type FinancialPoint struct {
	Month    string  `json:"month"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
}

type DashboardStats struct {
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalExpenses float64 `json:"totalExpenses"`
	NetProfit     float64 `json:"netProfit"`
	AverageYield  float64 `json:"averageYield"`
}
