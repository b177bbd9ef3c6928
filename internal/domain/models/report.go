package models

import "time"

// FinancialReport aggregates completed transactions for one farm.
type FinancialReport struct {
	FarmID           string             `json:"farmId"`
	From             *time.Time         `json:"from,omitempty"`
	To               *time.Time         `json:"to,omitempty"`
	TotalSales       float64            `json:"totalSales"`
	TotalExpenses    float64            `json:"totalExpenses"`
	TotalInvestments float64            `json:"totalInvestments"`
	NetProfit        float64            `json:"netProfit"`
	ByCategory       map[string]float64 `json:"transactionsByCategory"`
	// Transactions is populated only for detailed reports.
	Transactions []Transaction `json:"transactions,omitempty"`
}

// HealthReport summarizes veterinary state for one farm.
type HealthReport struct {
	FarmID            string         `json:"farmId"`
	TotalVaccinations int            `json:"totalVaccinations"`
	ActiveDiseases    []HealthRecord `json:"activeDiseases"`
	UpcomingFollowUps []HealthRecord `json:"upcomingFollowUps"`
}

// StockUpdate is broadcast to realtime subscribers whenever order
// fulfillment or cancellation mutates a product's quantity.
type StockUpdate struct {
	ProductID   string `json:"productId"`
	FarmID      string `json:"farmId"`
	NewQuantity int    `json:"newQuantity"`
	Available   bool   `json:"available"`
}
