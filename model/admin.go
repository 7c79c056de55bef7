package model

import "github.com/shopspring/decimal"

type AdminStats struct {
	TotalUsers         int             `json:"totalUsers"`
	TotalEvents        int             `json:"totalEvents"`
	TotalTicketsSold   int             `json:"totalTicketsSold"`
	TotalRevenue       decimal.Decimal `json:"totalRevenue"`
	RecentTransactions []Transaction   `json:"recentTransactions"`
	RecentEvents       []Event         `json:"recentEvents"`
	RecentUsers        []User          `json:"recentUsers"`
}
