package model

import "time"

// StockGroup is a user-defined basket of stocks to analyze as pairs.
// Holds at most GroupMaxStocks ids; analysis requires at least GroupMinStocks.
type StockGroup struct {
	ID        string
	Name      string
	StockIDs  []string
	CreatedAt time.Time
	UpdatedAt time.Time
}
