// Package dto holds the data transfer objects exchanged between the
// application services and the interface layer.
package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ygroup/backlog/pkg/domain/entities"
)

// RunResult contains the complete output of an availability run.
type RunResult struct {
	RunID      uuid.UUID
	Lines      []entities.BacklogLine
	Deliveries []entities.DeliveryRecord
	Orders     []entities.OrderClassification
	Elapsed    time.Duration
	Summary    RunSummary
}

// RunSummary carries the headline counts of a run.
type RunSummary struct {
	TotalLines     int
	TotalOrders    int
	OrdersByType   map[entities.OrderType]int
	LinesDispo     int
	LinesNoDispo   int
	LinesPotential int
	LinesCompleted int
	LinesBlocked   int
}

// Summarize derives the summary counts from resolved lines and orders.
func Summarize(lines []entities.BacklogLine, orders []entities.OrderClassification) RunSummary {
	s := RunSummary{
		TotalLines:   len(lines),
		TotalOrders:  len(orders),
		OrdersByType: make(map[entities.OrderType]int),
	}
	for _, o := range orders {
		s.OrdersByType[o.Type]++
	}
	for i := range lines {
		switch lines[i].UpdatedStockStatus {
		case entities.StockDispo:
			s.LinesDispo++
		case entities.StockNoDispo:
			s.LinesNoDispo++
		case entities.StockPotentialDispo:
			s.LinesPotential++
		case entities.StockCompleted:
			s.LinesCompleted++
		case entities.StockBlock:
			s.LinesBlocked++
		}
	}
	return s
}
