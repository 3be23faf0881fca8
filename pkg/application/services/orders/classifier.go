// Package orders aggregates resolved backlog lines into one availability
// classification per sales order.
package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ygroup/backlog/pkg/domain/entities"
)

// Classify rolls the lines up by order, derives the order-level type from
// the set of line statuses, and stamps each line with its order's type.
// Orders come back in first-appearance order; the line slice keeps its
// ordering.
func Classify(lines []entities.BacklogLine) []entities.OrderClassification {
	type orderAgg struct {
		statuses   map[entities.StockStatus]bool
		totalValue decimal.Decimal
		createdOn  time.Time
		lastDate   time.Time
		lineCount  int
	}

	aggs := make(map[entities.OrderID]*orderAgg)
	var order []entities.OrderID

	for i := range lines {
		line := &lines[i]
		agg, ok := aggs[line.OrderID]
		if !ok {
			agg = &orderAgg{
				statuses:  make(map[entities.StockStatus]bool),
				createdOn: line.CreatedOn,
			}
			aggs[line.OrderID] = agg
			order = append(order, line.OrderID)
		}
		agg.statuses[line.UpdatedStockStatus] = true
		agg.totalValue = agg.totalValue.Add(line.OpenValue)
		agg.lineCount++
		if !line.LastDeliveryDate.IsZero() && line.LastDeliveryDate.After(agg.lastDate) {
			agg.lastDate = line.LastDeliveryDate
		}
	}

	result := make([]entities.OrderClassification, 0, len(order))
	types := make(map[entities.OrderID]entities.OrderType, len(order))
	for _, id := range order {
		agg := aggs[id]
		t := orderType(agg.statuses)
		types[id] = t
		result = append(result, entities.OrderClassification{
			OrderID:          id,
			Type:             t,
			TotalValue:       agg.totalValue,
			CreatedOn:        agg.createdOn,
			LastDeliveryDate: agg.lastDate,
			LineCount:        agg.lineCount,
		})
	}

	for i := range lines {
		lines[i].OrderType = types[lines[i].OrderID]
	}

	return result
}

// orderType collapses the distinct line statuses of an order into a single
// order type. Rules apply top down; the first match wins.
func orderType(statuses map[entities.StockStatus]bool) entities.OrderType {
	switch {
	case statuses[entities.StockBlock]:
		return entities.OrderBlock
	case statuses[entities.StockNoDispo]:
		return entities.OrderNoDispo
	case len(statuses) == 1 && statuses[entities.StockCompleted]:
		return entities.OrderCompleted
	case statuses[entities.StockDispo] && !statuses[entities.StockPotentialDispo] && !statuses[entities.StockUnresolved]:
		return entities.OrderDispo
	case statuses[entities.StockPotentialDispo] && !statuses[entities.StockUnresolved]:
		return entities.OrderPotentialDispo
	default:
		return entities.OrderOthers
	}
}
