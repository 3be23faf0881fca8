// Package allocation implements the two-stage availability engine: an
// initial pass that classifies every backlog line against current on-hand
// stock, and a forward pass that re-resolves the remaining "No dispo" lines
// against the time-ordered stream of incoming supplier deliveries.
//
// Both passes mutate the line slice in place, addressing lines by index;
// the slice is never reordered or reallocated mid-pass. Any failure inside
// a pass is fatal to the whole run: there is no per-line recovery.
package allocation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ygroup/backlog/pkg/domain/entities"
)

// ResolveInitial assigns a StockStatus to every backlog line using on-hand
// stock, vendor-PO matching, kit resolution and the restricted-component
// lookup. Transition rules apply in order; each only touches lines still
// unresolved by the previous ones.
func ResolveInitial(
	lines []entities.BacklogLine,
	deliveries []entities.DeliveryRecord,
	kits *entities.KitBOM,
	restricted *entities.RestrictedComponentMap,
) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &entities.ComputationError{
				Pass: "initial availability pass",
				Err:  fmt.Errorf("unexpected failure: %v", r),
			}
		}
	}()

	resetComputedFields(lines)
	assignOrderTotals(lines)
	markCompleted(lines)
	blockOrders(lines)
	matchVendorPOs(lines, deliveries)
	classifyRestricted(lines, restricted)
	allocateOnHand(lines)
	resolveKits(lines, kits)

	return nil
}

func resetComputedFields(lines []entities.BacklogLine) {
	for i := range lines {
		lines[i].StockStatus = entities.StockUnresolved
		lines[i].RemainingQty = lines[i].OnHandQty
		lines[i].SortOrder = 0
	}
}

func assignOrderTotals(lines []entities.BacklogLine) {
	totals := make(map[entities.OrderID]decimal.Decimal)
	for i := range lines {
		totals[lines[i].OrderID] = totals[lines[i].OrderID].Add(lines[i].OpenValue)
	}
	for i := range lines {
		lines[i].TotalOrderValue = totals[lines[i].OrderID]
	}
}

func markCompleted(lines []entities.BacklogLine) {
	for i := range lines {
		if lines[i].Statut == entities.LineCompleted {
			lines[i].StockStatus = entities.StockCompleted
			lines[i].SortOrder = -1
		}
	}
}

// blockOrders propagates a line-level block to every line of the order,
// including already-completed ones. Blocking is order-wide.
func blockOrders(lines []entities.BacklogLine) {
	blocked := make(map[entities.OrderID]bool)
	for i := range lines {
		if lines[i].Statut == entities.LineBlock {
			blocked[lines[i].OrderID] = true
		}
	}
	for i := range lines {
		if blocked[lines[i].OrderID] {
			lines[i].StockStatus = entities.StockBlock
			lines[i].Statut = entities.LineBlock
			lines[i].SortOrder = -1
		}
	}
}

// matchVendorPOs resolves unblocked lines that carry a vendor purchase-order
// reference. A line whose vendor PO appears in the delivery stream with the
// same material is expected supply; a vendor PO with no matching material,
// or absent entirely, means the line is already covered.
func matchVendorPOs(lines []entities.BacklogLine, deliveries []entities.DeliveryRecord) {
	poExists := make(map[string]bool, len(deliveries))
	poMaterial := make(map[string]map[entities.MaterialID]bool, len(deliveries))
	for _, d := range deliveries {
		poExists[d.PurchasingDoc] = true
		if poMaterial[d.PurchasingDoc] == nil {
			poMaterial[d.PurchasingDoc] = make(map[entities.MaterialID]bool)
		}
		poMaterial[d.PurchasingDoc][d.Material] = true
	}

	for i := range lines {
		line := &lines[i]
		if line.Statut != entities.LineNoBlock || !line.HasVendorPO() {
			continue
		}
		if !poExists[line.VendorPO] {
			line.StockStatus = entities.StockCompleted
			continue
		}
		if poMaterial[line.VendorPO][line.Material] {
			line.StockStatus = entities.StockPotentialDispo
			line.RemainingQty = 0
		} else {
			line.StockStatus = entities.StockCompleted
		}
	}
}

// classifyRestricted resolves SECUROC-type lines: a restricted top-level
// material has no own stock and starts "No dispo"; any other SECUROC line is
// served from stock directly. SortOrder is intentionally left at 0 here.
func classifyRestricted(lines []entities.BacklogLine, restricted *entities.RestrictedComponentMap) {
	for i := range lines {
		line := &lines[i]
		if line.Statut != entities.LineNoBlock ||
			line.Type != entities.TypeSecuroc ||
			line.StockStatus != entities.StockUnresolved {
			continue
		}
		if restricted.IsRestricted(line.Material) {
			line.StockStatus = entities.StockNoDispo
		} else {
			line.StockStatus = entities.StockDispo
		}
	}
}

// allocateOnHand walks each material's remaining lines in fairness order and
// depletes a running balance seeded with the on-hand quantity. The balance
// keeps being decremented on shortage, so the deficit carries forward to
// later lines of the same material.
func allocateOnHand(lines []entities.BacklogLine) {
	eligible := func(l *entities.BacklogLine) bool {
		return l.Statut == entities.LineNoBlock &&
			l.Controller != entities.ControllerKit &&
			l.Type != entities.TypeSecuroc &&
			l.StockStatus == entities.StockUnresolved
	}

	for _, idxs := range groupByMaterial(lines, eligible) {
		ordered := orderByFairness(lines, idxs)
		balance := lines[ordered[0]].OnHandQty

		for rank, idx := range ordered {
			line := &lines[idx]
			line.SortOrder = rank + 1

			if balance >= line.QteSales {
				line.StockStatus = entities.StockDispo
			} else {
				line.StockStatus = entities.StockNoDispo
			}
			balance -= line.QteSales
			line.RemainingQty = balance
		}
	}
}

// resolveKits resolves kit lines last: a kit is available only if every
// declared component is independently "Dispo" on the same order. A kit
// component missing from the order counts as unavailable.
func resolveKits(lines []entities.BacklogLine, kits *entities.KitBOM) {
	for i := range lines {
		line := &lines[i]
		if line.Statut != entities.LineNoBlock ||
			line.Controller != entities.ControllerKit ||
			line.StockStatus != entities.StockUnresolved {
			continue
		}

		line.SortOrder = 0
		if kitComponentsHaveStatus(lines, line, kits, func(l *entities.BacklogLine) entities.StockStatus {
			return l.StockStatus
		}, entities.StockDispo) {
			line.StockStatus = entities.StockDispo
		} else {
			line.StockStatus = entities.StockNoDispo
		}
	}
}

// kitComponentsHaveStatus reports whether every component of a kit line,
// matched on the same order, has the wanted status. The first matching line
// per component decides, mirroring one physical row per (order, material).
func kitComponentsHaveStatus(
	lines []entities.BacklogLine,
	kit *entities.BacklogLine,
	kits *entities.KitBOM,
	status func(*entities.BacklogLine) entities.StockStatus,
	want entities.StockStatus,
) bool {
	for _, component := range kits.Components(kit.Material) {
		found := false
		for i := range lines {
			if lines[i].Material == component && lines[i].OrderID == kit.OrderID {
				found = true
				if status(&lines[i]) != want {
					return false
				}
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// groupByMaterial collects the indices of lines matching the filter, grouped
// by material in first-appearance order.
func groupByMaterial(
	lines []entities.BacklogLine,
	filter func(*entities.BacklogLine) bool,
) [][]int {
	byMaterial := make(map[entities.MaterialID][]int)
	var order []entities.MaterialID

	for i := range lines {
		if !filter(&lines[i]) {
			continue
		}
		m := lines[i].Material
		if _, ok := byMaterial[m]; !ok {
			order = append(order, m)
		}
		byMaterial[m] = append(byMaterial[m], i)
	}

	groups := make([][]int, 0, len(order))
	for _, m := range order {
		groups = append(groups, byMaterial[m])
	}
	return groups
}
