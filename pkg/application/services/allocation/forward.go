package allocation

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/ygroup/backlog/pkg/domain/entities"
)

// poKey identifies a (purchasing document, material) pair in the delivery
// stream. Pairs already promised to a vendor-PO line are removed from the
// pool before forward allocation.
type poKey struct {
	po       string
	material entities.MaterialID
}

// componentState tracks forward consumption of one restricted component
// across all the lines that draw on it. The cursor never rewinds, so a
// delivery feeds at most one accumulation.
type componentState struct {
	deliveries []entities.DeliveryRecord
	balance    float64
	cursor     int
}

// ResolveForward re-resolves the "No dispo" lines of the initial pass
// against incoming deliveries in date order, producing the updated status,
// the updated remaining quantity and the expected last delivery date.
func ResolveForward(
	lines []entities.BacklogLine,
	deliveries []entities.DeliveryRecord,
	kits *entities.KitBOM,
	restricted *entities.RestrictedComponentMap,
) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &entities.ComputationError{
				Pass: "forward delivery pass",
				Err:  fmt.Errorf("unexpected failure: %v", r),
			}
		}
	}()

	for i := range lines {
		lines[i].UpdatedStockStatus = lines[i].StockStatus
		lines[i].LastDeliveryDate = lines[i].CreatedOn
		lines[i].UpdatedRemainingQty = lines[i].RemainingQty
	}

	pool := dateVendorPOLines(lines, deliveries)

	eligible := func(l *entities.BacklogLine) bool {
		return l.StockStatus == entities.StockNoDispo &&
			l.Statut == entities.LineNoBlock &&
			l.Controller != entities.ControllerNoForward &&
			l.Controller != entities.ControllerNoForward2
	}

	allocateRestrictedForward(lines, pool, restricted, eligible)
	allocatePlainForward(lines, pool, eligible)
	resolveKitsForward(lines, kits, eligible)

	return nil
}

// dateVendorPOLines stamps every potential-dispo line carrying a vendor PO
// with the date of the first matching delivery, and returns the delivery
// pool with those promised (PO, material) pairs removed.
func dateVendorPOLines(
	lines []entities.BacklogLine,
	deliveries []entities.DeliveryRecord,
) []entities.DeliveryRecord {
	firstDate := make(map[poKey]time.Time)
	for _, d := range deliveries {
		k := poKey{po: d.PurchasingDoc, material: d.Material}
		if _, ok := firstDate[k]; !ok {
			firstDate[k] = d.DeliveryDate
		}
	}

	consumed := make(map[poKey]bool)
	for i := range lines {
		line := &lines[i]
		if line.StockStatus != entities.StockPotentialDispo || !line.HasVendorPO() {
			continue
		}
		k := poKey{po: line.VendorPO, material: line.Material}
		if date, ok := firstDate[k]; ok {
			line.LastDeliveryDate = date
		}
		consumed[k] = true
	}

	pool := make([]entities.DeliveryRecord, 0, len(deliveries))
	for _, d := range deliveries {
		if consumed[poKey{po: d.PurchasingDoc, material: d.Material}] {
			continue
		}
		pool = append(pool, d)
	}
	return pool
}

// allocateRestrictedForward serves SECUROC lines whose material is in the
// restricted map. Each needs every declared component covered by that
// component's delivery stream; component balances and cursors are shared
// across lines, oldest order first.
func allocateRestrictedForward(
	lines []entities.BacklogLine,
	pool []entities.DeliveryRecord,
	restricted *entities.RestrictedComponentMap,
	eligible func(*entities.BacklogLine) bool,
) {
	var idxs []int
	for i := range lines {
		if eligible(&lines[i]) &&
			lines[i].Type == entities.TypeSecuroc &&
			lines[i].Controller != entities.ControllerKit &&
			restricted.IsRestricted(lines[i].Material) {
			idxs = append(idxs, i)
		}
	}
	if len(idxs) == 0 {
		return
	}

	sort.SliceStable(idxs, func(a, b int) bool {
		return lines[idxs[a]].CreatedOn.Before(lines[idxs[b]].CreatedOn)
	})

	states := make(map[entities.MaterialID]*componentState)
	stateFor := func(component entities.MaterialID) *componentState {
		if st, ok := states[component]; ok {
			return st
		}
		st := &componentState{}
		for _, d := range pool {
			if d.Material == component {
				st.deliveries = append(st.deliveries, d)
			}
		}
		sort.SliceStable(st.deliveries, func(a, b int) bool {
			return st.deliveries[a].DeliveryDate.Before(st.deliveries[b].DeliveryDate)
		})
		states[component] = st
		return st
	}

	for _, idx := range idxs {
		line := &lines[idx]
		required := math.Abs(line.QteSales)
		components := restricted.Components(line.Material)

		allCovered := true
		var latest time.Time

		for _, component := range components {
			st := stateFor(component)

			var date time.Time
			if st.balance >= required {
				if st.cursor > 0 {
					date = st.deliveries[st.cursor-1].DeliveryDate
				}
			} else {
				for st.cursor < len(st.deliveries) && st.balance < required {
					d := st.deliveries[st.cursor]
					st.balance += d.QtyPurchasing
					date = d.DeliveryDate
					st.cursor++
				}
			}

			if st.balance >= required {
				if !date.IsZero() && date.After(latest) {
					latest = date
				}
			} else {
				allCovered = false
			}
		}

		if allCovered {
			line.UpdatedStockStatus = entities.StockPotentialDispo
			line.LastDeliveryDate = latest
			for _, component := range components {
				states[component].balance -= required
			}
		} else {
			line.UpdatedStockStatus = entities.StockNoDispo
			line.LastDeliveryDate = time.Time{}
		}
	}
}

// allocatePlainForward serves the remaining shortage lines per material in
// initial SortOrder, consuming the material's deliveries date-first. The
// remaining delivery quantity decreases even when a line cannot be covered,
// so later lines see the true residual supply.
func allocatePlainForward(
	lines []entities.BacklogLine,
	pool []entities.DeliveryRecord,
	eligible func(*entities.BacklogLine) bool,
) {
	filter := func(l *entities.BacklogLine) bool {
		return eligible(l) &&
			l.Controller != entities.ControllerKit &&
			l.Type != entities.TypeSecuroc
	}

	poolByMaterial := make(map[entities.MaterialID][]entities.DeliveryRecord)
	for _, d := range pool {
		poolByMaterial[d.Material] = append(poolByMaterial[d.Material], d)
	}

	for _, idxs := range groupByMaterial(lines, filter) {
		material := lines[idxs[0]].Material
		arr := poolByMaterial[material]

		if len(arr) == 0 {
			for _, idx := range idxs {
				line := &lines[idx]
				line.UpdatedStockStatus = entities.StockNoDispo
				line.LastDeliveryDate = line.CreatedOn
				line.UpdatedRemainingQty = line.RemainingQty
			}
			continue
		}

		ordered := make([]int, len(idxs))
		copy(ordered, idxs)
		sort.SliceStable(ordered, func(a, b int) bool {
			return lines[ordered[a]].SortOrder < lines[ordered[b]].SortOrder
		})

		arr = append([]entities.DeliveryRecord(nil), arr...)
		sort.SliceStable(arr, func(a, b int) bool {
			return arr[a].DeliveryDate.Before(arr[b].DeliveryDate)
		})

		remainingDelivery := 0.0
		for _, d := range arr {
			remainingDelivery += d.QtyPurchasing
		}
		accumulated := 0.0
		cursor := 0
		var lastDate time.Time

		for _, idx := range ordered {
			line := &lines[idx]
			needed := math.Abs(line.RemainingQty)

			switch {
			case accumulated >= needed:
				line.UpdatedStockStatus = entities.StockPotentialDispo
				line.LastDeliveryDate = lastDate
				remainingDelivery -= needed
				accumulated -= needed
				line.UpdatedRemainingQty = remainingDelivery

			case remainingDelivery >= needed:
				var date time.Time
				for cursor < len(arr) {
					if accumulated >= needed {
						date = arr[cursor-1].DeliveryDate
						break
					}
					d := arr[cursor]
					accumulated += d.QtyPurchasing
					lastDate = d.DeliveryDate
					if accumulated >= needed {
						date = d.DeliveryDate
						cursor++
						break
					}
					cursor++
				}
				if date.IsZero() && cursor > 0 {
					date = arr[cursor-1].DeliveryDate
				}

				line.UpdatedStockStatus = entities.StockPotentialDispo
				line.LastDeliveryDate = date
				remainingDelivery -= needed
				accumulated -= needed
				line.UpdatedRemainingQty = remainingDelivery

			default:
				line.UpdatedStockStatus = entities.StockNoDispo
				line.LastDeliveryDate = line.CreatedOn
				remainingDelivery -= needed
				line.UpdatedRemainingQty = remainingDelivery
			}
		}
	}
}

// resolveKitsForward re-resolves shortage kit lines: a kit becomes potential
// dispo only when every component line of the same order already is.
func resolveKitsForward(
	lines []entities.BacklogLine,
	kits *entities.KitBOM,
	eligible func(*entities.BacklogLine) bool,
) {
	for i := range lines {
		line := &lines[i]
		if !eligible(line) || line.Controller != entities.ControllerKit {
			continue
		}

		if kitComponentsHaveStatus(lines, line, kits, func(l *entities.BacklogLine) entities.StockStatus {
			return l.UpdatedStockStatus
		}, entities.StockPotentialDispo) {
			line.UpdatedStockStatus = entities.StockPotentialDispo
		} else {
			line.UpdatedStockStatus = entities.StockNoDispo
		}
	}
}
