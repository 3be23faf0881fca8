package entities

import "time"

// DeliveryRecord is one expected supply event: an open purchase-order
// schedule line normalized to purchasing units. Immutable once built by
// supply preparation; the resolver passes read it but never mutate it.
type DeliveryRecord struct {
	PurchasingDoc string
	Material      MaterialID
	DeliveryDate  time.Time
	BaseUOM       string
	QtyPurchasing float64
}
