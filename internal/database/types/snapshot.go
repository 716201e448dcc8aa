package types

import "time"

// PriceSnapshot records one observed price for an item at a store, taken at
// vote time when the price snapshot flag is enabled. Snapshots are
// append-only history and never edited.
type PriceSnapshot struct {
	ID         uint64    `bun:",pk,autoincrement" json:"id"`
	ItemID     uint64    `bun:",notnull"          json:"itemId"`
	StoreTag   string    `bun:",nullzero"         json:"storeTag,omitempty"`
	Price      int       `bun:",notnull"          json:"price"`
	ObservedAt time.Time `bun:",notnull"          json:"observedAt"`
}

// NearbyNotification is the payload handed off to the external nearby-user
// notifier when a new item with a location receives its first vote. The
// engine emits it and does not deliver anything itself.
type NearbyNotification struct {
	ItemID    uint64  `json:"itemId"`
	ItemName  string  `json:"itemName"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	CreatorID uint64  `json:"creatorId"`
}
