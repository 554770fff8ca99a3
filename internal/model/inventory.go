package model

import (
	"os"
	"time"
)

// Inventory is the result of one collection run: the host it was taken
// from, when it was taken, and the ordered record sequence.
//
// Records preserve the enumeration order of the underlying source. The
// slice is owned by the caller and passed explicitly into the report and
// database layers; nothing retains it afterwards.
type Inventory struct {
	// Hostname is the machine the inventory was collected from.
	Hostname string `json:"hostname"`

	// CollectedAt is the timestamp of the collection run.
	CollectedAt time.Time `json:"collected_at"`

	// Records is the ordered, normalized record sequence.
	Records []SoftwareRecord `json:"records"`
}

// NewInventory creates an Inventory for the current host and time,
// taking ownership of the given records.
func NewInventory(records []SoftwareRecord) *Inventory {
	hostname, _ := os.Hostname()
	return &Inventory{
		Hostname:    hostname,
		CollectedAt: time.Now().UTC(),
		Records:     records,
	}
}

// Len returns the number of records in the inventory.
func (inv *Inventory) Len() int {
	return len(inv.Records)
}
