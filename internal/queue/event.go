// Package queue defines message payloads exchanged over the message broker.
package queue

// PartStatusChangedEvent is published when the status of a part linked
// to a work order actually changes (idempotent re-sets do not publish).
// It carries enough information for downstream consumers to log or
// notify without querying the primary database.
type PartStatusChangedEvent struct {
    OrderNumber string `json:"ot_number"`
    PartNumber  string `json:"part_number"`
    PartName    string `json:"part_name"`
    Quantity    int    `json:"quantity"`
    OldStatus   string `json:"old_status"`
    NewStatus   string `json:"new_status"`
    ChangedBy   string `json:"changed_by"`
    ChangedAt   string `json:"changed_at"`
}
