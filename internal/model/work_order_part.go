package model

// WorkOrderPart mirrors the `ot_parts` link table. The primary key is
// (OrderID, PartID), so a part appears at most once per order;
// re-assigning replaces quantity and status instead of duplicating.
type WorkOrderPart struct {
    OrderID  int64  // ot_parts.ot_id
    PartID   int64  // ot_parts.part_id
    Quantity int    // ot_parts.quantity (positive)
    Status   string // ot_parts.status
}

// OrderPartDetail is one row of the per-order parts dialog: the link
// row joined with the catalog entry it points at.
type OrderPartDetail struct {
    PartID     int64  `json:"part_id"`
    PartNumber string `json:"part_number"`
    PartName   string `json:"part_name"`
    Quantity   int    `json:"quantity"`
    Status     string `json:"status"`
}
