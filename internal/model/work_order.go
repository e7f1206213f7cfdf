package model

// Work-order and order-part status values. The same three labels are
// used for the order itself and for each part linked to it; Entregada
// is the terminal label.
const (
    StatusPendiente = "Pendiente"
    StatusPedida    = "Pedida"
    StatusEntregada = "Entregada"
)

// ValidStatus reports whether s is one of the three accepted labels.
func ValidStatus(s string) bool {
    return s == StatusPendiente || s == StatusPedida || s == StatusEntregada
}

// WorkOrder mirrors the `ots` table. The VIN is a soft reference into
// the vins table: it is validated at creation time but not enforced by
// the store.
type WorkOrder struct {
    ID           int64  // ots.id
    OrderNumber  string // ots.ot_number (unique)
    SalesAdvisor string // ots.sales_advisor
    VIN          string // ots.vin
    Status       string // ots.status
    RequestDate  string // ots.request_date (ISO date string)
}

// WorkOrderSummary is one row of the order list view: the order plus
// the insurance provider of its vehicle and the number of linked part
// rows. PartCount is 0, never null, for orders without parts.
type WorkOrderSummary struct {
    OrderNumber  string `json:"ot_number"`
    SalesAdvisor string `json:"sales_advisor"`
    RequestDate  string `json:"request_date"`
    Status       string `json:"status"`
    Insurance    string `json:"insurance"`
    PartCount    int    `json:"part_count"`
}
