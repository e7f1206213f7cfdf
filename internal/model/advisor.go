package model

// Advisor mirrors the `advisors` table. Vehicles and work orders
// reference advisors by name, not by id, so a name is immutable once
// other rows point at it. Advisor rows are rendered directly by the
// advisor list view, hence the json tags.
type Advisor struct {
    ID   int64  `json:"id"`   // advisors.id
    Name string `json:"name"` // advisors.name (unique)
}
