package model

// Part mirrors the `parts` table: the global inventory catalog, not
// tied to any particular order. Part rows are rendered directly by the
// parts list view, hence the json tags.
type Part struct {
	ID         int64  `json:"id"`          // parts.id
	PartNumber string `json:"part_number"` // parts.part_number (unique)
	PartName   string `json:"part_name"`   // parts.part_name
}
