package models

// RenameRequest is the body of PUT /api/item/rename.
type RenameRequest struct {
	Collection string `json:"collection"`
	OldName    string `json:"old_name"`
	NewName    string `json:"new_name"`
}

// CategoryRequest is the body of PUT /api/item/category.
type CategoryRequest struct {
	Collection  string `json:"collection"`
	ItemName    string `json:"item_name"`
	NewCategory string `json:"new_category"`
}

// SeasonRequest is the body of PUT /api/item/season. It carries no
// collection: seasons only exist for the season-bearing collection.
type SeasonRequest struct {
	ItemName  string `json:"item_name"`
	NewSeason string `json:"new_season"`
}

// ItemSummary is one entry in the management UI's item listing.
type ItemSummary struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// CollectionData is the payload of GET /api/data/{collection}.
type CollectionData struct {
	ClothingIndex Index     `json:"clothing_index"`
	PageItems     PageItems `json:"page_items"`
	Seasons       SeasonMap `json:"seasons,omitempty"`
}
