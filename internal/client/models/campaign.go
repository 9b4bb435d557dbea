package models

type Campaign struct {
	ID          int64     `json:"id,omitempty"`
	UserID      int64     `json:"user_id,omitempty"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	WorldName   *string   `json:"world_name,omitempty"`
	CurrentDate *string   `json:"current_date,omitempty"`
	CreatedAt   Timestamp `json:"created_at,omitzero"`
	UpdatedAt   Timestamp `json:"updated_at,omitzero"`
}

// CampaignWithStats is returned by GET /campaigns/{id}. Stats holds per-kind
// counters such as "npc_count" and "location_count".
type CampaignWithStats struct {
	Campaign
	Stats map[string]int `json:"stats"`
}
