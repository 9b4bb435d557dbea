package models

import "encoding/json"

// Common values of the status and visibility fields.
const (
	StatusDraft     = "draft"
	VisibilityDM    = "dm_only"
	IdeaStatusRaw   = "raw_idea"
	IdeaImplemented = "implemented"
)

// Record carries the fields the server adds to every campaign-scoped element.
type Record struct {
	ID         int64     `json:"id,omitempty"`
	CampaignID int64     `json:"campaign_id,omitempty"`
	CreatedAt  Timestamp `json:"created_at,omitzero"`
	UpdatedAt  Timestamp `json:"updated_at,omitzero"`
}

type NPC struct {
	Record
	Name                  string           `json:"name"`
	Race                  *string          `json:"race,omitempty"`
	Gender                *string          `json:"gender,omitempty"`
	Age                   *int             `json:"age,omitempty"`
	Occupation            *string          `json:"occupation,omitempty"`
	LocationID            *int64           `json:"location_id,omitempty"`
	PersonalityTraits     []string         `json:"personality_traits,omitempty"`
	Ideals                *string          `json:"ideals,omitempty"`
	Bonds                 *string          `json:"bonds,omitempty"`
	Flaws                 *string          `json:"flaws,omitempty"`
	AppearanceDescription *string          `json:"appearance_description,omitempty"`
	Background            *string          `json:"background,omitempty"`
	Stats                 map[string]any   `json:"stats,omitempty"`
	Relationships         []map[string]any `json:"relationships,omitempty"`
	Status                string           `json:"status,omitempty"`
	Visibility            string           `json:"visibility,omitempty"`
	VoiceDescription      *string          `json:"voice_description,omitempty"`
	Notes                 *string          `json:"notes,omitempty"`
}

// Relationship links an NPC to another element. TargetName and
// TargetOccupation are filled in by the server on reads.
type Relationship struct {
	TargetType       string `json:"target_type"`
	TargetID         int64  `json:"target_id"`
	RelationshipType string `json:"relationship_type,omitempty"`
	Description      string `json:"description,omitempty"`
	TargetName       string `json:"target_name,omitempty"`
	TargetOccupation string `json:"target_occupation,omitempty"`
}

// NPCRelationships is returned by GET .../npcs/{id}/relationships.
type NPCRelationships struct {
	NPCID         int64          `json:"npc_id"`
	NPCName       string         `json:"npc_name"`
	Relationships []Relationship `json:"relationships"`
}

// RelationshipsUpdate is returned by PUT .../npcs/{id}/relationships.
type RelationshipsUpdate struct {
	Message       string         `json:"message"`
	Relationships []Relationship `json:"relationships"`
}

type Location struct {
	Record
	Name               string           `json:"name"`
	Type               *string          `json:"type,omitempty"`
	ParentLocationID   *int64           `json:"parent_location_id,omitempty"`
	Population         *int             `json:"population,omitempty"`
	Demographics       map[string]any   `json:"demographics,omitempty"`
	GovernmentType     *string          `json:"government_type,omitempty"`
	EconomicStatus     *string          `json:"economic_status,omitempty"`
	NotableFeatures    []string         `json:"notable_features,omitempty"`
	Description        *string          `json:"description,omitempty"`
	History            *string          `json:"history,omitempty"`
	CurrentEvents      []map[string]any `json:"current_events,omitempty"`
	Defenses           *string          `json:"defenses,omitempty"`
	TradeGoods         []map[string]any `json:"trade_goods,omitempty"`
	ConnectedLocations []map[string]any `json:"connected_locations,omitempty"`
	Status             string           `json:"status,omitempty"`
	Visibility         string           `json:"visibility,omitempty"`
	AmbientDescription *string          `json:"ambient_description,omitempty"`
	Notes              *string          `json:"notes,omitempty"`
}

type Organization struct {
	Record
	Name                   string   `json:"name"`
	Type                   *string  `json:"type,omitempty"`
	Scope                  *string  `json:"scope,omitempty"`
	HeadquartersLocationID *int64   `json:"headquarters_location_id,omitempty"`
	LeaderNPCID            *int64   `json:"leader_npc_id,omitempty"`
	Goals                  []string `json:"goals,omitempty"`
	Methods                []string `json:"methods,omitempty"`
	Resources              *string  `json:"resources,omitempty"`
	InfluenceLevel         *string  `json:"influence_level,omitempty"`
	MembershipSize         *string  `json:"membership_size,omitempty"`
	NotableMembers         []int64  `json:"notable_members,omitempty"`
	Allies                 []int64  `json:"allies,omitempty"`
	Enemies                []int64  `json:"enemies,omitempty"`
	Reputation             *string  `json:"reputation,omitempty"`
	Status                 string   `json:"status,omitempty"`
	Visibility             string   `json:"visibility,omitempty"`
	Notes                  *string  `json:"notes,omitempty"`
}

type PlotHook struct {
	Record
	Title                string           `json:"title"`
	Description          *string          `json:"description,omitempty"`
	HookType             *string          `json:"hook_type,omitempty"`
	Urgency              *string          `json:"urgency,omitempty"`
	Complexity           *string          `json:"complexity,omitempty"`
	RelatedNPCs          []int64          `json:"related_npcs,omitempty"`
	RelatedLocations     []int64          `json:"related_locations,omitempty"`
	RelatedOrganizations []int64          `json:"related_organizations,omitempty"`
	Prerequisites        []map[string]any `json:"prerequisites,omitempty"`
	Rewards              map[string]any   `json:"rewards,omitempty"`
	Consequences         map[string]any   `json:"consequences,omitempty"`
	Status               string           `json:"status,omitempty"`
	Visibility           string           `json:"visibility,omitempty"`
	Notes                *string          `json:"notes,omitempty"`
}

type Event struct {
	Record
	Title        string           `json:"title"`
	Description  *string          `json:"description,omitempty"`
	EventType    *string          `json:"event_type,omitempty"`
	Date         *string          `json:"date,omitempty"`
	LocationID   *int64           `json:"location_id,omitempty"`
	Participants []map[string]any `json:"participants,omitempty"`
	Causes       []string         `json:"causes,omitempty"`
	Effects      []string         `json:"effects,omitempty"`
	Visibility   string           `json:"visibility,omitempty"`
	Status       string           `json:"status,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
}

type Item struct {
	Record
	Name               string         `json:"name"`
	Type               *string        `json:"type,omitempty"`
	Rarity             *string        `json:"rarity,omitempty"`
	Description        *string        `json:"description,omitempty"`
	MechanicalEffects  map[string]any `json:"mechanical_effects,omitempty"`
	History            *string        `json:"history,omitempty"`
	CurrentOwnerID     *int64         `json:"current_owner_id,omitempty"`
	CurrentLocationID  *int64         `json:"current_location_id,omitempty"`
	Value              *int           `json:"value,omitempty"`
	Weight             *int           `json:"weight,omitempty"`
	AttunementRequired bool           `json:"attunement_required"`
	Status             string         `json:"status,omitempty"`
	Visibility         string         `json:"visibility,omitempty"`
	Notes              *string        `json:"notes,omitempty"`
}

type Idea struct {
	Record
	Content     string  `json:"content"`
	Status      string  `json:"status,omitempty"`
	IdeaType    *string `json:"idea_type,omitempty"`
	Priority    string  `json:"priority,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	AISessionID *int64  `json:"ai_session_id,omitempty"`
}

// IdeaConversion is returned by POST .../ideas/{id}/convert.
type IdeaConversion struct {
	Message string `json:"message"`
	Idea    Idea   `json:"idea"`
}

// SessionNote is a play-session log. The list-valued fields are free-form
// on the server, so they are kept as raw JSON.
type SessionNote struct {
	Record
	Title                  string            `json:"title"`
	SessionNumber          *int              `json:"session_number,omitempty"`
	SessionDate            *string           `json:"session_date,omitempty"`
	InWorldDate            *string           `json:"in_world_date,omitempty"`
	Summary                *string           `json:"summary,omitempty"`
	DetailedNotes          *string           `json:"detailed_notes,omitempty"`
	PlayerCharacters       []json.RawMessage `json:"player_characters,omitempty"`
	NPCsEncountered        []json.RawMessage `json:"npcs_encountered,omitempty"`
	LocationsVisited       []json.RawMessage `json:"locations_visited,omitempty"`
	PlotHooksAdvanced      []json.RawMessage `json:"plot_hooks_advanced,omitempty"`
	EventsOccurred         []json.RawMessage `json:"events_occurred,omitempty"`
	ItemsAcquired          []json.RawMessage `json:"items_acquired,omitempty"`
	ExperienceGained       *int              `json:"experience_gained,omitempty"`
	LootAcquired           []json.RawMessage `json:"loot_acquired,omitempty"`
	CombatEncounters       []json.RawMessage `json:"combat_encounters,omitempty"`
	SocialEncounters       []json.RawMessage `json:"social_encounters,omitempty"`
	ExplorationDiscoveries []json.RawMessage `json:"exploration_discoveries,omitempty"`
	WorldStateChanges      []json.RawMessage `json:"world_state_changes,omitempty"`
	DMNotes                *string           `json:"dm_notes,omitempty"`
	NextSessionPrep        *string           `json:"next_session_prep,omitempty"`
	Status                 string            `json:"status,omitempty"`
	Visibility             string            `json:"visibility,omitempty"`
}
