package models

// Page is the paginated envelope returned by every campaign-scoped list.
type Page[T any] struct {
	Total int `json:"total"`
	Items []T `json:"items"`
}

// TemplateField describes one input of a type template, as returned by the
// templates/fields endpoints.
type TemplateField struct {
	Required bool     `json:"required"`
	Type     string   `json:"type"`
	Label    string   `json:"label"`
	Options  []string `json:"options,omitempty"`
}

// TemplateFields maps a subtype (e.g. "settlement") to its field set keyed
// by field name.
type TemplateFields map[string]map[string]TemplateField
