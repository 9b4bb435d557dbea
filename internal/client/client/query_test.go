package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamsEncode(t *testing.T) {
	status := "draft"
	var nilInt *int
	loc := int64(12)

	tests := []struct {
		name string
		in   Params
		want string
	}{
		{name: "empty", in: Params{}, want: ""},
		{name: "nil map", in: nil, want: ""},
		{name: "skips empty values", in: Params{"search": "", "status": nil, "location_id": nilInt}, want: ""},
		{name: "sorted keys", in: Params{"skip": 0, "limit": 25, "search": "elf"}, want: "limit=25&search=elf&skip=0"},
		{name: "pointers dereferenced", in: Params{"status": &status, "location_id": &loc}, want: "location_id=12&status=draft"},
		{name: "slices repeat keys", in: Params{"tag": []string{"b", "a"}}, want: "tag=b&tag=a"},
		{name: "bool", in: Params{"attunement_required": true}, want: "attunement_required=true"},
		{name: "escaping", in: Params{"search": "red & gold"}, want: "search=red+%26+gold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Encode())
		})
	}
}

func TestWithQuery(t *testing.T) {
	assert.Equal(t, "/campaigns/1/npcs", WithQuery("/campaigns/1/npcs", nil))
	assert.Equal(t, "/campaigns/1/npcs?limit=5", WithQuery("/campaigns/1/npcs", Params{"limit": 5}))
}
