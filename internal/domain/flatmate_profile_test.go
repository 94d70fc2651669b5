package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBudget_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{name: "number", in: `{"budget": 500}`, want: 500},
		{name: "decimal", in: `{"budget": 512.5}`, want: 512.5},
		{name: "numeric string", in: `{"budget": " 750 "}`, want: 750},
		{name: "garbage string", in: `{"budget": "cheap"}`, want: 0},
		{name: "null", in: `{"budget": null}`, want: 0},
		{name: "missing", in: `{}`, want: 0},
		{name: "object", in: `{"budget": {"max": 900}}`, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p FlatmateProfile
			require.NoError(t, json.Unmarshal([]byte(tt.in), &p))
			assert.Equal(t, tt.want, p.Budget.Float())
		})
	}
}

func TestBudget_MarshalJSONEmitsNumber(t *testing.T) {
	out, err := json.Marshal(struct {
		Budget Budget `json:"budget"`
	}{Budget: ParseBudget("640")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"budget": 640}`, string(out))
}

func TestBudget_UnmarshalYAML(t *testing.T) {
	var p FlatmateProfile
	require.NoError(t, yaml.Unmarshal([]byte("budget: 820\nhabits:\n  smoking: \"No\"\n"), &p))
	assert.Equal(t, 820.0, p.Budget.Float())
	require.NotNil(t, p.Habits)
	assert.Equal(t, "No", p.Habits.Smoking)
}

func TestFlatmateProfile_CloneIsDeep(t *testing.T) {
	orig := FlatmateProfile{
		UserID:    "u1",
		Languages: []string{"en", "es"},
		Hobbies:   []string{"chess"},
		Habits:    &Habits{Smoking: "No", Cleanliness: "High"},
	}

	cp := orig.Clone()
	cp.Languages[0] = "fr"
	cp.Hobbies[0] = "climbing"
	cp.Habits.Smoking = "Yes"

	assert.Equal(t, "en", orig.Languages[0])
	assert.Equal(t, "chess", orig.Hobbies[0])
	assert.Equal(t, "No", orig.Habits.Smoking)
}
