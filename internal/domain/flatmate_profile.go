package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// FlatmateProfile es el perfil de convivencia que un usuario publica para buscar companero de piso.
// Solo gender, preferredGender, budget y habits participan en el calculo de compatibilidad;
// el resto de campos se devuelve tal cual.
type FlatmateProfile struct {
	UserID             string   `json:"userId" yaml:"userId"`
	UserEmail          string   `json:"userEmail,omitempty" yaml:"userEmail,omitempty"`
	Name               string   `json:"name" yaml:"name"`
	PhotoURL           string   `json:"photoUrl,omitempty" yaml:"photoUrl,omitempty"`
	Gender             string   `json:"gender" yaml:"gender"`
	Age                int      `json:"age" yaml:"age"`
	Occupation         string   `json:"occupation" yaml:"occupation"`
	Hometown           string   `json:"hometown" yaml:"hometown"`
	Languages          []string `json:"languages" yaml:"languages"`
	FoodPreference     string   `json:"foodPreference" yaml:"foodPreference"`
	SocialPreference   string   `json:"socialPreference" yaml:"socialPreference"`
	Hobbies            []string `json:"hobbies,omitempty" yaml:"hobbies,omitempty"`
	WorkMode           string   `json:"workMode" yaml:"workMode"`
	RelationshipStatus string   `json:"relationshipStatus,omitempty" yaml:"relationshipStatus,omitempty"`
	MusicPreference    string   `json:"musicPreference,omitempty" yaml:"musicPreference,omitempty"`
	GuestPolicy        string   `json:"guestPolicy" yaml:"guestPolicy"`
	WakeupTime         string   `json:"wakeupTime,omitempty" yaml:"wakeupTime,omitempty"`
	Bedtime            string   `json:"bedtime,omitempty" yaml:"bedtime,omitempty"`
	PreferredGender    string   `json:"preferredGender" yaml:"preferredGender"`
	Budget             Budget   `json:"budget" yaml:"budget"`
	LocationPreference string   `json:"locationPreference" yaml:"locationPreference"`
	Habits             *Habits  `json:"habits" yaml:"habits"`
	Bio                string   `json:"bio" yaml:"bio"`
}

// Habits agrupa los habitos de convivencia.
type Habits struct {
	Smoking     string `json:"smoking" yaml:"smoking"`         // Yes / No
	Pets        string `json:"pets" yaml:"pets"`               // Yes / No
	SleepTime   string `json:"sleepTime" yaml:"sleepTime"`     // Early / Late
	Cleanliness string `json:"cleanliness" yaml:"cleanliness"` // Low / Medium / High
}

// Clone devuelve una copia profunda: slices y habits no se comparten con el original.
func (p FlatmateProfile) Clone() FlatmateProfile {
	out := p
	out.Languages = slices.Clone(p.Languages)
	out.Hobbies = slices.Clone(p.Hobbies)
	if p.Habits != nil {
		h := *p.Habits
		out.Habits = &h
	}
	return out
}

// ScoredProfile es un candidato anotado con su compatibilidad respecto al perfil de referencia.
type ScoredProfile struct {
	FlatmateProfile `yaml:",inline"`
	Compatibility int    `json:"compatibility" yaml:"compatibility"`
	ActualUserID  string `json:"actualUserId,omitempty" yaml:"actualUserId,omitempty"`
}

// Budget guarda el presupuesto tal como llega del cliente. Los clientes historicos
// mandan numeros o strings; lo que no se pueda convertir vale 0 al puntuar.
type Budget struct {
	raw string
}

// NewBudget construye un Budget numerico.
func NewBudget(v float64) Budget {
	return Budget{raw: strconv.FormatFloat(v, 'f', -1, 64)}
}

// ParseBudget conserva el texto original sin validarlo.
func ParseBudget(raw string) Budget {
	return Budget{raw: raw}
}

// Float devuelve el valor numerico o 0 si no es convertible (incluye NaN e Inf).
func (b Budget) Float() float64 {
	s := strings.TrimSpace(b.raw)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// String devuelve el texto original.
func (b Budget) String() string {
	return b.raw
}

func (b Budget) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Float())
}

func (b *Budget) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		b.raw = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		b.raw = s
		return nil
	}
	// Numeros, booleanos u objetos: se guarda el literal y Float decide.
	b.raw = string(data)
	return nil
}

func (b Budget) MarshalYAML() (any, error) {
	return b.Float(), nil
}

func (b *Budget) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		b.raw = ""
		return nil
	}
	b.raw = node.Value
	return nil
}
