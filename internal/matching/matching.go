// Package matching calcula la compatibilidad entre perfiles de flatmate.
//
// Cada perfil se codifica en un vector de 7 componentes, se mide la distancia
// euclidea contra el perfil de referencia y se convierte en un score 0-100.
// El presupuesto entra sin normalizar: con valores reales domina la distancia
// y satura el score a 0 salvo presupuestos casi identicos. Normalizarlo cambia
// la semantica del ranking y requiere una decision aparte.
package matching

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"flatscout/internal/domain"
)

// Dimensions es la longitud del vector de caracteristicas.
const Dimensions = 7

const (
	scoreMax        = 100.0
	scorePerUnitGap = 20.0
)

// ErrMissingHabits indica un perfil sin el bloque habits, requerido para codificar.
var ErrMissingHabits = errors.New("profile habits missing")

// FeatureVector es la codificacion ordenada de un perfil:
// gender, preferredGender, budget, smoking, pets, sleepTime, cleanliness.
type FeatureVector [Dimensions]float64

// Encode convierte un perfil en su vector de caracteristicas.
// Los valores categoricos no reconocidos caen en la rama por defecto.
func Encode(p domain.FlatmateProfile) (FeatureVector, error) {
	if p.Habits == nil {
		return FeatureVector{}, fmt.Errorf("encode profile %q: %w", p.UserID, ErrMissingHabits)
	}
	return FeatureVector{
		encodeGender(p.Gender),
		encodePreferredGender(p.PreferredGender),
		p.Budget.Float(),
		encodeYes(p.Habits.Smoking),
		encodeYes(p.Habits.Pets),
		encodeSleepTime(p.Habits.SleepTime),
		encodeCleanliness(p.Habits.Cleanliness),
	}, nil
}

func encodeGender(v string) float64 {
	switch v {
	case "Male":
		return 0
	default:
		return 1
	}
}

func encodePreferredGender(v string) float64 {
	switch v {
	case "Male":
		return 0
	case "Female":
		return 1
	default:
		return 2
	}
}

func encodeYes(v string) float64 {
	switch v {
	case "Yes":
		return 1
	default:
		return 0
	}
}

func encodeSleepTime(v string) float64 {
	switch v {
	case "Late":
		return 1
	default:
		return 0
	}
}

func encodeCleanliness(v string) float64 {
	switch v {
	case "High":
		return 2
	case "Medium":
		return 1
	default:
		return 0
	}
}

// Distance devuelve la distancia euclidea entre dos vectores.
func Distance(a, b FeatureVector) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Score convierte una distancia en compatibilidad entera dentro de [0, 100].
func Score(distance float64) int {
	s := scoreMax - distance*scorePerUnitGap
	if s < 0 || math.IsNaN(s) {
		return 0
	}
	return int(math.Round(s))
}

// Compatibility puntua dos vectores ya codificados.
func Compatibility(a, b FeatureVector) int {
	return Score(Distance(a, b))
}

// Rank puntua cada candidato contra la referencia y los ordena de mayor a menor
// compatibilidad. Los empates mantienen el orden de entrada. Los candidatos se
// copian; ni la referencia ni los candidatos se modifican. Si algun perfil no se
// puede codificar no se devuelve ningun resultado parcial.
func Rank(reference domain.FlatmateProfile, candidates []domain.FlatmateProfile) ([]domain.ScoredProfile, error) {
	ref, err := Encode(reference)
	if err != nil {
		return nil, err
	}

	ranked := make([]domain.ScoredProfile, 0, len(candidates))
	for _, c := range candidates {
		vec, err := Encode(c)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, domain.ScoredProfile{
			FlatmateProfile: c.Clone(),
			Compatibility:   Compatibility(ref, vec),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Compatibility > ranked[j].Compatibility
	})
	return ranked, nil
}
