package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"flatscout/internal/domain"
	"flatscout/internal/matching"
)

// FlatmateProfileRepository define el contrato de persistencia para perfiles de flatmate.
type FlatmateProfileRepository interface {
	Upsert(ctx context.Context, profile domain.FlatmateProfile) error
	GetByUserID(ctx context.Context, userID string) (domain.FlatmateProfile, error)
	ListCandidates(ctx context.Context, excludeUserID, excludeEmail string, limit int) ([]domain.FlatmateProfile, error)
	Count(ctx context.Context) (int, error)
}

type PgFlatmateProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgFlatmateProfileRepository(pool *pgxpool.Pool) *PgFlatmateProfileRepository {
	return &PgFlatmateProfileRepository{pool: pool}
}

const profileColumns = `
	user_id, user_email, name, photo_url, gender, age, occupation, hometown,
	languages, food_preference, social_preference, hobbies, work_mode,
	relationship_status, music_preference, guest_policy, wakeup_time, bedtime,
	preferred_gender, budget, location_preference,
	habit_smoking, habit_pets, habit_sleep_time, habit_cleanliness, bio
`

// Upsert crea o reemplaza el perfil del usuario. Tambien guarda el vector codificado
// en feature_vector para consultas por similitud desde SQL.
func (r *PgFlatmateProfileRepository) Upsert(ctx context.Context, profile domain.FlatmateProfile) error {
	vec, err := matching.Encode(profile)
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO flatmate_profiles (` + profileColumns + `, feature_vector, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23, $24, $25, $26, $27, $28)
		ON CONFLICT (user_id) DO UPDATE SET
			user_email = EXCLUDED.user_email,
			name = EXCLUDED.name,
			photo_url = EXCLUDED.photo_url,
			gender = EXCLUDED.gender,
			age = EXCLUDED.age,
			occupation = EXCLUDED.occupation,
			hometown = EXCLUDED.hometown,
			languages = EXCLUDED.languages,
			food_preference = EXCLUDED.food_preference,
			social_preference = EXCLUDED.social_preference,
			hobbies = EXCLUDED.hobbies,
			work_mode = EXCLUDED.work_mode,
			relationship_status = EXCLUDED.relationship_status,
			music_preference = EXCLUDED.music_preference,
			guest_policy = EXCLUDED.guest_policy,
			wakeup_time = EXCLUDED.wakeup_time,
			bedtime = EXCLUDED.bedtime,
			preferred_gender = EXCLUDED.preferred_gender,
			budget = EXCLUDED.budget,
			location_preference = EXCLUDED.location_preference,
			habit_smoking = EXCLUDED.habit_smoking,
			habit_pets = EXCLUDED.habit_pets,
			habit_sleep_time = EXCLUDED.habit_sleep_time,
			habit_cleanliness = EXCLUDED.habit_cleanliness,
			bio = EXCLUDED.bio,
			feature_vector = EXCLUDED.feature_vector,
			updated_at = EXCLUDED.updated_at
	`
	_, err = r.pool.Exec(ctx, query,
		profile.UserID,
		profile.UserEmail,
		profile.Name,
		profile.PhotoURL,
		profile.Gender,
		profile.Age,
		profile.Occupation,
		profile.Hometown,
		nonNilStrings(profile.Languages),
		profile.FoodPreference,
		profile.SocialPreference,
		nonNilStrings(profile.Hobbies),
		profile.WorkMode,
		profile.RelationshipStatus,
		profile.MusicPreference,
		profile.GuestPolicy,
		profile.WakeupTime,
		profile.Bedtime,
		profile.PreferredGender,
		profile.Budget.Float(),
		profile.LocationPreference,
		profile.Habits.Smoking,
		profile.Habits.Pets,
		profile.Habits.SleepTime,
		profile.Habits.Cleanliness,
		profile.Bio,
		featureVector(vec),
		time.Now().UTC(),
	)
	return err
}

func (r *PgFlatmateProfileRepository) GetByUserID(ctx context.Context, userID string) (domain.FlatmateProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM flatmate_profiles WHERE user_id = $1`
	profile, err := scanProfile(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		return domain.FlatmateProfile{}, fmt.Errorf("get flatmate profile %s: %w", userID, err)
	}
	return profile, nil
}

// ListCandidates devuelve perfiles de otros usuarios, los mas recientes primero.
// excludeEmail vacio no filtra por email.
func (r *PgFlatmateProfileRepository) ListCandidates(ctx context.Context, excludeUserID, excludeEmail string, limit int) ([]domain.FlatmateProfile, error) {
	if limit <= 0 {
		limit = 500
	}
	query := `
		SELECT ` + profileColumns + `
		FROM flatmate_profiles
		WHERE user_id <> $1
		  AND ($2 = '' OR user_email <> $2)
		ORDER BY updated_at DESC
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, excludeUserID, excludeEmail, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.FlatmateProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *PgFlatmateProfileRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM flatmate_profiles`).Scan(&n)
	return n, err
}

func scanProfile(row pgx.Row) (domain.FlatmateProfile, error) {
	var (
		p      domain.FlatmateProfile
		h      domain.Habits
		budget float64
	)
	err := row.Scan(
		&p.UserID,
		&p.UserEmail,
		&p.Name,
		&p.PhotoURL,
		&p.Gender,
		&p.Age,
		&p.Occupation,
		&p.Hometown,
		&p.Languages,
		&p.FoodPreference,
		&p.SocialPreference,
		&p.Hobbies,
		&p.WorkMode,
		&p.RelationshipStatus,
		&p.MusicPreference,
		&p.GuestPolicy,
		&p.WakeupTime,
		&p.Bedtime,
		&p.PreferredGender,
		&budget,
		&p.LocationPreference,
		&h.Smoking,
		&h.Pets,
		&h.SleepTime,
		&h.Cleanliness,
		&p.Bio,
	)
	if err != nil {
		return domain.FlatmateProfile{}, err
	}
	p.Budget = domain.NewBudget(budget)
	p.Habits = &h
	return p, nil
}

func featureVector(vec matching.FeatureVector) pgvector.Vector {
	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(v)
	}
	return pgvector.NewVector(out)
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

var _ FlatmateProfileRepository = (*PgFlatmateProfileRepository)(nil)
