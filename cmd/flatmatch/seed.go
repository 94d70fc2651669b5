package main

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"flatscout/internal/config"
	"flatscout/internal/db"
	"flatscout/internal/domain"
	"flatscout/internal/repository"
)

var (
	seedGenders      = []string{"Male", "Female", "Other"}
	seedPreferred    = []string{"Male", "Female", "Any"}
	seedYesNo        = []string{"Yes", "No"}
	seedSleep        = []string{"Early", "Late"}
	seedCleanliness  = []string{"Low", "Medium", "High"}
	seedOccupations  = []string{"Student", "Engineer", "Designer", "Nurse", "Teacher", "Freelancer"}
	seedWorkModes    = []string{"Office", "Remote", "Hybrid"}
	seedFood         = []string{"Vegetarian", "Vegan", "Non-Vegetarian", "Any"}
	seedSocial       = []string{"Introvert", "Extrovert", "Ambivert"}
	seedGuestPolicy  = []string{"Allowed", "Occasionally", "Not allowed"}
	seedLanguages    = []string{"English", "Spanish", "Hindi", "French", "German"}
	seedLocations    = []string{"Downtown", "University area", "Suburbs", "Near metro"}
	seedHobbySamples = []string{"cooking", "running", "gaming", "reading", "climbing", "music"}
)

func newSeedCommand() *cobra.Command {
	var (
		count   int
		seed    int64
		migrate bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Crea usuarios y perfiles de flatmate aleatorios (requiere DATABASE_URL)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			logger, _ := zap.NewDevelopment()
			defer logger.Sync()

			if migrate {
				if err := db.Migrate(cfg.DatabaseURL); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			pool, err := db.NewPool(ctx, cfg)
			if err != nil {
				return fmt.Errorf("db connect: %w", err)
			}
			defer pool.Close()

			users := repository.NewPgUserRepository(pool)
			profiles := repository.NewPgFlatmateProfileRepository(pool)
			rng := rand.New(rand.NewSource(seed))

			for i := 0; i < count; i++ {
				user, profile := fakeFlatmate(rng, i)
				if err := users.Create(ctx, user); err != nil {
					return fmt.Errorf("create user %d: %w", i, err)
				}
				if err := profiles.Upsert(ctx, profile); err != nil {
					return fmt.Errorf("create profile %d: %w", i, err)
				}
			}

			total, err := profiles.Count(ctx)
			if err != nil {
				return err
			}
			logger.Info("seed completed", zap.Int("created", count), zap.Int("profiles_total", total))
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d flatmates (%d profiles in total)\n", count, total)
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 50, "numero de usuarios a crear")
	cmd.Flags().Int64Var(&seed, "seed", 42, "semilla para los campos categoricos")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "aplicar migraciones antes de sembrar")
	return cmd
}

// fakeFlatmate genera un usuario y su perfil. i se mete en el email para que no colisionen.
func fakeFlatmate(rng *rand.Rand, i int) (domain.User, domain.FlatmateProfile) {
	name := faker.Name()
	email := strings.ToLower(fmt.Sprintf("%s.%d@flatscout.test", faker.Username(), i))
	user := domain.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		Role:      domain.RoleUser,
		CreatedAt: time.Now().UTC(),
	}
	profile := domain.FlatmateProfile{
		UserID:             user.ID,
		UserEmail:          email,
		Name:               name,
		Gender:             pick(rng, seedGenders),
		Age:                19 + rng.Intn(20),
		Occupation:         pick(rng, seedOccupations),
		Hometown:           pick(rng, seedLocations),
		Languages:          []string{pick(rng, seedLanguages)},
		FoodPreference:     pick(rng, seedFood),
		SocialPreference:   pick(rng, seedSocial),
		Hobbies:            []string{pick(rng, seedHobbySamples), pick(rng, seedHobbySamples)},
		WorkMode:           pick(rng, seedWorkModes),
		GuestPolicy:        pick(rng, seedGuestPolicy),
		PreferredGender:    pick(rng, seedPreferred),
		Budget:             domain.NewBudget(float64(400 + 25*rng.Intn(25))),
		LocationPreference: pick(rng, seedLocations),
		Habits: &domain.Habits{
			Smoking:     pick(rng, seedYesNo),
			Pets:        pick(rng, seedYesNo),
			SleepTime:   pick(rng, seedSleep),
			Cleanliness: pick(rng, seedCleanliness),
		},
		Bio: faker.Sentence(),
	}
	return user, profile
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}
