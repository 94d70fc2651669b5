package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/spf13/cobra"

	"flatscout/internal/domain"
	"flatscout/internal/service"
)

// tokenEnv es el subconjunto de configuracion que necesita token; no exige DATABASE_URL.
type tokenEnv struct {
	JWTSecret           string `env:"JWT_SECRET,required,notEmpty"`
	JWTAccessTTLMinutes int    `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"15"`
}

func newTokenCommand() *cobra.Command {
	var (
		userID string
		email  string
		name   string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un access token de desarrollo (requiere JWT_SECRET)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg tokenEnv
			if err := env.Parse(&cfg); err != nil {
				return err
			}
			svc := service.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute)
			tok, err := svc.GenerateAccessToken(domain.User{
				ID:    userID,
				Email: email,
				Name:  name,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok.Token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user-id", "", "id del usuario (claim uid y sub)")
	cmd.Flags().StringVar(&email, "email", "", "email del usuario")
	cmd.Flags().StringVar(&name, "name", "", "nombre visible")
	_ = cmd.MarkFlagRequired("user-id")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
