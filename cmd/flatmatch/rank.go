package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"flatscout/internal/domain"
	"flatscout/internal/matching"
)

func newRankCommand() *cobra.Command {
	var (
		referencePath  string
		candidatesPath string
		format         string
	)

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Ordena candidatos por compatibilidad con un perfil de referencia",
		Long: `Lee un perfil de referencia y una lista de candidatos (JSON o YAML segun la
extension) y escribe el ranking en stdout.

Ejemplo:
  flatmatch rank --reference me.yaml --candidates pool.json --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var reference domain.FlatmateProfile
			if err := decodeFile(referencePath, &reference); err != nil {
				return fmt.Errorf("read reference: %w", err)
			}
			var candidates []domain.FlatmateProfile
			if err := decodeFile(candidatesPath, &candidates); err != nil {
				return fmt.Errorf("read candidates: %w", err)
			}

			ranked, err := matching.Rank(reference, candidates)
			if err != nil {
				return err
			}
			for i := range ranked {
				ranked[i].ActualUserID = ranked[i].UserID
			}
			return writeRanking(cmd.OutOrStdout(), format, ranked)
		},
	}
	cmd.Flags().StringVar(&referencePath, "reference", "", "perfil de referencia (.json, .yaml)")
	cmd.Flags().StringVar(&candidatesPath, "candidates", "", "lista de candidatos (.json, .yaml)")
	cmd.Flags().StringVar(&format, "format", "json", "formato de salida: json o yaml")
	_ = cmd.MarkFlagRequired("reference")
	_ = cmd.MarkFlagRequired("candidates")
	return cmd
}

func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, out)
	default:
		return json.Unmarshal(data, out)
	}
}

func writeRanking(w io.Writer, format string, ranked []domain.ScoredProfile) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ranked)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ranked); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
