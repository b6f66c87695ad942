package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wastemetrics/enrich-cli/internal/model"
)

var (
	enrichName    string
	enrichCountry string
	enrichRegNum  string
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich a single company and print the record",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("enrich"); err != nil {
			return err
		}

		orch, err := initOrchestrator()
		if err != nil {
			return eris.Wrap(err, "init orchestrator")
		}

		rec := orch.Enrich(ctx, model.CompanyQuery{
			Name:               enrichName,
			Country:            enrichCountry,
			RegistrationNumber: enrichRegNum,
		})

		zap.L().Info("enrichment complete",
			zap.String("company", enrichName),
			zap.String("source", rec.Source),
			zap.Float64("confidence", rec.Confidence),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	},
}

func init() {
	enrichCmd.Flags().StringVar(&enrichName, "name", "", "company name (required)")
	enrichCmd.Flags().StringVar(&enrichCountry, "country", "", "company country")
	enrichCmd.Flags().StringVar(&enrichRegNum, "reg-number", "", "company registration number")
	_ = enrichCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(enrichCmd)
}
