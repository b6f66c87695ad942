package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	batchLimit       int
	batchUseTemplate bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Enrich stored companies that still need it",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("batch"); err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		orch, err := initOrchestrator()
		if err != nil {
			return eris.Wrap(err, "init orchestrator")
		}

		limit := batchLimit
		if limit == 0 {
			limit = cfg.Batch.Limit
		}

		companies, err := st.ListNeedingEnrichment(ctx, limit)
		if err != nil {
			return eris.Wrap(err, "list companies")
		}
		if len(companies) == 0 {
			zap.L().Info("no companies need enrichment")
			return nil
		}

		runID := uuid.NewString()
		zap.L().Info("batch run starting",
			zap.String("run_id", runID),
			zap.Int("companies", len(companies)),
		)

		// Source APIs are shared infrastructure; space requests out.
		limiter := rate.NewLimiter(rate.Every(time.Duration(cfg.Batch.DelayMS)*time.Millisecond), 1)

		var succeeded, failed int
		for _, c := range companies {
			if err := limiter.Wait(ctx); err != nil {
				zap.L().Warn("batch run interrupted", zap.Error(err))
				break
			}

			rec := orch.Enrich(ctx, c.Query())
			if rec.Fallback != nil && batchUseTemplate {
				zap.L().Info("using template fallback for low quality record",
					zap.String("company", c.Name),
					zap.Float64("merged_confidence", rec.Confidence),
				)
				rec = *rec.Fallback
			}

			if err := st.ApplyEnrichment(ctx, c.ID, rec, runID); err != nil {
				zap.L().Error("apply enrichment failed",
					zap.String("company", c.Name),
					zap.Error(err),
				)
				failed++
				continue
			}
			succeeded++
		}

		zap.L().Info("batch run complete",
			zap.String("run_id", runID),
			zap.Int("succeeded", succeeded),
			zap.Int("failed", failed),
		)
		return nil
	},
}

func init() {
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max companies to process (default from config)")
	batchCmd.Flags().BoolVar(&batchUseTemplate, "use-template", false, "write the template fallback when the merged record is low quality")
	rootCmd.AddCommand(batchCmd)
}
