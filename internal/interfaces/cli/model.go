package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/turtacn/GeoRisk-Intelligence/internal/domain/scoring"
	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/storage/jsonstore"
)

// snapshotFileName is the model snapshot persisted under the models
// directory.
const snapshotFileName = "ensemble_snapshot.json"

// newModelCmd creates `georisk model info`, which prints the ensemble's
// hyperparameters and feature importance, loading the persisted snapshot if
// one exists.
func newModelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Inspect the scoring model",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Print model hyperparameters and feature importance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cliCtx, err := getCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := cliCtx.Config.Forecast.Ensemble

			rng := scoring.NewRand(cfg.Seed)
			ensemble, err := scoring.NewEnsemble(scoring.Params{
				NumTrees:     cfg.NumTrees,
				MaxDepth:     cfg.MaxDepth,
				LearningRate: cfg.LearningRate,
			}, rng, cliCtx.Logger)
			if err != nil {
				return err
			}

			snapshotPath := filepath.Join(cliCtx.Config.Data.ModelsDir, snapshotFileName)
			if jsonstore.Exists(snapshotPath) {
				if err := ensemble.Load(snapshotPath); err != nil {
					return err
				}
			}
			return printJSON(cmd, ensemble.Info())
		},
	})
	return cmd
}
