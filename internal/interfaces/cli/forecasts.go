package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/turtacn/GeoRisk-Intelligence/internal/domain/forecast"
	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/storage/jsonstore"
	apperrors "github.com/turtacn/GeoRisk-Intelligence/pkg/errors"
)

// newForecastsCmd creates `georisk forecasts [timeframe]`, which prints the
// persisted forecast lists from the predictions directory.
func newForecastsCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "forecasts [timeframe]",
		Short:     "Print persisted forecasts for one horizon, or all three",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"short", "medium", "long"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := getCLIContext(cmd)
			if err != nil {
				return err
			}
			dir := cliCtx.Config.Data.PredictionsDir

			timeframes := forecast.AllTimeframes
			if len(args) == 1 {
				tf, err := forecast.ParseTimeframe(args[0])
				if err != nil {
					return err
				}
				timeframes = []forecast.Timeframe{tf}
			}

			out := make(map[forecast.Timeframe][]forecast.Forecast, len(timeframes))
			for _, tf := range timeframes {
				var list []forecast.Forecast
				path := filepath.Join(dir, string(tf)+"_forecasts.json")
				if err := jsonstore.Load(path, &list); err != nil {
					if !apperrors.IsNotFound(err) {
						return err
					}
					list = []forecast.Forecast{}
				}
				out[tf] = list
			}
			return printJSON(cmd, out)
		},
	}
}
