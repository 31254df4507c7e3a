package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/storage/jsonstore"
	apperrors "github.com/turtacn/GeoRisk-Intelligence/pkg/errors"
)

// watchlistFiles maps the list argument to its persisted file name.
var watchlistFiles = map[string]string{
	"supported":     "supported_groups.json",
	"opposed":       "opposed_groups.json",
	"organizations": "dangerous_organizations.json",
	"individuals":   "flagged_individuals.json",
}

// newWatchlistCmd creates `georisk watchlist [list]`, which prints the
// persisted watchlists from the watchlist directory.
func newWatchlistCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "watchlist [list]",
		Short:     "Print one persisted watchlist, or all four",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"supported", "opposed", "organizations", "individuals"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := getCLIContext(cmd)
			if err != nil {
				return err
			}
			dir := cliCtx.Config.Data.WatchlistDir

			names := []string{"supported", "opposed", "organizations", "individuals"}
			if len(args) == 1 {
				if _, ok := watchlistFiles[args[0]]; !ok {
					return apperrors.New(apperrors.ErrCodeBadRequest, "unknown watchlist").
						WithDetail(args[0])
				}
				names = args
			}

			out := make(map[string]interface{}, len(names))
			for _, name := range names {
				var list interface{}
				path := filepath.Join(dir, watchlistFiles[name])
				if err := jsonstore.Load(path, &list); err != nil {
					if !apperrors.IsNotFound(err) {
						return err
					}
					list = []interface{}{}
				}
				out[name] = list
			}
			return printJSON(cmd, out)
		},
	}
}
