// Package cli defines the cobra command tree for sos.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/evcraddock/sos-artisans/internal/artisan"
	"github.com/evcraddock/sos-artisans/internal/client"
	"github.com/evcraddock/sos-artisans/internal/logging"
)

var (
	flagFormat  string
	flagServer  string
	flagVerbose bool
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sos",
		Short: "Find trusted local artisans",
		Long: "A directory of local artisans: plumbers, electricians, masons, tailors and carpenters. " +
			"Browse, search and rate them, leave comments, and run the backend locally.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flagFormat != "text" && flagFormat != "json" {
				return fmt.Errorf("invalid format %q (text|json)", flagFormat)
			}
			loadDotEnv()
			logging.Setup(flagVerbose)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagServer, "server", "", "API base URL (default: $SOS_SERVER_URL, config file, or "+defaultServerURL+")")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log API calls at debug level")

	root.AddCommand(
		newListCmd(),
		newShowCmd(),
		newSearchCmd(),
		newTopCmd(),
		newAddCmd(),
		newUpdateCmd(),
		newRemoveCmd(),
		newCommentCmd(),
		newCommentsCmd(),
		newExportCmd(),
		newLinkCmd(),
		newMetiersCmd(),
		newServeCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	return root
}

// loadDotEnv reads a .env file from the working directory, if any.
// Variables already set in the environment win.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("loading .env", "error", err)
	}
}

// newAPIClient creates an HTTP client for the artisan API.
func newAPIClient() (*client.Client, error) {
	cfg, err := clientConfig()
	if err != nil {
		return nil, err
	}
	return client.New(cfg), nil
}

// newService creates the artisan service over the configured API.
func newService() (*artisan.Service, error) {
	c, err := newAPIClient()
	if err != nil {
		return nil, err
	}
	return artisan.NewService(c, c.Config().Endpoints), nil
}

// parseID parses an artisan ID argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid artisan ID: %s", arg)
	}
	return id, nil
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}
