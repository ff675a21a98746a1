package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tubebenders/backend/internal/domain"
	"github.com/tubebenders/backend/internal/infrastructure/catalog"
	"github.com/tubebenders/backend/internal/logging"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

// cliOptions holds settings shared by every subcommand
type cliOptions struct {
	v *viper.Viper
}

func (o *cliOptions) format() string {
	return strings.ToLower(o.v.GetString("format"))
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{v: viper.New()}

	root := &cobra.Command{
		Use:   "benderctl",
		Short: "Score, rank and match tube benders from a catalog file",
		Long: `benderctl reads a YAML or JSON tube bender catalog and applies the same
objective scoring, ranking and finder strategies as the HTTP service.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format() {
			case formatTable, formatJSON:
			default:
				return fmt.Errorf("unknown format %q (want table or json)", opts.v.GetString("format"))
			}

			logging.Init(logging.Config{
				Level:  opts.v.GetString("log-level"),
				Format: "console",
				Output: cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	root.PersistentFlags().StringP("format", "f", formatTable, "Output format (table|json)")
	root.PersistentFlags().String("log-level", "warn", "Log level written to stderr")

	opts.v.SetEnvPrefix("BENDERCTL")
	opts.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	opts.v.AutomaticEnv()
	opts.v.BindPFlag("format", root.PersistentFlags().Lookup("format"))
	opts.v.BindPFlag("log-level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(
		newScoreCmd(opts),
		newRankCmd(opts),
		newMatchCmd(opts),
	)
	return root
}

// loadCatalog reads every product from a catalog file
func loadCatalog(ctx context.Context, path string) ([]domain.Product, error) {
	repo, err := catalog.NewFileRepository(path)
	if err != nil {
		return nil, err
	}
	products, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	logging.Debug().Str("path", path).Int("products", len(products)).Msg("catalog loaded")
	return products, nil
}
