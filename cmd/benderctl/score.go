package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tubebenders/backend/internal/domain"
	"github.com/tubebenders/backend/internal/ranking"
)

func newScoreCmd(opts *cliOptions) *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:   "score <catalog>",
		Short: "Show objective scores, or one product's full breakdown with --id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := loadCatalog(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			// Ranks come from the whole catalog; output keeps file order
			ranked := ranking.RankScored(products)
			byID := make(map[int]domain.ScoredProduct, len(ranked))
			for _, sp := range ranked {
				byID[sp.Product.ID] = sp
			}

			out := cmd.OutOrStdout()
			if id != 0 {
				sp, ok := byID[id]
				if !ok {
					return fmt.Errorf("%w: %d", domain.ErrProductNotFound, id)
				}
				if opts.format() == formatJSON {
					return writeJSON(out, sp)
				}
				return writeBreakdown(out, sp)
			}

			items := make([]domain.ScoredProduct, 0, len(products))
			for _, p := range products {
				items = append(items, byID[p.ID])
			}
			if opts.format() == formatJSON {
				return writeJSON(out, items)
			}
			return writeListing(out, items)
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "Product id to break down")
	return cmd
}
