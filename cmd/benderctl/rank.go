package main

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/tubebenders/backend/internal/ranking"
)

// criteriaValidator checks the same binding tags the HTTP layer enforces
var criteriaValidator = newCriteriaValidator()

func newCriteriaValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

func newRankCmd(opts *cliOptions) *cobra.Command {
	var (
		filters ranking.Filters
		sort    string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "rank <catalog>",
		Short: "Filter the catalog and list it by score, price or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := criteriaValidator.Struct(filters); err != nil {
				return fmt.Errorf("invalid filters: %w", err)
			}

			products, err := loadCatalog(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			items := ranking.SortScored(ranking.FilterAndRank(products, filters), ranking.ParseSortOrder(sort))
			if limit > 0 && len(items) > limit {
				items = items[:limit]
			}

			if opts.format() == formatJSON {
				return writeJSON(cmd.OutOrStdout(), items)
			}
			return writeListing(cmd.OutOrStdout(), items)
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&filters.MaxPrice, "max-price", 0, "Maximum starting price")
	flags.StringVar(&filters.Country, "country", "", "Country of manufacture")
	flags.BoolVar(&filters.USAOnly, "usa-only", false, "Only USA-made benders")
	flags.StringVar(&filters.Search, "search", "", "Text to find in name, brand, model or features")
	flags.StringVar(&filters.PriceCategory, "price-category", "", "budget, mid-range or premium")
	flags.StringVar(&filters.PowerType, "power-type", "", "hydraulic or manual")
	flags.StringVar(&filters.Category, "category", "", "Catalog category")
	flags.StringVar(&sort, "sort", string(ranking.SortByScore), "score, price-asc, price-desc or name")
	flags.IntVar(&limit, "limit", 0, "Show at most this many rows")
	return cmd
}
