package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tubebenders/backend/internal/domain"
	"github.com/tubebenders/backend/internal/recommend"
)

func newMatchCmd(opts *cliOptions) *cobra.Command {
	var (
		strategy string
		criteria domain.FinderCriteria
	)

	cmd := &cobra.Command{
		Use:   "match <catalog>",
		Short: "Run a finder strategy and show the top matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matcher, err := recommend.DefaultRegistry().Get(strategy)
			if err != nil {
				return err
			}
			if err := criteriaValidator.Struct(criteria); err != nil {
				return fmt.Errorf("invalid criteria: %w", err)
			}

			products, err := loadCatalog(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			results := matcher.Match(products, criteria)
			if opts.format() == formatJSON {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			return writeMatches(cmd.OutOrStdout(), matcher.Name(), results)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&strategy, "strategy", "s", "basic", "Finder strategy (basic|enhanced)")
	flags.Float64Var(&criteria.Budget, "budget", 0, "Maximum starting price")
	flags.Float64Var(&criteria.MinDiameter, "min-diameter", 0, "Smallest acceptable max tube diameter, inches")
	flags.BoolVar(&criteria.USAOnly, "usa-only", false, "Prefer USA-made benders")
	flags.BoolVar(&criteria.MandrelRequired, "mandrel", false, "Require mandrel bending")
	flags.BoolVar(&criteria.SBendRequired, "s-bend", false, "Require S-bend capability")
	flags.BoolVar(&criteria.ModularClamping, "modular-clamping", false, "Prefer modular clamping")
	flags.BoolVar(&criteria.ReliabilityWeighted, "reliability", false, "Weight proven brands")
	flags.IntVar(&criteria.MinBendAngle, "min-angle", 0, "Minimum bend angle, degrees")
	flags.Float64Var(&criteria.WallThickness, "wall", 0, "Wall thickness to bend, inches")
	flags.StringSliceVar(&criteria.DieShapes, "die-shape", nil, "Die shapes needed (repeatable)")
	flags.StringVar(&criteria.ExperienceLevel, "experience", "", "beginner, intermediate or advanced")
	return cmd
}
