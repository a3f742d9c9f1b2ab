package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dayti/agribot/internal/config"
	"github.com/dayti/agribot/internal/plants"
)

var growthBoost float64

var growthCmd = &cobra.Command{
	Use:   "growth [plant]",
	Short: "Show growth times from the plant table",
	Long:  "With a plant name, prints its growth time at the given boost and the harvest click to use. Without arguments, lists every known plant.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGrowth,
}

func init() {
	growthCmd.Flags().Float64Var(&growthBoost, "boost", 0, "growth boost percentage")
	rootCmd.AddCommand(growthCmd)
}

func runGrowth(cmd *cobra.Command, args []string) error {
	// The configured boost applies unless overridden on the flag.
	if !cmd.Flags().Changed("boost") {
		if cfg, err := config.Load(cfgFile); err == nil {
			growthBoost = cfg.PlantSettings.GrowthBoost
		}
	}

	if len(args) == 1 {
		name := args[0]
		spec, err := plants.Lookup(name)
		if err != nil {
			return err
		}
		minutes := plants.GrowthMinutes(spec, growthBoost)
		fmt.Printf("%s: %s at %.0f%% boost (harvest with %s click)\n",
			name, plants.FormatMinutes(minutes), growthBoost, plants.HarvestClick(name))
		return nil
	}

	for _, name := range plants.Names() {
		spec, err := plants.Lookup(name)
		if err != nil {
			continue
		}
		minutes := plants.GrowthMinutes(spec, growthBoost)
		fmt.Printf("%-24s %s\n", name, plants.FormatMinutes(minutes))
	}
	return nil
}
