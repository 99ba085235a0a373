package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/insight-hub/newsintel-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set NewsIntel configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfig(); err != nil {
			return err
		}
		fmt.Printf("output_dir: %s\n", cfg.OutputDir)
		if cfg.RegistryFile != "" {
			fmt.Printf("registry_file: %s\n", cfg.RegistryFile)
		}
		fmt.Printf("workers: %d\n", cfg.Workers)
		fmt.Printf("tuning.trend_deadband: %.1f\n", cfg.Tuning.TrendDeadband)
		fmt.Printf("tuning.volume_sigma: %.1f\n", cfg.Tuning.VolumeSigma)
		fmt.Printf("tuning.surge_fraction: %.2f\n", cfg.Tuning.SurgeFraction)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if err := ensureConfig(); err != nil {
			return err
		}
		switch key {
		case "output_dir":
			cfg.OutputDir = val
		case "registry_file":
			cfg.RegistryFile = val
		case "workers":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for workers: %v", val)
			}
			cfg.Workers = i
		case "tuning.trend_deadband":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f < 0 {
				return fmt.Errorf("invalid float for tuning.trend_deadband: %v", val)
			}
			cfg.Tuning.TrendDeadband = f
		case "tuning.volume_sigma":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid float for tuning.volume_sigma: %v", val)
			}
			cfg.Tuning.VolumeSigma = f
		case "tuning.surge_fraction":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 || f >= 1 {
				return fmt.Errorf("invalid fraction for tuning.surge_fraction: %v", val)
			}
			cfg.Tuning.SurgeFraction = f
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
