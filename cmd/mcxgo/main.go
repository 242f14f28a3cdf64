package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gopmc/mcxgo/internal/mcxgo"
)

var (
	configPath string
	totalMove  int
	nPhotons   int
	minStep    float64
	lMax       float64
	seed       uint32
	fluenceOut string
	debug      bool
	shadow     bool
)

var rootCmd = &cobra.Command{
	Use:   "mcxgo",
	Short: "Monte Carlo photon-migration simulator",
	Long:  "mcxgo runs a data-parallel Monte Carlo photon transport simulation over a voxelized turbid medium.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json", "input deck path")
	rootCmd.PersistentFlags().IntVar(&totalMove, "totalmove", 0, "micro-steps budget per photon (overrides config)")
	rootCmd.PersistentFlags().IntVar(&nPhotons, "nphoton", 0, "number of photons to launch (overrides config)")
	rootCmd.PersistentFlags().Float64Var(&minStep, "minstep", 0, "voxel-unit step length (overrides config)")
	rootCmd.PersistentFlags().Float64Var(&lMax, "lmax", 0, "residual free-flight cap (overrides config)")
	rootCmd.PersistentFlags().Uint32Var(&seed, "seed", 0, "master RNG seed (overrides config)")
	rootCmd.PersistentFlags().StringVar(&fluenceOut, "fluence-out", "", "fluence dump output path (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&shadow, "shadow-grids", false, "use per-worker shadow grids instead of sharded locks")

	viper.BindPFlag("totalMove", rootCmd.PersistentFlags().Lookup("totalmove"))
	viper.BindPFlag("nPhotons", rootCmd.PersistentFlags().Lookup("nphoton"))
	viper.BindPFlag("minStep", rootCmd.PersistentFlags().Lookup("minstep"))
	viper.BindPFlag("lMax", rootCmd.PersistentFlags().Lookup("lmax"))
	viper.BindPFlag("seed", rootCmd.PersistentFlags().Lookup("seed"))
	viper.BindPFlag("fluenceOut", rootCmd.PersistentFlags().Lookup("fluence-out"))

	viper.SetEnvPrefix("MCXGO")
	viper.AutomaticEnv()
}

func run(cmd *cobra.Command) error {
	mcxgo.Debug = debug
	mcxgo.ShadowGrids = shadow

	if debug {
		mcxgo.Logger.SetLevel(logrus.DebugLevel)
	}

	cfg, err := mcxgo.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyOverrides(cmd, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		mcxgo.Logger.Warn("received shutdown signal, cancelling run")
		cancel()
	}()

	result, err := mcxgo.RunFromConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	mcxgo.Logger.Infof("launched=%d relaunches=%d total fluence=%.6g",
		result.Report.Launched, result.Report.Relaunches, result.Fluence.Sum())
	return nil
}

// applyOverrides copies viper values onto cfg when a flag was explicitly
// set or the matching MCXGO_-prefixed environment variable is present, so
// an unset flag never clobbers a value from the JSON input deck
// (§6 "CLI overrides").
func applyOverrides(cmd *cobra.Command, cfg *mcxgo.Config) {
	if viper.IsSet("totalMove") {
		cfg.TotalMove = viper.GetInt("totalMove")
	}
	if viper.IsSet("nPhotons") {
		cfg.NPhotons = viper.GetInt("nPhotons")
	}
	if viper.IsSet("minStep") {
		cfg.MinStep = viper.GetFloat64("minStep")
	}
	if viper.IsSet("lMax") {
		cfg.LMax = viper.GetFloat64("lMax")
	}
	if viper.IsSet("seed") {
		cfg.Seed = uint32(viper.GetInt64("seed"))
	}
	if viper.IsSet("fluenceOut") {
		cfg.FluenceOut = viper.GetString("fluenceOut")
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mcxgo: %v\n", err)
		os.Exit(1)
	}
}
