package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/mshafiee/jpltables"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	verbose    bool

	headerFile string
	dataFiles  []string
	outputDir  string
	startMJD   float64
	stopMJD    float64
	bodies     []string
	workers    int

	cfg    *jpltables.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "jpltables",
	Short: "Convert JPL DE ASCII ephemerides into Chebyshev position tables",
	Long: `jpltables reads the header and ascp data files of a JPL Development
Ephemeris release and writes, for each body, the x/y/z Chebyshev coefficient
tables covering a window of days since J2000.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = jpltables.LoadConfig(configPath)
		if err != nil {
			return err
		}
		applyFlags(cmd)

		logger, err = jpltables.NewLogger(cfg.Logging, verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write one interpolation table per body",
	Long: `Parses the header and data files and writes <Body>_position.txt for every
selected body (earth_relative_to_emb.txt for EarthFromEMB) into the output
directory.

Example:
  jpltables generate --header de_430/header.430_572 \
    --data de_430/ascp1950.430 --data de_430/ascp2050.430 \
    --start 0 --stop 36525 --out output_files_de_430`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the mass ratio and per-body table parameters from the header",
	Args:  cobra.NoArgs,
	RunE:  runLayout,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&headerFile, "header", "", "header file (e.g. header.430_572)")
	rootCmd.PersistentFlags().StringSliceVar(&bodies, "bodies", nil, "bodies to convert (default all)")

	generateCmd.Flags().StringArrayVarP(&dataFiles, "data", "d", nil, "data file, repeat in chronological order")
	generateCmd.Flags().StringVarP(&outputDir, "out", "o", "", "output directory")
	generateCmd.Flags().Float64Var(&startMJD, "start", 0, "window start, days since J2000")
	generateCmd.Flags().Float64Var(&stopMJD, "stop", 0, "window stop, days since J2000")
	generateCmd.Flags().IntVarP(&workers, "workers", "w", 0, "bodies converted concurrently")

	rootCmd.AddCommand(generateCmd, layoutCmd)
}

// applyFlags lets explicitly set flags override the configuration file.
func applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("header") {
		cfg.HeaderFile = headerFile
	}
	if flags.Changed("bodies") {
		cfg.Bodies = bodies
	}
	if flags.Changed("data") {
		cfg.DataFiles = dataFiles
	}
	if flags.Changed("out") {
		cfg.OutputDir = outputDir
	}
	if flags.Changed("start") {
		cfg.Window.StartMJD = startMJD
	}
	if flags.Changed("stop") {
		cfg.Window.StopMJD = stopMJD
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen := jpltables.NewGenerator(cfg, logger)
	paths, err := gen.Run(ctx)
	if err != nil {
		return err
	}

	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}

func runLayout(cmd *cobra.Command, args []string) error {
	gen := jpltables.NewGenerator(cfg, logger)
	emrat, layouts, err := gen.Describe()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "EMRAT = %v\n\n", emrat)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BODY\tSTART\tSTOP\tCOEFFS/POLY\tPOLYS/BLOCK\tDAYS/POLY")
	for _, l := range layouts {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%v\n",
			l.Body, l.Params.StartIndex, l.Params.StopIndex,
			l.Params.CoeffsPerPoly, l.Params.PolysPerBlock, l.Params.DaysPerPoly)
	}
	return tw.Flush()
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
