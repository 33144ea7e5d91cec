package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rmt1947/cov-swn/pkg/logger"
	"github.com/rmt1947/cov-swn/pkg/plot"
	"github.com/rmt1947/cov-swn/pkg/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const usage = `USAGE: covplot  file1  hdr1 [file2  hdr2 [...]]
       for 1, 2, 3 or 4 filename-headername pairs
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
	}
	return util.ExitCode(err)
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "covplot file1 hdr1 [file2 hdr2 [...]]",
		Short: "Merge cov output files into a gnuplot data file and chart",
		Long: `covplot selects the column headed hdrN from each fileN (files ending in .bz2
are decompressed) and writes them side by side into gracov.out, together with
a gnuplot.cmd script that plots them against DAYS. With --svg the chart is
also rendered directly to <hdr1>.svg.

` + usage,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || len(args)%2 != 0 || len(args)/2 > plot.MAX_INPUTS {
				return util.WrapErrorf(nil, util.ErrBadParamInput, "expected 1 to %d filename-headername pairs\n%s",
					plot.MAX_INPUTS, usage)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, _ := cmd.Flags().GetString("config")
			if err := util.ReadConfig(configDir); err != nil {
				return util.WrapErrorf(err, util.ErrBadParamInput, "cannot read configuration")
			}
			log, err := logger.New()
			if err != nil {
				return err
			}
			defer log.Sync()

			opts := plot.Options{
				OutputDir: viper.GetString(util.PLOT_OUTPUT_DIR),
				SVG:       viper.GetBool(util.PLOT_SVG),
				Program:   cmd.Root().Name(),
			}
			if cmd.Flags().Changed("out") {
				opts.OutputDir, _ = cmd.Flags().GetString("out")
			}
			if cmd.Flags().Changed("svg") {
				opts.SVG, _ = cmd.Flags().GetBool("svg")
			}

			inputs := make([]plot.Input, 0, len(args)/2)
			for i := 0; i < len(args); i += 2 {
				inputs = append(inputs, plot.Input{Path: args[i], Header: args[i+1]})
			}
			out, err := plot.Plot(context.Background(), inputs, opts, log)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "-> %s\n-> %s\n", out.DataPath, out.CommandPath)
			if out.SVGPath != "" {
				fmt.Fprintf(stdout, "-> %s\n", out.SVGPath)
			}
			return nil
		},
	}
	cmd.Flags().String("out", ".", "directory for gracov.out, gnuplot.cmd and the svg (default from PLOT_OUTPUT_DIR)")
	cmd.Flags().Bool("svg", true, "render the chart directly (default from PLOT_SVG)")
	cmd.Flags().String("config", "", "directory holding the optional config file (default ./data/)")
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return util.WrapErrorf(err, util.ErrBadParamInput, "bad option")
	})
	return cmd
}
