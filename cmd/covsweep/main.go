package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rmt1947/cov-swn/pkg/logger"
	"github.com/rmt1947/cov-swn/pkg/sweep"
	"github.com/rmt1947/cov-swn/pkg/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

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
		Use:   "covsweep agenda_file",
		Short: "Run cov over every parameter combination listed in an agenda file",
		Long: `covsweep reads an agenda, one run range per line:

  seedcov seedswn manynode halfdegree beta chance inert incubating recovery outdir

Seeds are hexadecimal and outdir an existing directory; every other field is
min:step:max, where a zero step selects min alone. '#' starts a comment.
Agenda files ending in .yaml or .yml hold a list of entries with the same keys.

The output path of each run is printed before it starts. A failing run is
reported and the sweep carries on.

Examples:
  covsweep agenda.txt
  covsweep --workers 4 agenda.yaml`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return util.WrapErrorf(err, util.ErrBadParamInput, "USAGE: covsweep agenda_file")
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

			workers := viper.GetInt(util.SWEEP_WORKERS)
			if cmd.Flags().Changed("workers") {
				workers, _ = cmd.Flags().GetInt("workers")
			}

			summary, err := sweep.RunAgenda(args[0], sweep.Options{
				Workers:         workers,
				DiagnosticsFile: viper.GetString(util.DIAGNOSTICS_FILE),
			}, stdout, log)
			if err != nil {
				return err
			}
			for _, f := range summary.Failures {
				log.Warn("skipped run", zap.Int("line", f.Job.Line), zap.Error(f.Err))
			}
			return nil
		},
	}
	cmd.Flags().Int("workers", 1, "number of runs executed concurrently (default from SWEEP_WORKERS)")
	cmd.Flags().String("config", "", "directory holding the optional config file (default ./data/)")
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return util.WrapErrorf(err, util.ErrBadParamInput, "bad option")
	})
	return cmd
}
