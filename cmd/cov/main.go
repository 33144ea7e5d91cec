package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rmt1947/cov-swn/pkg/agenda"
	"github.com/rmt1947/cov-swn/pkg/engine"
	"github.com/rmt1947/cov-swn/pkg/epidemic"
	"github.com/rmt1947/cov-swn/pkg/logger"
	"github.com/rmt1947/cov-swn/pkg/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const usage = `USAGE: cov  [--config dir]  seedcov  seedswn  manynode  halfdegree  beta
            chance  inert  incubating  recovery  [output_directory]
       where  0  <  halfdegree,
              (1 + 2*halfdegree) <= manynode,
              0. <= beta   <  1.,
              0. <= chance <= 1.,
              0. <= inert  <= 1.,
              0  <= incubating < recovery
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
		if errors.Is(err, util.ErrBadParamInput) {
			fmt.Fprint(stderr, usage)
		}
	}
	return util.ExitCode(err)
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cov [--config dir] seedcov seedswn manynode halfdegree beta chance inert incubating recovery [output_directory]",
		Short: "Simulate an epidemic on a Watts-Strogatz small-world network",
		Long: `cov builds a small-world network from seedswn, seeds one infection and runs the
epidemic for 365 days from seedcov. The daily infected, uninfected and contact
fractions are written to a file in the output directory named after every
parameter, and the path is printed as "-> path".

` + usage,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 9 || len(args) > 10 {
				msg := fmt.Sprintf("expected 9 or 10 arguments, got %d:", len(args))
				for _, a := range args {
					msg += fmt.Sprintf("\n      >%s<", a)
				}
				return util.WrapErrorf(nil, util.ErrBadParamInput, "%s", msg)
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

			p, err := parseParams(args)
			if err != nil {
				return err
			}
			opts := engine.Options{
				OutputDir:       viper.GetString(util.OUTPUT_DIR),
				DiagnosticsFile: viper.GetString(util.DIAGNOSTICS_FILE),
				Compress:        viper.GetBool(util.COMPRESS_OUTPUT),
			}
			if len(args) == 10 {
				opts.OutputDir = args[9]
			}

			res, err := engine.Run(p, opts, log)
			if err != nil {
				log.Debug("run failed", zap.Error(err))
				return err
			}
			fmt.Fprintf(stdout, "-> %s\n", res.Path)
			return nil
		},
	}
	cmd.Flags().String("config", "", "directory holding the optional config file (default ./data/)")
	// options go before seedcov; everything after it is positional, so negative numbers reach
	// the range checks instead of being read as shorthand flags
	cmd.Flags().SetInterspersed(false)
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return util.WrapErrorf(err, util.ErrBadParamInput, "bad option")
	})
	return cmd
}

func parseParams(args []string) (epidemic.Params, error) {
	var (
		p   epidemic.Params
		err error
	)
	bad := func(name string) error {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "bad %s", name)
	}
	if p.SeedCov, err = agenda.ParseSeed(args[0]); err != nil {
		return p, bad("seedcov")
	}
	if p.SeedSwn, err = agenda.ParseSeed(args[1]); err != nil {
		return p, bad("seedswn")
	}
	if p.ManyNode, err = strconv.Atoi(args[2]); err != nil {
		return p, bad("manynode")
	}
	if p.HalfDegree, err = strconv.Atoi(args[3]); err != nil {
		return p, bad("halfdegree")
	}
	if p.Beta, err = strconv.ParseFloat(args[4], 64); err != nil {
		return p, bad("beta")
	}
	if p.Chance, err = strconv.ParseFloat(args[5], 64); err != nil {
		return p, bad("chance")
	}
	if p.Inert, err = strconv.ParseFloat(args[6], 64); err != nil {
		return p, bad("inert")
	}
	if p.Incubating, err = strconv.Atoi(args[7]); err != nil {
		return p, bad("incubating")
	}
	if p.Recovery, err = strconv.Atoi(args[8]); err != nil {
		return p, bad("recovery")
	}
	return p, nil
}
