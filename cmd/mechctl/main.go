package main

import (
	"fmt"
	"os"

	"github.com/iwtcode/mechanismAdapter/constants"
	"github.com/iwtcode/mechanismAdapter/units"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	constantsPath string
	debug         bool

	set *constants.Set
	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{log: logrus.New()}

	root := &cobra.Command{
		Use:           "mechctl",
		Short:         "Inspect mechanism unit conversions and named states offline",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.log.SetOutput(cmd.ErrOrStderr())
			opts.log.SetLevel(logrus.WarnLevel)
			if opts.debug {
				opts.log.SetLevel(logrus.DebugLevel)
			}
			units.SetWarningLogger(opts.log)

			if opts.constantsPath == "" {
				opts.constantsPath = os.Getenv("MECH_CONSTANTS_PATH")
			}
			if opts.constantsPath == "" {
				opts.set = constants.Default()
				return nil
			}

			set, err := constants.Load(opts.constantsPath)
			if err != nil {
				return err
			}
			opts.log.WithField("path", opts.constantsPath).Debug("loaded mechanism constants")
			opts.set = set
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&opts.constantsPath, "constants", "", "Path to a mechanism constants YAML file (default: $MECH_CONSTANTS_PATH or built-in)")

	root.AddCommand(
		convertCmd(opts),
		classifyCmd(opts),
		statesCmd(opts),
	)
	return root
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorMsg("%v", err))
		os.Exit(1)
	}
}
