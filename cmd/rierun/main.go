package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wazero-labs/rie/regvm"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rierun",
		Short: "rierun — demonstration embedder for the regvm register-machine execution core",
	}

	var verbose bool

	runCmd := &cobra.Command{
		Use:   "run {fib|counter} n",
		Short: "Run a built-in demo program against a fresh store and print its result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(verbose)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			n, err := parseArg(args[1])
			if err != nil {
				return err
			}

			code, err := demoProgram(args[0])
			if err != nil {
				return err
			}

			store := regvm.NewMemoryStore()
			exec, err := regvm.NewExecutor(code, store, nil, 0, 0, []regvm.V{regvm.VFromI32(n)})
			if err != nil {
				return fmt.Errorf("rierun: construct executor: %w", err)
			}

			log.Info("starting run", zap.String("program", args[0]), zap.Int32("n", n))
			outcome, err := exec.Run()
			if err != nil {
				if tc, ok := regvm.AsTrapCode(err); ok {
					log.Error("trapped", zap.String("trap", tc.Error()))
					return tc
				}
				return err
			}

			log.Info("finished",
				zap.String("outcome", outcomeName(outcome)),
				zap.Int("call_depth", exec.CallDepth()),
			)
			for i, v := range exec.Results {
				fmt.Printf("result[%d] = %d\n", i, v.I32())
			}
			return nil
		},
	}
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug-level logging")

	traceCmd := &cobra.Command{
		Use:   "trace {fib|counter} n",
		Short: "Run a demo program and report the call-stack depth invariant it's chosen to exercise",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(true)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			n, err := parseArg(args[1])
			if err != nil {
				return err
			}
			code, err := demoProgram(args[0])
			if err != nil {
				return err
			}

			store := regvm.NewMemoryStore()
			exec, err := regvm.NewExecutor(code, store, nil, 0, 0, []regvm.V{regvm.VFromI32(n)})
			if err != nil {
				return err
			}

			log.Debug("entering root frame", zap.Int("call_depth", exec.CallDepth()))
			outcome, err := exec.Run()
			if err != nil {
				return err
			}
			log.Debug("returned past root", zap.Int("call_depth", exec.CallDepth()), zap.String("outcome", outcomeName(outcome)))
			fmt.Printf("final call depth: %d\n", exec.CallDepth())
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, traceCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func demoProgram(name string) (regvm.CodeMap, error) {
	switch name {
	case "fib":
		return fibProgram(), nil
	case "counter":
		return counterProgram(), nil
	default:
		return nil, fmt.Errorf("rierun: unknown program %q (want fib or counter)", name)
	}
}

func parseArg(s string) (int32, error) {
	var n int32
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, fmt.Errorf("rierun: invalid integer %q: %w", s, err)
	}
	return n, nil
}

func outcomeName(o regvm.Outcome) string {
	switch o {
	case regvm.OutcomeReturned:
		return "returned"
	case regvm.OutcomeHostCall:
		return "host-call"
	default:
		return "unknown"
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}
