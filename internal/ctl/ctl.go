// Package ctl implements the latentctl command tree: inspecting and
// evaluating model program files without a running server.
package ctl

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"latentd/internal/adapter"
	"latentd/internal/binding"
	"latentd/internal/registry"
)

// Config carries persistent flag state shared by all subcommands.
type Config struct {
	Seed uint64
}

// Main parses args and runs the command tree. Returns a process exit code.
func Main(args []string) int {
	cfg := &Config{}
	root := buildRootCmd(cfg, os.Stdout)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func (c *Config) open(path string) (*adapter.External, error) {
	return adapter.NewExternalFromFile(path,
		adapter.WithRandSource(rand.NewPCG(c.Seed, c.Seed^0x9e3779b97f4a7c15)))
}

// buildRootCmd constructs the Cobra command tree writing output to out.
func buildRootCmd(cfg *Config, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "latentctl",
		Short:         "Inspect and evaluate model program files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Uint64Var(&cfg.Seed, "seed", 0, "Seed for sampling commands")

	models := &cobra.Command{
		Use:   "models <dir>",
		Short: "List model program files in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := registry.LoadDir(args[0])
			if err != nil {
				return err
			}
			for _, m := range found {
				fmt.Fprintf(out, "%s\t%s\n", m.ID, m.Path)
			}
			return nil
		},
	}

	caps := &cobra.Command{
		Use:   "caps <file>",
		Short: "Print the probed capability set of a program file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := cfg.open(args[0])
			if err != nil {
				return err
			}
			for _, name := range adapter.Probe(a).Names() {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}

	var dataArgs, latentArgs []string
	var loglik bool
	eval := &cobra.Command{
		Use:   "eval <file>",
		Short: "Evaluate the joint (or data-only) log-density of a program file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := cfg.open(args[0])
			if err != nil {
				return err
			}
			xs, err := parseBinding(dataArgs)
			if err != nil {
				return err
			}
			zs, err := parseBinding(latentArgs)
			if err != nil {
				return err
			}
			var v float64
			if loglik {
				v, err = a.LogLik(xs, zs)
			} else {
				v, err = a.LogProb(xs, zs)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%g\n", v)
			return nil
		},
	}
	eval.Flags().StringArrayVar(&dataArgs, "data", nil, "Observed data, name=v1,v2,... (repeatable)")
	eval.Flags().StringArrayVar(&latentArgs, "latent", nil, "Latent value, name=v (repeatable)")
	eval.Flags().BoolVar(&loglik, "loglik", false, "Evaluate the data term only")

	var sampleLatents []string
	sample := &cobra.Command{
		Use:   "sample <file>",
		Short: "Sample from a program file's prior, or its likelihood given latents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := cfg.open(args[0])
			if err != nil {
				return err
			}
			var b binding.Binding
			if len(sampleLatents) > 0 {
				zs, err := parseBinding(sampleLatents)
				if err != nil {
					return err
				}
				b, err = a.SampleLikelihood(zs)
				if err != nil {
					return err
				}
			} else {
				b, err = a.SamplePrior()
				if err != nil {
					return err
				}
			}
			return printBinding(out, b)
		},
	}
	sample.Flags().StringArrayVar(&sampleLatents, "latent", nil, "Latent value, name=v; omit to sample the prior (repeatable)")

	root.AddCommand(models, caps, eval, sample)
	return root
}

func printBinding(out io.Writer, b binding.Binding) error {
	m := make(map[string][]float64, b.Len())
	for _, name := range b.Keys() {
		v, err := b.Get(name)
		if err != nil {
			return err
		}
		m[name] = v.Data()
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	enc := json.NewEncoder(out)
	return enc.Encode(m)
}
