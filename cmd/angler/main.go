// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command angler resolves and inspects the configuration of an angler node.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"angler.dev/angler/appenv"
	"angler.dev/angler/config"
	"angler.dev/angler/config/codec"
	"angler.dev/angler/config/dumper"
	"angler.dev/angler/logging"
	"angler.dev/angler/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// node is the process-wide state of a command, set once flags are parsed.
type node struct {
	logger      *slog.Logger
	telemetry   *telemetry.Provider
	metricsFile string
	env         func() (*appenv.Environment, error)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	n := &node{}

	checkE := func(cmd *cobra.Command, _ []string) error {
		return n.run(cmd.Context(), func() error {
			return n.check(cmd.OutOrStdout())
		})
	}

	rootCmd := &cobra.Command{
		Use:   "angler",
		Short: "Angler node configuration",
		Long: "Resolves the settings of an angler node from its properties file and the ANGLER_CFG " +
			"environment variable. Keys in the file win over the variable.",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return n.init(cmd.Flags(), cmd.ErrOrStderr())
		},
		RunE:         checkE,
		SilenceUsage: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	f := rootCmd.PersistentFlags()
	f.Bool("dev", false, "Run in development mode (reads dev/resources/config.properties)")
	f.BoolP("controller", "c", false, "Run this node as the cluster controller")
	f.StringP("config", "f", "", "Path to the properties file (overrides the mode default)")
	f.String("consul-key", "", "Consul key holding shared properties (needs CONSUL_HTTP_ADDR)")
	f.String("log-level", "info", "Log level: debug, info, warn or error")
	f.String("log-format", string(logging.TextHandler), "Log format: text, json or console")
	f.String("metrics-file", "", "Write load metrics to this file in the Prometheus text format")
	f.Bool("trace", false, "Write configuration spans to stderr")
	f.String("otlp-endpoint", "", "Push spans and metrics to this OTLP/HTTP collector URL")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "check",
			Short: "Resolve the configuration and print a summary",
			Args:  cobra.NoArgs,
			RunE:  checkE,
		},
		&cobra.Command{
			Use:   "show",
			Short: "Render the node and every configuration key as a table",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return n.run(cmd.Context(), func() error {
					env, err := n.environment()
					if err != nil {
						return err
					}
					return renderEnvironment(cmd.OutOrStdout(), env, 100)
				})
			},
		},
		newDumpCmd(n),
	)

	return rootCmd
}

func newDumpCmd(n *node) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write the resolved properties",
		Args:  cobra.NoArgs,
	}

	f := cmd.Flags()
	output := f.StringP("output", "o", "", "Output file (default stdout)")
	format := f.String("format", string(codec.TypeProperties), "Output format: properties, inline-properties, yaml, json or toml")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return n.run(cmd.Context(), func() error {
			encoder, err := codec.GetEncoder(codec.Type(*format))
			if err != nil {
				return err
			}

			var d config.Dumper = dumper.NewWriter(cmd.OutOrStdout(), encoder)
			if *output != "" {
				d = dumper.NewFile(*output, encoder)
			}
			return n.dump(cmd.Context(), d)
		})
	}

	return cmd
}

// init builds the logger, the telemetry providers and the lazy environment
// from the parsed flags.
func (n *node) init(flags *pflag.FlagSet, stderr io.Writer) error {
	opts, err := nodeOptions(flags)
	if err != nil {
		return err
	}

	level, err := flags.GetString("log-level")
	if err != nil {
		return err
	}
	format, err := flags.GetString("log-format")
	if err != nil {
		return err
	}

	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return err
	}
	handler, err := logging.ParseHandlerType(format)
	if err != nil {
		return err
	}

	n.logger, err = logging.New(
		logging.WithHandlerType(handler),
		logging.WithOutput(stderr),
		logging.WithLevel(lvl),
		logging.WithNode(opts.Mode.String(), opts.NodeType.String()),
	)
	if err != nil {
		return err
	}

	if n.metricsFile, err = flags.GetString("metrics-file"); err != nil {
		return err
	}
	trace, err := flags.GetBool("trace")
	if err != nil {
		return err
	}

	otlpEndpoint, err := flags.GetString("otlp-endpoint")
	if err != nil {
		return err
	}

	var telemetryOpts []telemetry.Option
	if trace {
		telemetryOpts = append(telemetryOpts, telemetry.WithTraceOutput(stderr))
	}
	if otlpEndpoint != "" {
		telemetryOpts = append(telemetryOpts, telemetry.WithOTLPEndpoint(otlpEndpoint))
	}
	if n.telemetry, err = telemetry.New(telemetryOpts...); err != nil {
		return err
	}

	opts.Logger = n.logger
	opts.Loader = []config.Option{
		config.WithTracerProvider(n.telemetry.TracerProvider()),
		config.WithMeterProvider(n.telemetry.MeterProvider()),
	}
	n.env = appenv.Once(opts)

	return nil
}

func nodeOptions(flags *pflag.FlagSet) (appenv.Options, error) {
	var opts appenv.Options

	dev, err := flags.GetBool("dev")
	if err != nil {
		return opts, err
	}
	if dev {
		opts.Mode = appenv.Development
	}

	controller, err := flags.GetBool("controller")
	if err != nil {
		return opts, err
	}
	if controller {
		opts.NodeType = appenv.Controller
	}

	if opts.ConfigPath, err = flags.GetString("config"); err != nil {
		return opts, err
	}
	if opts.ConsulKey, err = flags.GetString("consul-key"); err != nil {
		return opts, err
	}

	return opts, nil
}

// run calls fn, then exports metrics and stops the telemetry providers
// whether or not fn failed.
func (n *node) run(ctx context.Context, fn func() error) (err error) {
	defer func() {
		var flushErr error
		if n.metricsFile != "" {
			flushErr = n.telemetry.WriteTextfile(n.metricsFile)
		}
		err = errors.Join(err, flushErr, n.telemetry.Shutdown(context.WithoutCancel(ctx)))
	}()

	return fn()
}

func (n *node) environment() (*appenv.Environment, error) {
	env, err := n.env()
	if err != nil {
		n.logger.Error("configuration failed", "error", err)
		return nil, err
	}
	return env, nil
}

func (n *node) check(w io.Writer) error {
	env, err := n.environment()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "mode=%s node_type=%s config=%s\n%s\n",
		env.Mode(), env.NodeType(), env.ConfigPath(), env.Settings())
	return err
}

func (n *node) dump(ctx context.Context, d config.Dumper) error {
	env, err := n.environment()
	if err != nil {
		return err
	}
	return d.Dump(ctx, env.Settings().Properties())
}
