// Command cosemctl decodes A-XDR values, analyzes request traces and
// explores simulated meters.
//
// Usage:
//
//	cosemctl decode <hex> [--name n] [--types]
//	cosemctl encode <type:value>
//	cosemctl names [--class id]
//	cosemctl access <file.xml> [--client name] [--hex]
//	cosemctl trace view|stats|filter|export <file>
//	cosemctl shell --fixture meter.yaml [--trace out.ctrace]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ngc-ami/cosem-go/cmd/cosemctl/commands"
	"github.com/ngc-ami/cosem-go/cmd/cosemctl/shell"
	"github.com/ngc-ami/cosem-go/pkg/ic"
	"github.com/ngc-ami/cosem-go/pkg/simmeter"
	"github.com/ngc-ami/cosem-go/pkg/trace"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app carries the state shared by the subcommands.
type app struct {
	configPath string
	logLevel   string

	cfg    *Config
	logger *slog.Logger
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stderr: stderr}

	root := &cobra.Command{
		Use:          "cosemctl",
		Short:        "DLMS/COSEM data-access tool",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "configuration file (YAML)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		a.decodeCmd(),
		a.encodeCmd(),
		a.namesCmd(),
		a.accessCmd(),
		a.traceCmd(),
		a.shellCmd(),
	)
	return root
}

// setup loads the configuration and builds the logger. Flags override the
// file.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg
	a.logger = newLogger(cfg, a.stderr)
	slog.SetDefault(a.logger)
	return nil
}

func (a *app) decodeCmd() *cobra.Command {
	var opts commands.DecodeOptions

	cmd := &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode an A-XDR value",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunDecode(joinArgs(args), opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.Name, "name", "", "name of the root node")
	cmd.Flags().BoolVar(&opts.ShowTypes, "types", false, "show data types")
	return cmd
}

func (a *app) encodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <type:value>",
		Short: "Encode a typed value to A-XDR hex",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunEncode(joinArgs(args), cmd.OutOrStdout())
		},
	}
}

func (a *app) namesCmd() *cobra.Command {
	var class uint16

	cmd := &cobra.Command{
		Use:   "names",
		Short: "List the object name dictionary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dict, err := a.cfg.dictionary()
			if err != nil {
				return err
			}
			return commands.RunNames(dict, class, cmd.OutOrStdout())
		},
	}
	cmd.Flags().Uint16Var(&class, "class", 0, "only list objects of this interface class")
	return cmd
}

func (a *app) accessCmd() *cobra.Command {
	var opts commands.AccessOptions

	cmd := &cobra.Command{
		Use:   "access <file.xml>",
		Short: "Show the object list a client sees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dict, err := a.cfg.dictionary()
			if err != nil {
				return err
			}
			return commands.RunAccess(args[0], opts, dict, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.Client, "client", "", "client access point name (empty lists the clients)")
	cmd.Flags().BoolVar(&opts.Hex, "hex", false, "print the encoded object_list")
	return cmd
}

func (a *app) traceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Analyze request trace files",
	}

	var filter commands.FilterOptions
	addFilterFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&filter.SessionID, "session", "", "filter by session ID")
		c.Flags().StringVar(&filter.Request, "request", "", "filter by request: get, set, action")
		c.Flags().Uint16Var(&filter.ClassID, "class", 0, "filter by interface class")
		c.Flags().StringVar(&filter.LogicalName, "ln", "", "filter by logical name")
		c.Flags().BoolVar(&filter.FailedOnly, "failed", false, "only failed requests")
		c.Flags().StringVar(&filter.TimeStart, "time-start", "", "events at or after (RFC3339)")
		c.Flags().StringVar(&filter.TimeEnd, "time-end", "", "events before (RFC3339)")
	}

	var decode bool
	view := &cobra.Command{
		Use:   "view <file>",
		Short: "Print events in human-readable form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := filter.Build()
			if err != nil {
				return err
			}
			dict, err := a.cfg.dictionary()
			if err != nil {
				return err
			}
			return commands.RunView(args[0], commands.ViewOptions{Filter: f, Decode: decode, Names: dict}, cmd.OutOrStdout())
		},
	}
	addFilterFlags(view)
	view.Flags().BoolVar(&decode, "decode", false, "decode values")

	stats := &cobra.Command{
		Use:   "stats <file>",
		Short: "Show statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunStats(args[0], cmd.OutOrStdout())
		},
	}

	var output string
	filterCmd := &cobra.Command{
		Use:   "filter <file>",
		Short: "Write matching events to a new trace file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := commands.RunFilter(args[0], output, filter)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Filtered %d events to %s\n", count, output)
			return nil
		},
	}
	addFilterFlags(filterCmd)
	filterCmd.Flags().StringVarP(&output, "output", "o", "", "output trace file")
	_ = filterCmd.MarkFlagRequired("output")

	var format, exportOutput string
	export := &cobra.Command{
		Use:   "export <file>",
		Short: "Export events as jsonl or csv",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return commands.RunExport(args[0], format, exportOutput)
		},
	}
	export.Flags().StringVar(&format, "format", "jsonl", "output format: jsonl, csv")
	export.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")

	cmd.AddCommand(view, stats, filterCmd, export)
	return cmd
}

func (a *app) shellCmd() *cobra.Command {
	var fixture, tracePath string

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Explore a simulated meter interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc := a.cfg.Shell
			if cmd.Flags().Changed("fixture") {
				sc.Fixture = fixture
			}
			if cmd.Flags().Changed("trace") {
				sc.Trace = tracePath
			}
			if sc.Fixture == "" {
				return errors.New("no fixture: use --fixture or shell.fixture in the config")
			}
			return a.runShell(cmd.Context(), sc)
		},
	}
	cmd.Flags().StringVar(&fixture, "fixture", "", "simulated meter fixture (YAML)")
	cmd.Flags().StringVar(&tracePath, "trace", "", "append requests to this trace file")
	return cmd
}

func (a *app) runShell(ctx context.Context, sc ShellConfig) error {
	m, err := simmeter.Load(sc.Fixture, a.logger)
	if err != nil {
		return err
	}

	tracers := []trace.Logger{trace.NewSlogAdapter(a.logger)}
	if sc.Trace != "" {
		fl, err := trace.NewFileLogger(sc.Trace)
		if err != nil {
			return fmt.Errorf("failed to open trace file: %w", err)
		}
		defer func() {
			if err := fl.Close(); err != nil {
				a.logger.Warn("trace incomplete", "path", sc.Trace, "error", err)
			}
			counts := fl.Counts()
			a.logger.Debug("trace closed", "path", sc.Trace,
				"get", counts[trace.RequestGet], "set", counts[trace.RequestSet], "action", counts[trace.RequestAction])
		}()
		tracers = append(tracers, fl)
	}

	opts := []ic.Option{
		ic.WithLogger(a.logger),
		ic.WithTracer(trace.NewMultiLogger(tracers...)),
	}
	if sc.SessionID != "" {
		opts = append(opts, ic.WithSessionID(sc.SessionID))
	}

	sh, err := shell.New(m, opts...)
	if err != nil {
		return err
	}
	a.logger.Debug("shell started", "fixture", sc.Fixture, "objects", len(m.Keys()))

	sh.Run(ctx)
	return nil
}

// joinArgs rejoins arguments the shell split, so hex and values may contain
// spaces.
func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
