// Package shell provides the interactive command line of cosemctl. It
// drives a simulated meter through the interface-class wrappers.
package shell

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/ngc-ami/cosem-go/cmd/cosemctl/commands"
	"github.com/ngc-ami/cosem-go/pkg/cosem"
	"github.com/ngc-ami/cosem-go/pkg/ic"
	"github.com/ngc-ami/cosem-go/pkg/inspect"
	"github.com/ngc-ami/cosem-go/pkg/simmeter"
)

// Shell handles interactive mode.
type Shell struct {
	meter     *simmeter.Meter
	inspector *inspect.Inspector
	formatter *inspect.Formatter
	out       io.Writer
	rl        *readline.Instance
}

// New creates a shell on m. The options are passed to every wrapper.
func New(m *simmeter.Meter, opts ...ic.Option) (*Shell, error) {
	s := newShell(m, nil, opts...)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "cosem> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    s.completer(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	s.rl = rl
	s.out = rl.Stdout()
	return s, nil
}

func newShell(m *simmeter.Meter, out io.Writer, opts ...ic.Option) *Shell {
	return &Shell{
		meter:     m,
		inspector: inspect.NewInspector(m, nil, m.ClassOf, opts...),
		formatter: inspect.NewFormatter(),
		out:       out,
	}
}

// Run starts the interactive command loop. It returns when the user quits,
// input ends or ctx is done.
func (s *Shell) Run(ctx context.Context) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			return
		}

		if quit := s.Exec(ctx, line); quit {
			return
		}
	}
}

// Exec runs one command line and reports whether the shell should exit.
func (s *Shell) Exec(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "objects", "ls":
		s.cmdObjects()

	case "inspect", "i":
		s.cmdInspect(ctx, args)

	case "get", "read", "r":
		s.cmdGet(ctx, args)

	case "describe", "d":
		s.cmdDescribe(ctx, args)

	case "set", "write", "w":
		s.cmdSet(ctx, args)

	case "invoke", "action":
		s.cmdInvoke(ctx, args)

	case "connect":
		s.meter.Connect()
		fmt.Fprintln(s.out, "Connected")

	case "disconnect":
		s.meter.Disconnect()
		fmt.Fprintln(s.out, "Disconnected (reads are served from the cache)")

	case "requests":
		s.cmdRequests()

	case "quit", "exit", "q":
		fmt.Fprintln(s.out, "Exiting...")
		return true

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
COSEM Shell Commands:
  Inspection:
    objects              - List the objects of the meter
    inspect <object>     - Read every attribute of an object
    get <path>           - Read an attribute value
    describe <path>      - Show an attribute as a definition tree

  Mutation:
    set <path> <value>   - Write an attribute value
    invoke <path> [val]  - Invoke a method

  Meter:
    connect              - Reconnect the meter
    disconnect           - Drop the connection
    requests             - Show the requests the meter received

  General:
    help                 - Show this help
    quit                 - Exit the shell

  Path Format:
    [class@]object[/attribute] or [class@]object/method/id
    e.g. clock/time_zone, 0-0:1.0.0*255/3, clock/method/adjust_to_quarter

  Value Format:
    type:value, e.g. long:-60, octet-string:0102, visible-string:abc, null`)
}

// cmdObjects lists the meter objects with their dictionary names.
func (s *Shell) cmdObjects() {
	dict := s.inspector.Dictionary()
	for _, k := range s.meter.Keys() {
		name := dict.ClassName(k.ClassID)
		if e, ok := dict.Lookup(k.LogicalName); ok {
			name = e.Name
		}
		fmt.Fprintf(s.out, "  %-18s class %-3d %s\n", k.LogicalName, k.ClassID, name)
	}
}

// cmdInspect reads every attribute of an object, or one attribute when the
// path names it.
func (s *Shell) cmdInspect(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: inspect <object>")
		fmt.Fprintln(s.out, "  Example: inspect clock")
		return
	}

	path, ok := s.parsePath(args[0])
	if !ok {
		return
	}
	if !path.IsPartial {
		s.cmdGet(ctx, args)
		return
	}

	info, err := s.inspector.Inspect(ctx, path)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprint(s.out, s.inspector.FormatObject(info, s.formatter))
}

// cmdGet reads a single attribute.
func (s *Shell) cmdGet(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: get <path>")
		fmt.Fprintln(s.out, "  Example: get clock/time_zone")
		return
	}

	path, ok := s.parsePath(args[0])
	if !ok {
		return
	}
	value, err := s.inspector.ReadAttribute(ctx, path)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "%s = %s\n", s.attributeName(path), s.formatValue(value))
}

// cmdDescribe prints an attribute as a definition tree.
func (s *Shell) cmdDescribe(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: describe <path>")
		fmt.Fprintln(s.out, "  Example: describe load_control_settings/settings")
		return
	}

	path, ok := s.parsePath(args[0])
	if !ok {
		return
	}
	def, err := s.inspector.Describe(ctx, path)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprint(s.out, s.formatter.FormatDefinition(def))
}

// cmdSet writes an attribute.
func (s *Shell) cmdSet(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.out, "Usage: set <path> <value>")
		fmt.Fprintln(s.out, "  Example: set clock/time_zone long:-60")
		return
	}

	path, ok := s.parsePath(args[0])
	if !ok {
		return
	}
	value, err := commands.ParseValue(strings.Join(args[1:], " "))
	if err != nil {
		fmt.Fprintf(s.out, "Invalid value: %v\n", err)
		return
	}

	if err := s.inspector.WriteAttribute(ctx, path, value); err != nil {
		fmt.Fprintf(s.out, "Write failed: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "OK")
}

// cmdInvoke invokes a method with an optional parameter.
func (s *Shell) cmdInvoke(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: invoke <path> [value]")
		fmt.Fprintln(s.out, "  Example: invoke clock/method/adjust_to_quarter")
		return
	}

	path, ok := s.parsePath(args[0])
	if !ok {
		return
	}

	var param *cosem.Data
	if len(args) > 1 {
		v, err := commands.ParseValue(strings.Join(args[1:], " "))
		if err != nil {
			fmt.Fprintf(s.out, "Invalid value: %v\n", err)
			return
		}
		param = &v
	}

	ret, err := s.inspector.InvokeMethod(ctx, path, param)
	if err != nil {
		fmt.Fprintf(s.out, "Invoke failed: %v\n", err)
		return
	}
	if ret != nil {
		fmt.Fprintf(s.out, "OK: %s\n", s.formatValue(ret))
		return
	}
	fmt.Fprintln(s.out, "OK")
}

// cmdRequests lists the requests the meter received.
func (s *Shell) cmdRequests() {
	reqs := s.meter.Requests()
	if len(reqs) == 0 {
		fmt.Fprintln(s.out, "No requests")
		return
	}

	fmt.Fprintf(s.out, "\nRequests (%d):\n", len(reqs))
	for _, r := range reqs {
		line := fmt.Sprintf("  %-6s %d@%s/%d", r.Kind, r.Key.ClassID, r.Key.LogicalName, r.ID)
		if r.Value != nil {
			line += " " + s.formatValue(r.Value)
		}
		fmt.Fprintln(s.out, line)
	}
}

func (s *Shell) parsePath(arg string) (*inspect.Path, bool) {
	path, err := inspect.ParsePath(arg, s.inspector.Dictionary())
	if err != nil {
		fmt.Fprintf(s.out, "Invalid path: %v\n", err)
		return nil, false
	}
	return path, true
}

func (s *Shell) attributeName(p *inspect.Path) string {
	dict := s.inspector.Dictionary()
	class := s.inspector.Object(p).ClassID()

	object := p.LogicalName.String()
	if e, ok := dict.Lookup(p.LogicalName); ok {
		object = e.Name
	}
	return object + "." + dict.AttributeName(class, p.LogicalName, p.AttributeID)
}

func (s *Shell) formatValue(v *cosem.Data) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%s (%s)", s.formatter.FormatData(*v), v.Type)
}

// completer completes command names and dictionary object names.
func (s *Shell) completer() *readline.PrefixCompleter {
	objects := readline.PcItemDynamic(func(string) []string {
		var out []string
		for _, e := range s.inspector.Dictionary().Entries() {
			out = append(out, e.Name)
		}
		return out
	})

	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("objects"),
		readline.PcItem("inspect", objects),
		readline.PcItem("get", objects),
		readline.PcItem("describe", objects),
		readline.PcItem("set", objects),
		readline.PcItem("invoke", objects),
		readline.PcItem("connect"),
		readline.PcItem("disconnect"),
		readline.PcItem("requests"),
		readline.PcItem("quit"),
	)
}
