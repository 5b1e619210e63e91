package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ngc-ami/cosem-go/pkg/ic"
	"github.com/ngc-ami/cosem-go/pkg/inspect"
	"github.com/ngc-ami/cosem-go/pkg/names"
	"github.com/ngc-ami/cosem-go/pkg/obis"
	"github.com/ngc-ami/cosem-go/pkg/trace"
)

// ViewOptions controls the view command.
type ViewOptions struct {
	Filter trace.Filter

	// Decode prints the decoded value next to the raw bytes.
	Decode bool

	// Names resolves logical names and ids; nil means the built-in
	// dictionary.
	Names *names.Dictionary
}

// RunView prints the events of a trace file.
func RunView(path string, opts ViewOptions, output io.Writer) error {
	reader, err := trace.NewFilteredReader(path, opts.Filter)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	dict := opts.Names
	if dict == nil {
		dict = names.Default()
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event, dict, opts.Decode)
	}
	return nil
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event trace.Event, dict *names.Dictionary, decode bool) {
	// Header line: timestamp [sess:id] REQUEST class@ln/id result
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [sess:%s] %-6s %s %s\n",
		ts, shortenSessionID(event.SessionID), event.Request, event.Target(), resultName(event))

	if label := targetLabel(event, dict); label != "" {
		fmt.Fprintf(w, "  Target: %s\n", label)
	}
	if len(event.Value) > 0 {
		fmt.Fprintf(w, "  Value: %s\n", hex.EncodeToString(event.Value))
		if decode {
			if d, err := event.Data(); err == nil {
				fmt.Fprintf(w, "  Decoded: %s (%s)\n", inspect.NewFormatter().FormatData(d), d.Type)
			}
		}
	}
	if event.Duration > 0 {
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(event.Duration))
	}
	if event.Error != "" {
		fmt.Fprintf(w, "  Error: %s\n", event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// targetLabel names the object and member of the event, or returns "" when
// the logical name does not parse.
func targetLabel(event trace.Event, dict *names.Dictionary) string {
	ln, err := obis.Parse(event.LogicalName)
	if err != nil {
		return ""
	}
	object := dict.ClassName(event.ClassID)
	if e, ok := dict.Lookup(ln); ok {
		object = e.Name
	}
	if event.Request == trace.RequestAction {
		return object + "." + dict.MethodName(event.ClassID, event.ID)
	}
	return object + "." + dict.AttributeName(event.ClassID, ln, event.ID)
}

// resultName renders the result code with the vocabulary of the request.
func resultName(event trace.Event) string {
	if event.Request == trace.RequestAction {
		return ic.ActionResult(event.Result).String()
	}
	return ic.AccessResult(event.Result).String()
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// ParseRequestFlag parses a request kind from a command-line flag
// (case-insensitive).
func ParseRequestFlag(s string) (trace.Request, error) {
	if r, ok := trace.ParseRequest(strings.ToLower(s)); ok {
		return r, nil
	}
	return 0, fmt.Errorf("invalid request: %s (must be get, set, or action)", s)
}
