package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/ngc-ami/cosem-go/pkg/obis"
	"github.com/ngc-ami/cosem-go/pkg/trace"
)

// FilterOptions specifies filtering criteria as given on the command line.
type FilterOptions struct {
	SessionID   string
	Request     string
	ClassID     uint16
	LogicalName string
	FailedOnly  bool
	TimeStart   string
	TimeEnd     string
}

// Build converts the options into a trace filter.
func (o FilterOptions) Build() (trace.Filter, error) {
	filter := trace.Filter{
		SessionID:  o.SessionID,
		FailedOnly: o.FailedOnly,
	}

	if o.Request != "" {
		r, err := ParseRequestFlag(o.Request)
		if err != nil {
			return trace.Filter{}, err
		}
		filter.Request = &r
	}

	if o.ClassID != 0 {
		c := o.ClassID
		filter.ClassID = &c
	}

	if o.LogicalName != "" {
		ln, err := obis.Parse(o.LogicalName)
		if err != nil {
			return trace.Filter{}, fmt.Errorf("invalid logical name: %w", err)
		}
		filter.LogicalName = ln.String()
	}

	if o.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, o.TimeStart)
		if err != nil {
			return trace.Filter{}, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}

	if o.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, o.TimeEnd)
		if err != nil {
			return trace.Filter{}, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}

	return filter, nil
}

// RunFilter writes the events matching opts to a new trace file and
// returns how many were written.
func RunFilter(path, output string, opts FilterOptions) (int, error) {
	filter, err := opts.Build()
	if err != nil {
		return 0, err
	}

	reader, err := trace.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	logger, err := trace.NewFileLogger(output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output trace: %w", err)
	}

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Close()
			return count, fmt.Errorf("failed to read event: %w", err)
		}

		logger.Log(event)
		count++
	}
	if err := logger.Close(); err != nil {
		return count, fmt.Errorf("failed to write output trace: %w", err)
	}
	return count, nil
}
