package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/ngc-ami/cosem-go/pkg/trace"
)

// Stats holds aggregate statistics about a trace file.
type Stats struct {
	TotalEvents     int
	EventsByRequest map[trace.Request]int
	Failures        int
	Sessions        map[string]*SessionStats
	Objects         map[string]int
	TotalDuration   time.Duration
	TimeRange       struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for a single session.
type SessionStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Failures  int
}

// CollectStats reads the trace file and aggregates its events.
func CollectStats(path string) (*Stats, error) {
	reader, err := trace.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByRequest: make(map[trace.Request]int),
		Sessions:        make(map[string]*SessionStats),
		Objects:         make(map[string]int),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByRequest[event.Request]++
		stats.Objects[event.LogicalName]++
		stats.TotalDuration += event.Duration

		// Track time range
		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		sess, ok := stats.Sessions[event.SessionID]
		if !ok {
			sess = &SessionStats{
				FirstSeen: event.Timestamp,
				LastSeen:  event.Timestamp,
			}
			stats.Sessions[event.SessionID] = sess
		}
		sess.Events++
		if event.Timestamp.After(sess.LastSeen) {
			sess.LastSeen = event.Timestamp
		}

		if event.Failed() {
			stats.Failures++
			sess.Failures++
		}
	}
	return stats, nil
}

// RunStats analyzes the trace file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := CollectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== COSEM Trace Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	if stats.TotalEvents > 0 {
		avg := stats.TotalDuration / time.Duration(stats.TotalEvents)
		fmt.Fprintf(w, "Average Round Trip: %s\n", formatDuration(avg))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Request:")
	for _, r := range []trace.Request{trace.RequestGet, trace.RequestSet, trace.RequestAction} {
		if count := stats.EventsByRequest[r]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", r.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.Objects) > 0 {
		fmt.Fprintln(w, "Events by Object:")
		objects := make([]string, 0, len(stats.Objects))
		for ln := range stats.Objects {
			objects = append(objects, ln)
		}
		sort.Slice(objects, func(i, j int) bool {
			if stats.Objects[objects[i]] != stats.Objects[objects[j]] {
				return stats.Objects[objects[i]] > stats.Objects[objects[j]]
			}
			return objects[i] < objects[j]
		})
		for _, ln := range objects {
			fmt.Fprintf(w, "  %-20s %d\n", ln, stats.Objects[ln])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	if len(stats.Sessions) > 0 {
		// Sort by first seen time
		type sessionInfo struct {
			id    string
			stats *SessionStats
		}
		sessions := make([]sessionInfo, 0, len(stats.Sessions))
		for id, ss := range stats.Sessions {
			sessions = append(sessions, sessionInfo{id, ss})
		}
		sort.Slice(sessions, func(i, j int) bool {
			return sessions[i].stats.FirstSeen.Before(sessions[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, s := range sessions {
			duration := s.stats.LastSeen.Sub(s.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, duration %s", shortenSessionID(s.id), s.stats.Events, duration)
			if s.stats.Failures > 0 {
				fmt.Fprintf(w, ", %d failed", s.stats.Failures)
			}
			fmt.Fprintln(w)
		}
	}

	if stats.Failures > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Failures: %d\n", stats.Failures)
	}
}
