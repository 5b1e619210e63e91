package commands

import (
	"fmt"
	"io"

	"github.com/ngc-ami/cosem-go/pkg/names"
)

// RunNames lists the objects of the dictionary. A non-zero class limits the
// listing to that interface class.
func RunNames(dict *names.Dictionary, class uint16, w io.Writer) error {
	if dict == nil {
		dict = names.Default()
	}

	count := 0
	for _, e := range dict.Entries() {
		if class != 0 && e.Class != class {
			continue
		}
		fmt.Fprintf(w, "%-18s %-16s %s\n", e.LogicalName, dict.ClassName(e.Class), e.Name)
		if e.Description != "" {
			fmt.Fprintf(w, "  %s\n", e.Description)
		}
		count++
	}

	if count == 0 {
		fmt.Fprintln(w, "No objects")
	}
	return nil
}
