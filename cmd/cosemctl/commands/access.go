package commands

import (
	"fmt"
	"io"

	"github.com/ngc-ami/cosem-go/pkg/accessrights"
	"github.com/ngc-ami/cosem-go/pkg/names"
	"github.com/ngc-ami/cosem-go/pkg/settings"
)

// AccessOptions selects what the access command prints.
type AccessOptions struct {
	// Client is the client access point to build the object list for.
	// Empty lists the clients of the file.
	Client string

	// Hex prints the encoded object list instead of the table.
	Hex bool
}

// RunAccess prints the object list a client sees according to an
// access-rights file.
func RunAccess(path string, opts AccessOptions, dict *names.Dictionary, w io.Writer) error {
	f, err := accessrights.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load access rights: %w", err)
	}
	if dict == nil {
		dict = names.Default()
	}

	if opts.Client == "" {
		for _, c := range f.Clients {
			fmt.Fprintf(w, "%-16s access point %d", c.Name, c.AccessPointID)
			if c.MinimumSecurity != "" {
				fmt.Fprintf(w, ", security %s", c.MinimumSecurity)
			}
			if c.Broadcast {
				fmt.Fprint(w, ", broadcast")
			}
			fmt.Fprintln(w)
		}
		return nil
	}

	list, err := f.ObjectList(opts.Client)
	if err != nil {
		return err
	}

	if opts.Hex {
		d, err := settings.ArrayData(list)
		if err != nil {
			return fmt.Errorf("failed to encode object list: %w", err)
		}
		return writeHex(w, d)
	}

	for _, e := range list {
		name := dict.ClassName(e.ClassID)
		if entry, ok := dict.Lookup(e.LogicalName); ok {
			name = entry.Name
		}
		fmt.Fprintf(w, "%s %s (class %d, version %d)\n", e.LogicalName, name, e.ClassID, e.Version)
		for _, a := range e.AccessRights.Attributes {
			fmt.Fprintf(w, "  [%d] %-24s %s\n", a.AttributeID,
				dict.AttributeName(e.ClassID, e.LogicalName, a.AttributeID), a.AccessMode)
		}
		for _, m := range e.AccessRights.Methods {
			fmt.Fprintf(w, "  [method %d] %-17s %s\n", m.MethodID,
				dict.MethodName(e.ClassID, m.MethodID), m.AccessMode)
		}
	}
	return nil
}
