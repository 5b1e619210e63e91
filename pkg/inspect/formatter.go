package inspect

import (
	"fmt"
	"strings"

	"github.com/ngc-ami/cosem-go/pkg/cosem"
	"github.com/ngc-ami/cosem-go/pkg/definition"
)

// Formatter formats inspection output.
type Formatter struct {
	// ShowTypes appends the data type of every node.
	ShowTypes bool

	// IndentWidth is the number of spaces per indent level
	IndentWidth int
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		ShowTypes:   true,
		IndentWidth: 2,
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	indent := strings.Repeat(" ", depth*width)
	return indent + content
}

// FormatValue formats a Go value held by a definition or data node.
func (f *Formatter) FormatValue(value any) string {
	if value == nil {
		return "null"
	}

	switch v := value.(type) {
	case bool:
		if v {
			return "true"
		}
		return "false"

	case string:
		return fmt.Sprintf("%q", v)

	case []byte:
		if len(v) == 0 {
			return "0x"
		}
		return fmt.Sprintf("0x%x", v)

	case []bool:
		var sb strings.Builder
		for _, b := range v {
			if b {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		return "b" + sb.String()

	case float32:
		return fmt.Sprintf("%g", v)

	case float64:
		return fmt.Sprintf("%g", v)

	case cosem.Data:
		return f.FormatData(v)

	default:
		return fmt.Sprintf("%v", v)
	}
}

// FormatData formats a single data value on one line.
func (f *Formatter) FormatData(d cosem.Data) string {
	if elems, ok := d.Elements(); ok {
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = f.FormatData(e)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return f.FormatValue(d.Value)
}

// FormatDefinition renders a definition tree, one node per line.
func (f *Formatter) FormatDefinition(def definition.Definition) string {
	var sb strings.Builder
	f.formatNode(&sb, def, 0)
	return sb.String()
}

func (f *Formatter) formatNode(sb *strings.Builder, def definition.Definition, depth int) {
	if def == nil {
		sb.WriteString(f.Indent(depth, "<nil>\n"))
		return
	}

	switch d := def.(type) {
	case *definition.Structure:
		line := d.ItemName
		if f.ShowTypes {
			line += " (structure)"
		}
		sb.WriteString(f.Indent(depth, line+"\n"))
		for _, field := range d.Fields {
			f.formatNode(sb, field, depth+1)
		}

	case *definition.Array:
		line := fmt.Sprintf("%s [%d]", d.ItemName, len(d.Elements))
		if d.Absent {
			line = d.ItemName + ": null"
		}
		if f.ShowTypes {
			line += fmt.Sprintf(" (array of %s)", elementType(d.Element))
		}
		sb.WriteString(f.Indent(depth, line+"\n"))
		for _, e := range d.Elements {
			f.formatNode(sb, e, depth+1)
		}

	case *definition.Enum:
		line := d.ItemName + ": " + f.formatEnum(d)
		if f.ShowTypes {
			line += fmt.Sprintf(" (enum %s)", d.Domain)
		}
		sb.WriteString(f.Indent(depth, line+"\n"))

	case *definition.Scalar:
		line := d.ItemName + ": " + f.FormatValue(d.Value)
		if f.ShowTypes {
			line += fmt.Sprintf(" (%s)", d.DataType)
		}
		sb.WriteString(f.Indent(depth, line+"\n"))
	}
}

func (f *Formatter) formatEnum(e *definition.Enum) string {
	v, ok := e.Byte()
	if !ok {
		return f.FormatValue(e.Value)
	}
	if e.Domain.IsByte() {
		return fmt.Sprintf("%d", v)
	}
	return fmt.Sprintf("%d %s", v, e.Domain.Description(v))
}

func elementType(def definition.Definition) string {
	if def == nil || definition.IsUnknown(def) {
		return "unknown"
	}
	return def.Type().String()
}
