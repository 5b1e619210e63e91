// Package commands implements the cosemctl CLI commands.
package commands

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/ngc-ami/cosem-go/pkg/cosem"
	"github.com/ngc-ami/cosem-go/pkg/definition"
	"github.com/ngc-ami/cosem-go/pkg/inspect"
)

// DecodeOptions controls the decode command output.
type DecodeOptions struct {
	Name      string
	ShowTypes bool
}

// RunDecode decodes an A-XDR hex string and prints its definition tree.
func RunDecode(input string, opts DecodeOptions, w io.Writer) error {
	b, err := decodeHex(input)
	if err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}
	d, err := cosem.Decode(b)
	if err != nil {
		return fmt.Errorf("failed to decode: %w", err)
	}

	name := opts.Name
	if name == "" {
		name = "value"
	}
	def, err := definition.FromData(name, &d)
	if err != nil {
		return err
	}

	f := inspect.NewFormatter()
	f.ShowTypes = opts.ShowTypes
	fmt.Fprint(w, f.FormatDefinition(def))
	return nil
}

// RunEncode encodes a typed value literal and prints its A-XDR hex form.
func RunEncode(literal string, w io.Writer) error {
	d, err := ParseValue(literal)
	if err != nil {
		return err
	}
	return writeHex(w, d)
}

func writeHex(w io.Writer, d cosem.Data) error {
	b, err := cosem.Encode(d)
	if err != nil {
		return fmt.Errorf("failed to encode: %w", err)
	}
	fmt.Fprintln(w, hex.EncodeToString(b))
	return nil
}
