package inspect

import (
	"errors"
	"testing"

	"github.com/ngc-ami/cosem-go/pkg/obis"
)

func TestParsePath(t *testing.T) {
	clock := obis.MustParse("0-0:1.0.0*255")
	lc := obis.MustParse("1-65:0.129.0*255")
	register := obis.MustParse("1-0:1.8.0*255")

	tests := []struct {
		name    string
		input   string
		want    *Path
		wantErr error
	}{
		{
			name:  "logical name with numeric attribute",
			input: "0-0:1.0.0*255/2",
			want:  &Path{LogicalName: clock, ClassID: 8, AttributeID: 2},
		},
		{
			name:  "object only",
			input: "clock",
			want:  &Path{LogicalName: clock, ClassID: 8, IsPartial: true},
		},
		{
			name:  "attribute by class name",
			input: "clock/time_zone",
			want:  &Path{LogicalName: clock, ClassID: 8, AttributeID: 3},
		},
		{
			name:  "attribute by object name",
			input: "load_control_settings/settings",
			want:  &Path{LogicalName: lc, ClassID: 1, AttributeID: 2},
		},
		{
			name:  "names are case-insensitive",
			input: "Load_Control_Settings/Value",
			want:  &Path{LogicalName: lc, ClassID: 1, AttributeID: 2},
		},
		{
			name:  "explicit class",
			input: "3@1-0:1.8.0*255/2",
			want:  &Path{LogicalName: register, ClassID: 3, AttributeID: 2},
		},
		{
			name:  "unknown object keeps zero class",
			input: "1-0:1.8.0*255/0x02",
			want:  &Path{LogicalName: register, AttributeID: 2},
		},
		{
			name:  "method by id",
			input: "clock/method/1",
			want:  &Path{LogicalName: clock, ClassID: 8, MethodID: 1, IsMethod: true},
		},
		{
			name:  "method by name",
			input: "clock/method/shift_time",
			want:  &Path{LogicalName: clock, ClassID: 8, MethodID: 6, IsMethod: true},
		},
		{name: "empty path", input: "  ", wantErr: ErrEmptyPath},
		{name: "leading slash", input: "/clock", wantErr: ErrInvalidPath},
		{name: "trailing slash", input: "clock/", wantErr: ErrInvalidPath},
		{name: "double slash", input: "clock//2", wantErr: ErrInvalidPath},
		{name: "too many segments", input: "clock/2/3", wantErr: ErrInvalidPath},
		{name: "method without id", input: "clock/method", wantErr: ErrInvalidPath},
		{name: "unknown object", input: "nope/2", wantErr: ErrUnknownName},
		{name: "unknown attribute", input: "clock/nope", wantErr: ErrUnknownName},
		{name: "zero attribute", input: "clock/0", wantErr: ErrInvalidNumber},
		{name: "bad class", input: "x@clock/2", wantErr: ErrInvalidNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePath(tt.input, nil)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParsePath(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePath(%q) unexpected error: %v", tt.input, err)
			}

			tt.want.Raw = tt.input
			if *got != *tt.want {
				t.Errorf("ParsePath(%q) = %+v, want %+v", tt.input, *got, *tt.want)
			}
		})
	}
}

func TestPathString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"clock", "8@0-0:1.0.0*255"},
		{"clock/time", "8@0-0:1.0.0*255/2"},
		{"clock/method/adjust_to_quarter", "8@0-0:1.0.0*255/method/1"},
		{"1-0:1.8.0*255/2", "1-0:1.8.0*255/2"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := ParsePath(tt.input, nil)
			if err != nil {
				t.Fatalf("ParsePath(%q): %v", tt.input, err)
			}
			if got := p.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}

			again, err := ParsePath(p.String(), nil)
			if err != nil {
				t.Fatalf("ParsePath(%q): %v", p.String(), err)
			}
			if again.LogicalName != p.LogicalName || again.AttributeID != p.AttributeID || again.MethodID != p.MethodID {
				t.Errorf("round trip of %q changed the path", tt.input)
			}
		})
	}
}
