package accessrights

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"golang.org/x/text/encoding/ianaindex"
	"gopkg.in/validator.v2"

	"github.com/ngc-ami/cosem-go/pkg/obis"
)

// RootElement is the required document element.
const RootElement = "dlmsSetup"

// Access-rights errors.
var (
	// ErrInvalidFormat is returned for documents that do not follow the
	// access-rights layout.
	ErrInvalidFormat = errors.New("invalid access-rights format")

	// ErrUnknownClient is returned for client names without a clientAP.
	ErrUnknownClient = errors.New("unknown client")
)

// Property types.
const (
	PropertyAttribute = "attribute"
	PropertyMethod    = "method"
)

// ClientAP is a client access point.
type ClientAP struct {
	Name            string `xml:"name,attr" validate:"nonzero"`
	AccessPointID   uint16 `xml:"accessPointId,attr" validate:"nonzero"`
	MinimumSecurity string `xml:"minimumSecurity,attr"`
	Broadcast       bool   `xml:"broadcast,attr"`
	APTitlePrefix   string `xml:"apTitlePrefix,attr"`
	Priority        uint8  `xml:"priority,attr"`
}

// Property is one attribute or method of an object.
type Property struct {
	Type  string `xml:"type,attr" validate:"regexp=^(attribute|method)$"`
	Index int8   `xml:"index,attr" validate:"min=1"`
}

// Access holds the permissions of a client on one object. The permissions
// apply to every property of the object.
type Access struct {
	Get    bool `xml:"get,attr"`
	Set    bool `xml:"set,attr"`
	Action bool `xml:"action,attr"`
}

// ClientAccess grants a client access to an object. A missing Access
// element makes the object visible without permissions.
type ClientAccess struct {
	Name   string  `xml:"name,attr" validate:"nonzero"`
	Access *Access `xml:"access"`
}

// Object is one obisCode entry.
type Object struct {
	Code              string         `xml:"code,attr" validate:"nonzero"`
	Name              string         `xml:"name,attr"`
	Class             uint16         `xml:"class,attr" validate:"nonzero"`
	InterrogationType string         `xml:"interrogationType,attr"`
	Properties        []Property     `xml:"property"`
	Clients           []ClientAccess `xml:"client"`

	// LogicalName is parsed from Code.
	LogicalName obis.LogicalName `xml:"-"`
}

// Client returns the access entry of the named client.
func (o *Object) Client(name string) (ClientAccess, bool) {
	i := slices.IndexFunc(o.Clients, func(c ClientAccess) bool { return c.Name == name })
	if i < 0 {
		return ClientAccess{}, false
	}
	return o.Clients[i], true
}

// File is a parsed access-rights document.
type File struct {
	Clients []ClientAP
	Objects []Object
}

// Load reads an access-rights file.
func Load(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	f, err := Parse(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse reads an access-rights document. Encodings other than UTF-8 are
// decoded through the IANA charset index.
func Parse(r io.Reader) (*File, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	root, err := rootElement(dec)
	if err != nil {
		return nil, err
	}
	if root.Name.Local != RootElement {
		return nil, fmt.Errorf("%w: root element %q, want %q", ErrInvalidFormat, root.Name.Local, RootElement)
	}

	f := &File{}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "clientAP":
			var c ClientAP
			if err := dec.DecodeElement(&c, &se); err != nil {
				return nil, fmt.Errorf("%w: clientAP: %v", ErrInvalidFormat, err)
			}
			if err := validator.Validate(c); err != nil {
				return nil, fmt.Errorf("%w: clientAP %q: %v", ErrInvalidFormat, c.Name, err)
			}
			f.Clients = append(f.Clients, c)

		case "obisCode":
			var o Object
			if err := dec.DecodeElement(&o, &se); err != nil {
				return nil, fmt.Errorf("%w: obisCode: %v", ErrInvalidFormat, err)
			}
			if err := validateObject(&o); err != nil {
				return nil, err
			}
			f.Objects = append(f.Objects, o)
		}
	}

	if err := f.checkClients(); err != nil {
		return nil, err
	}
	return f, nil
}

// ClientByName returns the named client access point.
func (f *File) ClientByName(name string) (*ClientAP, bool) {
	for i := range f.Clients {
		if f.Clients[i].Name == name {
			return &f.Clients[i], true
		}
	}
	return nil, false
}

// Object returns the entry of ln.
func (f *File) Object(ln obis.LogicalName) (*Object, bool) {
	for i := range f.Objects {
		if f.Objects[i].LogicalName == ln {
			return &f.Objects[i], true
		}
	}
	return nil, false
}

func rootElement(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return xml.StartElement{}, fmt.Errorf("%w: empty document", ErrInvalidFormat)
		}
		if err != nil {
			return xml.StartElement{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se, nil
		}
	}
}

func validateObject(o *Object) error {
	if err := validator.Validate(o); err != nil {
		return fmt.Errorf("%w: obisCode %q: %v", ErrInvalidFormat, o.Code, err)
	}
	for _, p := range o.Properties {
		if err := validator.Validate(p); err != nil {
			return fmt.Errorf("%w: obisCode %q property: %v", ErrInvalidFormat, o.Code, err)
		}
	}
	for _, c := range o.Clients {
		if err := validator.Validate(c); err != nil {
			return fmt.Errorf("%w: obisCode %q client: %v", ErrInvalidFormat, o.Code, err)
		}
	}

	ln, err := obis.Parse(o.Code)
	if err != nil {
		return fmt.Errorf("%w: obisCode: %w", ErrInvalidFormat, err)
	}
	o.LogicalName = ln
	return nil
}

func (f *File) checkClients() error {
	seen := make(map[string]bool, len(f.Clients))
	for _, c := range f.Clients {
		if seen[c.Name] {
			return fmt.Errorf("%w: duplicate clientAP %q", ErrInvalidFormat, c.Name)
		}
		seen[c.Name] = true
	}
	for _, o := range f.Objects {
		for _, c := range o.Clients {
			if !seen[c.Name] {
				return fmt.Errorf("%w: obisCode %q: %w %q", ErrInvalidFormat, o.Code, ErrUnknownClient, c.Name)
			}
		}
	}
	return nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}
