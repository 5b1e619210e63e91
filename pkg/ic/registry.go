package ic

import (
	"slices"
	"sync"

	"github.com/ngc-ami/cosem-go/pkg/obis"
)

// Constructor builds the wrapper of one logical name.
type Constructor func(ln obis.LogicalName, t Transport, opts ...Option) Object

// Well-known logical names.
var (
	LNLoadControl            = obis.MustParse("1-65:0.129.0*255")
	LNLoadControlStatus      = obis.MustParse("1-65:0.129.1*255")
	LNEnergizationStartTime  = obis.MustParse("1-65:0.130.0*255")
	LNIndividualEnergization = obis.MustParse("1-65:0.130.1*255")
	LNMultiStageEnergization = obis.MustParse("1-65:0.130.2*255")
	LNConfigurationXML       = obis.MustParse("1-66:0.1.0*255")
	LNNGCDescription         = obis.MustParse("1-66:0.2.0*255")
	LNRPLConfig              = obis.MustParse("1-67:0.1.0*255")
	LNRPLStats               = obis.MustParse("1-67:0.2.0*255")
	LNRPLInstances           = obis.MustParse("1-67:0.3.0*255")
	LNRPLWarmStart           = obis.MustParse("1-67:0.4.0*255")
	LNRPLParents             = obis.MustParse("1-67:0.5.0*255")
	LNRPLNeighbors           = obis.MustParse("1-67:0.6.0*255")
	LNClock                  = obis.MustParse("0-0:1.0.0*255")
	LNAssociationLN          = obis.MustParse("0-0:40.0.0*255")
)

var registry = struct {
	sync.RWMutex
	m map[string]Constructor
}{m: map[string]Constructor{}}

func init() {
	builtin := map[obis.LogicalName]Constructor{
		LNLoadControl:            func(ln obis.LogicalName, t Transport, o ...Option) Object { return NewLoadControl(ln, t, o...) },
		LNLoadControlStatus:      func(ln obis.LogicalName, t Transport, o ...Option) Object { return NewLoadControlStatus(ln, t, o...) },
		LNEnergizationStartTime:  func(ln obis.LogicalName, t Transport, o ...Option) Object { return NewEnergizationStartTime(ln, t, o...) },
		LNIndividualEnergization: func(ln obis.LogicalName, t Transport, o ...Option) Object { return NewIndividualEnergization(ln, t, o...) },
		LNMultiStageEnergization: func(ln obis.LogicalName, t Transport, o ...Option) Object { return NewMultiStageEnergization(ln, t, o...) },
		LNConfigurationXML:       func(ln obis.LogicalName, t Transport, o ...Option) Object { return NewConfigurationXML(ln, t, o...) },
		LNNGCDescription:         func(ln obis.LogicalName, t Transport, o ...Option) Object { return NewNGCDescription(ln, t, o...) },
		LNRPLConfig:              func(ln obis.LogicalName, t Transport, o ...Option) Object { return NewRPLConfig(ln, t, o...) },
		LNRPLStats:               func(ln obis.LogicalName, t Transport, o ...Option) Object { return NewRPLStats(ln, t, o...) },
		LNRPLInstances:           func(ln obis.LogicalName, t Transport, o ...Option) Object { return NewRPLInstances(ln, t, o...) },
		LNRPLWarmStart:           func(ln obis.LogicalName, t Transport, o ...Option) Object { return NewRPLWarmStart(ln, t, o...) },
		LNRPLParents:             func(ln obis.LogicalName, t Transport, o ...Option) Object { return NewRPLParents(ln, t, o...) },
		LNRPLNeighbors:           func(ln obis.LogicalName, t Transport, o ...Option) Object { return NewRPLNeighbors(ln, t, o...) },
		LNClock:                  func(ln obis.LogicalName, t Transport, o ...Option) Object { return NewClock(ln, t, o...) },
		LNAssociationLN:          func(ln obis.LogicalName, t Transport, o ...Option) Object { return NewAssociationLN(ln, t, o...) },
	}
	for ln, c := range builtin {
		Register(ln, c)
	}
}

// Register binds ln to c, replacing any earlier entry.
func Register(ln obis.LogicalName, c Constructor) {
	registry.Lock()
	defer registry.Unlock()
	registry.m[ln.String()] = c
}

// Registered returns the logical names with a specialized wrapper, sorted.
func Registered() []obis.LogicalName {
	registry.RLock()
	defer registry.RUnlock()

	out := make([]obis.LogicalName, 0, len(registry.m))
	for s := range registry.m {
		out = append(out, obis.MustParse(s))
	}
	slices.SortFunc(out, func(a, b obis.LogicalName) int {
		return slices.Compare(a[:], b[:])
	})
	return out
}

// Create returns the wrapper registered for ln, or the generic *Data.
func Create(ln obis.LogicalName, t Transport, opts ...Option) Object {
	registry.RLock()
	c, ok := registry.m[ln.String()]
	registry.RUnlock()

	if ok {
		return c(ln, t, opts...)
	}
	return NewData(ln, t, opts...)
}
