package simmeter_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngc-ami/cosem-go/pkg/cosem"
	"github.com/ngc-ami/cosem-go/pkg/ic"
	"github.com/ngc-ami/cosem-go/pkg/obis"
	"github.com/ngc-ami/cosem-go/pkg/settings"
	"github.com/ngc-ami/cosem-go/pkg/simmeter"
)

var (
	ctx      = context.Background()
	serialLN = obis.MustParse("0-0:96.1.0*255")
)

func loadFixture(t *testing.T) *simmeter.Meter {
	t.Helper()
	m, err := simmeter.Load(filepath.Join("testdata", "meter.yaml"), nil)
	require.NoError(t, err)
	return m
}

func TestGetStoredValue(t *testing.T) {
	m := simmeter.New(nil)
	m.Put(ic.ClassData, serialLN, 2, cosem.NewVisibleString("NGC00001"))

	res, err := m.Get(ctx, ic.ClassData, serialLN, 2)
	require.NoError(t, err)
	assert.Equal(t, ic.ResultData, res.Kind)
	assert.Equal(t, cosem.NewVisibleString("NGC00001"), res.Value)
}

func TestGetErrors(t *testing.T) {
	m := simmeter.New(nil)
	m.Define(ic.ClassData, serialLN)

	res, err := m.Get(ctx, ic.ClassData, obis.MustParse("9-9:9.9.9*9"), 2)
	require.NoError(t, err)
	assert.Equal(t, ic.ErrorResult(ic.AccessObjectUndefined), res)

	res, err = m.Get(ctx, ic.ClassData, serialLN, 2)
	require.NoError(t, err)
	assert.Equal(t, ic.ErrorResult(ic.AccessObjectUnavailable), res)

	// Same logical name, different class.
	res, err = m.Get(ctx, ic.ClassClock, serialLN, 2)
	require.NoError(t, err)
	assert.Equal(t, ic.ErrorResult(ic.AccessObjectUndefined), res)
}

func TestSet(t *testing.T) {
	m := simmeter.New(nil)
	m.Put(ic.ClassData, serialLN, 2, cosem.NewLongUnsigned(1))

	res, err := m.Set(ctx, ic.ClassData, serialLN, 2, cosem.NewLongUnsigned(2))
	require.NoError(t, err)
	assert.Equal(t, ic.AccessSuccess, res)
	v, ok := m.Attribute(ic.ClassData, serialLN, 2)
	require.True(t, ok)
	assert.Equal(t, cosem.NewLongUnsigned(2), v)

	res, err = m.Set(ctx, ic.ClassData, serialLN, 2, cosem.NewUnsigned(3))
	require.NoError(t, err)
	assert.Equal(t, ic.AccessTypeUnmatched, res)

	res, err = m.Set(ctx, ic.ClassData, serialLN, 2, cosem.NewNull())
	require.NoError(t, err)
	assert.Equal(t, ic.AccessSuccess, res)

	res, err = m.Set(ctx, ic.ClassData, serialLN, 2, cosem.NewUnsigned(3))
	require.NoError(t, err)
	assert.Equal(t, ic.AccessSuccess, res, "null accepts any type")

	res, err = m.Set(ctx, ic.ClassData, obis.MustParse("9-9:9.9.9*9"), 2, cosem.NewUnsigned(3))
	require.NoError(t, err)
	assert.Equal(t, ic.AccessObjectUndefined, res)
}

func TestInjectedResults(t *testing.T) {
	m := simmeter.New(nil)
	m.Put(ic.ClassData, serialLN, 2, cosem.NewUnsigned(1))
	m.InjectGetResult(ic.ClassData, serialLN, ic.AccessTemporaryFailure)
	m.InjectSetResult(ic.ClassData, serialLN, ic.AccessReadWriteDenied)
	m.InjectActionResult(ic.ClassData, serialLN, ic.ActionHardwareFault)

	res, err := m.Get(ctx, ic.ClassData, serialLN, 2)
	require.NoError(t, err)
	assert.Equal(t, ic.ErrorResult(ic.AccessTemporaryFailure), res)

	sr, err := m.Set(ctx, ic.ClassData, serialLN, 2, cosem.NewUnsigned(2))
	require.NoError(t, err)
	assert.Equal(t, ic.AccessReadWriteDenied, sr)
	v, _ := m.Attribute(ic.ClassData, serialLN, 2)
	assert.Equal(t, cosem.NewUnsigned(1), v)

	ar, ret, err := m.Action(ctx, ic.ClassData, serialLN, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, ic.ActionHardwareFault, ar)
	assert.Nil(t, ret)
}

func TestAction(t *testing.T) {
	m := simmeter.New(nil)
	m.Define(ic.ClassClock, ic.LNClock)

	ar, ret, err := m.Action(ctx, ic.ClassClock, ic.LNClock, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, ic.ActionSuccess, ar)
	assert.Nil(t, ret)

	ar, _, err = m.Action(ctx, ic.ClassData, serialLN, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, ic.ActionObjectUndefined, ar)

	ret42 := cosem.NewUnsigned(42)
	var gotMethod int8
	m.Handlers.OnAction = func(key simmeter.Key, method int8, param *cosem.Data) (ic.ActionResult, *cosem.Data) {
		gotMethod = method
		return ic.ActionSuccess, &ret42
	}

	param := cosem.NewInteger(0)
	ar, ret, err = m.Action(ctx, ic.ClassClock, ic.LNClock, 6, &param)
	require.NoError(t, err)
	assert.Equal(t, ic.ActionSuccess, ar)
	assert.Equal(t, &ret42, ret)
	assert.Equal(t, int8(6), gotMethod)
}

func TestDisconnect(t *testing.T) {
	m := simmeter.New(nil)
	m.Put(ic.ClassData, serialLN, 2, cosem.NewUnsigned(1))
	m.Disconnect()
	assert.False(t, m.IsConnected())

	_, err := m.Get(ctx, ic.ClassData, serialLN, 2)
	assert.ErrorIs(t, err, simmeter.ErrNotConnected)
	_, err = m.Set(ctx, ic.ClassData, serialLN, 2, cosem.NewUnsigned(2))
	assert.ErrorIs(t, err, simmeter.ErrNotConnected)
	_, _, err = m.Action(ctx, ic.ClassData, serialLN, 1, nil)
	assert.ErrorIs(t, err, simmeter.ErrNotConnected)

	m.Connect()
	assert.True(t, m.IsConnected())
	_, err = m.Get(ctx, ic.ClassData, serialLN, 2)
	assert.NoError(t, err)
}

func TestCanceledContext(t *testing.T) {
	m := simmeter.New(nil)
	m.Put(ic.ClassData, serialLN, 2, cosem.NewUnsigned(1))

	cctx, cancel := context.WithCancel(ctx)
	cancel()

	_, err := m.Get(cctx, ic.ClassData, serialLN, 2)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = m.Set(cctx, ic.ClassData, serialLN, 2, cosem.NewUnsigned(1))
	assert.ErrorIs(t, err, context.Canceled)
	_, _, err = m.Action(cctx, ic.ClassData, serialLN, 1, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, m.Requests())
}

func TestRequestsRecorded(t *testing.T) {
	m := simmeter.New(nil)
	m.Put(ic.ClassData, serialLN, 2, cosem.NewUnsigned(1))

	_, _ = m.Get(ctx, ic.ClassData, serialLN, 2)
	_, _ = m.Set(ctx, ic.ClassData, serialLN, 2, cosem.NewUnsigned(5))
	_, _, _ = m.Action(ctx, ic.ClassData, serialLN, 1, nil)

	reqs := m.Requests()
	require.Len(t, reqs, 3)
	key := simmeter.Key{ClassID: ic.ClassData, LogicalName: serialLN}
	assert.Equal(t, simmeter.Request{Kind: ic.RequestGet, Key: key, ID: 2}, reqs[0])
	assert.Equal(t, ic.RequestSet, reqs[1].Kind)
	require.NotNil(t, reqs[1].Value)
	assert.Equal(t, cosem.NewUnsigned(5), *reqs[1].Value)
	assert.Equal(t, ic.RequestAction, reqs[2].Kind)
	assert.Equal(t, int8(1), reqs[2].ID)

	m.ClearRequests()
	assert.Empty(t, m.Requests())
}

func TestKeysAndClassOf(t *testing.T) {
	m := loadFixture(t)

	keys := m.Keys()
	assert.Len(t, keys, 16)
	assert.Equal(t, ic.LNClock, keys[0].LogicalName)

	class, ok := m.ClassOf(ic.LNAssociationLN)
	assert.True(t, ok)
	assert.Equal(t, ic.ClassAssociationLN, class)

	_, ok = m.ClassOf(obis.MustParse("9-9:9.9.9*9"))
	assert.False(t, ok)
}

func TestFixtureThroughWrappers(t *testing.T) {
	m := loadFixture(t)
	create := func(ln obis.LogicalName) ic.Object { return ic.Create(ln, m) }

	t.Run("clock", func(t *testing.T) {
		c := create(ic.LNClock).(*ic.Clock)
		dt, err := c.Time(ctx)
		require.NoError(t, err)
		require.NotNil(t, dt)
		assert.Equal(t, cosem.DateTime{
			Date:        cosem.Date{Year: 2026, Month: 10, DayOfMonth: 16, DayOfWeek: 5},
			Time:        cosem.Time{Hour: 12},
			Deviation:   -120,
			ClockStatus: cosem.ClockStatusDaylightSave,
		}, *dt)

		tz, ok, err := c.TimeZone(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int16(-120), tz)
	})

	t.Run("association", func(t *testing.T) {
		a := create(ic.LNAssociationLN).(*ic.AssociationLN)
		list, err := a.ObjectList(ctx)
		require.NoError(t, err)
		require.Len(t, list, 7)

		e, err := a.Lookup(ctx, ic.LNClock)
		require.NoError(t, err)
		require.NotNil(t, e)
		assert.Equal(t, ic.ClassClock, e.ClassID)
		item, ok := e.AccessRights.Attribute(2)
		require.True(t, ok)
		assert.Equal(t, settings.AttributeReadWrite, item.AccessMode)
		assert.Nil(t, item.AccessSelectors)
		mi, ok := e.AccessRights.Method(1)
		require.True(t, ok)
		assert.Equal(t, settings.MethodAccess, mi.AccessMode)
	})

	t.Run("load control", func(t *testing.T) {
		s, err := create(ic.LNLoadControl).(*ic.LoadControl).Settings(ctx)
		require.NoError(t, err)
		assert.Equal(t, &settings.LoadControlSettings{
			Name:                "main",
			ControlMode:         4,
			RandomizationWindow: 900,
			NormalState:         1,
			ReconnectMode:       2,
		}, s)

		st, err := create(ic.LNLoadControlStatus).(*ic.LoadControlStatus).Status(ctx)
		require.NoError(t, err)
		assert.Equal(t, settings.RelayConnected, st.RelayState)
		assert.Equal(t, settings.ReasonRemote, st.Reason)
		assert.Equal(t, uint16(2026), st.LastChange.Date.Year)
	})

	t.Run("energization", func(t *testing.T) {
		est, err := create(ic.LNEnergizationStartTime).(*ic.EnergizationStartTime).Setting(ctx)
		require.NoError(t, err)
		assert.True(t, est.Enabled)
		assert.Equal(t, settings.EnergizationScheduled, est.Mode)
		assert.Equal(t, cosem.Time{Hour: 6}, est.StartTime)

		ind, err := create(ic.LNIndividualEnergization).(*ic.IndividualEnergization).Setting(ctx)
		require.NoError(t, err)
		assert.Equal(t, cosem.Date{Year: 2024, Month: 3, DayOfMonth: 15, DayOfWeek: 5}, ind.StartDate)

		ms, err := create(ic.LNMultiStageEnergization).(*ic.MultiStageEnergization).Setting(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint8(2), ms.StageCount)
		assert.Equal(t, uint16(300), ms.StageDelay)
		require.Len(t, ms.Stages, 2)
		assert.Equal(t, cosem.Time{Hour: 7, Minute: 30}, ms.Stages[0].EndTime)
		assert.Equal(t, cosem.AnyTime, ms.Stages[1].EndTime)
	})

	t.Run("configuration", func(t *testing.T) {
		cfg, err := create(ic.LNConfigurationXML).(*ic.ConfigurationXML).Configuration(ctx)
		require.NoError(t, err)
		assert.Equal(t, settings.ContentTypeXML, cfg.ContentType)
		assert.Equal(t, []byte(`<cfg v="1"/>`), cfg.Content)

		d, err := create(ic.LNNGCDescription).(*ic.NGCDescription).Description(ctx)
		require.NoError(t, err)
		assert.Equal(t, "NGC-1", d.DeviceType)
		assert.Equal(t, "4.1.7", d.FirmwareVersion)
		assert.Equal(t, []byte{0x00, 0x1b, 0xc5, 0x00, 0x00, 0x01}, d.MACAddress)
		assert.Equal(t, uint16(2024), d.ManufactureDate.Year)
	})

	t.Run("rpl", func(t *testing.T) {
		cfg, err := create(ic.LNRPLConfig).(*ic.RPLConfig).Config(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint8(12), cfg.DIOIntervalMin)
		assert.Equal(t, uint16(2048), cfg.MaxRankIncrease)
		assert.Equal(t, uint8(1), cfg.MaxInstances)
		assert.Equal(t, uint16(1), cfg.ObjectiveCodePoint)
		assert.Equal(t, uint8(0), cfg.PathControlSize)
		assert.Equal(t, uint32(240), cfg.DTSNIncrementInterval)
		assert.Equal(t, uint32(86400), cfg.GlobalRepairInterval)

		stats, err := create(ic.LNRPLStats).(*ic.RPLStats).Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint32(10), stats.DIOSent)
		assert.Equal(t, uint32(120), stats.MalformedMessages)
		assert.Equal(t, uint16(512), stats.CurrentRank)

		inst, err := create(ic.LNRPLInstances).(*ic.RPLInstances).Instances(ctx)
		require.NoError(t, err)
		require.Len(t, inst, 1)
		assert.Equal(t, uint8(3), inst[0].DodagVersion)
		assert.Equal(t, inst[0].DodagLastChanged, inst[0].Rank)

		ws, err := create(ic.LNRPLWarmStart).(*ic.RPLWarmStart).WarmStart(ctx)
		require.NoError(t, err)
		assert.Len(t, ws.BestParents, 2)
		assert.Equal(t, uint8(9), ws.DTSN)

		parents, err := create(ic.LNRPLParents).(*ic.RPLParents).Parents(ctx)
		require.NoError(t, err)
		require.Len(t, parents, 2)
		assert.True(t, parents[0].Preferred)
		assert.Equal(t, parents[0].LastHeard, parents[1].LastHeard)

		neighbors, err := create(ic.LNRPLNeighbors).(*ic.RPLNeighbors).Neighbors(ctx)
		require.NoError(t, err)
		require.Len(t, neighbors, 2)
		assert.Equal(t, int8(-70), neighbors[0].RSSI)
		assert.Equal(t, uint16(512), neighbors[1].ETX)
	})
}

func TestWrapperWriteThroughMeter(t *testing.T) {
	m := loadFixture(t)
	lc := ic.NewLoadControl(ic.LNLoadControl, m)

	want := &settings.LoadControlSettings{
		Name:                "aux",
		ControlMode:         1,
		RandomizationWindow: 60,
	}
	require.NoError(t, lc.SetSettings(ctx, want))

	got, err := lc.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestInjectedDenialSurfacesAsProtocolError(t *testing.T) {
	m := loadFixture(t)
	obj := ic.NewData(serialLN, m)

	v, err := obj.Value(ctx)
	require.NoError(t, err)
	assert.Equal(t, cosem.NewVisibleString("NGC00001"), *v)

	err = obj.SetValue(ctx, cosem.NewVisibleString("NGC00002"))
	var pe *ic.ProtocolError
	require.ErrorAs(t, err, &pe)
	assert.ErrorIs(t, err, ic.ErrAccessDenied)
	assert.Equal(t, ic.RequestSet, pe.Request)
}

func TestDisconnectedServesCache(t *testing.T) {
	m := loadFixture(t)
	obj := ic.NewData(serialLN, m)

	_, err := obj.Value(ctx)
	require.NoError(t, err)

	m.Disconnect()
	m.Put(ic.ClassData, serialLN, 2, cosem.NewVisibleString("changed"))

	v, err := obj.Value(ctx)
	require.NoError(t, err)
	assert.Equal(t, cosem.NewVisibleString("NGC00001"), *v)
}

func TestParseFixture(t *testing.T) {
	f, err := simmeter.ParseFixture([]byte(`
disconnected: true
objects:
  - ln: "0-0:96.1.0*255"
    class: 1
    attributes:
      2: "11 05"
    action_result: 3
  - ln: "0-0:1.0.0*255"
    class: 8
`))
	require.NoError(t, err)
	require.Len(t, f.Objects, 2)

	m := simmeter.New(nil)
	require.NoError(t, f.Apply(m))
	assert.False(t, m.IsConnected())

	v, ok := m.Attribute(ic.ClassData, serialLN, 2)
	require.True(t, ok)
	assert.Equal(t, cosem.NewUnsigned(5), v)

	m.Connect()
	res, err := m.Get(ctx, ic.ClassClock, ic.LNClock, 2)
	require.NoError(t, err)
	assert.Equal(t, ic.ErrorResult(ic.AccessObjectUnavailable), res)

	ar, _, err := m.Action(ctx, ic.ClassData, serialLN, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, ic.ActionReadWriteDenied, ar)
}

func TestParseFixtureErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		invalid bool
	}{
		{"malformed yaml", "objects: [", false},
		{"no objects", "objects: []", true},
		{"missing ln", "objects:\n  - class: 1", true},
		{"missing class", "objects:\n  - ln: \"0-0:1.0.0*255\"", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := simmeter.ParseFixture([]byte(tt.yaml))
			var le *simmeter.LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tt.invalid, errors.Is(err, simmeter.ErrInvalidFixture))
		})
	}
}

func TestApplyRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		obj  simmeter.ObjectFixture
	}{
		{"bad ln", simmeter.ObjectFixture{LogicalName: "nope", Class: 1}},
		{"bad hex", simmeter.ObjectFixture{LogicalName: "0-0:96.1.0*255", Class: 1, Attributes: map[int8]string{2: "zz"}}},
		{"truncated", simmeter.ObjectFixture{LogicalName: "0-0:96.1.0*255", Class: 1, Attributes: map[int8]string{2: "12 00"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := simmeter.New(nil)
			f := &simmeter.Fixture{Objects: []simmeter.ObjectFixture{tt.obj}}
			err := f.Apply(m)
			assert.ErrorIs(t, err, simmeter.ErrInvalidFixture)
			assert.Empty(t, m.Keys())
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := simmeter.Load(filepath.Join("testdata", "missing.yaml"), nil)
	var le *simmeter.LoadError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.File, "missing.yaml")
}
