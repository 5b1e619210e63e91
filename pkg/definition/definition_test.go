package definition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngc-ami/cosem-go/pkg/cosem"
)

func TestConstructorsRejectEmptyName(t *testing.T) {
	_, err := NewScalar("", cosem.TypeUnsigned, 1)
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NewArray("", Unknown())
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NewStructure("")
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NewEnum("", nil, 1)
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = FromData("", &cosem.Data{})
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestNewArrayRejectsNilElement(t *testing.T) {
	_, err := NewArray("list", nil)
	assert.ErrorIs(t, err, ErrNilElement)
}

func TestScalarToData(t *testing.T) {
	date := cosem.Date{Year: 2024, Month: 2, DayOfMonth: 29, DayOfWeek: 4}
	tod := cosem.Time{Hour: 6, Minute: 30}

	tests := []struct {
		name  string
		typ   cosem.DataType
		value any
		want  cosem.Data
	}{
		{"unsigned from int", cosem.TypeUnsigned, 7, cosem.NewUnsigned(7)},
		{"long-unsigned from string", cosem.TypeLongUnsigned, "600", cosem.NewLongUnsigned(600)},
		{"double-long negative", cosem.TypeDoubleLong, int64(-5), cosem.NewDoubleLong(-5)},
		{"integer", cosem.TypeInteger, int8(-3), cosem.NewInteger(-3)},
		{"boolean", cosem.TypeBoolean, true, cosem.NewBoolean(true)},
		{"visible-string", cosem.TypeVisibleString, "relay", cosem.NewVisibleString("relay")},
		{"octet-string from string", cosem.TypeOctetString, "ab", cosem.NewOctetString([]byte("ab"))},
		{"date as octet-string", cosem.TypeDate, date, cosem.NewOctetString(date.Bytes())},
		{"time as octet-string", cosem.TypeTime, tod, cosem.NewOctetString(tod.Bytes())},
		{"native date data", cosem.TypeDate, cosem.NewDate(date), cosem.NewOctetString(date.Bytes())},
		{"float64", cosem.TypeFloat64, 1.5, cosem.NewFloat64(1.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewScalar("item", tt.typ, tt.value)
			require.NoError(t, err)

			got, err := s.ToData()
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestScalarToDataDateTimeFromTime(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, loc)

	s := &Scalar{ItemName: "at", DataType: cosem.TypeDateTime, Value: ts}
	got, err := s.ToData()
	require.NoError(t, err)
	assert.Equal(t, cosem.TypeOctetString, got.Type)
	assert.Equal(t, cosem.NewDateTimeFromTime(ts).Bytes(), got.Value)
}

func TestScalarToDataAbsent(t *testing.T) {
	s := &Scalar{ItemName: "x", DataType: cosem.TypeUnsigned}
	got, err := s.ToData()
	require.NoError(t, err)
	assert.Nil(t, got)

	null := &Scalar{ItemName: "n", DataType: cosem.TypeNull}
	got, err = null.ToData()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsNull())
}

func TestScalarToDataErrors(t *testing.T) {
	tests := []struct {
		name  string
		typ   cosem.DataType
		value any
	}{
		{"unsigned overflow", cosem.TypeUnsigned, 256},
		{"unsigned negative", cosem.TypeUnsigned, -1},
		{"integer overflow", cosem.TypeInteger, 200},
		{"bcd overflow", cosem.TypeBCD, 80},
		{"not a number", cosem.TypeLong, "abc"},
		{"date wrong length", cosem.TypeDate, []byte{1, 2}},
		{"date wrong kind", cosem.TypeDate, 42},
		{"wrong data tag", cosem.TypeUnsigned, cosem.NewBoolean(true)},
		{"bit-string wrong kind", cosem.TypeBitString, "101"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Scalar{ItemName: "v", DataType: tt.typ, Value: tt.value}
			_, err := s.ToData()
			assert.ErrorIs(t, err, ErrValueType)
		})
	}
}

func TestArrayToData(t *testing.T) {
	elem := &Scalar{ItemName: "id", DataType: cosem.TypeUnsigned}
	arr, err := NewArray("ids", elem,
		&Scalar{ItemName: "id", DataType: cosem.TypeUnsigned, Value: 1},
		&Scalar{ItemName: "id", DataType: cosem.TypeUnsigned, Value: 2},
	)
	require.NoError(t, err)

	got, err := arr.ToData()
	require.NoError(t, err)
	want := cosem.NewArray(cosem.NewUnsigned(1), cosem.NewUnsigned(2))
	assert.True(t, want.Equal(*got), "got %s", got)
}

func TestArrayRejectsIncompatibleElement(t *testing.T) {
	elem := &Scalar{ItemName: "id", DataType: cosem.TypeUnsigned}

	tests := []struct {
		name string
		bad  Definition
	}{
		{"different scalar tag", &Scalar{ItemName: "id", DataType: cosem.TypeLongUnsigned, Value: 1}},
		{"structure instead of scalar", &Structure{ItemName: "s"}},
		{"enum instead of scalar", &Enum{ItemName: "e", Domain: ByteDomain, Value: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arr := &Array{
				ItemName: "ids",
				Element:  elem,
				Elements: []Definition{
					&Scalar{ItemName: "id", DataType: cosem.TypeUnsigned, Value: 1},
					tt.bad,
				},
			}
			_, err := arr.ToData()
			assert.ErrorIs(t, err, ErrIncompatibleElement)
		})
	}
}

func TestArrayNullElementIsNotWildcard(t *testing.T) {
	u8 := &Scalar{ItemName: "u", DataType: cosem.TypeUnsigned, Value: 1}
	arr := &Array{
		ItemName: "a",
		Element:  &Scalar{ItemName: "n", DataType: cosem.TypeNull},
		Elements: []Definition{&Structure{ItemName: "s", Fields: []Definition{u8}}, u8},
	}

	_, err := arr.ToData()
	assert.ErrorIs(t, err, ErrIncompatibleElement)
}

func TestArrayAbsent(t *testing.T) {
	arr := &Array{ItemName: "a", Element: &Scalar{ItemName: "u", DataType: cosem.TypeUnsigned}, Absent: true}
	d, err := arr.ToData()
	require.NoError(t, err)
	assert.True(t, d.IsNull())

	arr.Absent = false
	d, err = arr.ToData()
	require.NoError(t, err)
	assert.True(t, cosem.NewArray().Equal(*d))
}

func TestArrayAppendResolvesUnknown(t *testing.T) {
	arr := &Array{ItemName: "list", Element: Unknown()}
	arr.Append(&Scalar{ItemName: "x", DataType: cosem.TypeLong, Value: 3})

	require.Len(t, arr.Elements, 1)
	assert.False(t, IsUnknown(arr.Element))
	assert.Equal(t, cosem.TypeLong, arr.Element.Type())

	got, err := arr.ToData()
	require.NoError(t, err)
	assert.True(t, cosem.NewArray(cosem.NewLong(3)).Equal(*got))
}

func TestStructureToData(t *testing.T) {
	t.Run("empty yields nil", func(t *testing.T) {
		s := &Structure{ItemName: "empty"}
		got, err := s.ToData()
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("absent fields become null", func(t *testing.T) {
		s := &Structure{
			ItemName: "settings",
			Fields: []Definition{
				&Scalar{ItemName: "a", DataType: cosem.TypeUnsigned, Value: 1},
				&Scalar{ItemName: "b", DataType: cosem.TypeUnsigned},
				&Structure{ItemName: "c"},
				nil,
			},
		}
		got, err := s.ToData()
		require.NoError(t, err)

		want := cosem.NewStructure(cosem.NewUnsigned(1), cosem.NewNull(), cosem.NewNull(), cosem.NewNull())
		assert.True(t, want.Equal(*got), "got %s", got)
	})

	t.Run("nested error names field", func(t *testing.T) {
		s := &Structure{
			ItemName: "outer",
			Fields:   []Definition{&Scalar{ItemName: "inner", DataType: cosem.TypeUnsigned, Value: 999}},
		}
		_, err := s.ToData()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "outer.inner")
	})
}

func TestStructureField(t *testing.T) {
	s := &Structure{ItemName: "s", Fields: []Definition{
		&Scalar{ItemName: "a", DataType: cosem.TypeUnsigned},
		&Enum{ItemName: "b", Domain: ByteDomain},
	}}

	f, ok := s.Field("b")
	require.True(t, ok)
	assert.Equal(t, cosem.TypeEnum, f.Type())

	_, ok = s.Field("missing")
	assert.False(t, ok)
}

func TestEnumToData(t *testing.T) {
	domain := NewEnumDomain("Relay",
		EnumValue{Value: 0, Ident: "disconnected"},
		EnumValue{Value: 1, Ident: "connected"},
	)

	e := &Enum{ItemName: "state", Domain: domain, Value: 1}
	got, err := e.ToData()
	require.NoError(t, err)
	assert.True(t, cosem.NewEnum(1).Equal(*got))

	e.Value = "Disconnected"
	got, err = e.ToData()
	require.NoError(t, err)
	assert.True(t, cosem.NewEnum(0).Equal(*got))

	e.Value = "bogus"
	_, err = e.ToData()
	assert.ErrorIs(t, err, ErrUnknownEnumValue)

	e.Value = nil
	got, err = e.ToData()
	require.NoError(t, err)
	assert.Nil(t, got)

	v, ok := (&Enum{ItemName: "x", Domain: domain, Value: uint8(1)}).Byte()
	assert.True(t, ok)
	assert.Equal(t, uint8(1), v)
}

func TestEqual(t *testing.T) {
	relay := NewEnumDomain("Relay")
	mode := NewEnumDomain("Mode")

	u8 := func() Definition { return &Scalar{ItemName: "a", DataType: cosem.TypeUnsigned, Value: 1} }
	u16 := func() Definition { return &Scalar{ItemName: "b", DataType: cosem.TypeLongUnsigned} }

	tests := []struct {
		name string
		a, b Definition
		want bool
	}{
		{"same scalar tag, different values and names", u8(), &Scalar{ItemName: "z", DataType: cosem.TypeUnsigned, Value: 9}, true},
		{"different scalar tag", u8(), u16(), false},
		{"scalar vs enum", u8(), &Enum{ItemName: "a", Domain: ByteDomain}, false},
		{"enum same domain", &Enum{ItemName: "a", Domain: relay, Value: 0}, &Enum{ItemName: "b", Domain: relay, Value: 1}, true},
		{"enum different domain", &Enum{ItemName: "a", Domain: relay}, &Enum{ItemName: "a", Domain: mode}, false},
		{"enum nil domain is byte", &Enum{ItemName: "a"}, &Enum{ItemName: "a", Domain: ByteDomain}, true},
		{"structures pairwise", &Structure{ItemName: "s", Fields: []Definition{u8(), u16()}}, &Structure{ItemName: "t", Fields: []Definition{u8(), u16()}}, true},
		{"structures reordered", &Structure{ItemName: "s", Fields: []Definition{u8(), u16()}}, &Structure{ItemName: "s", Fields: []Definition{u16(), u8()}}, false},
		{"structures different count", &Structure{ItemName: "s", Fields: []Definition{u8()}}, &Structure{ItemName: "s", Fields: []Definition{u8(), u8()}}, false},
		{"arrays same element", &Array{ItemName: "a", Element: u8()}, &Array{ItemName: "b", Element: u8(), Elements: []Definition{u8()}}, true},
		{"arrays different element", &Array{ItemName: "a", Element: u8()}, &Array{ItemName: "a", Element: u16()}, false},
		{"unknown placeholders", Unknown(), Unknown(), true},
		{"null-data vs array", &Scalar{ItemName: "n", DataType: cosem.TypeNull}, &Array{ItemName: "a", Element: u8()}, false},
		{"null-data vs scalar", &Scalar{ItemName: "n", DataType: cosem.TypeNull}, u8(), false},
		{"null-data pair", &Scalar{ItemName: "n", DataType: cosem.TypeNull}, &Scalar{ItemName: "m", DataType: cosem.TypeNull}, true},
		{"null-data inside structures", &Structure{ItemName: "s", Fields: []Definition{u8(), &Scalar{ItemName: "n", DataType: cosem.TypeNull}}}, &Structure{ItemName: "s", Fields: []Definition{u8(), u16()}}, false},
		{"absent array matches present", &Array{ItemName: "a", Element: u8(), Absent: true}, &Array{ItemName: "b", Element: u8(), Elements: []Definition{u8()}}, true},
		{"both nil", nil, nil, true},
		{"one nil", u8(), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
			assert.Equal(t, tt.want, Equal(tt.b, tt.a))
		})
	}
}
