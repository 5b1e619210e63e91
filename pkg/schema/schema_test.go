package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngc-ami/cosem-go/pkg/cosem"
	"github.com/ngc-ami/cosem-go/pkg/definition"
)

var testDomain = definition.NewEnumDomain("Mode",
	definition.EnumValue{Value: 0, Ident: "off"},
	definition.EnumValue{Value: 1, Ident: "on"},
)

var pairSchema = &Structure{
	Name: "Pair",
	Fields: []Field{
		{Name: "From", Type: cosem.TypeTime, Fallback: true},
		{Name: "To", Type: cosem.TypeTime, Fallback: true},
	},
}

var testSchema = &Structure{
	Name: "Test",
	Fields: []Field{
		{Name: "Label", Type: cosem.TypeVisibleString, Default: "none"},
		{Name: "Mode", Type: cosem.TypeEnum, Domain: testDomain},
		{Name: "Day", Type: cosem.TypeDate, Fallback: true},
		{Name: "Pairs", Type: cosem.TypeArray, Element: &Field{Name: "Pair", Type: cosem.TypeStructure, Struct: pairSchema}},
		{Name: "Filter", Type: cosem.TypeArray, Nullable: true, Element: &Field{Name: "Selector", Type: cosem.TypeInteger}},
	},
}

var (
	testDay  = cosem.Date{Year: 2024, Month: 6, DayOfMonth: 1, DayOfWeek: 6}
	testFrom = cosem.Time{Hour: 6, Minute: 0, Second: 0, Hundredths: 0}
	testTo   = cosem.Time{Hour: 22, Minute: 30, Second: 0, Hundredths: 0}
)

func validData() cosem.Data {
	return cosem.NewStructure(
		cosem.NewVisibleString("main"),
		cosem.NewEnum(1),
		cosem.NewDate(testDay),
		cosem.NewArray(cosem.NewStructure(cosem.NewTime(testFrom), cosem.NewTime(testTo))),
		cosem.NewNull(),
	)
}

func TestUnpack(t *testing.T) {
	d := validData()
	r, err := testSchema.Unpack(&d)
	require.NoError(t, err)

	assert.Equal(t, 5, r.Len())
	assert.Same(t, testSchema, r.Schema())
	assert.Equal(t, "main", r.Text(0))
	assert.Equal(t, uint8(1), r.Uint8(1))
	assert.Equal(t, testDay, r.Date(2))
	require.Len(t, r.Elements(3), 1)
	assert.True(t, r.IsNull(4))
}

func TestUnpackStructureErrors(t *testing.T) {
	u := cosem.NewUnsigned(1)
	short := cosem.NewStructure(cosem.NewVisibleString("x"))
	long := cosem.NewStructure(append(mustElements(validData()), cosem.NewNull())...)
	bad := cosem.Data{Type: cosem.TypeStructure, Value: "nope"}

	tests := []struct {
		name string
		data *cosem.Data
		want error
	}{
		{"nil", nil, ErrNilData},
		{"not a structure", &u, ErrNotStructure},
		{"too few fields", &short, ErrFieldCount},
		{"too many fields", &long, ErrFieldCount},
		{"invalid shape", &bad, cosem.ErrShapeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testSchema.Unpack(tt.data)
			require.ErrorIs(t, err, tt.want)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, "Test", pe.Structure)
			assert.Equal(t, -1, pe.Index)
		})
	}
}

func TestUnpackFieldType(t *testing.T) {
	d := validData()
	elems := mustElements(d)
	elems[1] = cosem.NewUnsigned(1)

	_, err := testSchema.Unpack(&d)
	require.ErrorIs(t, err, ErrFieldType)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 1, pe.Index)
	assert.Equal(t, "Mode", pe.Field)
	assert.Contains(t, err.Error(), "Test field 1 (Mode)")
}

func TestUnpackArrayElementType(t *testing.T) {
	d := validData()
	elems := mustElements(d)
	elems[4] = cosem.NewArray(cosem.NewInteger(1), cosem.NewUnsigned(2))

	_, err := testSchema.Unpack(&d)
	assert.ErrorIs(t, err, ErrFieldType)
}

func TestUnpackFallback(t *testing.T) {
	d := validData()
	elems := mustElements(d)
	elems[2] = cosem.NewOctetString(testDay.Bytes())

	r, err := testSchema.Unpack(&d)
	require.NoError(t, err)
	assert.Equal(t, testDay, r.Date(2))
	assert.Equal(t, cosem.TypeDate, r.Data(2).Type)
}

func TestUnpackFallbackErrors(t *testing.T) {
	t.Run("nil payload", func(t *testing.T) {
		d := validData()
		mustElements(d)[2] = cosem.Data{Type: cosem.TypeOctetString, Value: []byte(nil)}
		_, err := testSchema.Unpack(&d)
		assert.ErrorIs(t, err, ErrNilPayload)
	})

	t.Run("wrong length", func(t *testing.T) {
		d := validData()
		mustElements(d)[2] = cosem.NewOctetString([]byte{1, 2, 3})
		_, err := testSchema.Unpack(&d)
		assert.ErrorIs(t, err, cosem.ErrInvalidLength)
	})

	t.Run("no fallback on non-calendar field", func(t *testing.T) {
		d := validData()
		mustElements(d)[0] = cosem.NewOctetString([]byte("main"))
		_, err := testSchema.Unpack(&d)
		assert.ErrorIs(t, err, ErrFieldType)
	})
}

func TestUnpackNullable(t *testing.T) {
	d := validData()
	mustElements(d)[4] = cosem.NewArray(cosem.NewInteger(1), cosem.NewInteger(-2))

	r, err := testSchema.Unpack(&d)
	require.NoError(t, err)
	assert.Len(t, r.Elements(4), 2)

	mustElements(d)[0] = cosem.NewNull()
	_, err = testSchema.Unpack(&d)
	assert.ErrorIs(t, err, ErrFieldType)
}

func TestUnpackSource(t *testing.T) {
	s := &Structure{
		Name: "Aliased",
		Fields: []Field{
			{Name: "A", Type: cosem.TypeUnsigned},
			{Name: "B", Type: cosem.TypeUnsigned, Source: 0},
			{Name: "C", Type: cosem.TypeUnsigned, Source: 1},
		},
	}
	d := cosem.NewStructure(cosem.NewUnsigned(1), cosem.NewUnsigned(2), cosem.NewBoolean(true))

	r, err := s.Unpack(&d)
	require.NoError(t, err)
	assert.Equal(t, uint8(2), r.Uint8(1))
	assert.Equal(t, uint8(2), r.Uint8(2))

	s.Fields[2].Source = 5
	_, err = s.Unpack(&d)
	assert.ErrorIs(t, err, ErrFieldCount)
}

func TestPack(t *testing.T) {
	want := validData()
	got, err := testSchema.Pack(mustElements(want)...)
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	_, err = testSchema.Pack(cosem.NewVisibleString("x"))
	assert.ErrorIs(t, err, ErrFieldCount)

	vals := mustElements(validData())
	vals[2] = cosem.NewOctetString(testDay.Bytes())
	_, err = testSchema.Pack(vals...)
	assert.ErrorIs(t, err, ErrFieldType, "pack never emits the fallback tag")
}

func TestDefinitionDefaults(t *testing.T) {
	def := testSchema.Definition()
	require.Len(t, def.Fields, 5)
	assert.Equal(t, "Test", def.ItemName)

	label := def.Fields[0].(*definition.Scalar)
	assert.Equal(t, "none", label.Value)

	mode := def.Fields[1].(*definition.Enum)
	assert.Same(t, testDomain, mode.Domain)
	assert.Equal(t, uint8(0), mode.Value)

	day := def.Fields[2].(*definition.Scalar)
	assert.Equal(t, cosem.AnyDate, day.Value)

	pairs := def.Fields[3].(*definition.Array)
	assert.Empty(t, pairs.Elements)
	elem, ok := pairs.Element.(*definition.Structure)
	require.True(t, ok)
	assert.Equal(t, "Pair", elem.ItemName)
	assert.Len(t, elem.Fields, 2)
}

func TestDefinitionWithValues(t *testing.T) {
	def := testSchema.Definition(mustElements(validData())...)

	pairs := def.Fields[3].(*definition.Array)
	require.Len(t, pairs.Elements, 1)
	assert.True(t, definition.Equal(pairs.Element, pairs.Elements[0]))

	filter := def.Fields[4].(*definition.Array)
	assert.True(t, filter.Absent)
	assert.Empty(t, filter.Elements)
	assert.True(t, definition.Equal(testSchema.Definition().Fields[4], filter))

	d, err := def.ToData()
	require.NoError(t, err)
	require.NotNil(t, d)

	// Calendar fields are emitted as octet strings by definitions.
	elems, _ := d.Elements()
	assert.Equal(t, cosem.TypeOctetString, elems[2].Type)
	assert.Equal(t, testDay.Bytes(), elems[2].Value)
	assert.True(t, elems[4].IsNull())
}

func TestIndex(t *testing.T) {
	assert.Equal(t, 2, testSchema.Index("Day"))
	assert.Equal(t, -1, testSchema.Index("Nope"))
	assert.Equal(t, 5, testSchema.Arity())
}

func mustElements(d cosem.Data) []cosem.Data {
	elems, ok := d.Elements()
	if !ok {
		panic("not a container")
	}
	return elems
}

func TestUnpackNestedFallbackNormalized(t *testing.T) {
	d := validData()
	mustElements(d)[3] = cosem.NewArray(cosem.NewStructure(
		cosem.NewOctetString(testFrom.Bytes()),
		cosem.NewTime(testTo),
	))

	r, err := testSchema.Unpack(&d)
	require.NoError(t, err)

	pair, _ := r.Elements(3)[0].Elements()
	assert.Equal(t, cosem.TypeTime, pair[0].Type)
	assert.Equal(t, testFrom, pair[0].Value)
}

func TestUnpackNestedArity(t *testing.T) {
	d := validData()
	mustElements(d)[3] = cosem.NewArray(cosem.NewStructure(cosem.NewTime(testFrom)))

	_, err := testSchema.Unpack(&d)
	require.ErrorIs(t, err, ErrFieldCount)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "Test", pe.Structure)
	assert.Equal(t, 3, pe.Index)
}
