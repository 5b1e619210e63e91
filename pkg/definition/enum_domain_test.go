package definition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDomain() *EnumDomain {
	return NewEnumDomain("RelayState",
		EnumValue{Value: 0, Ident: "disconnected"},
		EnumValue{Value: 1, Ident: "connected"},
		EnumValue{Value: 2, Ident: "ready_for_reconnection"},
	)
}

func TestEnumDomainDescription(t *testing.T) {
	d := testDomain()
	assert.Equal(t, "Disconnected", d.Description(0))
	assert.Equal(t, "Ready For Reconnection", d.Description(2))
	assert.Equal(t, "9", d.Description(9))
	assert.Equal(t, []string{"Disconnected", "Connected", "Ready For Reconnection"}, d.Descriptions())
}

func TestEnumDomainParse(t *testing.T) {
	d := testDomain()

	tests := []struct {
		in   string
		want uint8
	}{
		{"connected", 1},
		{"CONNECTED", 1},
		{"Ready For Reconnection", 2},
		{"ready for RECONNECTION", 2},
		{"ready_for_reconnection", 2},
		{" 2 ", 2},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := d.Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := d.Parse("7")
	assert.ErrorIs(t, err, ErrUnknownEnumValue)
	_, err = d.Parse("open")
	assert.ErrorIs(t, err, ErrUnknownEnumValue)
}

func TestEnumDomainLookup(t *testing.T) {
	d := testDomain()
	ev, ok := d.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, "connected", ev.Ident)

	_, ok = d.Lookup(3)
	assert.False(t, ok)
}

func TestEnumDomainValuesIsCopy(t *testing.T) {
	d := testDomain()
	vals := d.Values()
	vals[0].Ident = "mutated"
	assert.Equal(t, "disconnected", d.Values()[0].Ident)
}

func TestByteDomain(t *testing.T) {
	assert.True(t, ByteDomain.IsByte())

	ev, ok := ByteDomain.Lookup(200)
	require.True(t, ok)
	assert.Equal(t, uint8(200), ev.Value)
	assert.Equal(t, "200", ByteDomain.Description(200))

	v, err := ByteDomain.Parse("17")
	require.NoError(t, err)
	assert.Equal(t, uint8(17), v)

	_, err = ByteDomain.Parse("seventeen")
	assert.ErrorIs(t, err, ErrUnknownEnumValue)
}
