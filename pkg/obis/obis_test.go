package obis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogicalNameString(t *testing.T) {
	assert.Equal(t, "1-65:0.129.0*255", New(1, 65, 0, 129, 0, 255).String())
	assert.Equal(t, "0-0:0.0.0*0", LogicalName{}.String())
}

func TestParseRoundTrip(t *testing.T) {
	names := []LogicalName{
		{},
		{255, 255, 255, 255, 255, 255},
		{0, 255, 0, 255, 0, 255},
		{1, 65, 0, 129, 0, 255},
		{9, 9, 9, 9, 9, 9},
	}
	for _, ln := range names {
		t.Run(ln.String(), func(t *testing.T) {
			got, err := Parse(ln.String())
			require.NoError(t, err)
			assert.Equal(t, ln, got)
		})
	}
}

func TestParseAllByteValues(t *testing.T) {
	for v := 0; v <= 255; v++ {
		b := uint8(v)
		ln := New(b, 255-b, b, 0, 255, b)
		got, err := Parse(ln.String())
		require.NoError(t, err)
		require.Equal(t, ln, got)
	}
}

func TestParseLenientSeparators(t *testing.T) {
	tests := []string{
		"1.65.0.129.0.255",
		"1:65:0:129:0:255",
		"1-65-0-129-0-255",
		" 1-65:0.129.0*255 ",
	}
	for _, s := range tests {
		got, err := Parse(s)
		require.NoError(t, err, s)
		assert.Equal(t, New(1, 65, 0, 129, 0, 255), got, s)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"",
		"1-65:0.129.0",
		"1-65:0.129.0*255*1",
		"1-65:0.129.0*256",
		"1-65:0.x.0*255",
		"1--65:0.129.0*255",
		"-1-65:0.129.0*255",
		"1-65:0.129.0*255*",
		"1-65:0.-1.0*255",
	}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			_, err := Parse(s)
			assert.True(t, errors.Is(err, ErrInvalidLogicalName), "error = %v", err)
		})
	}
}

func TestFromBytes(t *testing.T) {
	ln, err := FromBytes([]byte{0, 0, 1, 0, 0, 255})
	require.NoError(t, err)
	assert.Equal(t, "0-0:1.0.0*255", ln.String())
	assert.Equal(t, []byte{0, 0, 1, 0, 0, 255}, ln.Bytes())

	_, err = FromBytes([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidLogicalName)
}

func TestTextMarshaling(t *testing.T) {
	ln := New(0, 0, 40, 0, 0, 255)
	text, err := ln.MarshalText()
	require.NoError(t, err)

	var back LogicalName
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, ln, back)

	assert.Error(t, back.UnmarshalText([]byte("bogus")))
}
