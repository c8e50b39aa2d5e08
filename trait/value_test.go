package trait

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw  string
		want Value
	}{
		{"1.5", Numeric(1.5)},
		{"-3", Numeric(-3)},
		{"0", Numeric(0)},
		{"1e6", Numeric(1e6)},
		{"red", Text("red")},
		{"", Text("")},
		{"1.5x", Text("1.5x")},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, Parse(tt.raw), "Parse(%q)", tt.raw)
	}
}

func TestValue_String(t *testing.T) {
	require.Equal(t, "1.5", Numeric(1.5).String())
	require.Equal(t, "2", Numeric(2).String())
	require.Equal(t, "red", Text("red").String())
}

func TestValue_StringRoundTrip(t *testing.T) {
	for _, v := range []Value{Numeric(1.5), Numeric(-3), Numeric(1e300), Text("red"), Text("")} {
		require.Equal(t, v, Parse(v.String()))
	}
}

func TestValue_Compare(t *testing.T) {
	require.Negative(t, Numeric(1).Compare(Numeric(2)))
	require.Positive(t, Numeric(2).Compare(Numeric(1)))
	require.Zero(t, Numeric(2).Compare(Numeric(2)))

	require.Negative(t, Text("a").Compare(Text("b")))
	require.Zero(t, Text("a").Compare(Text("a")))

	// Cross-type policy: numeric before text, always.
	require.Negative(t, Numeric(1e12).Compare(Text("a")))
	require.Positive(t, Text("0").Compare(Numeric(5)))
}

func TestValue_Accessors(t *testing.T) {
	f, ok := Numeric(1.5).AsFloat64()
	require.True(t, ok)
	require.Equal(t, 1.5, f)

	_, ok = Numeric(1.5).AsText()
	require.False(t, ok)

	s, ok := Text("red").AsText()
	require.True(t, ok)
	require.Equal(t, "red", s)

	_, ok = Text("red").AsFloat64()
	require.False(t, ok)
}
