package mpycross

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/mpycross/internal/testutil"
)

func TestParseMpyVersion(t *testing.T) {
	cases := []struct {
		in           string
		major, minor int
	}{
		{"mpy-cross emitting mpy v6.1", 6, 1},
		{"mpy-cross emitting mpy v6", 6, 0},
		{"MicroPython v1.22.0 on 2024-01-01; mpy-cross emitting mpy v6.2\n", 6, 2},
		{"mpy-cross emitting mpy v5.", 5, 0},
	}
	for _, c := range cases {
		major, minor, err := ParseMpyVersion(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.major, major, c.in)
		assert.Equal(t, c.minor, minor, c.in)
	}
}

func TestParseMpyVersion_NoMatch(t *testing.T) {
	_, _, err := ParseMpyVersion("usage: mpy-cross [<opts>] [-X <xopt>] <input filename>")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVersionFormat)
}

func TestMpyVersion_FromStub(t *testing.T) {
	bin := testutil.BuildStub(t, "print", testutil.PrintStub)

	t.Setenv("STUB_OUTPUT", "mpy-cross emitting mpy v6.1")
	major, minor, err := MpyVersion(context.Background(), bin)
	require.NoError(t, err)
	assert.Equal(t, [2]int{6, 1}, [2]int{major, minor})

	t.Setenv("STUB_OUTPUT", "mpy-cross emitting mpy v6")
	major, minor, err = MpyVersion(context.Background(), bin)
	require.NoError(t, err)
	assert.Equal(t, [2]int{6, 0}, [2]int{major, minor})
}

func TestMpyVersion_PassesVersionFlag(t *testing.T) {
	bin := testutil.BuildStub(t, "echo", testutil.EchoArgsStub)
	var args []string
	inv := &Invoker{Binary: bin, Observer: func(i Invocation) { args = i.Args }}

	_, _, err := inv.MpyVersion(context.Background())
	require.ErrorIs(t, err, ErrVersionFormat)
	assert.Equal(t, []string{"--version"}, args)
}
