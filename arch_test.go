package mpycross

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNativeArchs_OnlyNoneIsEmpty(t *testing.T) {
	names := NativeArchNames()
	archs := NativeArchs()
	require.Len(t, archs, len(names))
	require.Len(t, archs, 12)
	for i, a := range archs {
		if names[i] == "NATIVE_ARCH_NONE" {
			assert.Equal(t, Arch(""), a)
			continue
		}
		assert.NotEmpty(t, string(a), "token for %s", names[i])
	}
}

func TestNativeArchNames_ReturnsCopy(t *testing.T) {
	names := NativeArchNames()
	names[0] = "mutated"
	assert.Equal(t, "NATIVE_ARCH_NONE", NativeArchNames()[0])
}

func TestArchName(t *testing.T) {
	assert.Equal(t, "NATIVE_ARCH_XTENSAWIN", NativeArchXtensaWin.Name())
	assert.Equal(t, "NATIVE_ARCH_NONE", NativeArchNone.Name())
	assert.Equal(t, "", Arch("z80").Name())
}

func TestLookupArch(t *testing.T) {
	cases := []struct {
		in   string
		want Arch
		ok   bool
	}{
		{"x64", NativeArchX64, true},
		{"NATIVE_ARCH_ARMV7EMSP", NativeArchARMv7EMSP, true},
		{"armv6m", NativeArchARMv6M, true},
		{"rv32imc", NativeArchRV32IMC, true},
		{"xtensa", NativeArchXtensa, true},
		{"none", NativeArchNone, true},
		{"", NativeArchNone, true},
		{"z80", "", false},
	}
	for _, c := range cases {
		got, ok := LookupArch(c.in)
		assert.Equal(t, c.ok, ok, "LookupArch(%q) ok", c.in)
		assert.Equal(t, c.want, got, "LookupArch(%q)", c.in)
	}
}
