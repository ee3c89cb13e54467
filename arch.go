package mpycross

import "strings"

// Arch is a native-code target token passed to mpy-cross as -march=<token>.
type Arch string

const (
	NativeArchNone      Arch = ""
	NativeArchX86       Arch = "x86"
	NativeArchX64       Arch = "x64"
	NativeArchARMv6     Arch = "armv6"
	NativeArchARMv6M    Arch = "armv6m"
	NativeArchARMv7M    Arch = "armv7m"
	NativeArchARMv7EM   Arch = "armv7em"
	NativeArchARMv7EMSP Arch = "armv7emsp"
	NativeArchARMv7EMDP Arch = "armv7emdp"
	NativeArchXtensa    Arch = "xtensa"
	NativeArchXtensaWin Arch = "xtensawin"
	NativeArchRV32IMC   Arch = "rv32imc"
)

type archEntry struct {
	name  string
	token Arch
}

// nativeArchs is the fixed name->token table, in mpy-cross declaration order.
var nativeArchs = [...]archEntry{
	{"NATIVE_ARCH_NONE", NativeArchNone},
	{"NATIVE_ARCH_X86", NativeArchX86},
	{"NATIVE_ARCH_X64", NativeArchX64},
	{"NATIVE_ARCH_ARMV6", NativeArchARMv6},
	{"NATIVE_ARCH_ARMV6M", NativeArchARMv6M},
	{"NATIVE_ARCH_ARMV7M", NativeArchARMv7M},
	{"NATIVE_ARCH_ARMV7EM", NativeArchARMv7EM},
	{"NATIVE_ARCH_ARMV7EMSP", NativeArchARMv7EMSP},
	{"NATIVE_ARCH_ARMV7EMDP", NativeArchARMv7EMDP},
	{"NATIVE_ARCH_XTENSA", NativeArchXtensa},
	{"NATIVE_ARCH_XTENSAWIN", NativeArchXtensaWin},
	{"NATIVE_ARCH_RV32IMC", NativeArchRV32IMC},
}

// NativeArchNames returns the symbolic names of all known architectures.
func NativeArchNames() []string {
	out := make([]string, len(nativeArchs))
	for i, e := range nativeArchs {
		out[i] = e.name
	}
	return out
}

// NativeArchs returns all known architecture tokens in the same order as
// NativeArchNames.
func NativeArchs() []Arch {
	out := make([]Arch, len(nativeArchs))
	for i, e := range nativeArchs {
		out[i] = e.token
	}
	return out
}

// Name returns the symbolic NATIVE_ARCH_* name of a, or "" when a is not a
// known token.
func (a Arch) Name() string {
	for _, e := range nativeArchs {
		if e.token == a {
			return e.name
		}
	}
	return ""
}

// LookupArch resolves either a symbolic name (case-insensitive, with or
// without the NATIVE_ARCH_ prefix) or a raw token.
func LookupArch(s string) (Arch, bool) {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)
	if !strings.HasPrefix(upper, "NATIVE_ARCH_") {
		upper = "NATIVE_ARCH_" + upper
	}
	for _, e := range nativeArchs {
		if string(e.token) == s || e.name == upper {
			return e.token, true
		}
	}
	return "", false
}
