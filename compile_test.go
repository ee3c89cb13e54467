package mpycross

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/mpycross/internal/testutil"
)

func TestCompileArgs_Order(t *testing.T) {
	cases := []struct {
		name string
		opts CompileOptions
		want []string
	}{
		{
			name: "src only",
			opts: CompileOptions{Src: "a.py"},
			want: []string{"a.py"},
		},
		{
			name: "dest opt march",
			opts: CompileOptions{Src: "a.py", Dest: "a.mpy", Opt: OptLevel(2), March: NativeArchX64},
			want: []string{"-o", "a.mpy", "-march=x64", "-O2", "a.py"},
		},
		{
			name: "everything",
			opts: CompileOptions{
				Src:       "lib/a.py",
				Dest:      "out/a.mpy",
				SrcPath:   "a.py",
				Opt:       OptLevel(3),
				March:     NativeArchARMv7EMSP,
				ExtraArgs: []string{"-X", "emit=native", "-v"},
			},
			want: []string{"-s", "a.py", "-o", "out/a.mpy", "-march=armv7emsp", "-O3", "-X", "emit=native", "-v", "lib/a.py"},
		},
		{
			name: "opt zero is kept",
			opts: CompileOptions{Src: "a.py", Opt: OptLevel(0)},
			want: []string{"-O0", "a.py"},
		},
		{
			name: "unknown march passes through",
			opts: CompileOptions{Src: "a.py", March: Arch("z80")},
			want: []string{"-march=z80", "a.py"},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, CompileArgs(c.opts))
		})
	}
}

func TestCompile_EmptySrc(t *testing.T) {
	_, err := Compile(context.Background(), CompileOptions{Binary: "/does/not/matter"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.False(t, IsCrossCompileError(err))
}

func TestCompile_MissingSrc_DoesNotSpawn(t *testing.T) {
	bin := testutil.BuildStub(t, "count", testutil.CountingStub)
	countFile := filepath.Join(t.TempDir(), "count.txt")
	t.Setenv("STUB_COUNT_FILE", countFile)

	missing := filepath.Join(t.TempDir(), "missing.py")
	_, err := Compile(context.Background(), CompileOptions{Src: missing, Binary: bin})
	require.Error(t, err)

	var ce *CrossCompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "Input .py file not found: "+missing+".", ce.Error())

	_, statErr := os.Stat(countFile)
	assert.True(t, os.IsNotExist(statErr), "stub must not have been invoked")
}

func TestCompile_CountingStubRunsOnce(t *testing.T) {
	bin := testutil.BuildStub(t, "count", testutil.CountingStub)
	countFile := filepath.Join(t.TempDir(), "count.txt")
	t.Setenv("STUB_COUNT_FILE", countFile)

	src := filepath.Join(t.TempDir(), "a.py")
	require.NoError(t, os.WriteFile(src, []byte("print(1)\n"), 0o644))

	_, err := Compile(context.Background(), CompileOptions{Src: src, Binary: bin})
	require.NoError(t, err)
	data, err := os.ReadFile(countFile)
	require.NoError(t, err)
	assert.Equal(t, "run\n", string(data))
}

func TestCompile_EchoStubSeesArgs(t *testing.T) {
	bin := testutil.BuildStub(t, "echo", testutil.EchoArgsStub)
	testutil.Chdir(t, t.TempDir())
	require.NoError(t, os.WriteFile("a.py", []byte("x = 1\n"), 0o644))

	inv := &Invoker{Binary: bin}
	out, err := inv.Compile(context.Background(), CompileOptions{
		Src:   "a.py",
		Dest:  "a.mpy",
		Opt:   OptLevel(2),
		March: NativeArchX64,
	})
	require.NoError(t, err)

	var argv []string
	require.NoError(t, json.Unmarshal([]byte(out), &argv))
	assert.Equal(t, []string{"-o", "a.mpy", "-march=x64", "-O2", "a.py"}, argv)
}

func TestCompile_OptionBinaryOverridesInvoker(t *testing.T) {
	bin := testutil.BuildStub(t, "echo", testutil.EchoArgsStub)
	src := filepath.Join(t.TempDir(), "a.py")
	require.NoError(t, os.WriteFile(src, nil, 0o644))

	var seen []string
	inv := &Invoker{
		Binary:   filepath.Join(t.TempDir(), "absent"),
		Observer: func(i Invocation) { seen = append(seen, i.Binary) },
	}
	_, err := inv.Compile(context.Background(), CompileOptions{Src: src, Binary: bin})
	require.NoError(t, err)
	assert.Equal(t, []string{bin}, seen)
}

func TestCompile_ToolFailureCarriesDiagnostic(t *testing.T) {
	bin := testutil.BuildStub(t, "fail", testutil.FailStub)
	src := filepath.Join(t.TempDir(), "a.py")
	require.NoError(t, os.WriteFile(src, nil, 0o644))

	_, err := Compile(context.Background(), CompileOptions{Src: src, Binary: bin})
	require.Error(t, err)
	assert.True(t, IsCrossCompileError(err))
	assert.Equal(t, "boom", err.Error())
}
