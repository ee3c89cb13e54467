package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

// BuildStub compiles the Go program src into a test-scoped temporary
// directory and returns the absolute path to the produced executable. Tests
// use it to stand in for mpy-cross.
func BuildStub(t *testing.T, name, src string) string {
	t.Helper()

	dir := t.TempDir()
	srcPath := filepath.Join(dir, name+".go")
	if err := os.WriteFile(srcPath, []byte(src), 0o644); err != nil {
		t.Fatalf("write stub source: %v", err)
	}

	binName := name
	if runtime.GOOS == "windows" {
		binName += ".exe"
	}
	outPath := filepath.Join(dir, binName)

	cmd := exec.Command("go", "build", "-o", outPath, srcPath)
	cmd.Dir = dir
	// Inherit environment; ensure CGO disabled for determinism
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build stub %s failed: %v\n%s", name, err, string(output))
	}
	return outPath
}

// EchoArgsStub prints its argv (without the program name) as a JSON array.
const EchoArgsStub = `package main

import (
	"encoding/json"
	"os"
)

func main() {
	args := os.Args[1:]
	if args == nil {
		args = []string{}
	}
	_ = json.NewEncoder(os.Stdout).Encode(args)
}
`

// CountingStub appends one line per invocation to the file named by
// $STUB_COUNT_FILE and exits 0.
const CountingStub = `package main

import "os"

func main() {
	f, err := os.OpenFile(os.Getenv("STUB_COUNT_FILE"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		os.Exit(9)
	}
	_, _ = f.WriteString("run\n")
	_ = f.Close()
}
`

// FailStub writes "boom" to stderr and exits 3.
const FailStub = `package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprint(os.Stderr, "boom")
	os.Exit(3)
}
`

// PrintStub prints $STUB_OUTPUT verbatim and exits 0.
const PrintStub = `package main

import (
	"fmt"
	"os"
)

func main() { fmt.Print(os.Getenv("STUB_OUTPUT")) }
`

// Chdir changes the working directory to dir for the duration of the test,
// restoring the previous directory on cleanup. It mirrors testing.T.Chdir,
// which is unavailable before Go 1.24.
func Chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
