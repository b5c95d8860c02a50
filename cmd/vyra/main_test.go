package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/log"
)

func captureCLI(t *testing.T, args []string, stdin string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"vyra"}, args...), strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, path, contents string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

const greetProgram = `
statements:
  - {type: input, prompt: "Name? ", variable: name}
  - type: function_def
    name: greet
    parameters: [who]
    body:
      - {type: return, value: {type: binary_op, operator: "+", left: {type: literal, value: "hi "}, right: {type: variable, name: who}}}
  - {type: output, line: 3, expressions: [{type: function_call, function: greet, arguments: [{type: variable, name: name}]}]}
  - {type: return, value: {type: literal, value: 7}}
`

func TestRunCommandExecutesProgram(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "greet.yaml"), greetProgram)
	for _, mode := range []string{"graph", "tree"} {
		code, stdout, stderr := captureCLI(t, []string{"--verbosity", "0", "--exec-mode", mode, "run", path}, "Ada\n")
		if code != 0 {
			t.Fatalf("%s: expected exit code 0, got %d (stderr=%q)", mode, code, stderr)
		}
		if want := "Name? hi Ada\nReturn value: 7\n"; stdout != want {
			t.Fatalf("%s: expected stdout %q, got %q", mode, want, stdout)
		}
	}
}

func TestRunCommandReportsRuntimeErrors(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "bad.yaml"), `
statements:
  - {type: output, line: 4, expressions: [{type: variable, name: missing}]}
`)
	code, stdout, stderr := captureCLI(t, []string{"--verbosity", "0", "run", path}, "")
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if stdout != "" {
		t.Fatalf("expected no program output, got %q", stdout)
	}
	if !strings.Contains(stderr, "Error: line 4: variable 'missing' is not defined") {
		t.Fatalf("expected runtime error on stderr, got %q", stderr)
	}
}

func TestRunCommandHonoursConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, filepath.Join(dir, "vyra.toml"), "MaxIterations = 10\nVerbosity = 0\n")
	path := writeFile(t, filepath.Join(dir, "spin.yaml"), `
- {type: while, condition: {type: literal, value: true}, body: []}
`)
	code, _, stderr := captureCLI(t, []string{"--config", cfg, "run", path}, "")
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr, "maximum iterations (10) exceeded") {
		t.Fatalf("expected iteration limit error, got %q", stderr)
	}
}

func TestParseCommandWritesGraphJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "greet.yaml"), greetProgram)

	code, stdout, stderr := captureCLI(t, []string{"--verbosity", "0", "parse", path}, "")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr=%q)", code, stderr)
	}
	var doc struct {
		Nodes []map[string]any `json:"nodes"`
		Edges []map[string]any `json:"edges"`
		Entry int              `json:"entry"`
		Exit  int              `json:"exit"`
	}
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("parse output is not JSON: %v\n%s", err, stdout)
	}
	if doc.Entry != 0 || doc.Exit != len(doc.Nodes)-1 {
		t.Fatalf("expected entry 0 and exit %d, got %d and %d", len(doc.Nodes)-1, doc.Entry, doc.Exit)
	}
	if len(doc.Nodes) == 0 || len(doc.Edges) == 0 {
		t.Fatalf("expected nodes and edges, got %d and %d", len(doc.Nodes), len(doc.Edges))
	}

	out := filepath.Join(dir, "greet.graph.json")
	code, stdout, stderr = captureCLI(t, []string{"--verbosity", "0", "parse", "-o", out, path}, "")
	if code != 0 || stdout != "" {
		t.Fatalf("expected silent success, got code %d stdout %q stderr %q", code, stdout, stderr)
	}
	code, stdout, stderr = captureCLI(t, []string{"--verbosity", "0", "run", out}, "Bo\n")
	if code != 0 {
		t.Fatalf("running the exported graph failed: %d (stderr=%q)", code, stderr)
	}
	if want := "Name? hi Bo\nReturn value: 7\n"; stdout != want {
		t.Fatalf("expected stdout %q, got %q", want, stdout)
	}
}

func TestCheckCommandSummarisesGraph(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "greet.yaml"), greetProgram)
	code, stdout, stderr := captureCLI(t, []string{"--verbosity", "0", "check", path}, "")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr=%q)", code, stderr)
	}
	if !strings.HasPrefix(stdout, "ok: ") || !strings.Contains(stdout, "1 functions") {
		t.Fatalf("unexpected check summary %q", stdout)
	}
}

func TestGraphCommandPrintsTables(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "greet.yaml"), greetProgram)
	code, stdout, stderr := captureCLI(t, []string{"--verbosity", "0", "graph", path}, "")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr=%q)", code, stderr)
	}
	for _, want := range []string{"SUCCESSORS", "LABEL", "greet(who)", "START", "function_entry"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected graph tables to mention %q:\n%s", want, stdout)
		}
	}
}

func TestMissingTargetFails(t *testing.T) {
	code, _, stderr := captureCLI(t, []string{"--verbosity", "0", "run"}, "")
	if code != 1 || !strings.Contains(stderr, "expected a program path") {
		t.Fatalf("expected missing target error, got code %d stderr %q", code, stderr)
	}
}

func TestUnknownExecModeFails(t *testing.T) {
	code, _, stderr := captureCLI(t, []string{"--exec-mode", "bytecode", "version"}, "")
	if code != 1 || !strings.Contains(stderr, "unknown exec mode 'bytecode'") {
		t.Fatalf("expected exec mode error, got code %d stderr %q", code, stderr)
	}
}

func TestVersionCommand(t *testing.T) {
	code, stdout, _ := captureCLI(t, []string{"version"}, "")
	if code != 0 || strings.TrimSpace(stdout) != "vyra "+cliToolVersion {
		t.Fatalf("unexpected version output %q (code %d)", stdout, code)
	}
}

func TestVerbosityUsageMatchesLogLevels(t *testing.T) {
	usage := verbosityFlag.Usage
	for lvl := log.LvlCrit; lvl <= log.LvlTrace; lvl++ {
		want := fmt.Sprintf("%d=%s", int(lvl), strings.TrimSpace(strings.ToLower(lvl.AlignedString())))
		if !strings.Contains(usage, want) {
			t.Fatalf("verbosity usage %q does not describe level %q", usage, want)
		}
	}
	if strings.Contains(usage, "silent") {
		t.Fatalf("verbosity 0 still logs critical records, usage %q says otherwise", usage)
	}
}
