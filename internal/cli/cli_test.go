package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulelang/rulec/internal/cli"
)

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := cli.NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCompile_WigglyDollFixture(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "generated")
	out, _, err := run(t, "compile", "testdata/wiggly_doll.json", "--output-dir", outDir, "--class-name", "WigglyRules")
	require.NoError(t, err)
	assert.Contains(t, out, "WigglyRules.java")

	generated, readErr := os.ReadFile(filepath.Join(outDir, "WigglyRules.java"))
	require.NoError(t, readErr)
	assert.Contains(t, string(generated), "WigglyRules")
	assert.Contains(t, string(generated), "evaluate")
}

func TestCheck_UnresolvedIdentifierFails(t *testing.T) {
	out, _, err := run(t, "check", "testdata/unresolved.json")
	require.Error(t, err)
	assert.Contains(t, out, "error")
}

func TestCheck_ValidModulePasses(t *testing.T) {
	_, _, err := run(t, "check", "testdata/wiggly_doll.json")
	require.NoError(t, err)
}

func TestDiagnosticsList_IncludesTaxonomy(t *testing.T) {
	out, _, err := run(t, "diagnostics", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "unresolved_identifier")
	assert.Contains(t, out, "merge_conflict")
}

func TestCompile_MissingFixtureErrors(t *testing.T) {
	_, _, err := run(t, "compile", "testdata/does_not_exist.json")
	require.Error(t, err)
}
