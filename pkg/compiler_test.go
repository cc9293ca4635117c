package flint

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	flinttest "go.flint-lang.dev/internal/test"
)

func compileString(t *testing.T, src string) (*Result, string, string) {
	result, text, diagOut, _ := compileStringAt(t, src)
	return result, text, diagOut
}

func compileStringAt(t *testing.T, src string) (*Result, string, string, string) {
	t.Helper()

	dir := t.TempDir()
	srcPath := filepath.Join(dir, "p.fl")
	outPath := filepath.Join(dir, "p.out")
	require.NoError(t, os.WriteFile(srcPath, []byte(src), 0o644))

	var diagOut bytes.Buffer
	c := NewCompiler(false)
	result, err := c.Compile(srcPath, outPath, &diagOut)
	require.NoError(t, err)

	text := ""
	if result.Compiled() {
		data, err := os.ReadFile(outPath)
		require.NoError(t, err)
		text = string(data)
	}

	return result, text, diagOut.String(), outPath
}

// labelDefs returns every "name:" label definition in emitted text.
func labelDefs(text string) []string {
	re := regexp.MustCompile(`(?m)^\s*([A-Za-z_][A-Za-z0-9_]*):\s*$`)
	var labels []string
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		labels = append(labels, m[1])
	}
	return labels
}

// gotoTargets returns every label name referenced by a `goto NAME;` (the
// indirect `goto *(void*)...` jumps are excluded — they aren't statically
// named targets).
func gotoTargets(text string) []string {
	re := regexp.MustCompile(`goto ([A-Za-z_][A-Za-z0-9_]*);`)
	var targets []string
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		targets = append(targets, m[1])
	}
	return targets
}

func TestE1EmptyProgramCompiles(t *testing.T) {
	result, text, _ := compileString(t, flinttest.EmptyProgram)
	require.True(t, result.Compiled())

	assert.Contains(t, text, "empty_1:")
	assert.Contains(t, text, "goto empty_1_begin;")
	assert.Contains(t, text, "empty_1_begin:")
	assert.Contains(t, text, "goto *(void*)MM[R[FP]];")
	assert.Contains(t, text, "return 0;")
}

func TestE2GlobalLocalShadow(t *testing.T) {
	result, _, diagOut := compileString(t, flinttest.GlobalShadowProgram)
	assert.True(t, result.Compiled())
	assert.Empty(t, diagOut)
}

func TestE3TypeMismatchRecordsErrorAndWithholdsOutput(t *testing.T) {
	result, _, diagOut := compileString(t, flinttest.TypeMismatchProgram)
	require.False(t, result.Compiled())
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, ErrorType, result.Errors[0].Kind)
	assert.Contains(t, diagOut, "Type error")
}

func TestE4OutParamRequiresName(t *testing.T) {
	result, _, _ := compileString(t, flinttest.OutParamByExpressionProgram)
	require.False(t, result.Compiled())
	assert.NotEmpty(t, result.Errors)
}

func TestE5IfElseBranching(t *testing.T) {
	result, text, _ := compileString(t, flinttest.IfElseProgram)
	require.True(t, result.Compiled())

	assert.Regexp(t, `if \(!R\[\d+\]\) goto else_\d+;`, text)
	assert.Regexp(t, `goto endif_\d+;`, text)
	assert.Regexp(t, `else_\d+:`, text)
	assert.Regexp(t, `endif_\d+:`, text)
}

func TestE6RepeatedCallsGetDistinctReturnLabels(t *testing.T) {
	result, text, _ := compileString(t, flinttest.RepeatedCallProgram)
	require.True(t, result.Compiled())

	assert.Regexp(t, `q_\d+_1:`, text)
	assert.Regexp(t, `q_\d+_2:`, text)
}

func TestArrayReadWrite(t *testing.T) {
	result, text, _ := compileString(t, flinttest.ArrayProgram)
	require.True(t, result.Compiled())
	assert.Contains(t, text, "MM[R[")
}

func TestUnclosedStringWarnsButStillCompiles(t *testing.T) {
	result, _, diagOut := compileString(t, flinttest.UnclosedStringProgram)
	assert.True(t, result.Compiled())
	assert.Contains(t, diagOut, "unclosed string")
}

// TestLabelClosure checks invariant 4 (spec.md §8): every goto target
// appears as a label somewhere in the same emitted file.
func TestLabelClosure(t *testing.T) {
	result, text, _ := compileString(t, flinttest.RepeatedCallProgram)
	require.True(t, result.Compiled())

	defs := make(map[string]bool)
	for _, l := range labelDefs(text) {
		defs[l] = true
	}

	var missing []string
	for _, target := range gotoTargets(text) {
		if !defs[target] {
			missing = append(missing, target)
		}
	}

	if diff := cmp.Diff([]string(nil), missing); diff != "" {
		t.Errorf("goto targets missing a label definition (-want +got):\n%s", diff)
	}
}

func TestNoOutputFileOnError(t *testing.T) {
	result, _, _, outPath := compileStringAt(t, flinttest.TypeMismatchProgram)
	require.False(t, result.Compiled())

	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr))
}
