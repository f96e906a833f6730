package cli_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cxxtidy/internal/cli"
)

func TestDump_WholeTree(t *testing.T) {
	t.Parallel()

	path, _ := writeSource(t, "a.cpp", nullptrSource)

	output, code := runCLI(t, "dump", path)
	require.Equal(t, cli.ExitSuccess, code, output)
	assert.True(t, strings.HasPrefix(output, path+": (TranslationUnit (Function f"), output)
	assert.Contains(t, output, "(If (Binary !=")
}

func TestDump_KindFilter(t *testing.T) {
	t.Parallel()

	path, _ := writeSource(t, "a.cpp", nullptrSource)

	output, code := runCLI(t, "dump", "--kind", "nullliteral", path)
	require.Equal(t, cli.ExitSuccess, code, output)
	assert.Equal(t, path+":2:12: (NullLiteral)\n", output)
}

func TestDump_Errors(t *testing.T) {
	t.Parallel()

	path, _ := writeSource(t, "a.cpp", nullptrSource)

	_, code := runCLI(t, "dump", "--kind", "Lambda", path)
	assert.Equal(t, cli.ExitInvalidUsage, code)

	_, code = runCLI(t, "dump", path+".missing")
	assert.Equal(t, cli.ExitIOError, code)
}
