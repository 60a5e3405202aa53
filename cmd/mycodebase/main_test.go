package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Help(t *testing.T) {
	for _, args := range [][]string{nil, {"help"}, {"--help"}} {
		code, out, _ := runCLI(t, args...)
		assert.Equal(t, exitOK, code)
		assert.Contains(t, out, "Usage: mycodebase")
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	code, _, errOut := runCLI(t, "plot")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, errOut, `unknown command "plot"`)
}

func TestRun_BadFlag(t *testing.T) {
	code, _, _ := runCLI(t, "cond2sal", "-salinity", "35")
	assert.Equal(t, exitUsage, code)
}

func TestRun_SubcommandHelp(t *testing.T) {
	code, out, _ := runCLI(t, "cond2sal", "-h")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "conductivity in mS/cm")
}

func TestRun_Hex2RGB(t *testing.T) {
	code, out, _ := runCLI(t, "hex2rgb", "#f00", "4682b4")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "(255, 0, 0)\n(70, 130, 180)\n", out)

	code, _, errOut := runCLI(t, "hex2rgb", "#ff00")
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "hex2rgb:")

	code, _, _ = runCLI(t, "hex2rgb")
	assert.Equal(t, exitUsage, code)
}

func TestRun_Cond2Sal(t *testing.T) {
	code, out, _ := runCLI(t, "cond2sal", "-c", "52", "-t", "25", "-p", "1013")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "34.2081\n", out)
}

func TestRun_FCO2(t *testing.T) {
	code, out, _ := runCLI(t, "fco2", "-xco2", "400", "-p-equ", "1013.25", "-t-equ", "21", "-sst", "20")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "pco2_equ 400.0000\n")
	assert.Contains(t, out, "pco2_sst 383.7334\n")
	assert.Contains(t, out, "fco2_sst ")

	code, _, _ = runCLI(t, "fco2", "-air", "humid")
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCLI(t, "fco2", "-method", "Weiss1974")
	assert.Equal(t, exitError, code)
}

func TestRun_Distance(t *testing.T) {
	code, out, _ := runCLI(t, "distance", "-lat1", "0", "-lon1", "0", "-lat2", "0", "-lon2", "1")
	require.Equal(t, exitOK, code)
	assert.Equal(t, "111194.9\n", out)

	code, _, _ = runCLI(t, "distance", "-lat1", "-95")
	assert.Equal(t, exitError, code)
}

func TestRun_Colormap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blue-orange.xml")
	doc := `<ColorMaps><ColorMap name="blue-orange">
<Point x="0" r="0" g="0" b="1"/><Point x="0.5" r="1" g="1" b="1"/><Point x="1" r="1" g="0.5" b="0"/>
</ColorMap></ColorMaps>`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	code, out, _ := runCLI(t, "colormap", "-n", "3", path)
	require.Equal(t, exitOK, code)
	assert.Equal(t, "#0000ff\n#ffffff\n#ff8000\n", out)

	code, _, _ = runCLI(t, "colormap", filepath.Join(t.TempDir(), "missing.xml"))
	assert.Equal(t, exitError, code)

	code, _, _ = runCLI(t, "colormap")
	assert.Equal(t, exitUsage, code)
}
