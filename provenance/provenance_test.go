package provenance

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubGit(t *testing.T, hash string, err error) {
	t.Helper()
	orig := gitCommit
	gitCommit = func(context.Context) (string, error) { return hash, err }
	t.Cleanup(func() { gitCommit = orig })
}

func freezeClock(t *testing.T) {
	t.Helper()
	SetClock(clockwork.NewFakeClockAt(time.Date(2024, 6, 12, 16, 18, 16, 0, time.UTC)))
	t.Cleanup(func() { SetClock(nil) })
}

func TestCollect(t *testing.T) {
	stubGit(t, "500e15f", nil)

	_, _, line, _ := runtime.Caller(0)
	meta, err := Collect(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, "provenance_test.go", meta.RelativeCodePath)
	assert.Equal(t, line+1, meta.LineNumber)
	assert.Equal(t, "500e15f", meta.GitCommit)
	assert.Equal(t, "provenance_test.go#"+strconv.Itoa(line+1)+" @git-commit:500e15f", meta.String())
}

func TestCollect_GitError(t *testing.T) {
	stubGit(t, "", errors.New("not a git repository"))
	_, err := Collect(context.Background(), 0)
	assert.Error(t, err)
}

func TestAttrs_AddHistory(t *testing.T) {
	attrs := Attrs{}
	attrs.AddHistory("first;")
	attrs.AddHistory("second;")
	assert.Equal(t, "first;second;", attrs.History())

	var unset Attrs
	unset.AddHistory("only;")
	assert.Equal(t, "only;", unset.History())
}

func TestSave_Dataset(t *testing.T) {
	stubGit(t, "500e15f", nil)
	freezeClock(t)

	ds := &Dataset{
		Attrs:     Attrs{"title": "air temperature"},
		Variables: map[string][]float64{"air": {241.2, 242.5}},
	}
	path := filepath.Join(t.TempDir(), "mynetcdf.json")

	out, err := Save(context.Background(), ds, path, Options{AddHash: true})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "mynetcdf_500e15f.json"), out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var got Dataset
	require.NoError(t, json.Unmarshal(data, &got))

	history := got.Attrs.History()
	assert.True(t, strings.HasPrefix(history, "2024-06-12 16:18:16: File saved by provenance_test.go#"), history)
	assert.True(t, strings.HasSuffix(history, " @git-commit:500e15f;"), history)
	assert.Equal(t, "air temperature", got.Attrs["title"])
	assert.Equal(t, []float64{241.2, 242.5}, got.Variables["air"])
}

func TestSave_DatasetMissingValues(t *testing.T) {
	stubGit(t, "500e15f", nil)
	freezeClock(t)

	ds := &Dataset{Variables: Variables{"air": {1, math.NaN(), math.Inf(1)}}}
	path := filepath.Join(t.TempDir(), "gaps.json")

	_, err := Save(context.Background(), ds, path, Options{})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "null")

	var got Dataset
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got.Variables["air"], 3)
	assert.InDelta(t, 1.0, got.Variables["air"][0], 0)
	assert.True(t, math.IsNaN(got.Variables["air"][1]))
	assert.True(t, math.IsNaN(got.Variables["air"][2]))
	assert.NotEmpty(t, ds.Attrs.History())
}

func TestSave_DatasetWriteFailureLeavesAttrs(t *testing.T) {
	stubGit(t, "500e15f", nil)
	freezeClock(t)

	ds := &Dataset{Attrs: Attrs{"title": "air"}, Variables: Variables{"air": {1}}}
	path := filepath.Join(t.TempDir(), "missing-dir", "out.json")

	_, err := Save(context.Background(), ds, path, Options{})
	require.Error(t, err)
	assert.Empty(t, ds.Attrs.History())
	assert.Equal(t, Attrs{"title": "air"}, ds.Attrs)
}

func TestSave_Table(t *testing.T) {
	stubGit(t, "500e15f", nil)

	tbl := &Table{Columns: []string{"year", "fco2"}, Rows: [][]float64{{2000, 365.5}, {2001, 367}}}
	path := filepath.Join(t.TempDir(), "trend.csv")

	out, err := Save(context.Background(), tbl, path, Options{})
	require.NoError(t, err)
	assert.Equal(t, path, out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "year,fco2\n2000,365.5\n2001,367\n", string(data))
}

func TestSave_TableRaggedRow(t *testing.T) {
	stubGit(t, "500e15f", nil)
	tbl := &Table{Columns: []string{"a", "b"}, Rows: [][]float64{{1}}}
	_, err := Save(context.Background(), tbl, filepath.Join(t.TempDir(), "x.csv"), Options{})
	assert.Error(t, err)
}

func TestSave_Unsupported(t *testing.T) {
	stubGit(t, "500e15f", nil)
	_, err := Save(context.Background(), struct{}{}, filepath.Join(t.TempDir(), "obj"), Options{})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "/tmp/a_x.nc", withSuffix("/tmp/a.nc", "_x"))
	assert.Equal(t, "/tmp/a_x", withSuffix("/tmp/a", "_x"))
}
