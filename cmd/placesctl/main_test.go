package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const overpassBody = `{"elements":[
	{"type":"node","id":101,"lat":37.7750,"lon":-122.4190,"tags":{"amenity":"cafe","name":"Ritual"}},
	{"type":"node","id":102,"lat":37.7790,"lon":-122.4160,"tags":{"amenity":"library","name":"Main Library"}}
]}`

func setup(t *testing.T) (string, *int32) {
	t.Helper()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(overpassBody))
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	env := strings.Join([]string{
		"OVERPASS_BASE_URL=" + srv.URL,
		"SQLITE_PATH=" + filepath.Join(dir, "places.db"),
		"WIKIDATA_BASE_URL=" + srv.URL,
	}, "\n")
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte(env), 0o600))
	return path, &hits
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestNearby_CachesSnapshot(t *testing.T) {
	cfgPath, hits := setup(t)

	out, err := run(t, "nearby", "-c", cfgPath, "--lat", "37.7749", "--lon", "-122.4194", "--categories", "cafe", "-o", "json")
	require.NoError(t, err, out)

	var first struct {
		Total  int    `json:"total"`
		Source string `json:"source"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &first))
	assert.Equal(t, 1, first.Total)
	assert.Equal(t, "network", first.Source)

	out, err = run(t, "nearby", "-c", cfgPath, "--lat", "37.7749", "--lon", "-122.4194", "--categories", "library", "-o", "yaml")
	require.NoError(t, err, out)

	var second map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &second))
	assert.Equal(t, "cache", second["source"])
	assert.Equal(t, 1, second["total"])
	assert.EqualValues(t, 1, atomic.LoadInt32(hits))
}

func TestNearby_Table(t *testing.T) {
	cfgPath, _ := setup(t)

	out, err := run(t, "nearby", "-c", cfgPath, "--lat", "37.7749", "--lon", "-122.4194", "--categories", "cafe,library")
	require.NoError(t, err, out)
	assert.Contains(t, out, "2 places from network")
	assert.Contains(t, out, "Main Library")
}

func TestNearby_RequiresCoordinates(t *testing.T) {
	cfgPath, hits := setup(t)

	_, err := run(t, "nearby", "-c", cfgPath, "--lat", "37.7749")
	assert.Error(t, err)
	assert.Zero(t, atomic.LoadInt32(hits))
}

func TestCache_ShowAndClear(t *testing.T) {
	cfgPath, _ := setup(t)

	out, err := run(t, "cache", "show", "-c", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "no snapshot stored")

	_, err = run(t, "nearby", "-c", cfgPath, "--lat", "37.7749", "--lon", "-122.4194", "-o", "json")
	require.NoError(t, err)

	out, err = run(t, "cache", "show", "-c", cfgPath, "-o", "json")
	require.NoError(t, err)
	var info snapshotInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.True(t, info.Present)
	assert.True(t, info.Fresh)
	assert.Equal(t, 2, info.Places)
	assert.Equal(t, "osm", info.Provider)

	out, err = run(t, "cache", "clear", "-c", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Snapshot cleared.")

	out, err = run(t, "cache", "show", "-c", cfgPath, "-o", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.False(t, info.Present)
}

func TestBrand_InvalidID(t *testing.T) {
	cfgPath, _ := setup(t)

	_, err := run(t, "brand", "-c", cfgPath, "not-an-id")
	assert.Error(t, err)
}

func TestUnknownOutputFormat(t *testing.T) {
	cfgPath, _ := setup(t)

	_, err := run(t, "cache", "show", "-c", cfgPath, "-o", "xml")
	assert.ErrorContains(t, err, "unknown output format")
}
