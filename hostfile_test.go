package ringpop

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadHostFile_ParsesJSONArray(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hosts.json")
	require.NoError(t, os.WriteFile(path, []byte(`["a:3000", "b:3000"]`), 0o644))

	hosts, err := LoadHostFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a:3000", "b:3000"}, hosts)
}

func TestLoadHostFile_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hosts.json")
	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0o644))

	_, err := LoadHostFile(path)
	assert.Error(t, err)
}

func TestResolveBootstrapHosts_ExplicitListTakesPrecedence(t *testing.T) {
	cfg := (&Config{App: "a", HostPort: "x", BootstrapHosts: []string{"a:1", "b:1"}}).withDefaults()
	hosts, err := resolveBootstrapHosts(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"a:1", "b:1"}, hosts)
}

func TestResolveBootstrapHosts_FallsBackToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hosts.json")
	require.NoError(t, os.WriteFile(path, []byte(`["a:1", "b:1"]`), 0o644))

	cfg := (&Config{App: "a", HostPort: "x", BootstrapFile: path}).withDefaults()
	hosts, err := resolveBootstrapHosts(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"a:1", "b:1"}, hosts)
}

func TestResolveBootstrapHosts_MissingDefaultFileIsSilent(t *testing.T) {
	cfg := (&Config{App: "a", HostPort: "x"}).withDefaults()
	cfg.BootstrapFile = "/nonexistent/path/hosts.json"
	// DefaultBootstrapFile check only fires when BootstrapFile == DefaultBootstrapFile;
	// emulate the "never configured" case explicitly via the default constant.
	cfg.BootstrapFile = DefaultBootstrapFile
	hosts, err := resolveBootstrapHosts(cfg)
	assert.NoError(t, err)
	assert.Nil(t, hosts)
}

func TestResolveBootstrapHosts_MissingExplicitFileIsError(t *testing.T) {
	cfg := (&Config{App: "a", HostPort: "x", BootstrapFile: "/nonexistent/path/hosts.json"}).withDefaults()
	_, err := resolveBootstrapHosts(cfg)
	assert.Error(t, err)
}

func TestHostListFormatWarning_DetectsMixedIPAndHostname(t *testing.T) {
	assert.True(t, hostListFormatWarning([]string{"10.0.0.1:3000", "node-a.internal:3000"}))
	assert.False(t, hostListFormatWarning([]string{"10.0.0.1:3000", "10.0.0.2:3000"}))
	assert.False(t, hostListFormatWarning([]string{"node-a.internal:3000", "node-b.internal:3000"}))
}

func TestLooksLikeIP(t *testing.T) {
	assert.True(t, looksLikeIP("10.0.0.1:3000"))
	assert.False(t, looksLikeIP("node-a.internal:3000"))
}
