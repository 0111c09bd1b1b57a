package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
app:
  name: demo
  debug: true
database:
  host: 127.0.0.1
  port: 5432
`

func TestParseYAML(t *testing.T) {
	t.Parallel()

	m, err := ParseYAML([]byte(sampleYAML))
	require.NoError(t, err)

	name, err := m.Get("app.name", "", FormatString)
	require.NoError(t, err)
	assert.Equal(t, "demo", name)

	port, err := m.Get("database.port", "", FormatInt)
	require.NoError(t, err)
	assert.Equal(t, 5432, port)

	debug, err := m.Get("app.debug", "false", FormatBool)
	require.NoError(t, err)
	assert.Equal(t, true, debug)
}

func TestParseYAML_Invalid(t *testing.T) {
	t.Parallel()

	_, err := ParseYAML([]byte(":\n  - ["))
	assert.Error(t, err)
}

func TestNewYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	m, err := NewYAML(path)
	require.NoError(t, err)

	host, err := m.Get("database.host", "", FormatString)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", host)
}

func TestNewYAML_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewYAML("definitely/missing.yaml")
	assert.Error(t, err)
}
