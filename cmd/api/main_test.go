package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// L'UI swagger ne doit être montée que si le fichier existe : swagger.New
// panique sur un chemin absent et empêcherait le serveur de démarrer.
func TestSwaggerSpecPresent(t *testing.T) {
	dir := t.TempDir()

	assert.False(t, swaggerSpecPresent(filepath.Join(dir, "swagger.json")),
		"fichier absent")
	assert.False(t, swaggerSpecPresent(dir), "un répertoire ne compte pas")

	spec := filepath.Join(dir, "swagger.json")
	require.NoError(t, os.WriteFile(spec, []byte("{}"), 0o644))
	assert.True(t, swaggerSpecPresent(spec))
}
