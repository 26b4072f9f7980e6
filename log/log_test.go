package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsIncludedModuleDefaultsToEverything(t *testing.T) {
	includedModules = nil
	assert.True(t, IsIncludedModule("store"))
	assert.True(t, IsIncludedModule("view"))
}

func TestSetIncludedModulesRestricts(t *testing.T) {
	SetIncludedModules([]string{"store"})
	defer SetIncludedModules(nil)

	assert.True(t, IsIncludedModule("store"))
	assert.False(t, IsIncludedModule("view"))
}

func TestInitLoggerUnknownLevelFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	err := InitLogger(dir, "not-a-real-level")
	assert.NoError(t, err)
}
