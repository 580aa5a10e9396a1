package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvironmentOverrides(t *testing.T) {
	p := defaultPaths()
	p.applyEnvironmentOverrides(" dev ")

	assert.Equal(t, "config_dev.yml", p.configFileName)
	assert.Equal(t, "timetracker_dev.db", p.dbFileName)
	assert.Equal(t, "status_dev.json", p.statusFileName)
	assert.Equal(t, "timetracker_dev.log", p.logFileName)
}

func TestNoEnvironmentOverride(t *testing.T) {
	p := defaultPaths()
	p.applyEnvironmentOverrides("")

	assert.Equal(t, defaultPaths(), p)
}
