package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPersistentModelsNonEmpty(t *testing.T) {
	models := PersistentModels()
	assert.NotEmpty(t, models)
	for _, m := range models {
		assert.NotNil(t, m)
	}
}

func TestMigrationsRegistered(t *testing.T) {
	ms := GetMigrations()
	assert.NotEmpty(t, ms)
	assert.Equal(t, 1, ms[0].Version)
	assert.Equal(t, "init_schema", ms[0].Name)
	assert.NotEmpty(t, ms[0].UpScript)
	assert.NotEmpty(t, ms[0].DownScript)
}
