package database

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelsOrderParentsFirst(t *testing.T) {
	list := Models()
	require.Len(t, list, 8)

	index := func(target interface{}) int {
		for i, m := range list {
			if assert.ObjectsAreEqual(m, target) {
				return i
			}
		}
		return -1
	}

	assert.Less(t, index(&models.User{}), index(&models.Project{}))
	assert.Less(t, index(&models.Category{}), index(&models.Report{}))
	assert.Less(t, index(&models.Project{}), index(&models.Report{}))
	assert.Less(t, index(&models.Report{}), index(&models.Comment{}))
}

func TestPingWithoutConnection(t *testing.T) {
	saved := DB
	DB = nil
	t.Cleanup(func() { DB = saved })

	assert.Error(t, Ping())
}
