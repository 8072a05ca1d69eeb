package tenant

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceDropsMissingTenants(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&TenantConfig{TenantID: "acme"})

	next := NewRegistry()
	next.Register(&TenantConfig{TenantID: "globex"})
	reg.Replace(next)

	assert.False(t, reg.Exists("acme"))
	assert.True(t, reg.Exists("globex"))
}

func TestReloadKeepsTenantsOnParseError(t *testing.T) {
	path := writeFile(t, "tenants.json", `{"tenants":`)
	reg := NewRegistry()
	reg.Register(&TenantConfig{TenantID: "acme"})

	reload(path, reg)

	assert.True(t, reg.Exists("acme"))
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := writeFile(t, "tenants.json", `{"tenants":[{"tenant_id":"acme"}]}`)
	reg, err := LoadFromFile(path)
	require.NoError(t, err)

	watcher, err := Watch(path, reg)
	require.NoError(t, err)
	t.Cleanup(func() { watcher.Close() })

	require.NoError(t, os.WriteFile(path, []byte(`{"tenants":[{"tenant_id":"acme"},{"tenant_id":"globex"}]}`), 0o600))

	assert.Eventually(t, func() bool { return reg.Exists("globex") }, 2*time.Second, 20*time.Millisecond)
	assert.True(t, reg.Exists("acme"))
}
