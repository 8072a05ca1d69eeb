package tenant

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

type TenantConfig struct {
	TenantID string          `json:"tenant_id" yaml:"tenant_id"`
	Name     string          `json:"name" yaml:"name"`
	Features map[string]bool `json:"features" yaml:"features"`
}

type TenantsFile struct {
	Tenants []TenantConfig `json:"tenants" yaml:"tenants"`
}

type Registry struct {
	mu      sync.RWMutex
	tenants map[string]*TenantConfig
}

func NewRegistry() *Registry {
	return &Registry{
		tenants: make(map[string]*TenantConfig),
	}
}

// LoadFromFile reads the tenant list from a JSON file, or YAML when the
// extension is .yaml or .yml.
func LoadFromFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tenants config: %w", err)
	}

	var file TenantsFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	default:
		err = json.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse tenants config: %w", err)
	}

	registry := NewRegistry()
	for i := range file.Tenants {
		if file.Tenants[i].TenantID == "" {
			return nil, fmt.Errorf("tenant entry %d has no tenant_id", i)
		}
		registry.Register(&file.Tenants[i])
	}
	return registry, nil
}

func (r *Registry) Register(cfg *TenantConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tenants[cfg.TenantID] = cfg
}

func (r *Registry) Get(tenantID string) *TenantConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tenants[tenantID]
}

func (r *Registry) Exists(tenantID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tenants[tenantID]
	return ok
}

func (r *Registry) HasFeature(tenantID, feature string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.tenants[tenantID]
	if !ok {
		return false
	}
	return cfg.Features[feature]
}

func (r *Registry) All() []*TenantConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*TenantConfig, 0, len(r.tenants))
	for _, cfg := range r.tenants {
		result = append(result, cfg)
	}
	return result
}

// Replace swaps in the tenants of next, dropping any not present there.
func (r *Registry) Replace(next *Registry) {
	next.mu.RLock()
	tenants := make(map[string]*TenantConfig, len(next.tenants))
	for id, cfg := range next.tenants {
		tenants[id] = cfg
	}
	next.mu.RUnlock()

	r.mu.Lock()
	r.tenants = tenants
	r.mu.Unlock()
}
