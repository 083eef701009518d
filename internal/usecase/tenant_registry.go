// File: internal/usecase/tenant_registry.go
package usecase

import (
	"fmt"
	"sort"

	"github.com/Chakis0/multibot-service/internal/domain"
	"github.com/Chakis0/multibot-service/internal/domain/model"
)

// TenantRegistry resolves bot keys to tenant credentials. It is built once at
// startup from config and is immutable afterwards, so lookups need no lock.
type TenantRegistry struct {
	tenants map[string]*model.Tenant
	keys    []string
}

func NewTenantRegistry(tenants []*model.Tenant) (*TenantRegistry, error) {
	r := &TenantRegistry{tenants: make(map[string]*model.Tenant, len(tenants))}
	for _, t := range tenants {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.tenants[t.Key]; dup {
			return nil, fmt.Errorf("duplicate tenant key %q", t.Key)
		}
		cp := *t
		r.tenants[t.Key] = &cp
		r.keys = append(r.keys, t.Key)
	}
	sort.Strings(r.keys)
	return r, nil
}

// Resolve returns the tenant for a bot key.
func (r *TenantRegistry) Resolve(key string) (*model.Tenant, error) {
	t, ok := r.tenants[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTenant, key)
	}
	return t, nil
}

// Keys lists configured bot keys in stable order.
func (r *TenantRegistry) Keys() []string { return r.keys }
