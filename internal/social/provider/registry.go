package provider

import "github.com/aussiebroadwan/hellosocial/internal/social/domain"

// Registry holds the configured providers. Unconfigured providers are simply
// absent.
type Registry struct {
	providers map[domain.ProviderName]Provider
}

func NewRegistry(list ...Provider) *Registry {
	m := make(map[domain.ProviderName]Provider, len(list))
	for _, p := range list {
		m[p.Name()] = p
	}
	return &Registry{providers: m}
}

func (r *Registry) Lookup(name domain.ProviderName) (Provider, bool) {
	if r == nil {
		return nil, false
	}
	p, ok := r.providers[name]
	return p, ok
}

// Names lists configured providers in display order.
func (r *Registry) Names() []domain.ProviderName {
	var out []domain.ProviderName
	for _, n := range domain.Providers {
		if _, ok := r.Lookup(n); ok {
			out = append(out, n)
		}
	}
	return out
}

// ProfileLinks dispatches to the named provider. An unknown or unconfigured
// provider yields two empty links.
func (r *Registry) ProfileLinks(name domain.ProviderName, uid string, profile map[string]any) (string, string) {
	p, ok := r.Lookup(name)
	if !ok {
		return "", ""
	}
	return p.ProfileLinks(uid, profile)
}
