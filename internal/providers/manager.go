package providers

import (
	"fmt"
	"strings"
)

type ProviderRef struct {
	Raw      string
	Name     string
	KeyAlias string
}

// ParseProviderList parses a pipe-separated provider spec like
// "groq:primary|openai|mock" into refs, defaulting to mock when empty.
func ParseProviderList(raw string) []ProviderRef {
	parts := strings.Split(raw, "|")
	out := make([]ProviderRef, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		ref := ProviderRef{Raw: p}
		if strings.Contains(p, ":") {
			x := strings.SplitN(p, ":", 2)
			ref.Name = strings.TrimSpace(x[0])
			ref.KeyAlias = strings.TrimSpace(x[1])
		} else {
			ref.Name = p
		}
		out = append(out, ref)
	}
	if len(out) == 0 {
		out = append(out, ProviderRef{Raw: "mock", Name: "mock"})
	}
	return out
}

type NamedProvider struct {
	Ref      ProviderRef
	Provider CompletionProvider
}

type Manager struct {
	providers []NamedProvider
}

func NewManager(providerList string) (*Manager, error) {
	m := &Manager{}
	for _, ref := range ParseProviderList(providerList) {
		p, err := buildProvider(ref)
		if err != nil {
			return nil, err
		}
		m.providers = append(m.providers, NamedProvider{Ref: ref, Provider: p})
	}
	if len(m.providers) == 0 {
		m.providers = []NamedProvider{{Ref: ProviderRef{Raw: "mock", Name: "mock"}, Provider: NewMockProvider()}}
	}
	return m, nil
}

func (m *Manager) First() CompletionProvider {
	return m.providers[0].Provider
}

func (m *Manager) ByIndex(i int) (CompletionProvider, ProviderRef) {
	if i < 0 || i >= len(m.providers) {
		i = 0
	}
	return m.providers[i].Provider, m.providers[i].Ref
}

func (m *Manager) Count() int {
	return len(m.providers)
}

// PreferredOrder lists provider indexes with real providers ahead of mock,
// so the mock only answers when nothing else is configured.
func (m *Manager) PreferredOrder() []int {
	n := len(m.providers)
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if strings.ToLower(m.providers[i].Ref.Name) != "mock" {
			out = append(out, i)
		}
	}
	for i := 0; i < n; i++ {
		if strings.ToLower(m.providers[i].Ref.Name) == "mock" {
			out = append(out, i)
		}
	}
	return out
}

func (m *Manager) FindByName(name string) (CompletionProvider, ProviderRef, bool) {
	target := strings.ToLower(strings.TrimSpace(name))
	if target == "" {
		return nil, ProviderRef{}, false
	}
	for i := range m.providers {
		if strings.ToLower(m.providers[i].Ref.Name) == target {
			return m.providers[i].Provider, m.providers[i].Ref, true
		}
	}
	return nil, ProviderRef{}, false
}

func buildProvider(ref ProviderRef) (CompletionProvider, error) {
	switch strings.ToLower(ref.Name) {
	case "mock":
		return NewMockProvider(), nil
	case "openai":
		return NewOpenAIProvider(ref.KeyAlias), nil
	case "groq":
		return NewGroqProvider(ref.KeyAlias), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", ref.Name)
	}
}
