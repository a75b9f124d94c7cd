package navigation

import "sync"

// Token identifies one issued fetch for a logical resource
type Token struct {
	resource string
	gen      uint64
}

// Generations hands out tokens per resource. Issuing a new token or
// invalidating the resource makes every earlier token stale, so a late
// result can be recognised and dropped.
type Generations struct {
	mu      sync.Mutex
	current map[string]uint64
}

// NewGenerations creates an empty generation counter
func NewGenerations() *Generations {
	return &Generations{current: make(map[string]uint64)}
}

// Next issues a token for resource, superseding earlier ones
func (g *Generations) Next(resource string) Token {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current[resource]++
	return Token{resource: resource, gen: g.current[resource]}
}

// Invalidate makes all outstanding tokens for resource stale
func (g *Generations) Invalidate(resource string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current[resource]++
}

// IsCurrent reports whether t is the latest token for its resource
func (g *Generations) IsCurrent(t Token) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return t.gen != 0 && g.current[t.resource] == t.gen
}
