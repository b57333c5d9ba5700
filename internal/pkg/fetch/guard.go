// Package fetch guards list refreshes against out-of-order async completion.
// Two refreshes can be in flight at once; without a guard the earlier-issued
// response may land last and clobber newer data. Consumers take a token per
// request and apply a response only if Accept reports it is still the latest.
package fetch

import "sync"

type Token uint64

type Guard struct {
	mu     sync.Mutex
	issued Token
}

// Begin issues a new generation token. The newest token invalidates all
// previously issued ones.
func (g *Guard) Begin() Token {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.issued++
	return g.issued
}

// Accept reports whether a completion holding t is still the latest issued
// request. Stale completions must be dropped, not applied.
func (g *Guard) Accept(t Token) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return t == g.issued
}
