// internal/pipeline/resolver.go
package pipeline

import "blastlca-core/resolver"

// Resolver is the minimal capability the pipeline needs.
// Any resolver (including fakes in tests) can satisfy this.
type Resolver interface {
	Resolve(tokens []string, taxID string) (resolver.Result, bool)
}
