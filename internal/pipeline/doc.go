// Package pipeline streams BLAST tabular rows through a Resolver,
// groups the resolved hits by ASV, and fans the per-ASV consensus
// computation out over a worker pool.
//
// The only contract to implement is Resolver (Resolve).
// This keeps the pipeline swappable and testable.
package pipeline
