// internal/output/common.go
package output

// TSVHeader is the canonical header row for the per-ASV result table.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "ASV_name\tClass\tOrder\tFamily\tGenus\tSpecies\tPercentageID\tSpecies_In_LCA\tSources"
