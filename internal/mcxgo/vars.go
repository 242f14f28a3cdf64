package mcxgo

// Package-level runtime toggles: cheap knobs a CLI or test can flip without
// threading a config object through every call.
var (
	Debug = false // set to true for verbose debug-level logging

	// ShadowGrids selects the fluence-accumulation strategy (§9): true uses
	// one private grid per worker with a final reduction, false uses a
	// sharded-mutex grid shared by all workers. Both satisfy §4.H's
	// race-free-additive requirement; the choice is a memory/contention
	// trade-off exposed as a runtime setting per §9.
	ShadowGrids = true
)
