package newman

import "runtime"

// Worker bounds for batch updates.
const (
	// MinWorkers ensures at least one conversion runs.
	MinWorkers = 1

	// MaxWorkers caps concurrent pandoc processes.
	MaxWorkers = 8
)

// ResolveWorkers determines the number of concurrent conversions.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by CLIs.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	n := runtime.GOMAXPROCS(0)
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
