package dsp

import "os"

// Level identifies the vector capability Init dispatches on.
type Level int

const (
	LevelScalar Level = iota
	LevelSSE2
	LevelAVX2
	LevelNEON
)

// String returns the conventional name for the level.
func (l Level) String() string {
	switch l {
	case LevelScalar:
		return "scalar"
	case LevelSSE2:
		return "sse2"
	case LevelAVX2:
		return "avx2"
	case LevelNEON:
		return "neon"
	default:
		return "unknown"
	}
}

// ScalarEnv is the environment variable that, when set to any non-empty
// value, forces the table-driven reference implementations regardless of
// detected capability. Useful for debugging and for A/B benchmarks.
const ScalarEnv = "AOMDSP_SCALAR"

// level is detected at package initialization by the per-arch detectLevel
// in dispatch_*.go. Variable initialization runs before init functions, so
// Init always sees the final value.
var level = detectLevel()

// CurrentLevel reports the vector capability detected on this host.
func CurrentLevel() Level { return level }

// CurrentName reports the detected capability as a string.
func CurrentName() string { return level.String() }

func scalarForced() bool { return os.Getenv(ScalarEnv) != "" }
