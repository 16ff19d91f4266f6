//go:build amd64

package dsp

import "golang.org/x/sys/cpu"

func detectLevel() Level {
	if cpu.X86.HasAVX2 {
		return LevelAVX2
	}
	// SSE2 is part of the amd64 baseline.
	return LevelSSE2
}
