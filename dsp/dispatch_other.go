//go:build !amd64 && !arm64

package dsp

func detectLevel() Level { return LevelScalar }
