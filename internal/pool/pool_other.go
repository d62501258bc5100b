//go:build !darwin

package pool

func darwinClamp(n int) int { return n }
