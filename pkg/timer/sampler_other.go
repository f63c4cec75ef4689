//go:build !linux

package timer

// Only Linux exposes the full CLOCK_* family, so other platforms use the
// portable sampler for the system backend too.
func newSystemSampler() Sampler {
	return NewPortableSampler()
}
