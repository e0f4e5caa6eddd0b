package contract

import "fmt"

// ProfileConfig holds profiling configuration.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig validates the profiling prefix and updates the
// profiling config. An empty prefix leaves profiling disabled.
func ProcessProfilingConfig(profile *ProfileConfig, prefix string) error {
	if prefix == "" {
		profile.Enabled = false
		return nil
	}
	if len(prefix) > 128 {
		return fmt.Errorf("%w: profile prefix is too long", ErrConfiguration)
	}
	profile.Enabled = true
	profile.Prefix = prefix
	return nil
}
