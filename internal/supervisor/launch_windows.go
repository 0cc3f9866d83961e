package supervisor

import "errors"

// Launch is not supported on Windows, which has no process groups that can
// be signalled as a unit.
func Launch(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return errors.New("pgguard requires a POSIX process model")
}
