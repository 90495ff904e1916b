//go:build !windows

package ansi

// EnableANSI is a no-op outside Windows, where terminals interpret escape
// sequences by default.
func EnableANSI() error {
	return nil
}
