package platform

import "os"

// IsExecutable reports whether any of the owner, group, or other execute
// bits is set in mode.
func IsExecutable(mode os.FileMode) bool {
	return mode.Perm()&0o111 != 0
}
