package platform

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

const (
	// SelfExe is the link the kernel maintains to the running executable.
	SelfExe = "/proc/self/exe"

	// MaxHops is the default number of links ResolveLinkChain will follow.
	MaxHops = 8
)

// ErrTooManyLinks is returned when a link chain does not end within the hop budget.
var ErrTooManyLinks = errors.New("too many levels of symbolic links")

// ResolveLinkChain follows path through symbolic links and returns the first
// path that is not a link. At most maxHops-1 links are followed: reading a
// maxHops-th link counts as a loop. Relative link targets are resolved
// against the directory of the link.
func ResolveLinkChain(path string, maxHops int) (string, error) {
	current := path
	for hop := 0; hop < maxHops; hop++ {
		info, err := os.Lstat(current)
		if err != nil {
			return "", errors.Wrapf(err, "resolving %s", path)
		}
		if info.Mode()&os.ModeSymlink == 0 {
			return current, nil
		}

		target, err := ReadSymlinkTarget(current)
		if err != nil {
			return "", errors.Wrapf(err, "resolving %s", path)
		}
		current = target
	}
	return "", errors.Wrapf(ErrTooManyLinks, "resolving %s within %d hops", path, maxHops)
}

// ReadSymlinkTarget returns the target of a symlink. A relative target is
// joined to the directory containing the link.
func ReadSymlinkTarget(path string) (string, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return target, nil
}
