//go:build !linux

package eval

import "time"

// Platforms without a Stat_t we understand fall back to mtime for the access
// and change clocks and report no ownership, so the uid/gid/user/group tests
// never match.
func (e *entry) accessTime() (time.Time, bool) {
	return e.modTime()
}

func (e *entry) changeTime() (time.Time, bool) {
	return e.modTime()
}

func (e *entry) owner() (uid, gid uint32, ok bool) {
	return 0, 0, false
}
