//go:build linux

package eval

import (
	"syscall"
	"time"
)

// accessTime and changeTime come from the raw Stat_t; the portable FileInfo
// surface only carries mtime.
func (e *entry) accessTime() (time.Time, bool) {
	st, ok := e.sys()
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(st.Atim.Unix()), true
}

func (e *entry) changeTime() (time.Time, bool) {
	st, ok := e.sys()
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(st.Ctim.Unix()), true
}

func (e *entry) owner() (uid, gid uint32, ok bool) {
	st, ok := e.sys()
	if !ok {
		return 0, 0, false
	}
	return st.Uid, st.Gid, true
}

func (e *entry) sys() (*syscall.Stat_t, bool) {
	info, ok := e.stat()
	if !ok {
		return nil, false
	}
	st, ok := info.Sys().(*syscall.Stat_t)
	return st, ok
}
