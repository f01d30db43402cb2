// Copyright 2026 The Ghostctl Authors
// SPDX-License-Identifier: Apache-2.0

package ghostty

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

const socketName = "ghostty.sock"

// Environment is the snapshot of process state that socket discovery
// reads. Capturing it as a value keeps resolution a pure function of
// its inputs.
type Environment struct {
	// Getenv looks up an environment variable, returning "" when the
	// variable is unset.
	Getenv func(key string) string

	// UID is the numeric user id used for the per-user fallback
	// directories.
	UID int
}

// SystemEnvironment captures the real process environment.
func SystemEnvironment() Environment {
	return Environment{Getenv: os.Getenv, UID: os.Getuid()}
}

// ResolveSocketPath returns the control socket path for env. An
// explicit override wins; otherwise the first populated location in
// the discovery order is used:
//
//	$XDG_RUNTIME_DIR/ghostty/ghostty.sock
//	$TMPDIR/ghostty-<uid>/ghostty.sock
//	/tmp/ghostty-<uid>/ghostty.sock
//
// Resolution never touches the filesystem. The returned path may not
// exist; ValidateSocketPath reports that case.
func ResolveSocketPath(override string, env Environment) string {
	if override != "" {
		return override
	}
	if dir := env.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "ghostty", socketName)
	}
	perUser := fmt.Sprintf("ghostty-%d", env.UID)
	if dir := env.Getenv("TMPDIR"); dir != "" {
		return filepath.Join(dir, perUser, socketName)
	}
	return filepath.Join("/tmp", perUser, socketName)
}

// ValidateSocketPath checks that path is a unix socket the current
// user can trust before any connection is attempted. It returns a
// ConnectionError with a distinct diagnosis for each failure:
//
//   - the path does not exist
//   - the path is not a unix socket
//   - the socket is owned by another user
//   - the socket is accessible to group or others
//   - the parent directory is owned by another user
//   - the parent directory is writable by group or others
//
// Lstat is used throughout so a symlink planted at the expected path
// is diagnosed as "not a unix socket" rather than followed.
func ValidateSocketPath(path string) error {
	uid := uint32(os.Getuid())

	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		if errors.Is(err, unix.ENOENT) {
			return &ConnectionError{Path: path, Msg: "socket not found"}
		}
		return &ConnectionError{Path: path, Msg: "unable to stat socket", Err: err}
	}
	if err := checkSocketStat(path, &st, uid); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	var dst unix.Stat_t
	if err := unix.Lstat(dir, &dst); err != nil {
		return &ConnectionError{Path: dir, Msg: "unable to stat socket directory", Err: err}
	}
	return checkSocketDirStat(dir, &dst, uid)
}

// checkSocketStat diagnoses the socket inode itself. Split out so the
// ownership and mode branches, which cannot be staged on disk by an
// unprivileged test, are still covered.
func checkSocketStat(path string, st *unix.Stat_t, uid uint32) error {
	if st.Mode&unix.S_IFMT != unix.S_IFSOCK {
		return &ConnectionError{Path: path, Msg: "not a unix socket"}
	}
	if st.Uid != uid {
		return &ConnectionError{Path: path, Msg: "socket is not owned by the current user"}
	}
	if st.Mode&0o077 != 0 {
		return &ConnectionError{Path: path, Msg: "socket is accessible to group or others"}
	}
	return nil
}

// checkSocketDirStat diagnoses the directory holding the socket. A
// directory another user can write lets them swap the socket out from
// under us, so it is rejected even when the socket itself is sound.
func checkSocketDirStat(dir string, st *unix.Stat_t, uid uint32) error {
	if st.Uid != uid {
		return &ConnectionError{Path: dir, Msg: "socket directory is not owned by the current user"}
	}
	if st.Mode&0o022 != 0 {
		return &ConnectionError{Path: dir, Msg: "socket directory is writable by group or others"}
	}
	return nil
}
