// Package lock guarantees a single running instance through an exclusive
// advisory lock on a well-known file.
//
// The lock belongs to the open file description, so the kernel drops it on
// any process exit. A leftover file from a crashed instance does not block
// a new one.
package lock

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/shirou/gopsutil/v3/process"
	"golang.org/x/sys/unix"
)

// ErrLockConflict is matched by every *ConflictError.
var ErrLockConflict = errors.New("another instance is already running")

// ConflictError describes the instance that holds the lock. PID is zero when
// the recorded identifier could not be read or parsed.
type ConflictError struct {
	Path    string
	PID     int
	Raw     string
	Process string
}

func (e *ConflictError) Error() string {
	var b strings.Builder
	b.WriteString(ErrLockConflict.Error())
	switch {
	case e.PID > 0:
		fmt.Fprintf(&b, " using this PID %d", e.PID)
		if e.Process != "" {
			fmt.Fprintf(&b, " (%s)", e.Process)
		}
	case e.Raw != "":
		fmt.Fprintf(&b, " using this PID %q", e.Raw)
	default:
		b.WriteString(" (PID unknown)")
	}
	fmt.Fprintf(&b, ", at location %s", e.Path)
	return b.String()
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrLockConflict
}

// Lock is a held instance lock. The zero value is not usable.
type Lock struct {
	path string
	file *os.File
	once sync.Once
	err  error
}

// Acquire takes the lock at path without blocking and records the current
// PID in it. It returns a *ConflictError when another holder exists.
func Acquire(path string) (*Lock, error) {
	// no O_TRUNC: the holder's PID must survive a failed attempt
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, readConflict(path)
		}
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}

	if err := writePID(f, os.Getpid()); err != nil {
		_ = unix.Flock(int(f.Fd()), unix.LOCK_UN)
		f.Close()
		return nil, fmt.Errorf("failed to record PID: %w", err)
	}

	return &Lock{path: path, file: f}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks and closes the file. The file itself is left in place.
// Calling Release more than once is harmless.
func (l *Lock) Release() error {
	l.once.Do(func() {
		unlockErr := unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
		closeErr := l.file.Close()
		l.err = errors.Join(unlockErr, closeErr)
	})
	return l.err
}

func writePID(f *os.File, pid int) error {
	data := []byte(strconv.Itoa(pid))
	if err := f.Truncate(0); err != nil {
		return err
	}
	if _, err := f.WriteAt(data, 0); err != nil {
		return err
	}
	return f.Sync()
}

// readConflict builds the conflict report, best-effort.
func readConflict(path string) *ConflictError {
	conflict := &ConflictError{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return conflict
	}
	conflict.Raw = strings.TrimSpace(string(data))

	pid, err := strconv.Atoi(conflict.Raw)
	if err != nil || pid <= 0 {
		return conflict
	}
	conflict.PID = pid
	conflict.Process = processName(pid)
	return conflict
}

func processName(pid int) string {
	exists, err := process.PidExists(int32(pid))
	if err != nil || !exists {
		return ""
	}
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return ""
	}
	name, err := p.Name()
	if err != nil {
		return ""
	}
	return name
}
