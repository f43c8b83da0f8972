package lockfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()
	lock, err := AcquireLock(dir)
	if err != nil {
		t.Fatalf("AcquireLock failed: %v", err)
	}
	lockPath := filepath.Join(dir, LockFileName)
	if _, err := os.Stat(lockPath); err != nil {
		t.Errorf("lock file not created: %v", err)
	}

	if err := lock.Release(); err != nil {
		t.Errorf("Release failed: %v", err)
	}
	if _, err := os.Stat(lockPath); !os.IsNotExist(err) {
		t.Error("lock file not removed after release")
	}

	// Release is idempotent.
	if err := lock.Release(); err != nil {
		t.Errorf("second Release failed: %v", err)
	}
}

func TestAcquireLockCreatesStateDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	lock, err := AcquireLock(dir)
	if err != nil {
		t.Fatalf("AcquireLock failed: %v", err)
	}
	defer lock.Release()
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("state directory not created: %v", err)
	}
}

func TestAcquireLockConflict(t *testing.T) {
	dir := t.TempDir()
	first, err := AcquireLock(dir)
	if err != nil {
		t.Fatalf("first AcquireLock failed: %v", err)
	}
	defer first.Release()

	_, err = AcquireLock(dir)
	if err == nil {
		t.Fatal("second AcquireLock should fail while the first lock is held")
	}
	var lockErr *LockError
	if !errors.As(err, &lockErr) {
		t.Fatalf("err = %T, want LockError", err)
	}
	if !strings.Contains(lockErr.Error(), "PID") {
		t.Errorf("error does not name the holding process: %v", lockErr)
	}
}

func TestFailedAcquirePreservesHolderInfo(t *testing.T) {
	dir := t.TempDir()
	first, err := AcquireLock(dir)
	if err != nil {
		t.Fatalf("first AcquireLock failed: %v", err)
	}
	defer first.Release()

	lockPath := filepath.Join(dir, LockFileName)
	wantPID := os.Getpid()

	// Repeated contenders must not wipe the holder's pid record.
	for i := 0; i < 2; i++ {
		if _, err := AcquireLock(dir); err == nil {
			t.Fatal("contending AcquireLock should fail while the lock is held")
		}
		data, err := os.ReadFile(lockPath)
		if err != nil {
			t.Fatalf("reading lock file after failed acquire: %v", err)
		}
		if got := extractPID(string(data)); got != wantPID {
			t.Fatalf("lock file pid after failed acquire = %d, want %d (contents %q)", got, wantPID, data)
		}
	}
}

func TestExtractPID(t *testing.T) {
	if got := extractPID("pid=1234\n"); got != 1234 {
		t.Errorf("extractPID = %d, want 1234", got)
	}
	if got := extractPID("garbage"); got != 0 {
		t.Errorf("extractPID on garbage = %d, want 0", got)
	}
}
