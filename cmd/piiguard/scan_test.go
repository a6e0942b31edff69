package piiguard

import (
	"os"
	"path/filepath"
	"testing"
)

// silenceStdout routes command output to /dev/null for the duration of the
// test.
func silenceStdout(t *testing.T) {
	t.Helper()
	devnull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		t.Fatal(err)
	}
	old := os.Stdout
	os.Stdout = devnull
	t.Cleanup(func() {
		os.Stdout = old
		devnull.Close()
	})
}

func TestRunScanFailOnDetectReturnsForCleanup(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	silenceStdout(t)

	p := filepath.Join(t.TempDir(), "in.txt")
	if err := os.WriteFile(p, []byte("ssn 123-45-6789"), 0o644); err != nil {
		t.Fatal(err)
	}

	flagFailOnDetect = true
	flagJSON = true
	t.Cleanup(func() {
		flagFailOnDetect = false
		flagJSON = false
		exitCode = 0
	})

	// The command must return normally so deferred engine and analyzer
	// shutdown run; the non-zero exit is requested via exitCode instead.
	if err := runScan(nil, []string{p}); err != nil {
		t.Fatalf("scan with detections must not error: %v", err)
	}
	if exitCode != 1 {
		t.Fatalf("expected exit code request 1, got %d", exitCode)
	}
}

func TestRunScanCleanExitWithoutDetections(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	silenceStdout(t)

	p := filepath.Join(t.TempDir(), "in.txt")
	if err := os.WriteFile(p, []byte("nothing sensitive here"), 0o644); err != nil {
		t.Fatal(err)
	}

	flagFailOnDetect = true
	flagJSON = true
	t.Cleanup(func() {
		flagFailOnDetect = false
		flagJSON = false
		exitCode = 0
	})

	if err := runScan(nil, []string{p}); err != nil {
		t.Fatal(err)
	}
	if exitCode != 0 {
		t.Fatalf("no detections must keep exit code 0, got %d", exitCode)
	}
}
