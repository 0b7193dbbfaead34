package recovery

import (
	"os"
	"os/exec"
	"testing"
)

func TestHandlePanic_NoPanicIsNoOp(t *testing.T) {
	func() {
		defer HandlePanic()
	}()
	// Reaching here means HandlePanic did not exit
}

func TestHandlePanicFunc_CleanupNotCalledWithoutPanic(t *testing.T) {
	called := false
	func() {
		defer HandlePanicFunc(func() { called = true })
	}()
	if called {
		t.Error("cleanup called without a panic")
	}
}

// TestHandlePanic_ExitsOnPanic re-runs the test binary with a crash trigger
// and checks the exit code, since HandlePanic calls os.Exit.
func TestHandlePanic_ExitsOnPanic(t *testing.T) {
	if os.Getenv("RECOVERY_TEST_CRASH") == "1" {
		defer HandlePanic()
		panic("boom")
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestHandlePanic_ExitsOnPanic")
	cmd.Env = append(os.Environ(), "RECOVERY_TEST_CRASH=1")
	err := cmd.Run()

	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("subprocess error = %v, want non-zero exit", err)
	}
	if exitErr.ExitCode() != 1 {
		t.Errorf("subprocess exit code = %d, want 1", exitErr.ExitCode())
	}
}

func TestHandlePanicFunc_CleanupRunsOnPanic(t *testing.T) {
	if os.Getenv("RECOVERY_TEST_CRASH_FUNC") == "1" {
		defer HandlePanicFunc(func() {
			os.Exit(42) // cleanup ran: exit with a distinctive code
		})
		panic("boom")
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestHandlePanicFunc_CleanupRunsOnPanic")
	cmd.Env = append(os.Environ(), "RECOVERY_TEST_CRASH_FUNC=1")
	err := cmd.Run()

	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("subprocess error = %v, want non-zero exit", err)
	}
	if exitErr.ExitCode() != 42 {
		t.Errorf("subprocess exit code = %d, want 42 (cleanup marker)", exitErr.ExitCode())
	}
}
