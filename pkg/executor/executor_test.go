package executor

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestExecute(t *testing.T) {
	out, err := New().Execute(context.Background(), "sh", "-c", "printf hello")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "hello" {
		t.Errorf("Execute() = %q, want hello", out)
	}
}

func TestExecuteFailureIncludesStderr(t *testing.T) {
	_, err := New().Execute(context.Background(), "sh", "-c", "echo 'no such model' >&2; exit 3")
	if err == nil {
		t.Fatal("Execute() should fail")
	}
	if !strings.Contains(err.Error(), "no such model") {
		t.Errorf("error %q should include stderr", err)
	}
}

func TestExecuteMissingBinary(t *testing.T) {
	_, err := New().Execute(context.Background(), "definitely-not-a-real-binary-xyz")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("Execute() error = %v, want not found", err)
	}
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := New().Execute(ctx, "sh", "-c", "sleep 5")
	if err == nil || !strings.Contains(err.Error(), "cancelled") {
		t.Errorf("Execute() error = %v, want cancelled", err)
	}
}

func TestTailOf(t *testing.T) {
	if got := tailOf("  short  ", 10); got != "short" {
		t.Errorf("tailOf() = %q", got)
	}
	if got := tailOf("abcdefghij", 4); got != "...ghij" {
		t.Errorf("tailOf() = %q", got)
	}
}
