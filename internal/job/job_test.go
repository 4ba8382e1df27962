package job

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestFinishWaitsAndJoinsErrors(t *testing.T) {
	j := New()
	started := make(chan struct{})
	release := make(chan struct{})

	j.Go(func(ctx context.Context) error {
		close(started)
		<-release
		return errors.New("first failure")
	})
	j.Go(func(ctx context.Context) error {
		return errors.New("second failure")
	})

	<-started
	close(release)

	err := j.Finish()
	if err == nil {
		t.Fatal("expected joined errors")
	}
	for _, want := range []string{"first failure", "second failure"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
	if j.Pending() != 0 {
		t.Fatalf("expected no pending jobs, got %d", j.Pending())
	}
}

func TestFinishDrainsCollectedErrors(t *testing.T) {
	j := New()
	j.Go(func(ctx context.Context) error { return errors.New("boom") })

	if err := j.Finish(); err == nil {
		t.Fatal("expected first finish to report the error")
	}
	if err := j.Finish(); err != nil {
		t.Fatalf("expected drained registry to be clean, got %v", err)
	}
}

func TestCloseCancelsJobContext(t *testing.T) {
	j := New()
	done := make(chan struct{})
	j.Go(func(ctx context.Context) error {
		<-ctx.Done()
		close(done)
		return ctx.Err()
	})

	j.Close()
	<-done

	if err := j.Finish(); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
