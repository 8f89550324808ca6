package lock

import (
	"context"
	"errors"
	"testing"
)

func TestNoopLocker_RunsFn(t *testing.T) {
	locker := NewNoopLocker()

	ran := false
	err := locker.WithSlotLock(context.Background(), 7, func(ctx context.Context) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ran {
		t.Fatal("fn was not invoked")
	}
}

func TestNoopLocker_PropagatesError(t *testing.T) {
	locker := NewNoopLocker()

	want := errors.New("boom")
	err := locker.WithSlotLock(context.Background(), 7, func(ctx context.Context) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Fatalf("expected fn error, got %v", err)
	}
}
