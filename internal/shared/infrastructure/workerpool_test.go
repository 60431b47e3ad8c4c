package infrastructure

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestWorkerPoolRunsAllTasks(t *testing.T) {
	wp := NewWorkerPool(4)
	wp.Start()

	var counter int64
	for i := 0; i < 20; i++ {
		err := wp.Submit(func() error {
			atomic.AddInt64(&counter, 1)
			return nil
		})
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}
	wp.Wait()

	if counter != 20 {
		t.Errorf("Expected 20 tasks executed, got %d", counter)
	}
}

func TestWorkerPoolCollectsErrors(t *testing.T) {
	wp := NewWorkerPool(2)
	wp.Start()

	boom := errors.New("batch failed")
	wp.Submit(func() error { return boom })
	wp.Submit(func() error { return nil })
	wp.Wait()

	select {
	case err := <-wp.Errors():
		if !errors.Is(err, boom) {
			t.Errorf("Expected batch error, got %v", err)
		}
	default:
		t.Error("Expected an error on the errors channel")
	}
}

func TestWorkerPoolSubmitAfterStop(t *testing.T) {
	wp := NewWorkerPool(2)
	wp.Start()
	wp.Stop()

	if err := wp.Submit(func() error { return nil }); err == nil {
		t.Error("Expected error when submitting to a stopped pool")
	}
}
