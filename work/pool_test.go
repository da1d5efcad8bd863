package work

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPool_StartStop(t *testing.T) {
	p := NewPool()
	if err := p.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if !p.IsRunning() {
		t.Error("pool should be running after Start")
	}
	if err := p.Start(); err != ErrAlreadyRunning {
		t.Errorf("second Start = %v, want ErrAlreadyRunning", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := p.Stop(ctx); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
	if err := p.Stop(ctx); err != ErrNotRunning {
		t.Errorf("second Stop = %v, want ErrNotRunning", err)
	}
}

func TestPool_SubmitResult(t *testing.T) {
	p := NewPool(WithWorkers(1))
	if err := p.Start(); err != nil {
		t.Fatal(err)
	}
	defer p.Stop(context.Background())

	job, err := p.Submit(func() (any, error) { return 42, nil })
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	result, err := job.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if result != 42 {
		t.Errorf("result = %v, want 42", result)
	}
}

func TestPool_SubmitError(t *testing.T) {
	p := NewPool(WithInline(true))
	p.Start()
	defer p.Stop(context.Background())

	want := errors.New("job failed")
	job, err := p.Submit(func() (any, error) { return nil, want })
	if err != nil {
		t.Fatal(err)
	}
	_, got, done := job.Result()
	if !done {
		t.Fatal("inline job should complete before Submit returns")
	}
	if got != want {
		t.Errorf("err = %v, want %v", got, want)
	}
}

func TestPool_SubmitNotRunning(t *testing.T) {
	p := NewPool()
	if _, err := p.Submit(func() (any, error) { return nil, nil }); err != ErrNotRunning {
		t.Errorf("Submit before Start = %v, want ErrNotRunning", err)
	}
}

func TestPool_InlineRunsInCaller(t *testing.T) {
	p := NewPool(WithInline(true))
	p.Start()
	defer p.Stop(context.Background())

	ran := false
	job, err := p.Submit(func() (any, error) { ran = true; return nil, nil })
	if err != nil {
		t.Fatal(err)
	}
	if !ran {
		t.Error("inline submission should run before Submit returns")
	}
	if _, _, done := job.Result(); !done {
		t.Error("inline job not completed")
	}
}

func TestPool_SubmitThen(t *testing.T) {
	p := NewPool(WithInline(true))
	p.Start()
	defer p.Stop(context.Background())

	var got any
	_, err := p.SubmitThen(
		func() (any, error) { return "value", nil },
		func(j *Job) { got, _, _ = j.Result() },
	)
	if err != nil {
		t.Fatal(err)
	}
	if got != "value" {
		t.Errorf("then saw %v, want %q", got, "value")
	}
}

func TestPool_PanicBecomesError(t *testing.T) {
	var recovered any
	p := NewPool(WithInline(true), WithPanicHandler(func(r any, _ []byte) { recovered = r }))
	p.Start()
	defer p.Stop(context.Background())

	job, err := p.Submit(func() (any, error) { panic("boom") })
	if err != nil {
		t.Fatal(err)
	}
	_, jobErr, done := job.Result()
	if !done {
		t.Fatal("panicking job should still complete")
	}
	if !errors.Is(jobErr, ErrPanicked) {
		t.Errorf("err = %v, want ErrPanicked", jobErr)
	}
	if recovered != "boom" {
		t.Errorf("panic handler saw %v", recovered)
	}

	if got := p.Stats().Panicked; got != 1 {
		t.Errorf("Stats().Panicked = %d, want 1", got)
	}
}

func TestPool_ThenPanicContained(t *testing.T) {
	p := NewPool(WithInline(true), WithPanicHandler(func(any, []byte) {}))
	p.Start()
	defer p.Stop(context.Background())

	_, err := p.SubmitThen(
		func() (any, error) { return nil, nil },
		func(*Job) { panic("then boom") },
	)
	if err != nil {
		t.Errorf("then panic escaped: %v", err)
	}
}

func TestPool_QueueFull(t *testing.T) {
	p := NewPool(WithWorkers(1), WithQueueSize(1))
	p.Start()
	defer p.Stop(context.Background())

	block := make(chan struct{})
	started := make(chan struct{})
	p.Submit(func() (any, error) { close(started); <-block; return nil, nil })
	<-started

	// One slot in the queue, then full.
	if _, err := p.Submit(func() (any, error) { return nil, nil }); err != nil {
		t.Fatalf("queue slot submit failed: %v", err)
	}
	if _, err := p.Submit(func() (any, error) { return nil, nil }); err != ErrQueueFull {
		t.Errorf("overflow submit = %v, want ErrQueueFull", err)
	}
	if got := p.Stats().Dropped; got != 1 {
		t.Errorf("Stats().Dropped = %d, want 1", got)
	}
	close(block)
}

func TestJob_WaitCancelled(t *testing.T) {
	p := NewPool(WithWorkers(1))
	p.Start()
	defer p.Stop(context.Background())

	block := make(chan struct{})
	defer close(block)
	job, err := p.Submit(func() (any, error) { <-block; return nil, nil })
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := job.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait = %v, want deadline exceeded", err)
	}
}

func TestPool_StatsCounts(t *testing.T) {
	p := NewPool(WithInline(true))
	p.Start()
	defer p.Stop(context.Background())

	for i := 0; i < 3; i++ {
		p.Submit(func() (any, error) { return nil, nil })
	}
	stats := p.Stats()
	if stats.Submitted != 3 || stats.Completed != 3 {
		t.Errorf("stats = %+v", stats)
	}
}
