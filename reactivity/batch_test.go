package reactivity

import "testing"

func TestBatchDefersEffectsUntilFnReturns(t *testing.T) {
	a := CreateSignal(1)
	b := CreateSignal(10)
	runs := 0
	var seen []int

	CreateEffect(func() {
		seen = append(seen, a.Get()+b.Get())
		runs++
	})

	if runs != 1 {
		t.Fatalf("initial runs = %d, want 1", runs)
	}

	Batch(func() {
		a.Set(2)
		b.Set(20)
	})

	if runs != 2 {
		t.Fatalf("runs after batched writes = %d, want 2 (one run per write would give 3)", runs)
	}
	if seen[len(seen)-1] != 22 {
		t.Fatalf("last seen value = %d, want 22", seen[len(seen)-1])
	}
}

func TestNestedBatchesOnlyDrainOnOutermostReturn(t *testing.T) {
	s := CreateSignal(0)
	runs := 0
	CreateEffect(func() {
		_ = s.Get()
		runs++
	})
	runs = 0 // ignore the initial run

	Batch(func() {
		s.Set(1)
		Batch(func() {
			s.Set(2)
		})
		// Still inside the outer batch: the inner Batch returning must not
		// have drained yet.
		if runs != 0 {
			t.Fatalf("runs inside outer batch after inner batch returns = %d, want 0", runs)
		}
	})

	if runs != 1 {
		t.Fatalf("runs after outer batch returns = %d, want 1", runs)
	}
}

func TestWriteInsideBatchIsImmediatelyVisibleToReads(t *testing.T) {
	s := CreateSignal(1)
	var readBack int
	Batch(func() {
		s.Set(5)
		readBack = s.Get()
	})
	if readBack != 5 {
		t.Fatalf("read inside batch = %d, want 5", readBack)
	}
}

func TestImplicitBatchQueuesWholeFanOutBeforeRunning(t *testing.T) {
	// A single write to s should enqueue both dependent effects before
	// either one executes, so neither observes the other's side effects
	// mid-propagation from this one write.
	s := CreateSignal(1)
	var executionOrder []string

	CreateEffect(func() {
		_ = s.Get()
		executionOrder = append(executionOrder, "first")
	})
	CreateEffect(func() {
		_ = s.Get()
		executionOrder = append(executionOrder, "second")
	})
	executionOrder = nil

	s.Set(2)

	if len(executionOrder) != 2 || executionOrder[0] != "first" || executionOrder[1] != "second" {
		t.Fatalf("execution order = %v, want [first second]", executionOrder)
	}
}

func TestBatchErrorAggregatesEffectPanicsWithoutAbortingDrain(t *testing.T) {
	s := CreateSignal(0)
	secondRan := false

	CreateEffect(func() {
		if s.Get() == 1 {
			panic("boom")
		}
	})
	CreateEffect(func() {
		_ = s.Get()
		secondRan = true
	})
	secondRan = false

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic carrying the aggregated BatchError")
		}
		be, ok := r.(*BatchError)
		if !ok {
			t.Fatalf("expected *BatchError, got %T", r)
		}
		if len(be.Errors) != 1 {
			t.Fatalf("expected 1 aggregated error, got %d", len(be.Errors))
		}
		if !secondRan {
			t.Error("the second effect should still have run despite the first one panicking")
		}
	}()

	s.Set(1)
}
