package reactivity

import "testing"

// TestDiamondDependencyIsGlitchFree exercises the classic diamond: a feeds
// both b and c, and d depends on both b and c. A single write to a must
// settle b and c before d's effect observes either of them, so the effect
// sees exactly one consistent value per write — never an intermediate
// state where only one of the two branches has been updated.
func TestDiamondDependencyIsGlitchFree(t *testing.T) {
	a := CreateSignal(1)
	b := CreateMemo(func() int { return a.Get() + 1 })
	c := CreateMemo(func() int { return a.Get() * 10 })
	d := CreateMemo(func() int { return b.Get() + c.Get() })

	var seen []int
	CreateEffect(func() {
		seen = append(seen, d.Get())
	})

	if len(seen) != 1 || seen[0] != 12 {
		t.Fatalf("initial seen = %v, want [12]", seen)
	}

	a.Set(2)

	// b=3, c=20, d=23 — the effect must observe this settled value exactly
	// once, never an in-between state such as 13 (b updated, c stale) or
	// 21 (c updated, b stale).
	if len(seen) != 2 {
		t.Fatalf("seen after write = %v, want 2 entries", seen)
	}
	if seen[1] != 23 {
		t.Fatalf("seen[1] = %d, want 23 (b=3, c=20)", seen[1])
	}
	for _, v := range seen {
		if v == 13 || v == 21 {
			t.Fatalf("observed glitched intermediate value %d in %v", v, seen)
		}
	}

	a.Set(3)

	// b=4, c=30, d=34 — a second write to the shared dependency. A memo
	// whose tracker is torn down alongside its first reader's transient
	// run scope would go stale after the first write and never reach
	// this value.
	if len(seen) != 3 {
		t.Fatalf("seen after second write = %v, want 3 entries", seen)
	}
	if seen[2] != 34 {
		t.Fatalf("seen[2] = %d, want 34 (b=4, c=30)", seen[2])
	}
}

// TestMemoReadInsideEffectSurvivesMultipleUpstreamWrites guards against a
// memo's tracker being owned by the reader effect's transient per-run
// scope instead of the scope active when the memo was created: the
// former is disposed (and the tracker along with it) every time the
// reader effect re-runs, leaving the memo permanently stale after its
// second upstream write.
func TestMemoReadInsideEffectSurvivesMultipleUpstreamWrites(t *testing.T) {
	a := CreateSignal(1)
	m := CreateMemo(func() int { return a.Get() + 1 })

	var seen []int
	CreateEffect(func() {
		seen = append(seen, m.Get())
	})

	a.Set(2)
	a.Set(3)

	if want := []int{2, 3, 4}; !equalInts(seen, want) {
		t.Fatalf("seen = %v, want %v", seen, want)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestEffectDerivingSignalOutsideBatchRunsOnce verifies that an effect
// which writes a signal as a side effect of its own run (the common
// derive-one-signal-from-another pattern, done outside any explicit
// Batch) is not re-entered by its own write: scheduleEffects must not
// open a nested drain while the outer drain that is running this very
// effect is still in progress.
func TestEffectDerivingSignalOutsideBatchRunsOnce(t *testing.T) {
	items := CreateSignal(1)
	total := CreateSignal(0)

	sourceRuns := 0
	CreateEffect(func() {
		sourceRuns++
		total.Set(items.Get() * 10)
	})

	var observedTotals []int
	CreateEffect(func() {
		observedTotals = append(observedTotals, total.Get())
	})

	sourceRuns = 0
	observedTotals = nil

	items.Set(2)
	if sourceRuns != 1 {
		t.Fatalf("sourceRuns after one write = %d, want 1 (re-entrant drain would run it twice)", sourceRuns)
	}
	if want := []int{20}; !equalInts(observedTotals, want) {
		t.Fatalf("observedTotals after one write = %v, want %v", observedTotals, want)
	}

	items.Set(3)
	if sourceRuns != 2 {
		t.Fatalf("sourceRuns after two writes = %d, want 2", sourceRuns)
	}
	if want := []int{20, 30}; !equalInts(observedTotals, want) {
		t.Fatalf("observedTotals after two writes = %v, want %v", observedTotals, want)
	}
}

// TestDisposedScopeSignalWritesAreIsolated confirms that writing to a
// signal whose only subscribers lived in an already-disposed scope is a
// safe no-op from the caller's point of view: no panic, no effect runs.
func TestDisposedScopeSignalWritesAreIsolated(t *testing.T) {
	scope := NewScope(nil)
	var s Signal[int]
	runs := 0

	runInScope(scope, func() {
		s = CreateSignal(0)
		CreateEffect(func() {
			_ = s.Get()
			runs++
		})
	})

	scope.Dispose()

	s.Set(1)
	s.Set(2)

	if runs != 1 {
		t.Fatalf("runs after writes to a signal with only disposed subscribers = %d, want 1", runs)
	}
}

// TestBatchAcrossMultipleSignalsRunsEachEffectOnce models a batched update
// to two independent signals read by one effect: the effect must run
// exactly once after the batch, not once per write.
func TestBatchAcrossMultipleSignalsRunsEachEffectOnce(t *testing.T) {
	x := CreateSignal(1)
	y := CreateSignal(2)
	runs := 0
	var lastSum int

	CreateEffect(func() {
		lastSum = x.Get() + y.Get()
		runs++
	})
	runs = 0

	Batch(func() {
		x.Set(10)
		y.Set(20)
	})

	if runs != 1 {
		t.Fatalf("runs after batched multi-signal write = %d, want 1", runs)
	}
	if lastSum != 30 {
		t.Fatalf("lastSum = %d, want 30", lastSum)
	}
}

// TestEffectDependenciesAreRecomputedEachRun verifies I3: a conditional
// read means the effect only stays subscribed to the branch it actually
// read on its most recent run.
func TestEffectDependenciesAreRecomputedEachRun(t *testing.T) {
	useFirst := CreateSignal(true)
	first := CreateSignal(1)
	second := CreateSignal(100)
	runs := 0

	CreateEffect(func() {
		if useFirst.Get() {
			_ = first.Get()
		} else {
			_ = second.Get()
		}
		runs++
	})
	runs = 0

	// Switch to reading second, dropping the subscription to first.
	useFirst.Set(false)
	if runs != 1 {
		t.Fatalf("runs after switching branch = %d, want 1", runs)
	}

	first.Set(2)
	if runs != 1 {
		t.Fatalf("runs after writing the now-unread branch = %d, want 1 (no extra run)", runs)
	}

	second.Set(200)
	if runs != 2 {
		t.Fatalf("runs after writing the now-read branch = %d, want 2", runs)
	}
}
