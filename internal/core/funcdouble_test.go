package core_test

import (
	"errors"
	"testing"

	"github.com/toejough/standin"
	"github.com/toejough/standin/match"
)

// TestFuncDoubleAnswersLikeAMember verifies a function double is configured,
// invoked, and verified under the single FuncMember name.
func TestFuncDoubleAnswersLikeAMember(t *testing.T) {
	t.Parallel()

	double, dbl := standin.FuncOf[func(int) int]("double")
	dbl.When(standin.FuncMember, 3).Return(9)

	if got := double(3); got != 9 {
		t.Errorf("expected the configured answer, got %d", got)
	}

	if got := double(4); got != 0 {
		t.Errorf("expected the synthesized zero for an unconfigured call, got %d", got)
	}

	if err := dbl.Verify(standin.FuncMember, standin.Times(2)); err != nil {
		t.Errorf("both calls should be on the ledger: %v", err)
	}

	if err := dbl.Verify(standin.FuncMember, standin.Once(), 3); err != nil {
		t.Errorf("exactly one call passed 3: %v", err)
	}
}

// TestFuncDoubleSynthesizesEveryResult verifies unconfigured calls fill every
// result position, deferred ones included.
func TestFuncDoubleSynthesizesEveryResult(t *testing.T) {
	t.Parallel()

	fetch, _ := standin.FuncOf[func(id string) (string, <-chan struct{}, error)]("fetch")

	value, done, err := fetch("anything")

	if value != "" || err != nil {
		t.Errorf("expected zero values, got %q and %v", value, err)
	}

	select {
	case <-done:
	default:
		t.Error("the synthesized channel should already be complete")
	}
}

// TestFuncDoubleVariadicTail verifies the variadic tail crosses the relay as
// one slice argument, for specifiers and the ledger alike.
func TestFuncDoubleVariadicTail(t *testing.T) {
	t.Parallel()

	logf, dbl := standin.FuncOf[func(format string, args ...any) error]("logf")
	dbl.When(standin.FuncMember, "%s: %d", []any{"tries", 3}).Return(errors.New("seen"))

	if err := logf("%s: %d", "tries", 3); err == nil {
		t.Error("the packed tail should hit the exact behavior")
	}

	if err := logf("%s: %d", "tries", 4); err != nil {
		t.Errorf("a different tail should miss it and synthesize nil, got %v", err)
	}

	entries := dbl.Invocations()
	if len(entries) != 2 {
		t.Fatalf("expected 2 recorded calls, got %d", len(entries))
	}

	if tail, ok := entries[0].Args[1].([]any); !ok || len(tail) != 2 {
		t.Errorf("the recorded tail should be the packed slice, got %#v", entries[0].Args[1])
	}
}

// TestFuncDoubleHandlerAndPanic verifies Do handlers and panic responses work
// through the relay the same as on interface members.
func TestFuncDoubleHandlerAndPanic(t *testing.T) {
	t.Parallel()

	parse, dbl := standin.FuncOf[func(s string) (int, error)]("parse")
	dbl.When(standin.FuncMember, match.Satisfy(func(s string) error {
		if s == "" {
			return errors.New("empty")
		}

		return nil
	})).Do(func(s string) int { return len(s) })
	dbl.When(standin.FuncMember, "").Panic("nothing to parse")

	n, err := parse("abcd")
	if n != 4 || err != nil {
		t.Errorf("expected the handler's length with a padded nil error, got %d, %v", n, err)
	}

	func() {
		defer func() {
			if r := recover(); r != "nothing to parse" {
				t.Errorf("expected the configured panic through the relay, got %v", r)
			}
		}()

		parse("")
	}()
}

// TestFuncOfRejectsNonFuncTypes verifies the type parameter must be a func
// type.
func TestFuncOfRejectsNonFuncTypes(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a non-func type parameter")
		}
	}()

	standin.FuncOf[int]("notafunc")
}

// TestFuncDoubleResultsStayIndependent verifies two doubles of the same func
// type keep separate behaviors and ledgers.
func TestFuncDoubleResultsStayIndependent(t *testing.T) {
	t.Parallel()

	first, firstDbl := standin.FuncOf[func() string]("first")
	second, secondDbl := standin.FuncOf[func() string]("second")

	firstDbl.When(standin.FuncMember).Return("first answer")

	if got := first(); got != "first answer" {
		t.Errorf("expected the first double's behavior, got %q", got)
	}

	if got := second(); got != "" {
		t.Errorf("the second double should be untouched, got %q", got)
	}

	if err := firstDbl.Verify(standin.FuncMember, standin.Once()); err != nil {
		t.Errorf("the first double saw one call: %v", err)
	}

	if err := secondDbl.Verify(standin.FuncMember, standin.Once()); err != nil {
		t.Errorf("the second double saw one call: %v", err)
	}
}
