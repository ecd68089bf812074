// Package core implements the test-double engine behind the standin package:
// member signatures, behavior registration and resolution, invocation
// recording, observer callbacks, and verification. The root package and
// generated adapters are thin typed shells over this engine.
package core

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// TestReporter is the reporting surface a double needs from the test
// framework. *testing.T satisfies it.
type TestReporter interface {
	Helper()
	Fatalf(format string, args ...any)
}

// Double is one test double. It records every call made against it, answers
// each from the most specific configured behavior (or synthesizes a default),
// fires observer hooks, and answers verification queries over its history.
//
// A Double is safe for concurrent use. Configuration panics on misuse:
// unknown members, arity mismatches, and type mismatches are programming
// errors in the test, caught at setup or call time rather than surfacing as
// wrong results later.
type Double struct {
	name     string
	reporter TestReporter
	journal  *Journal

	mu     sync.Mutex
	sigs   map[string]Signature      // by member name
	tables map[string]*behaviorTable // by signature key
	hooks  *dispatcher
	ledger ledger
}

// NewDouble creates a detached double with a private journal and no reporter.
// MustVerify is unavailable on a detached double; use the registry's
// DoubleFor to bind one to a test.
func NewDouble(name string) *Double {
	return NewReportingDouble(name, nil, nil)
}

// NewReportingDouble creates a double bound to a reporter and journal. A nil
// journal gets a private one.
func NewReportingDouble(name string, reporter TestReporter, journal *Journal) *Double {
	if name == "" {
		panic("standin: a double needs a name; it identifies the double in failure messages")
	}

	if journal == nil {
		journal = NewJournal()
	}

	return &Double{
		name:     name,
		reporter: reporter,
		journal:  journal,
		sigs:     make(map[string]Signature),
		tables:   make(map[string]*behaviorTable),
		hooks:    newDispatcher(),
	}
}

// Name returns the double's name as used in failure messages.
func (d *Double) Name() string { return d.name }

// Journal returns the journal this double records into.
func (d *Double) Journal() *Journal { return d.journal }

// Register declares the double's members. Registering a member name twice
// panics; a contract has one shape per member.
func (d *Double) Register(sigs ...Signature) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, sig := range sigs {
		if _, exists := d.sigs[sig.Name()]; exists {
			panic(fmt.Sprintf("standin: %s: member %s is already registered", d.name, sig.Name()))
		}

		d.sigs[sig.Name()] = sig
		d.tables[sig.Key()] = newBehaviorTable(sig)
	}
}

// Signature returns the registered signature for the member name.
func (d *Double) Signature(member string) Signature {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.signature(member)
}

// Has reports whether the member name is registered.
func (d *Double) Has(member string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, ok := d.sigs[member]

	return ok
}

// SetBehavior registers a response for calls whose arguments match the
// specifiers. The specifier count must equal the member's arity.
func (d *Double) SetBehavior(member string, specs []ArgSpec, action Action) {
	d.mu.Lock()
	defer d.mu.Unlock()

	sig := d.signature(member)
	d.tables[sig.Key()].register(specs, action)
}

// SetDefault registers the member-wide fallback response, used when no
// argument-specific behavior matches a call.
func (d *Double) SetDefault(member string, action Action) {
	d.mu.Lock()
	defer d.mu.Unlock()

	sig := d.signature(member)
	d.tables[sig.Key()].setFallback(action)
}

// Observe hooks fn onto the member as a side-effect observer. With specs, the
// hook fires only for matching arguments; without, for every call. Hooks fire
// in registration order after the invocation is recorded and before its
// response resolves.
func (d *Double) Observe(member string, fn any, specs []ArgSpec) {
	d.mu.Lock()
	defer d.mu.Unlock()

	sig := d.signature(member)
	runner := callbackRunner(sig, fn)

	var filter specList
	if specs != nil {
		filter = validateSpecs(sig, specs)
	}

	d.hooks.observe(sig, filter, runner)
}

// Invoke records a call against the member and returns its resolved results.
// Generated adapters and func doubles call this; test bodies normally never
// do. A panic action's panic, or a panic from an observer hook, propagates to
// the caller.
func (d *Double) Invoke(member string, args ...any) []any {
	var (
		hooks []callbackEntry
		res   resolution
	)

	// Record and plan under the lock; hooks, wildcard predicates, and the
	// action itself are user code and run outside it. A hook or predicate may
	// therefore invoke this double again without deadlocking.
	func() {
		d.mu.Lock()
		defer d.mu.Unlock()

		sig := d.signature(member)
		validateArgs(sig, args)

		inv := Invocation{
			Sig:    sig,
			Args:   append([]any(nil), args...),
			Double: d.name,
		}
		d.ledger.record(d.journal.record(inv))

		hooks = d.hooks.snapshot(sig)
		res = d.tables[sig.Key()].plan(args)
	}()

	fire(hooks, args)

	return res.action(args).Run(args)
}

// Invocations returns a copy of the double's recorded history, in call order.
func (d *Double) Invocations() []Invocation {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.ledger.snapshot()
}

// Verify counts the member's recorded invocations, keeps those whose
// arguments match the specifiers (with none given, every invocation counts),
// and checks the count against the threshold. It returns nil on success and a
// *VerificationError on failure. Configuration mistakes (unknown member,
// specifier arity or type mismatch) panic, same as setup.
func (d *Double) Verify(member string, threshold Threshold, specs ...any) error {
	if threshold.pass == nil {
		panic("standin: Verify requires a threshold")
	}

	var coerced []ArgSpec
	if len(specs) > 0 {
		coerced = CoerceSpecs(specs)
	}

	var (
		sig     Signature
		filter  specList
		entries []Invocation
	)

	// Snapshot under the lock; filter predicates run outside it.
	func() {
		d.mu.Lock()
		defer d.mu.Unlock()

		sig = d.signature(member)

		if coerced != nil {
			filter = validateSpecs(sig, coerced)
		}

		entries = d.ledger.snapshot()
	}()

	count, observed := countMatching(entries, sig, filter)
	if threshold.pass(count) {
		return nil
	}

	failure := &VerificationError{
		Double:   d.name,
		Member:   member,
		Expected: threshold.describe,
		Count:    count,
		Observed: observed,
	}
	if filter != nil {
		failure.Filter = filter.render()
	}

	return failure
}

// MustVerify is Verify wired to the double's reporter: a failed verification
// fails the test via Fatalf. It panics on a detached double.
func (d *Double) MustVerify(member string, threshold Threshold, specs ...any) {
	if d.reporter == nil {
		panic(fmt.Sprintf("standin: %s has no reporter; create the double with DoubleFor to use MustVerify",
			d.name))
	}

	d.reporter.Helper()

	if err := d.Verify(member, threshold, specs...); err != nil {
		d.reporter.Fatalf("%s", err)
	}
}

// signature looks up a member under the lock, panicking for unknown names.
func (d *Double) signature(member string) Signature {
	sig, ok := d.sigs[member]
	if !ok {
		panic(fmt.Sprintf("standin: %s has no member %q; registered members: %s",
			d.name, member, d.memberNames()))
	}

	return sig
}

func (d *Double) memberNames() string {
	if len(d.sigs) == 0 {
		return "none"
	}

	names := make([]string, 0, len(d.sigs))
	for name := range d.sigs {
		names = append(names, name)
	}

	sort.Strings(names)

	return strings.Join(names, ", ")
}

// validateArgs checks an incoming argument list against the member's shape.
// Generated adapters guarantee these statically; direct Invoke calls get the
// same checks dynamically.
func validateArgs(sig Signature, args []any) {
	if len(args) != sig.Arity() {
		panic(fmt.Sprintf("standin: %s takes %d args, got %d", sig, sig.Arity(), len(args)))
	}

	for i, arg := range args {
		param := sig.Param(i)

		if isNil(arg) {
			if !isNillableKind(param.Kind()) {
				panic(fmt.Sprintf("standin: %s: arg %d is nil, but parameter type %s cannot be nil",
					sig, i, typeLabel(param)))
			}

			continue
		}

		argType := reflect.TypeOf(arg)
		if !argType.AssignableTo(param) {
			panic(fmt.Sprintf("standin: %s: arg %d has type %s, want %s",
				sig, i, typeLabel(argType), typeLabel(param)))
		}
	}
}
