package core

// behavior is one registered response: a validated specifier list plus the
// action it selects.
type behavior struct {
	specs  specList
	action Action
}

// behaviorTable holds everything configured for one member and resolves
// invocations against it. Precedence, most to least specific:
//
//  1. exact entry whose rendered literals equal the rendered arguments
//  2. wildcard entries, scanned in registration order, first accept wins
//  3. the member's signature-wide default
//  4. synthesis from the declared result shapes
//
// Resolution never fails: an unconfigured call falls through to synthesis.
type behaviorTable struct {
	sig      Signature
	exact    map[string]behavior
	wild     []behavior
	fallback Action
}

func newBehaviorTable(sig Signature) *behaviorTable {
	return &behaviorTable{sig: sig, exact: make(map[string]behavior)}
}

// register adds one behavior. Registering again with the same rendered
// specifier list replaces the earlier entry rather than stacking a dead one; a
// replaced wildcard entry keeps its original scan position.
func (t *behaviorTable) register(rawSpecs []ArgSpec, action Action) {
	specs := validateSpecs(t.sig, rawSpecs)
	entry := behavior{specs: specs, action: action}
	key := specs.render()

	if specs.exact() {
		t.exact[key] = entry

		return
	}

	for i := range t.wild {
		if t.wild[i].specs.render() == key {
			t.wild[i] = entry

			return
		}
	}

	t.wild = append(t.wild, entry)
}

// setFallback registers the signature-wide default behavior, replacing any
// earlier one.
func (t *behaviorTable) setFallback(action Action) {
	t.fallback = action
}

// plan captures the table state one invocation resolves against. It runs
// under the owning double's lock and does the exact-table step there; the
// returned resolution finishes the remaining steps outside the lock, because
// wildcard predicates and actions are user code and must not run while the
// double is locked.
func (t *behaviorTable) plan(args []any) resolution {
	res := resolution{sig: t.sig, fallback: t.fallback}

	if entry, ok := t.exact[renderArgs(args)]; ok {
		res.exact = entry.action

		return res
	}

	// Copy the entries, not just the slice header: a later re-registration may
	// replace one in place while this invocation is still scanning.
	res.wild = append([]behavior(nil), t.wild...)

	return res
}

// resolution is one invocation's view of the precedence chain.
type resolution struct {
	sig      Signature
	exact    Action
	wild     []behavior
	fallback Action
}

// action walks the remaining precedence steps and always yields a runnable
// action.
func (r resolution) action(args []any) Action {
	if !r.exact.zero() {
		return r.exact
	}

	for _, entry := range r.wild {
		if entry.specs.matches(args) {
			return entry.action
		}
	}

	if !r.fallback.zero() {
		return r.fallback
	}

	return synthesisAction(r.sig)
}
