package core

// Stub is a behavior under construction: When or Fallback picks the calls it
// covers, then Return, Do, or Panic picks the response. Each terminal
// registers immediately; a Stub that never reaches a terminal configures
// nothing.
type Stub struct {
	dbl    *Double
	member string
	specs  []ArgSpec // nil registers the member-wide fallback
}

// When starts a behavior for calls whose arguments match the specifiers, one
// per parameter. Plain values are literal specifiers, values implementing
// Matcher are bridged, and ArgSpec values (the match package's constructors)
// pass through. An all-literal behavior wins over any wildcard behavior,
// which wins over the member's fallback.
func (d *Double) When(member string, specs ...any) *Stub {
	coerced := CoerceSpecs(specs)

	// Validate here so a bad specifier list fails at the When call site, not
	// at the later terminal.
	validateSpecs(d.Signature(member), coerced)

	return &Stub{dbl: d, member: member, specs: coerced}
}

// Fallback starts the member-wide fallback behavior, consulted when no
// argument-specific behavior matches a call.
func (d *Double) Fallback(member string) *Stub {
	d.Signature(member) // fail fast on unknown members

	return &Stub{dbl: d, member: member}
}

// OnCall hooks fn onto the member as a side-effect observer, firing for calls
// whose arguments match the specifiers, or for every call when none are
// given. Observers cannot change the response.
func (d *Double) OnCall(member string, fn any, specs ...any) {
	var filter []ArgSpec
	if len(specs) > 0 {
		filter = CoerceSpecs(specs)
	}

	d.Observe(member, fn, filter)
}

// Return completes the behavior with fixed values, one per declared result.
func (s *Stub) Return(values ...any) {
	s.finish(ReturnAction(s.dbl.Signature(s.member), values...))
}

// Do completes the behavior with a handler func. The func may accept a
// leading subset of the member's parameters and produce a leading subset of
// its results; whatever it leaves unproduced comes from default synthesis.
func (s *Stub) Do(fn any) {
	s.finish(DoAction(s.dbl.Signature(s.member), fn))
}

// Panic completes the behavior: invoking the member panics with value.
func (s *Stub) Panic(value any) {
	s.finish(PanicAction(value))
}

func (s *Stub) finish(action Action) {
	if s.specs == nil {
		s.dbl.SetDefault(s.member, action)

		return
	}

	s.dbl.SetBehavior(s.member, s.specs, action)
}
