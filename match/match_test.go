package match_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/toejough/standin"
	"github.com/toejough/standin/match"
)

// newGateDouble registers members covering the argument kinds the specifier
// tests need.
func newGateDouble() *standin.Double {
	dbl := standin.NewDouble("gate")
	dbl.Register(
		standin.NewSignature("Admit", (func(name string) bool)(nil)),
		standin.NewSignature("Tag", (func(v any) string)(nil)),
		standin.NewSignature("Lookup", (func(p *int) bool)(nil)),
	)

	return dbl
}

// TestBeAnyMatchesEverything verifies the untyped wildcard accepts every value
// and nil alike.
func TestBeAnyMatchesEverything(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	dbl := newGateDouble()
	dbl.When("Tag", match.BeAny).Return("matched")

	g.Expect(dbl.Invoke("Tag", "text")[0]).To(Equal("matched"))
	g.Expect(dbl.Invoke("Tag", 42)[0]).To(Equal("matched"))
	g.Expect(dbl.Invoke("Tag", nil)[0]).To(Equal("matched"))
}

// TestAnyIsTypeConstrained verifies Any[T] admits assignable values only, with
// nil admitted exactly when T is nillable.
func TestAnyIsTypeConstrained(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	dbl := newGateDouble()
	dbl.When("Tag", match.Any[int]()).Return("int")

	g.Expect(dbl.Invoke("Tag", 7)[0]).To(Equal("int"))
	g.Expect(dbl.Invoke("Tag", "seven")[0]).To(Equal(""), "a string should miss Any[int]")
	g.Expect(dbl.Invoke("Tag", nil)[0]).To(Equal(""), "nil should miss a non-nillable constraint")

	dbl.When("Lookup", match.Any[*int]()).Return(true)

	g.Expect(dbl.Invoke("Lookup", nil)[0]).To(BeTrue(), "nil should match a nillable constraint")
}

// TestSatisfyRunsThePredicate verifies Satisfy admits exactly the values the
// predicate accepts and shields it from foreign types.
func TestSatisfyRunsThePredicate(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	dbl := newGateDouble()
	dbl.When("Admit", match.Satisfy(func(name string) error {
		if !strings.HasPrefix(name, "vip/") {
			return fmt.Errorf("%q is not on the list", name)
		}

		return nil
	})).Return(true)

	g.Expect(dbl.Invoke("Admit", "vip/ada")[0]).To(BeTrue())
	g.Expect(dbl.Invoke("Admit", "walkin/bob")[0]).To(BeFalse())
}

// TestSatisfySeesTypedZeroForNil verifies an untyped nil argument reaches the
// predicate as T's zero value rather than being rejected up front.
func TestSatisfySeesTypedZeroForNil(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	dbl := newGateDouble()

	var sawNil bool

	dbl.When("Lookup", match.Satisfy(func(p *int) error {
		if p == nil {
			sawNil = true

			return nil
		}

		return errors.New("want nil")
	})).Return(true)

	g.Expect(dbl.Invoke("Lookup", nil)[0]).To(BeTrue())
	g.Expect(sawNil).To(BeTrue(), "the predicate should see the typed nil")
}

// TestExactlyPinsSpecifierValues verifies Exactly wraps a value that would
// otherwise be interpreted as a specifier.
func TestExactlyPinsSpecifierValues(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	dbl := newGateDouble()

	// Passing the specifier bare would wildcard the position; Exactly makes it
	// the literal argument value instead.
	dbl.When("Tag", match.Exactly(match.BeAny)).Return("the specifier itself")

	g.Expect(dbl.Invoke("Tag", match.BeAny)[0]).To(Equal("the specifier itself"))
	g.Expect(dbl.Invoke("Tag", "anything else")[0]).To(Equal(""))
}

// TestMatchersActAsSpecifiers verifies gomega matchers work both passed bare
// in a specifier list and wrapped explicitly with Matching.
func TestMatchersActAsSpecifiers(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	dbl := newGateDouble()

	dbl.When("Admit", ContainSubstring("admin")).Return(true)

	g.Expect(dbl.Invoke("Admit", "site admin")[0]).To(BeTrue())
	g.Expect(dbl.Invoke("Admit", "guest")[0]).To(BeFalse())

	dbl.When("Tag", match.Matching(BeNumerically(">", 10))).Return("big")

	g.Expect(dbl.Invoke("Tag", 11)[0]).To(Equal("big"))
	g.Expect(dbl.Invoke("Tag", 9)[0]).To(Equal(""))
}

// TestSpecifiersRenderInFailures verifies filtered verification failures name
// the specifiers readably.
func TestSpecifiersRenderInFailures(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	dbl := newGateDouble()

	err := dbl.Verify("Admit", standin.Once(), match.Satisfy(isVIP))
	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("satisfying"))
	g.Expect(err.Error()).To(ContainSubstring("isVIP"))

	err = dbl.Verify("Tag", standin.Once(), match.BeAny)
	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("<any>"))
}

// TestSatisfyRejectsNilPredicate verifies the constructor fails fast.
func TestSatisfyRejectsNilPredicate(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	g.Expect(func() { match.Satisfy[string](nil) }).To(Panic())
}

// isVIP is a named predicate so its name can be asserted on in failure text.
func isVIP(name string) error {
	if strings.HasPrefix(name, "vip/") {
		return nil
	}

	return errors.New("not a vip")
}
