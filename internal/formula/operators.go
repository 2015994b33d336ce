package formula

// Conversions that rewrite a formula into an equivalent one over a
// restricted operator set. Each conversion preserves the truth table of
// its input. The templates use 'p' for the first operand and 'q' for the
// second, as required by SubstituteOperators.

var notAndOrTemplates = map[string]*Formula{
	"->":  MustParse("(~p|q)"),
	"+":   MustParse("((~p&q)|(p&~q))"),
	"<->": MustParse("((p&q)|(~p&~q))"),
	"-&":  MustParse("~(p&q)"),
	"-|":  MustParse("~(p|q)"),
	"F":   MustParse("(p&~p)"),
	"T":   MustParse("(p|~p)"),
}

var notAndTemplates = map[string]*Formula{
	"|":   MustParse("~(~p&~q)"),
	"->":  MustParse("~(p&~q)"),
	"+":   MustParse("~(~(~p&q)&~(p&~q))"),
	"<->": MustParse("~(~(p&q)&~(~p&~q))"),
	"-&":  MustParse("~(p&q)"),
	"-|":  MustParse("(~p&~q)"),
	"F":   MustParse("(p&~p)"),
	"T":   MustParse("~(~p&p)"),
}

var nandTemplates = map[string]*Formula{
	"~": MustParse("(p-&p)"),
	"&": MustParse("((p-&q)-&(p-&q))"),
	"|": MustParse("((p-&p)-&(q-&q))"),
}

var impliesNotTemplates = map[string]*Formula{
	"&": MustParse("~(p->~q)"),
	"|": MustParse("(~p->q)"),
}

var impliesFalseTemplates = map[string]*Formula{
	"~": MustParse("(p->F)"),
}

// ToNotAndOr returns an equivalent formula over {~, &, |}.
func ToNotAndOr(f *Formula) *Formula {
	return f.SubstituteOperators(notAndOrTemplates)
}

// ToNotAnd returns an equivalent formula over {~, &}.
func ToNotAnd(f *Formula) *Formula {
	return f.SubstituteOperators(notAndTemplates)
}

// ToNand returns an equivalent formula over {-&}.
func ToNand(f *Formula) *Formula {
	return ToNotAndOr(f).SubstituteOperators(nandTemplates)
}

// ToImpliesNot returns an equivalent formula over {->, ~}. This is the
// operator set the tautology prover works in.
func ToImpliesNot(f *Formula) *Formula {
	return ToNotAndOr(f).SubstituteOperators(impliesNotTemplates)
}

// ToImpliesFalse returns an equivalent formula over {->, F}.
func ToImpliesFalse(f *Formula) *Formula {
	return ToImpliesNot(ToNotAndOr(f)).SubstituteOperators(impliesFalseTemplates)
}
