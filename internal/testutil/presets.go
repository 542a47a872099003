package testutil

// WithChainTestData adds the three-level chain used throughout the tests.
//
// Structure:
//
//	e1
//	  └── e2
//	        └── e3
func (b *Builder) WithChainTestData() *Builder {
	return b.
		WithGroup("e1", Name("One")).
		WithGroup("e2", Name("Two"), Parent("e1")).
		WithGroup("e3", Name("Three"), Parent("e2"))
}

// WithCycleTestData adds a forest with every kind of broken reference.
//
// Structure before the build:
//
//	root ── child
//	loop-a <-> loop-b      (two-cycle)
//	self -> self           (self loop)
//	stray -> missing       (dangling parent)
func (b *Builder) WithCycleTestData() *Builder {
	return b.
		WithGroup("root", Name("Root"), Description("Top level")).
		WithGroup("child", Name("Child"), Parent("root")).
		WithGroup("loop-a", Name("Loop A"), Parent("loop-b")).
		WithGroup("loop-b", Name("Loop B"), Parent("loop-a")).
		WithGroup("self", Name("Self"), Parent("self")).
		WithGroup("stray", Name("Stray"), Parent("missing"))
}
