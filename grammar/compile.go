package grammar

type compileConfig struct {
	dedupMode DedupMode
}

type CompileOption func(config *compileConfig)

// WithDedupMode selects how kernels are compared when the automaton is built.
// The default is DedupOrdered.
func WithDedupMode(mode DedupMode) CompileOption {
	return func(config *compileConfig) {
		config.dedupMode = mode
	}
}

// Compiled bundles everything derived from a grammar. None of it is modified
// after Compile returns.
type Compiled struct {
	Grammar   *Grammar
	Augmented *AugmentedGrammar
	Analysis  *Analysis
	Automaton *LR0Automaton
	Table     *ParsingTable
}

func Compile(g *Grammar, opts ...CompileOption) (*Compiled, error) {
	config := &compileConfig{
		dedupMode: DedupOrdered,
	}
	for _, opt := range opts {
		opt(config)
	}

	analysis, err := Analyze(g)
	if err != nil {
		return nil, err
	}

	ag, err := g.Augment()
	if err != nil {
		return nil, err
	}

	automaton, err := genLR0Automaton(ag, config.dedupMode)
	if err != nil {
		return nil, err
	}

	b := &lrTableBuilder{
		automaton: automaton,
		grammar:   ag,
		analysis:  analysis,
	}
	ptab, err := b.build()
	if err != nil {
		return nil, err
	}
	if cs := ptab.Conflicts(); len(cs) > 0 {
		tracer().Infof("the grammar is not SLR(1); %v conflicts occurred", len(cs))
	}

	return &Compiled{
		Grammar:   g,
		Augmented: ag,
		Analysis:  analysis,
		Automaton: automaton,
		Table:     ptab,
	}, nil
}
