package classifier

// Option configures a Trainer.
type Option func(*Trainer)

// WithKind selects the model family to train.
func WithKind(kind string) Option {
	return func(t *Trainer) { t.kind = kind }
}

// WithTrees sets the number of trees in a forest.
func WithTrees(n int) Option {
	return func(t *Trainer) {
		if n > 0 {
			t.trees = n
		}
	}
}

// WithMaxDepth bounds tree depth. Zero or negative means unbounded.
func WithMaxDepth(d int) Option {
	return func(t *Trainer) { t.maxDepth = d }
}

// WithMinSamplesSplit sets the smallest node that may be split.
func WithMinSamplesSplit(n int) Option {
	return func(t *Trainer) {
		if n >= 2 {
			t.minSplit = n
		}
	}
}

// WithSeed makes training reproducible.
func WithSeed(seed int64) Option {
	return func(t *Trainer) { t.seed = seed }
}

// WithTestFraction sets the held-out share used to measure accuracy.
func WithTestFraction(f float64) Option {
	return func(t *Trainer) {
		if f >= 0 && f < 1 {
			t.testFraction = f
		}
	}
}

// WithEpochs sets gradient descent passes for softmax training.
func WithEpochs(n int) Option {
	return func(t *Trainer) {
		if n > 0 {
			t.epochs = n
		}
	}
}
