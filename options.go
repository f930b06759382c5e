package leastsquares

// solverConfig collects the optional parameters of the solvers. Unset
// fields fall back to per-solver defaults at the point of use.
type solverConfig struct {
	method SolveMethod

	rcond    float64
	hasRCond bool

	l1Ratio    float64
	hasL1Ratio bool

	maxIter     int
	tol         float64
	hasTol      bool
	nonNegative bool

	minPeriods    int
	hasMinPeriods bool
	woodbury      bool
	hasWoodbury   bool
	ridgeAlpha    float64

	halfLife      float64
	hasHalfLife   bool
	priorScale    float64
	hasPriorScale bool
	initialCoef   []float64
}

// Option configures optional solver parameters.
type Option func(*solverConfig)

func newConfig(opts []Option) solverConfig {
	var cfg solverConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithMethod selects an explicit solve method instead of the automatic
// shape-based choice.
func WithMethod(m SolveMethod) Option {
	return func(cfg *solverConfig) {
		cfg.method = m
	}
}

// WithRCond sets the relative cutoff for treating small singular values as
// zero on the SVD path. Defaults to machine epsilon times max(n, k).
func WithRCond(rcond float64) Option {
	return func(cfg *solverConfig) {
		cfg.rcond = rcond
		cfg.hasRCond = true
	}
}

// WithL1Ratio sets the elastic-net mixing parameter in [0, 1]: 1 is pure
// lasso, 0 pure ridge. Defaults to 0.5.
func WithL1Ratio(l1Ratio float64) Option {
	return func(cfg *solverConfig) {
		cfg.l1Ratio = l1Ratio
		cfg.hasL1Ratio = true
	}
}

// WithMaxIter caps the number of coordinate-descent passes. Defaults to 1000.
func WithMaxIter(maxIter int) Option {
	return func(cfg *solverConfig) {
		cfg.maxIter = maxIter
	}
}

// WithTol sets the convergence tolerance on the L2 norm of the per-pass
// coefficient change. Defaults to 1e-5.
func WithTol(tol float64) Option {
	return func(cfg *solverConfig) {
		cfg.tol = tol
		cfg.hasTol = true
	}
}

// WithNonNegative constrains elastic-net coefficients to be non-negative.
func WithNonNegative(nonNegative bool) Option {
	return func(cfg *solverConfig) {
		cfg.nonNegative = nonNegative
	}
}

// WithMinPeriods sets the minimum number of samples before the rolling
// engine produces a defined coefficient. Defaults to min(k, windowSize).
// Values outside [k, windowSize] are allowed but warned about.
func WithMinPeriods(minPeriods int) Option {
	return func(cfg *solverConfig) {
		cfg.minPeriods = minPeriods
		cfg.hasMinPeriods = true
	}
}

// WithWoodbury forces the rolling engine's update policy: true propagates
// the cross-product inverse via Woodbury updates, false re-solves the
// normal equations at every step. Defaults to true when k > 60.
func WithWoodbury(use bool) Option {
	return func(cfg *solverConfig) {
		cfg.woodbury = use
		cfg.hasWoodbury = true
	}
}

// WithRidgeAlpha adds an L2 penalty to the rolling engine's cross products.
func WithRidgeAlpha(alpha float64) Option {
	return func(cfg *solverConfig) {
		cfg.ridgeAlpha = alpha
	}
}

// WithHalfLife sets the half-life of exponential forgetting for the
// recursive estimator; the forgetting factor is exp(ln(0.5)/halfLife).
// Absent a half-life the factor is 1, i.e. expanding-window OLS.
func WithHalfLife(halfLife float64) Option {
	return func(cfg *solverConfig) {
		cfg.halfLife = halfLife
		cfg.hasHalfLife = true
	}
}

// WithPriorScale sets the scale of the recursive estimator's initial state
// covariance, P₀ = priorScale·I. Defaults to 10.
func WithPriorScale(priorScale float64) Option {
	return func(cfg *solverConfig) {
		cfg.priorScale = priorScale
		cfg.hasPriorScale = true
	}
}

// WithInitialCoefficients sets the recursive estimator's initial coefficient
// mean. Defaults to the zero vector.
func WithInitialCoefficients(coef []float64) Option {
	return func(cfg *solverConfig) {
		cfg.initialCoef = coef
	}
}
