// Package leastsquares implements least-squares regression solvers on dense
// matrices: ordinary least squares, ridge, elastic net via coordinate
// descent, a recursive (online) estimator with exponential forgetting, and a
// rolling-window estimator that re-solves the regression at every step,
// either by recomputation or by Woodbury-identity updates of the cached
// cross-product inverse.
//
// Design matrices and target vectors are borrowed from the caller and never
// mutated. Stateful estimators own their coefficient and covariance state
// exclusively and are not safe for concurrent mutation; use one instance per
// logical stream or synchronize externally. Direct solvers are stateless and
// safe to call concurrently on disjoint data.
package leastsquares
