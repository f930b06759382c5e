package leastsquares

import "errors"

var (
	// ErrInvalidAlpha reports a regularization strength outside the valid
	// range of the chosen solver (negative for ridge, non-positive for
	// elastic net).
	ErrInvalidAlpha = errors.New("leastsquares: invalid alpha")

	// ErrInvalidL1Ratio reports an l1_ratio outside [0, 1].
	ErrInvalidL1Ratio = errors.New("leastsquares: l1_ratio must be in [0, 1]")

	// ErrUnsupportedMethod reports a solve method that is not valid for the
	// chosen solver.
	ErrUnsupportedMethod = errors.New("leastsquares: unsupported solve method")

	// ErrUnknownMethod reports a method name that does not map to any
	// SolveMethod.
	ErrUnknownMethod = errors.New("leastsquares: unknown solve method")

	// ErrInvalidWindow reports a rolling-window configuration that cannot
	// produce estimates.
	ErrInvalidWindow = errors.New("leastsquares: invalid window configuration")

	// ErrDimensionMismatch reports inputs whose lengths do not agree.
	ErrDimensionMismatch = errors.New("leastsquares: dimension mismatch")
)
