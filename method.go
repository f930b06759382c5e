package leastsquares

import (
	"fmt"
	"strings"
)

// SolveMethod selects the factorization or optimizer a solver uses.
type SolveMethod int

const (
	// MethodAuto lets the solver pick a method based on problem shape.
	MethodAuto SolveMethod = iota
	// MethodQR solves via QR factorization of the design matrix.
	MethodQR
	// MethodSVD solves via thin singular value decomposition.
	MethodSVD
	// MethodCholesky solves the normal equations via Cholesky factorization.
	MethodCholesky
	// MethodLU solves the normal equations via LU with partial pivoting.
	MethodLU
	// MethodCoordinateDescent runs cyclic coordinate descent; the only
	// method valid for elastic-net problems.
	MethodCoordinateDescent
)

// methodNames maps SolveMethod to their string representations.
var methodNames = map[SolveMethod]string{
	MethodAuto:              "auto",
	MethodQR:                "qr",
	MethodSVD:               "svd",
	MethodCholesky:          "chol",
	MethodLU:                "lu",
	MethodCoordinateDescent: "cd",
}

// String returns the string representation of the solve method.
func (m SolveMethod) String() string {
	if name, exists := methodNames[m]; exists {
		return name
	}

	return "unknown"
}

// methodFromString maps method names to SolveMethod.
var methodFromString = map[string]SolveMethod{
	"qr":   MethodQR,
	"svd":  MethodSVD,
	"chol": MethodCholesky,
	"lu":   MethodLU,
	"cd":   MethodCoordinateDescent,
}

// ParseSolveMethod returns the SolveMethod for a given name. Unrecognized
// names return ErrUnknownMethod.
func ParseSolveMethod(name string) (SolveMethod, error) {
	if method, exists := methodFromString[strings.ToLower(name)]; exists {
		return method, nil
	}

	return MethodAuto, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}
