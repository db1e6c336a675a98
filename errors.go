package lattice

import "fmt"

// ErrorKind classifies composite validation failures. Every kind is a
// user-document error: recoverable at the document level, never fatal to
// the process.
type ErrorKind int

const (
	// ErrInvalidGeomType reports a default geom type the shape cannot use.
	ErrInvalidGeomType ErrorKind = iota
	// ErrOddPinCount reports a pin list with an odd number of coordinates.
	ErrOddPinCount
	// ErrNonPositiveCount reports a lattice count below 1.
	ErrNonPositiveCount
	// ErrSpacingTooSmall reports spacing not exceeding the geom size.
	ErrSpacingTooSmall
	// ErrZeroExtent reports a curve composite with no vertices and no size.
	ErrZeroExtent
	// ErrSpacingNotSupported reports spacing set on a cable composite.
	ErrSpacingNotSupported
	// ErrConflictingVertexSpec reports both explicit vertices and count>1.
	ErrConflictingVertexSpec
	// ErrBadAxisOrder reports singleton axes before non-singleton ones.
	ErrBadAxisOrder
	// ErrSubgridTooSmall reports a subgrid skin on a lattice under 3x3.
	ErrSubgridTooSmall
	// ErrInvalidDimension reports a shape built at an unsupported
	// dimensionality.
	ErrInvalidDimension
	// ErrDeprecatedShape reports a permanently rejected shape keyword.
	ErrDeprecatedShape
	// ErrInvalidRootName reports a rope root body whose name does not embed
	// a lattice coordinate.
	ErrInvalidRootName
	// ErrIndexOutOfRange reports a rope origin index outside [0, count).
	ErrIndexOutOfRange
	// ErrLatticeTooLarge reports a lattice above the cell cap.
	ErrLatticeTooLarge
	// ErrInvalidPlugin reports malformed plugin configuration.
	ErrInvalidPlugin
	// ErrMultipleJoints reports multiple joints on a non-particle composite.
	ErrMultipleJoints
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidGeomType:
		return "InvalidGeomType"
	case ErrOddPinCount:
		return "OddPinCount"
	case ErrNonPositiveCount:
		return "NonPositiveCount"
	case ErrSpacingTooSmall:
		return "SpacingTooSmall"
	case ErrZeroExtent:
		return "ZeroExtent"
	case ErrSpacingNotSupported:
		return "SpacingNotSupported"
	case ErrConflictingVertexSpec:
		return "ConflictingVertexSpec"
	case ErrBadAxisOrder:
		return "BadAxisOrder"
	case ErrSubgridTooSmall:
		return "SubgridTooSmall"
	case ErrInvalidDimension:
		return "InvalidDimension"
	case ErrDeprecatedShape:
		return "DeprecatedShape"
	case ErrInvalidRootName:
		return "InvalidRootName"
	case ErrIndexOutOfRange:
		return "IndexOutOfRange"
	case ErrLatticeTooLarge:
		return "LatticeTooLarge"
	case ErrInvalidPlugin:
		return "InvalidPlugin"
	case ErrMultipleJoints:
		return "MultipleJoints"
	}
	return "Unknown"
}

// BuildError is a composite validation failure. The model may hold
// entities generated before the failure; they reference only entities
// that exist, but callers must stop processing the enclosing document.
type BuildError struct {
	Kind ErrorKind
	Msg  string
}

func (e *BuildError) Error() string { return e.Msg }

func buildErrf(kind ErrorKind, format string, args ...any) *BuildError {
	return &BuildError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
