package astar

import "errors"

var (
	// ErrNilCapability is returned when no Capability is supplied, or when a
	// CapabilityFuncs lacks one of its required functions.
	ErrNilCapability = errors.New("capability required")

	// ErrContractViolation is returned when a Capability reports a negative
	// or NaN move cost or estimate.
	ErrContractViolation = errors.New("capability contract violation")

	// ErrImpassableEndpoint is returned by searches configured with
	// WithEndpointValidation when the origin or destination is not passable.
	ErrImpassableEndpoint = errors.New("endpoint is not passable")
)
