package permu

import "errors"

var (
	// ErrLength is returned when the shape of a vector or population does
	// not satisfy an operation's length precondition.
	ErrLength = errors.New("length mismatch")

	// ErrNotPermutation is returned when a sequence claimed to be a
	// permutation does not contain every value of [0,n) exactly once.
	ErrNotPermutation = errors.New("sequence is not a permutation")

	// ErrDistrType is returned when a distribution of one representation is
	// sampled into a population of another.
	ErrDistrType = errors.New("incorrect distribution type")
)
