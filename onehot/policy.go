package onehot

import "fmt"
import "strings"

// UnknownPolicy decides how Encoder treats a token missing from the training vocabulary.
type UnknownPolicy string

const (
	// Reject fails the row with an *UnknownTokenError.
	Reject UnknownPolicy = "reject"

	// ZeroSegment encodes the unknown token as an all-zero segment.
	ZeroSegment UnknownPolicy = "zero"
)

// ParseUnknownPolicy parses a policy name. The empty string means Reject.
func ParseUnknownPolicy(s string) (UnknownPolicy, error) {
	switch UnknownPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", Reject:
		return Reject, nil
	case ZeroSegment:
		return ZeroSegment, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownPolicy, s)
}
