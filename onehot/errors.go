package onehot

import "errors"
import "fmt"

var (
	// ErrRagged is returned when rows do not all have the same number of columns.
	ErrRagged = errors.New("onehot: rows have different column counts")

	// ErrWidth is returned when a row does not match the width of the groups encoding it.
	ErrWidth = errors.New("onehot: row width does not match vocabulary")

	// ErrEmpty is returned by Prep when there are no rows.
	ErrEmpty = errors.New("onehot: no rows")

	// ErrSingleClass is returned by Prep when the label column has fewer than two values.
	ErrSingleClass = errors.New("onehot: label column has fewer than two classes")

	// ErrNoFeatures is returned by Prep when every feature column is a singleton.
	ErrNoFeatures = errors.New("onehot: no informative feature columns")

	// ErrEncoder is returned by Encoder.Validate for an inconsistent vocabulary.
	ErrEncoder = errors.New("onehot: inconsistent encoder")

	// ErrUnknownPolicy is returned for an unrecognized unknown-token policy name.
	ErrUnknownPolicy = errors.New("onehot: unknown token policy")
)

// UnknownTokenError reports a token absent from its column's group.
//
// Column counts the columns of the full-width table being encoded, label
// column first: Encoder reports the raw table column even for rows given
// without the label, and Indices reports the column of the rows it was given.
type UnknownTokenError struct {
	Column int
	Token  string
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("onehot: token %q not in vocabulary of column %d", e.Token, e.Column)
}
