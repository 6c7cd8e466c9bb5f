package listing

import "errors"

const unknownFailure = "unknown error"

// ListingFailure reports that a remote listing or address resolution failed.
// Partial results are never returned alongside it.
type ListingFailure struct {
	Op  string
	Err error
}

// NewFailure wraps err as a ListingFailure for operation op.
func NewFailure(op string, err error) *ListingFailure {
	return &ListingFailure{Op: op, Err: err}
}

func (f *ListingFailure) Error() string {
	return f.Op + ": " + f.Message()
}

func (f *ListingFailure) Unwrap() error {
	return f.Err
}

// Message is the text shown to the user.
func (f *ListingFailure) Message() string {
	if f.Err == nil || f.Err.Error() == "" {
		return unknownFailure
	}
	return f.Err.Error()
}

func IsListingFailure(err error) bool {
	var lf *ListingFailure
	return errors.As(err, &lf)
}

// FailureMessage extracts a displayable message from any error.
func FailureMessage(err error) string {
	var lf *ListingFailure
	if errors.As(err, &lf) {
		return lf.Message()
	}
	if err == nil || err.Error() == "" {
		return unknownFailure
	}
	return err.Error()
}
