package metrics

import "errors"

// ErrInvalidLabelValue is returned when a caller supplies a label value
// that would endanger series cardinality or break the exposition format:
// empty strings, values over the length cap, or raw request paths that
// still carry query-string characters instead of a route template.
var ErrInvalidLabelValue = errors.New("metrics: invalid label value")
