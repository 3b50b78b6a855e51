// Package report implements the report use cases: it runs a report variant
// through the repository, derives the computed record families and turns
// every outcome, failures included, into a renderable result.
package report

import "errors"

// ErrNoData indicates that the store answered but no record matched.
// It is never returned for a failed query; those keep their own cause.
var ErrNoData = errors.New("no data")
