// Package errors provides the structured error type used across tinyioc.
// Every failure the registry raises carries a machine-readable ErrorCode so
// callers can branch on the kind of failure without string matching.
//
//	if errors.HasCode(err, errors.ErrCodeDuplicateRegistration) {
//	    // unregister first, then register again
//	}
package errors
