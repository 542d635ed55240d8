// Package retry retries transient connection failures with exponential backoff.
//
// [Do] is used to establish SSH connections to machines that may still be
// booting. Install steps themselves are never retried; errors wrapped with
// [Fatal] stop the loop at once.
package retry
