// Package s3 stores rendered installer artifacts in S3-compatible object
// storage.
//
// Every run writes its cluster config and ip-detect script under a key
// prefix derived from the run ID, so past configurations of a lab can be
// compared or restored.
package s3
