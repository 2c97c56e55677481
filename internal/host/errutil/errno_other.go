//go:build !unix

package errutil

func classifyErrno(err error) (Kind, bool) {
	return IOFailure, false
}
