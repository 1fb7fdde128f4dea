// Package must contains simple functions that panic on errors.
//
// It should only be used in tests and in places where errors are provably
// impossible, such as registering the built-in extensions.
package must

import (
	"os"
	"path/filepath"
)

// OK panics if the error value is not nil.
func OK(err error) {
	if err != nil {
		panic(err)
	}
}

// OK1 panics if the error value is not nil, and returns the value otherwise.
func OK1[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// ReadFileString wraps os.ReadFile, converting the result to a string.
func ReadFileString(fname string) string {
	return string(OK1(os.ReadFile(fname)))
}

// WriteFile writes data to a file, after creating all ancestor directories that
// don't exist.
func WriteFile(filename, data string) {
	OK(os.MkdirAll(filepath.Dir(filename), 0700))
	OK(os.WriteFile(filename, []byte(data), 0600))
}
