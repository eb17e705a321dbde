// Package mocks provides function-field test doubles for the service
// interfaces. Each mock calls its XxxFn field when set and otherwise
// returns its default values and DefaultError.
package mocks
