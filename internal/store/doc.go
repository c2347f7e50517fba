// Package store defines the persistence interfaces for generation history,
// the prompt catalog and prompt analytics, along with the errors and
// transaction helper shared by their implementations.
package store
