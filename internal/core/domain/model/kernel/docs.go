// Package kernel contains shared value objects used across the domain model.
// These are small immutable types with validated constructors: identifiers and
// delivery addresses. The zero value of every type in this package is invalid;
// instances must be created through the provided factory functions.
package kernel
