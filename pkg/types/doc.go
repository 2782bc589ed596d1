// Package types defines the Pantry interface, the recipe-domain entity
// types, storage key constants, and standard errors shared by every
// recipebox component.
package types
