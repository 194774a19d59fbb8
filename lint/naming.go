// Copyright © 2025 The pysca authors

package lint

import "regexp"

// Naming predicates shared by the line checkers and the tree facts.  Both
// match the whole identifier: a truthy prefix is not enough.
var (
	// snakeCasePattern accepts lowercase alphanumeric runs separated by
	// single underscores, plus dunder names such as __init__.  Leading or
	// trailing underscores are otherwise rejected, as are digits in the
	// leading position of a run.
	snakeCasePattern = regexp.MustCompile(`^([a-z][a-z0-9]*(_[a-z0-9]+)*|__[a-z][a-z0-9]*(_[a-z0-9]+)*__)$`)

	// pascalCasePattern accepts capitalized words run together, permitting
	// acronym runs such as HTTPServer and a trailing single capital.
	pascalCasePattern = regexp.MustCompile(`^[A-Z]+([a-z0-9]|[A-Z0-9][a-z0-9]+)*[A-Z]?$`)
)

func isSnakeCase(name string) bool {
	return snakeCasePattern.MatchString(name)
}

func isPascalCase(name string) bool {
	return pascalCasePattern.MatchString(name)
}
