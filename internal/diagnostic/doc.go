// Package diagnostic collects the errors, warnings and notes that
// describe-gen reports about annotated declarations.
//
// Diagnostics are accumulated instead of failing on the first problem, so a
// single run reports every malformed directive in a package.
package diagnostic
