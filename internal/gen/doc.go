// Package gen emits the describe-gen output file of each package.
//
// Generation uses text/template + go/format. Every generated file holds an
// init function registering the doc comments and directives of the
// selected types with the describe package, followed by a DescribeMetadata
// method for each type marked generate, enum or display.
package gen
