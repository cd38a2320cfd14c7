// Package main provides the CLI entrypoint for describe-gen.
//
// describe-gen inspects annotated Go types and writes the code that
// registers their doc comments, comment directives and enum variants with
// the describe package:
//   - Parses Go packages (AST + go/types) to find //describe: and //meta: directives
//   - Validates directives, field tags and metadata types
//   - Generates one registration file per package
package main

import (
	"os"

	"struct-metadata/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
