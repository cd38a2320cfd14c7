// Package config loads the describe-gen configuration file.
//
// Every key can be overridden through a DESCRIBE_GEN_ prefixed environment
// variable.
package config
