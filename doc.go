// Package confenv resolves application configuration from three ranked
// sources — a CLI option mapping, a YAML option file, and process environment
// variables — with precedence CLI > file > environment. Winning values are
// republished into the process environment under PREFIX_OPTION keys so that
// unrelated code can observe them, and simultaneously captured into an
// immutable snapshot that later reads return regardless of any environment
// mutation after Load.
package confenv
