// Package cli implements the fhir-loader command line.
//
// The root command uploads documents; subcommands print the version,
// manage the config file and watch a directory for new documents.
package cli
