// Package handlers implements the business logic for CLI commands.
//
// Handlers are called by command definitions in the commands package and
// can be tested without cobra. Collaborators are package variables so tests
// can replace them.
package handlers
