// Package commands contains the tracker operations that change state.
//
// Every command follows the same pattern: a value built by a NewXCommand
// constructor that validates its input, and an XCommandHandler whose Handle
// method runs the operation against the ports it was given.
package commands
