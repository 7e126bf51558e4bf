// Package shell is the operator's numbered-menu front end to a
// service.NetworkService.
//
// The shell reads one answer per line. Numeric prompts repeat until they get
// a non-negative decimal number in range, so the service only ever sees
// well-formed values; service errors are printed and the menu is shown
// again. End of input ends the session.
package shell
