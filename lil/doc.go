// Package lil implements an embeddable interpreter for LIL, a small
// Tcl-flavoured command language where every value is a string.
//
// A script is a sequence of commands separated by newlines or semicolons.
// Each command is a list of words; the first word names the command and the
// rest are its arguments. Words are built from:
//   - bare text, ended by whitespace or one of $ { } [ ] " ' ;
//   - {braced} text, taken verbatim with nested braces balanced,
//   - "quoted" or 'quoted' text with backslash escapes and substitution,
//   - [command] substitution, replaced by the command's result,
//   - $name substitution, evaluated as the dollar prefix plus the name
//     (by default "set name", which reads the variable).
//
// Adjacent parts with no whitespace between them form a single word.
// Comments start with # and run to the end of the line; ##...## spans lines.
//
// Functions defined with `func` run in their own call frame. A variable name
// resolves in the current frame and then in the root frame only; the upeval,
// downeval, topeval, enveval and jaileval commands evaluate code in a
// different frame or in a sandboxed interpreter.
//
// Hosts embed the interpreter through NewInterp, add native commands with
// Register, observe or redirect I/O with Callbacks, and run code with Eval.
package lil
