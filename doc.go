/* Package sxc implements a front-end-to-VM pipeline for a tiny
expression-oriented scripting language.

A source string is lexed into tokens, parsed into a flat node stream by a
precedence-climbing recursive-descent parser, analyzed to resolve local
variable offsets and fold integer literals, emitted into a single linear
memory shared by globals, code, and the activation stack, linked to turn
label ids into instruction addresses, and finally run on a small
stack-based virtual machine.

The language has expressions, assignment, if/else, loop with break and
continue, function definitions with arguments read from negative
frame-relative offsets, and a single host escape hatch (svc) used to read
and write bytes and to sleep. See Compile and VM.Run.
*/
package sxc
