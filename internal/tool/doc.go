// Package tool builds and executes the external converter commands that do
// the actual encoding work.
//
// An [Invocation] is a program plus argument vector; no shell is involved.
// [ExecRunner] runs one invocation synchronously under a timeout, captures
// stdout and stderr, and always reaps the child. Failures are reported as
// [*Error] values that match the sentinels [ErrToolNotFound],
// [ErrToolFailed] and [ErrToolTimeout] via errors.Is.
//
// [WebPConverter] and [DracoConverter] pair an invocation builder with the
// output-path contract of each tool and return the path actually produced.
package tool
