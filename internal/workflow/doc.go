// Package workflow defines the workflow document model and implements the
// sequence executor (C6): the step-dispatch loop that walks a document's
// steps in order, substituting arguments, dispatching tools, evaluating
// conditions, and assembling the run result.
package workflow
