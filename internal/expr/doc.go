// Package expr implements workflow argument substitution ({{path}} token
// replacement with type preservation) and the ${{ expr }} predicate
// language used by step "if"/"skippable_if" conditions.
package expr
