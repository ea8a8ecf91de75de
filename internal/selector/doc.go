// Package selector implements the selector language's lexer, recursive
// descent parser, and AST renderer. The grammar honors a fixed precedence:
// unary "!", then "&&", then "||"/",", with ">>" parsed as the outermost
// descendant-scoping chain operator. Unrecognized clause shapes become an
// Invalid leaf instead of failing the parse.
package selector
