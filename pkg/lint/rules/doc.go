// Package rules provides the built-in rules for cxxtidy.
//
// Every rule builds a per-file lint.Checker that the engine drives during a
// single traversal of the syntax tree. Nodes that come from a macro
// expansion are never rewritten.
//
//   - CT001: braces-around-statements - Bodies of if, else, while, do and
//     for statements should be compound statements. Options:
//     short_statement_lines, add_braces, remove_unnecessary_braces.
//
//   - CT002: redundant-nullptr-comparison - "p == nullptr" is written "!p"
//     and "p != nullptr" is written "p".
//
//   - CT003: redundant-parentheses - Parentheses around comparisons, around
//     logical expressions outside another logical expression, and around
//     plain operands are removed from && and || operands, assignment right
//     sides, ?: operands and return values.
//
//   - CT004: declaration-inline-comment - Comments trailing parameters,
//     file-scope variables, fields and enumerators move in front of the
//     declaration, parameter comments as "// @param" lines. Options:
//     param_command, param_block_separator.
//
// Each rule is also reachable through its clang-tidy check name, for
// example "readability-braces-around-statements".
package rules
