package cfront

import "strings"

// typeKeywords start or continue a type and are never declarator names.
var typeKeywords = map[string]bool{
	"void": true, "bool": true, "_Bool": true, "char": true, "short": true, "int": true,
	"long": true, "float": true, "double": true, "signed": true, "unsigned": true,
	"wchar_t": true, "char8_t": true, "char16_t": true, "char32_t": true, "auto": true,
	"const": true, "volatile": true, "restrict": true, "__restrict": true, "__restrict__": true,
	"struct": true, "class": true, "union": true, "enum": true, "typename": true,
	"_Complex": true, "_Atomic": true, "__int128": true,
}

// specifierKeywords may precede a declaration but carry no type.
var specifierKeywords = map[string]bool{
	"static": true, "extern": true, "register": true, "thread_local": true, "_Thread_local": true,
	"inline": true, "__inline": true, "__inline__": true, "virtual": true, "explicit": true,
	"constexpr": true, "consteval": true, "constinit": true, "mutable": true, "friend": true,
	"__forceinline": true, "_Noreturn": true, "noexcept": true, "override": true, "final": true,
}

// groupSpecifiers take a parenthesized argument list.
var groupSpecifiers = map[string]bool{
	"__attribute__": true, "__declspec": true, "alignas": true, "_Alignas": true,
	"decltype": true, "typeof": true, "__typeof__": true, "__typeof": true,
	"noexcept": true, "throw": true,
}

// exprKeywords only appear in expressions.
var exprKeywords = map[string]bool{
	"this": true, "true": true, "false": true, "nullptr": true, "sizeof": true,
	"alignof": true, "new": true, "delete": true, "throw": true, "typeid": true,
	"co_await": true, "co_yield": true, "not": true, "compl": true,
}

// stmtKeywords begin statements that are neither declarations nor
// expression statements.
var stmtKeywords = map[string]bool{
	"if": true, "else": true, "while": true, "do": true, "for": true, "switch": true,
	"case": true, "default": true, "break": true, "continue": true, "goto": true,
	"return": true, "co_return": true, "try": true, "catch": true,
}

// isTypedefName recognises the conventional *_t library type names.
func isTypedefName(name string) bool {
	return len(name) > 2 && strings.HasSuffix(name, "_t")
}

func isNameKeyword(name string) bool {
	return typeKeywords[name] || specifierKeywords[name] || groupSpecifiers[name] ||
		exprKeywords[name] || stmtKeywords[name]
}
