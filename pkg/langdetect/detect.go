// Package langdetect classifies files as C or C++ sources. It uses go-enry
// for modelines, extensions and content heuristics, which matters most for
// ".h" headers that C, C++ and Objective-C all share.
package langdetect

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language is a detected source language.
type Language string

const (
	LangC       Language = "c"
	LangCPP     Language = "cpp"
	LangUnknown Language = ""
)

// enry language names.
const (
	enryC    = "C"
	enryCPP  = "C++"
	enryObjC = "Objective-C"
)

// SourceExtensions are the file extensions treated as C or C++ sources.
//
//nolint:gochecknoglobals // Read-only lookup table.
var SourceExtensions = []string{
	".c", ".cc", ".cpp", ".cxx", ".c++",
	".h", ".hh", ".hpp", ".hxx", ".h++",
}

//nolint:gochecknoglobals // Read-only lookup table.
var candidates = []string{enryC, enryCPP, enryObjC}

// HasSourceExtension reports whether path ends in one of SourceExtensions
// or one of extra. The comparison ignores case.
func HasSourceExtension(path string, extra ...string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	if slices.Contains(SourceExtensions, ext) {
		return true
	}
	return slices.ContainsFunc(extra, func(e string) bool { return strings.EqualFold(e, ext) })
}

// Detect classifies the file at path with the given content. A modeline
// wins over the extension; an ambiguous extension is settled by content
// heuristics and then by the classifier. Objective-C and anything else
// that is not C or C++ is LangUnknown.
func Detect(path string, content []byte) Language {
	if langs := enry.GetLanguagesByModeline(path, content, nil); len(langs) > 0 {
		return fromEnry(langs)
	}

	langs := enry.GetLanguagesByExtension(path, content, nil)
	if len(langs) == 1 {
		return fromEnry(langs)
	}
	if len(langs) == 0 {
		langs = candidates
	}

	if byContent := enry.GetLanguagesByContent(path, content, langs); len(byContent) == 1 {
		return fromEnry(byContent)
	}

	if lang, _ := enry.GetLanguageByClassifier(content, langs); lang != "" {
		return fromEnry([]string{lang})
	}
	return LangUnknown
}

// IsSource reports whether Detect found C or C++.
func IsSource(lang Language) bool {
	return lang == LangC || lang == LangCPP
}

// IsVendored reports whether path looks like third-party code, such as a
// vendor/ or third_party/ tree.
func IsVendored(path string) bool {
	return enry.IsVendor(filepath.ToSlash(path))
}

// IsGenerated reports whether the file looks machine-generated, for
// example protobuf or moc output.
func IsGenerated(path string, content []byte) bool {
	return enry.IsGenerated(filepath.ToSlash(path), content)
}

func fromEnry(langs []string) Language {
	if len(langs) != 1 {
		return LangUnknown
	}
	switch langs[0] {
	case enryC:
		return LangC
	case enryCPP:
		return LangCPP
	default:
		return LangUnknown
	}
}
