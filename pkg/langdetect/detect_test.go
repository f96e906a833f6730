package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/cxxtidy/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		content  string
		expected langdetect.Language
	}{
		{"c file", "src/main.c", "int main(void) { return 0; }\n", langdetect.LangC},
		{"cpp file", "src/widget.cpp", "int main() {}\n", langdetect.LangCPP},
		{"cc file", "src/widget.cc", "int x;\n", langdetect.LangCPP},
		{"hpp header", "include/widget.hpp", "#pragma once\n", langdetect.LangCPP},
		{
			"cpp header by content", "include/box.h",
			"#pragma once\n#include <vector>\n\ntemplate <typename T>\nclass Box {\npublic:\n  std::vector<T> items;\n};\n",
			langdetect.LangCPP,
		},
		{
			"objective-c header", "include/View.h",
			"#import <Foundation/Foundation.h>\n\n@interface View : NSObject\n@end\n",
			langdetect.LangUnknown,
		},
		{"python", "tools/gen.py", "print('hi')\n", langdetect.LangUnknown},
		{"modeline", "include/shim.inc", "// -*- mode: c++ -*-\nint x;\n", langdetect.LangCPP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, langdetect.Detect(tt.path, []byte(tt.content)))
		})
	}
}

func TestDetect_PlainHeaderIsSource(t *testing.T) {
	t.Parallel()

	lang := langdetect.Detect("include/api.h", []byte("#ifndef API_H\n#define API_H\nint api_init(void);\n#endif\n"))
	assert.True(t, langdetect.IsSource(lang), "got %q", lang)
}

func TestHasSourceExtension(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.HasSourceExtension("a/b.cpp"))
	assert.True(t, langdetect.HasSourceExtension("a/B.HPP"))
	assert.False(t, langdetect.HasSourceExtension("a/b.ipp"))
	assert.True(t, langdetect.HasSourceExtension("a/b.ipp", ".IPP"))
	assert.False(t, langdetect.HasSourceExtension("Makefile"))
	assert.False(t, langdetect.HasSourceExtension("notes.md", ".ipp"))
}

func TestIsVendoredAndGenerated(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.IsVendored("third_party/zlib/inflate.c"))
	assert.False(t, langdetect.IsVendored("src/core/engine.cpp"))

	assert.True(t, langdetect.IsGenerated("proto/msg.pb.cc", []byte("// Generated by the protocol buffer compiler.  DO NOT EDIT!\n")))
	assert.False(t, langdetect.IsGenerated("src/engine.cpp", []byte("int x;\n")))
}
