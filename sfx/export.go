package sfx

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ExportConstants is used to export all currently loaded SFX,
// in a format that can be used to generate go constants.
// The keys are constant names such as "UiButtonClick" for "ui-button.click".
func ExportConstants() map[string]string {
	lock.Lock()
	defer lock.Unlock()
	export := make(map[string]string, len(loadedSfx))
	for id := range loadedSfx {
		export[constantName(string(id))] = string(id)
	}
	return export
}

func constantName(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == ' '
	})
	var b strings.Builder
	for _, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(w[size:])
	}
	return b.String()
}
