package mods

import (
	"path/filepath"
	"strings"
	"unicode"
)

// fallbackTitle is used when a file name yields no usable words at all.
const fallbackTitle = "Untitled Mod"

// maxFolderNameLen bounds sanitized folder names.
const maxFolderNameLen = 100

// InferTitle derives a human-readable title from a raw mod file name.
// It is a best-effort heuristic: packaging noise is stripped, version-looking
// numbers are dropped, camelCase words are split, and the result is
// title-cased. Degenerate input falls back to a placeholder title.
func InferTitle(rawFileName string) string {
	stem := strings.TrimSuffix(rawFileName, filepath.Ext(rawFileName))
	if stem == "" {
		return fallbackTitle
	}

	// Strip common packaging noise
	stem = strings.ReplaceAll(stem, "_P", "")
	stem = strings.ReplaceAll(stem, "_pak", "")
	stem = strings.ReplaceAll(stem, "&", " ")

	var tokens []string
	for _, tok := range strings.FieldsFunc(stem, func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	}) {
		// Drop version/build numbers: purely numeric tokens longer than 2 chars
		if len(tok) > 2 && isAllNumeric(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}

	// Drop a leading prefix code like "AC" or "X": short and without any
	// lowercase letters
	if len(tokens) > 0 && isShortUpperToken(tokens[0], 2) {
		tokens = tokens[1:]
	}

	var words []string
	for _, tok := range tokens {
		for _, field := range strings.Fields(tok) {
			words = append(words, splitCamelCase(field)...)
		}
	}

	titled := make([]string, 0, len(words))
	for _, word := range words {
		// Preserve short all-caps abbreviations like "UI" or "HUD" verbatim
		if isShortUpperToken(word, 3) {
			titled = append(titled, word)
			continue
		}
		titled = append(titled, titleCase(word))
	}

	result := strings.Join(titled, " ")
	if result == "" {
		return fallbackTitle
	}
	return result
}

// InferCategory classifies a mod by its on-disk location first, falling back
// to keyword matching against the bare file name. A path segment equal to a
// category name (case-insensitive) always wins over the filename heuristic.
// Files that match nothing default to Skins.
func InferCategory(path, fileName string) Category {
	for _, segment := range pathSegments(path) {
		for _, category := range AllCategories {
			if strings.EqualFold(segment, string(category)) {
				return category
			}
		}
	}

	lowerName := strings.ToLower(fileName)
	for _, category := range AllCategories {
		for _, keyword := range category.Keywords() {
			if strings.Contains(lowerName, keyword) {
				return category
			}
		}
	}

	return CategorySkins
}

// InferCharacter resolves a character the same two-phase way: a path segment
// equal to any character keyword first, then keyword matching against the
// file name. The first matching character in roster order wins; files that
// match nothing return nil.
func InferCharacter(path, fileName string) *Character {
	// Folder names come back hyphenated ("Black-Widow"), keywords do not, so
	// segments are normalized before comparison
	segments := pathSegments(path)
	for i, segment := range segments {
		segments[i] = normalizeFolderName(segment)
	}
	for _, character := range AllCharacters {
		for _, keyword := range character.Keywords() {
			for _, segment := range segments {
				if segment == keyword {
					c := character
					return &c
				}
			}
		}
	}

	lowerName := strings.ToLower(fileName)
	for _, character := range AllCharacters {
		for _, keyword := range character.Keywords() {
			if strings.Contains(lowerName, keyword) {
				c := character
				return &c
			}
		}
	}

	return nil
}

// SanitizeFolderName turns an arbitrary display name into a safe folder name:
// reserved characters are removed, runs of whitespace collapse to single
// hyphens, and the result is bounded in length. A name that sanitizes to
// nothing yields "Untitled".
func SanitizeFolderName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			// Reserved on Windows filesystems
		default:
			b.WriteRune(r)
		}
	}

	sanitized := strings.Join(strings.Fields(b.String()), "-")
	sanitized = strings.Trim(sanitized, "-. ")

	if len(sanitized) > maxFolderNameLen {
		sanitized = sanitized[:maxFolderNameLen]
	}
	if sanitized == "" {
		return "Untitled"
	}
	return sanitized
}

// pathSegments splits a path into its directory segments, excluding the
// final file name, tolerating both separator styles.
func pathSegments(path string) []string {
	normalized := strings.ReplaceAll(path, "\\", "/")
	parts := strings.Split(normalized, "/")
	if len(parts) > 0 {
		parts = parts[:len(parts)-1] // drop the file name itself
	}
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// splitCamelCase splits a word on camelCase boundaries: a lowercase letter
// followed by an uppercase one, or an uppercase run followed by a lowercase
// letter ("XMLParser" becomes "XML", "Parser").
func splitCamelCase(word string) []string {
	runes := []rune(word)
	if len(runes) < 2 {
		return []string{word}
	}

	var parts []string
	last := 0
	for i := 1; i < len(runes); i++ {
		if unicode.IsLower(runes[i-1]) && unicode.IsUpper(runes[i]) {
			parts = append(parts, string(runes[last:i]))
			last = i
		} else if i > 1 && unicode.IsUpper(runes[i-2]) && unicode.IsUpper(runes[i-1]) && unicode.IsLower(runes[i]) {
			// End of an uppercase run: the final capital belongs to the next word
			if i-1 > last {
				parts = append(parts, string(runes[last:i-1]))
				last = i - 1
			}
		}
	}
	parts = append(parts, string(runes[last:]))
	return parts
}

// titleCase uppercases the first rune and lowercases the rest.
func titleCase(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	first := string(unicode.ToUpper(runes[0]))
	return first + strings.ToLower(string(runes[1:]))
}

func isAllNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

// isShortUpperToken reports whether s is at most maxLen runes long and has
// no lowercase letters (all-caps codes, digits, punctuation).
func isShortUpperToken(s string, maxLen int) bool {
	if len([]rune(s)) > maxLen || s == "" {
		return false
	}
	for _, r := range s {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
