package relay

import "strings"

// ExtractCode pulls Lua source out of an AI response. Providers are told to
// answer with code only, but they still like to wrap it in markdown fences
// or add prose around it. Returns "" when no usable code remains.
func ExtractCode(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}

	// Fenced block wins: take the first ``` … ``` body
	if start := strings.Index(text, "```"); start >= 0 {
		rest := text[start+3:]
		// Drop the language tag line (```lua, ```luau, …)
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			firstLine := strings.TrimSpace(rest[:nl])
			if firstLine == "" || isLanguageTag(firstLine) {
				rest = rest[nl+1:]
			}
		}
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		// Unterminated fence: take what follows
		return strings.TrimSpace(rest)
	}

	return text
}

func isLanguageTag(s string) bool {
	switch strings.ToLower(s) {
	case "lua", "luau", "roblox":
		return true
	}
	return false
}
