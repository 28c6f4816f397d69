package scope

import "regexp"

var (
	placeholderProbe   = regexp.MustCompile(`\{\{[^}]+\}\}`)
	placeholderPattern = regexp.MustCompile(`\{\{\s*([^{}\s]+)\s*\}\}`)
)

// HasPlaceholder reports whether content carries at least one {{ ... }}.
func HasPlaceholder(content string) bool {
	return placeholderProbe.MatchString(content)
}

// PlaceholderKeys lists the keys referenced by template in order of
// appearance. Repeated keys are kept.
func PlaceholderKeys(template string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(template, -1)
	if len(matches) == 0 {
		return nil
	}
	keys := make([]string, 0, len(matches))
	for _, match := range matches {
		keys = append(keys, match[1])
	}
	return keys
}

// RenderTemplate substitutes every placeholder of template with the value
// returned by resolve for its key. Substitution is a single pass over the
// template, so substituted values are never scanned for placeholders.
func RenderTemplate(template string, resolve func(key string) string) string {
	resolved := make(map[string]string)
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]
		if value, ok := resolved[key]; ok {
			return value
		}
		value := resolve(key)
		resolved[key] = value
		return value
	})
}

func uniqueKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
