package codegen

import "strings"

// sanitizeIdentifier turns an arbitrary DSL name (including backtick-
// quoted or reserved-word source names, which survive into the IR
// verbatim) into a legal camelCase Java identifier: non-identifier
// characters become word separators, separator boundaries trigger camel-
// casing, a leading digit is prefixed with an underscore, and an empty
// name becomes a placeholder.
func sanitizeIdentifier(name string) string {
	words := splitWords(name)
	if len(words) == 0 {
		return "_unnamed"
	}

	var b strings.Builder
	for i, w := range words {
		if i == 0 {
			b.WriteString(lowerFirst(w))
		} else {
			b.WriteString(upperFirst(w))
		}
	}
	out := b.String()
	if out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return out
}

func splitWords(name string) []string {
	var words []string
	var cur strings.Builder
	for _, r := range name {
		if isIdentPart(r) {
			cur.WriteRune(r)
		} else if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	if cur.Len() > 0 {
		words = append(words, cur.String())
	}
	return words
}

func isIdentPart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}

// capitalize upper-cases a sanitized identifier's first letter, for
// getter/setter/method-name composition (e.g. "discount" -> "Discount").
func capitalize(s string) string {
	return upperFirst(s)
}

func simpleHostType(qualifiedName string) string {
	if i := strings.LastIndexByte(qualifiedName, '.'); i >= 0 {
		return qualifiedName[i+1:]
	}
	return qualifiedName
}
