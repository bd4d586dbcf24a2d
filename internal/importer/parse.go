package importer

import "strings"

// ParseArray splits a delimited array cell into its items. Surrounding
// brackets are optional, items are trimmed of whitespace and matching
// quotes, and empty items are dropped. An empty cell yields an empty slice.
func ParseArray(raw, delimiter string) []string {
	out := []string{}
	value := strings.TrimSpace(raw)
	if strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
		value = strings.TrimSpace(value[1 : len(value)-1])
	}
	if value == "" {
		return out
	}
	if delimiter == "" {
		delimiter = ","
	}
	for _, item := range strings.Split(value, delimiter) {
		item = unquote(strings.TrimSpace(item))
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func unquote(item string) string {
	if len(item) >= 2 {
		first, last := item[0], item[len(item)-1]
		if (first == '"' || first == '\'') && first == last {
			return strings.TrimSpace(item[1 : len(item)-1])
		}
	}
	return item
}

// CompactTags drops empty tag cells while keeping the order of the rest.
func CompactTags(cells []string) []string {
	out := []string{}
	for _, cell := range cells {
		if tag := strings.TrimSpace(cell); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
