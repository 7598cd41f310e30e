// Package format converts vendor output into flat tabular and structured
// representations. Everything here is pure: no side effects, and the only
// "error path" for data is a missing field, which becomes an empty cell.
package format

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Flatten collapses nested objects into a single-level mapping using "_" as
// the key separator. Lists of strings are joined with "; "; other lists are
// stringified. Returns the mapping plus its keys in sorted order so every
// rendering of the same result shares one column order.
func Flatten(data map[string]any) (map[string]string, []string) {
	flat := make(map[string]string)
	flattenInto(flat, "", data)

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return flat, keys
}

func flattenInto(out map[string]string, prefix string, data map[string]any) {
	for k, v := range data {
		key := k
		if prefix != "" {
			key = prefix + "_" + k
		}
		switch val := v.(type) {
		case nil:
			out[key] = ""
		case string:
			out[key] = val
		case map[string]any:
			if len(val) == 0 {
				out[key] = ""
				continue
			}
			flattenInto(out, key, val)
		case []any:
			out[key] = flattenList(val)
		default:
			out[key] = fmt.Sprintf("%v", val)
		}
	}
}

func flattenList(items []any) string {
	if len(items) == 0 {
		return ""
	}
	parts := make([]string, 0, len(items))
	allStrings := true
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			allStrings = false
			break
		}
		parts = append(parts, s)
	}
	if allStrings {
		return strings.Join(parts, "; ")
	}
	return fmt.Sprintf("%v", items)
}

// CSV renders one header row and one value row. A key with no value becomes
// an empty cell.
func CSV(fields map[string]string, order []string) string {
	if len(order) == 0 {
		order = sortedKeys(fields)
	}
	row := make([]string, len(order))
	for i, key := range order {
		row[i] = fields[key]
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(order)
	_ = w.Write(row)
	w.Flush()
	return buf.String()
}

// JSON renders a single-element records array with two-space indentation.
func JSON(fields map[string]string, order []string) string {
	if len(order) == 0 {
		order = sortedKeys(fields)
	}
	var buf bytes.Buffer
	buf.WriteString("[\n  {\n")
	for i, key := range order {
		k, _ := json.Marshal(key)
		v, _ := json.Marshal(fields[key])
		buf.WriteString("    ")
		buf.Write(k)
		buf.WriteString(": ")
		buf.Write(v)
		if i < len(order)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("  }\n]")
	return buf.String()
}

// Raw pretty-prints the passthrough vendor response. Invalid JSON is returned
// untouched.
func Raw(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

func sortedKeys(fields map[string]string) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
