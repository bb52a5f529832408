package render

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/database-playground/sqlquest/internal/markup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Column names with a dedicated display rule. Matching is exact and
// case-sensitive.
const (
	ColumnSpriteURL = "sprite_url"
	ColumnType      = "type"
)

// NullText is shown for null and missing cell values.
const NullText = "NULL"

var lowerCaser = cases.Lower(language.Und)

func writeCell(sb *strings.Builder, column string, value any) {
	switch {
	case column == ColumnSpriteURL && Truthy(value):
		if src, ok := SpriteSource(value); ok {
			sb.WriteString(`<td><img src="` + markup.Escape(src) + `" alt="sprite" class="pokemon-sprite" /></td>`)
			return
		}
	case column == ColumnType && Truthy(value):
		text := CellText(value)
		sb.WriteString(`<td><span class="type-badge type-` + markup.Escape(TypeToken(text)) + `">`)
		sb.WriteString(markup.Escape(text))
		sb.WriteString("</span></td>")
		return
	}

	sb.WriteString("<td>" + markup.Escape(CellText(value)) + "</td>")
}

// CellText returns the display form of a cell value. Null and missing
// values become NullText.
func CellText(value any) string {
	switch v := value.(type) {
	case nil:
		return NullText
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// Truthy reports whether a cell value counts as present for the special
// column rules: null, "", false and numeric zero do not.
func Truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return v != ""
		}
		return f != 0
	case float64:
		return v != 0
	case float32:
		return v != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	case int32:
		return v != 0
	default:
		return true
	}
}

// TypeToken returns the lower-cased badge token of a type value.
func TypeToken(text string) string {
	return lowerCaser.String(text)
}

// SpriteSource validates a sprite_url cell value. Only absolute http and
// https URLs are accepted as image sources.
func SpriteSource(value any) (string, bool) {
	raw, ok := value.(string)
	if !ok {
		return "", false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", false
	}

	return raw, true
}
