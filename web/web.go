// Package web holds the server-rendered property and project pages.
package web

import (
	"embed"
	"encoding/json"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

//go:embed templates/*.tmpl
var files embed.FS

// Templates parses every embedded page template.
func Templates() (*template.Template, error) {
	return template.New("pages").Funcs(template.FuncMap{
		"price":     formatPrice,
		"amenities": amenityList,
		"date":      formatDate,
		"title":     titleCase,
		"year":      func() int { return time.Now().Year() },
	}).ParseFS(files, "templates/*.tmpl")
}

// formatPrice groups thousands: 1250000.5 -> "1,250,000.50".
func formatPrice(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}

func amenityList(raw datatypes.JSON) []string {
	var list []string
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	return list
}

func formatDate(d *datatypes.Date) string {
	if d == nil {
		return ""
	}
	return time.Time(*d).Format("2 Jan 2006")
}

// titleCase turns enum values like "floor_plan" into "Floor Plan".
func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
