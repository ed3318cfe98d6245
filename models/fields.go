package models

import (
	"strings"

	"gorm.io/gorm/schema"
)

// JSONName returns the name f is serialized under. ok is false for
// fields excluded with `json:"-"`.
func JSONName(f *schema.Field) (name string, ok bool) {
	name, _, _ = strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return "", false
	case "":
		return f.Name, true
	default:
		return name, true
	}
}
