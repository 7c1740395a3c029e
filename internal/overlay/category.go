package overlay

import (
	"fmt"
	"strings"
)

// Category is the class of an overlay. Each category has its own Controller.
type Category int

const (
	CategoryDialog Category = iota
	CategoryBanner
	CategoryToast
	CategorySheet
)

var categoryNames = map[Category]string{
	CategoryDialog: "dialog",
	CategoryBanner: "banner",
	CategoryToast:  "toast",
	CategorySheet:  "sheet",
}

// Categories returns every category in a stable order.
func Categories() []Category {
	return []Category{CategoryDialog, CategoryBanner, CategoryToast, CategorySheet}
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// ParseCategory converts a category name (case-insensitive) to a Category.
func ParseCategory(name string) (Category, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, c := range Categories() {
		if categoryNames[c] == needle {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown overlay category %q", name)
}
