package avatar

import (
	"fmt"
	"path"
	"slices"
	"strconv"
	"strings"
)

// ParsePath is the inverse of Config.Path: it returns the configuration of
// an image asset from its path in the store, {set}/{size}/{id}.{format}.
func ParsePath(name string) (*Config, error) {
	parts := strings.Split(strings.Trim(path.Clean("/"+name), "/"), "/")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%q is not of the form {set}/{size}/{id}.{format}", name)
	}

	set := Set(parts[0])
	if !set.Valid() {
		return nil, fmt.Errorf("%q is not a known set", parts[0])
	}
	size, err := strconv.Atoi(parts[1])
	if err != nil || !slices.Contains(Sizes, size) {
		return nil, fmt.Errorf("%q is not a valid size", parts[1])
	}
	ext := path.Ext(parts[2])
	format := Format(strings.TrimPrefix(ext, "."))
	if !slices.Contains(Formats, format) {
		return nil, fmt.Errorf("%q is not a valid image format", ext)
	}
	id := strings.TrimSuffix(parts[2], ext)
	if !set.Has(id) {
		return nil, fmt.Errorf("%q is not an id of the %s set", id, set)
	}

	return &Config{
		set:    set,
		id:     id,
		size:   size,
		format: format,
		shape:  DefaultShape,
	}, nil
}
