package motion

import (
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

type entry struct {
	value string
	line  int
}

// Config is one parsed motion configuration file. Lookups that miss the
// file's own directives fall through to the parent chain; a layer is never
// modified once Load returns.
type Config struct {
	path     string
	parent   *Config
	values   map[string]entry
	includes []string
}

func newConfig(path string, parent *Config) *Config {
	return &Config{
		path:   path,
		parent: parent,
		values: make(map[string]entry),
	}
}

// Path returns the file this layer was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Parent returns the layer this one inherits from, or nil.
func (c *Config) Parent() *Config {
	return c.parent
}

// Includes returns the camera files referenced by this layer, in file order.
func (c *Config) Includes() []string {
	return c.includes[:len(c.includes):len(c.includes)]
}

func (c *Config) find(key string) (entry, *Config, bool) {
	for l := c; l != nil; l = l.parent {
		if e, ok := l.values[key]; ok {
			return e, l, true
		}
	}
	return entry{}, nil, false
}

// Lookup returns the raw value of a directive.
func (c *Config) Lookup(key string) (string, bool) {
	e, _, ok := c.find(key)
	return e.value, ok
}

func (c *Config) Has(key string) bool {
	_, _, ok := c.find(key)
	return ok
}

// String returns the directive value or def when it is not set.
func (c *Config) String(key, def string) string {
	if v, ok := c.Lookup(key); ok {
		return v
	}
	return def
}

// Int returns the directive as an integer or def when it is not set.
func (c *Config) Int(key string, def int) (int, error) {
	e, l, ok := c.find(key)
	if !ok {
		return def, nil
	}
	i, err := strconv.Atoi(e.value)
	if err != nil {
		return 0, l.conversionError(key, e, "an integer")
	}
	return i, nil
}

// Float returns the directive as a float or def when it is not set.
func (c *Config) Float(key string, def float64) (float64, error) {
	e, l, ok := c.find(key)
	if !ok {
		return def, nil
	}
	f, err := strconv.ParseFloat(e.value, 64)
	if err != nil {
		return 0, l.conversionError(key, e, "a number")
	}
	return f, nil
}

func (c *Config) conversionError(key string, e entry, want string) error {
	return errors.Wrapf(ErrValueConversion, "%s:%d: directive %q: %q is not %s", c.path, e.line, key, e.value, want)
}

// Keys returns every directive visible from this layer, sorted.
func (c *Config) Keys() []string {
	seen := make(map[string]bool)
	var keys []string
	for l := c; l != nil; l = l.parent {
		for k := range l.values {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

// Values flattens the visible directives into a map, nearest layer winning.
func (c *Config) Values() map[string]string {
	m := make(map[string]string)
	for _, k := range c.Keys() {
		m[k], _ = c.Lookup(k)
	}
	return m
}
