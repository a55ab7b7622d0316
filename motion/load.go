package motion

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// IncludeDirective names the repeatable directive that pulls in a camera file.
const IncludeDirective = "camera"

// Load parses a motion configuration file into a new layer on top of parent.
// parent may be nil for the top-level file.
func Load(path string, parent *Config) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrFileNotFound, "%s: %v", path, err)
	}
	defer f.Close()

	c := newConfig(path, parent)
	if err := c.parse(bufio.NewScanner(f)); err != nil {
		return nil, err
	}
	log.Debugf("Loaded %d directives and %d includes from %s", len(c.values), len(c.includes), path)
	return c, nil
}

func (c *Config) parse(s *bufio.Scanner) error {
	n := 0
	for s.Scan() {
		n++
		line := strings.TrimSpace(s.Text())
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return errors.Wrapf(ErrMalformedLine, "%s:%d: directive %q has no value", c.path, n, fields[0])
		}
		name, value := fields[0], strings.Join(fields[1:], " ")

		if name == IncludeDirective {
			c.includes = append(c.includes, value)
			continue
		}
		c.values[name] = entry{value: value, line: n}
	}
	if err := s.Err(); err != nil {
		return errors.Wrapf(err, "%s: read failed after line %d", c.path, n)
	}
	return nil
}
