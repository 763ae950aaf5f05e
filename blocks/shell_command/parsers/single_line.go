// blocks/shell_command/parsers/single_line.go
package parsers

import (
	"errors"
	"strings"
)

type SingleLineParser struct{}

// Parse se queda con la primera línea no vacía de la salida.
func (p *SingleLineParser) Parse(input string) (interface{}, error) {
	for _, line := range strings.Split(input, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed, nil
		}
	}
	return nil, errors.New("salida vacía")
}
