// blocks/shell_command/parsers/key_value.go
package parsers

import (
	"fmt"
	"strings"
)

type KeyValueParser struct{}

// Parse espera líneas "clave=valor" (o "clave: valor"). Las líneas que no
// tienen separador se ignoran; si ninguna lo tiene es un error.
func (p *KeyValueParser) Parse(input string) (interface{}, error) {
	data := make(map[string]string)
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		sep := strings.IndexAny(trimmed, "=:")
		if sep <= 0 {
			continue
		}
		key := strings.TrimSpace(trimmed[:sep])
		data[key] = strings.TrimSpace(trimmed[sep+1:])
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no hay pares clave=valor en %d bytes de salida", len(input))
	}
	return data, nil
}
