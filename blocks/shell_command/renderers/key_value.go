// blocks/shell_command/renderers/key_value.go
package renderers

import (
	"fmt"
	"sort"
	"strings"
)

// KeyValueRenderer pinta un mapa como "clave: valor", ordenado por clave.
// Los espacios no son celdas animables, así que no se intenta alinear columnas.
type KeyValueRenderer struct{}

func (r *KeyValueRenderer) Render(data interface{}) (string, error) {
	pairs, ok := data.(map[string]string)
	if !ok {
		return "", fmt.Errorf("KeyValueRenderer recibió datos incompatibles de tipo %T", data)
	}
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = fmt.Sprintf("%s: %s", k, pairs[k])
	}
	return strings.Join(lines, "\n"), nil
}
