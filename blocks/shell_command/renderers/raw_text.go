// blocks/shell_command/renderers/raw_text.go
package renderers

import (
	"fmt"
	"strings"
)

type RawTextRenderer struct{}

func (r *RawTextRenderer) Render(data interface{}) (string, error) {
	switch v := data.(type) {
	case string:
		return v, nil
	case []string:
		return strings.Join(v, "\n"), nil
	}
	return "", fmt.Errorf("RawTextRenderer recibió datos incompatibles de tipo %T", data)
}
