// blocks/shell_command/renderers/list.go
package renderers

import (
	"fmt"
	"strings"
)

type ListRenderer struct{}

func (r *ListRenderer) Render(data interface{}) (string, error) {
	var lines []string
	switch v := data.(type) {
	case []string:
		lines = v
	case string:
		lines = []string{v}
	default:
		return "", fmt.Errorf("ListRenderer recibió datos incompatibles de tipo %T", data)
	}

	var builder strings.Builder
	for i, line := range lines {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString("- ")
		builder.WriteString(line)
	}
	return builder.String(), nil
}
