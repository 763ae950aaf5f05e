// blocks/shell_command/parsers/parser.go
package parsers

// Parser es la interfaz que cada módulo de parseo debe implementar.
// Toma la salida cruda de un comando y la transforma en datos estructurados.
type Parser interface {
	// Parse toma el texto crudo y devuelve los datos parseados o un error.
	// Cada parser devuelve el tipo que más le convenga (string, []string,
	// map[string]string); el renderer correspondiente sabe leerlo.
	Parse(input string) (interface{}, error)
}

// Registry devuelve los parsers disponibles por nombre.
func Registry() map[string]Parser {
	return map[string]Parser{
		"single_line": &SingleLineParser{},
		"multi_line":  &MultiLineParser{},
		"key_value":   &KeyValueParser{},
	}
}
