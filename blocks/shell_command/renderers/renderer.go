// blocks/shell_command/renderers/renderer.go
package renderers

// Renderer es la interfaz que cada módulo de visualización debe implementar.
// Convierte los datos parseados en el texto que luego anima el bloque, así
// que devuelve texto plano: el estilo lo pone el efecto.
type Renderer interface {
	Render(data interface{}) (string, error)
}

// Registry devuelve los renderers disponibles por nombre.
func Registry() map[string]Renderer {
	return map[string]Renderer{
		"raw_text":  &RawTextRenderer{},
		"list":      &ListRenderer{},
		"key_value": &KeyValueRenderer{},
	}
}
