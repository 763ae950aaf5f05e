// themes/themes.go
package themes

import (
	"fmt"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
)

type ThemeColors struct {
	Primary    string `toml:"primary"`
	Secondary  string `toml:"secondary"`
	Background string `toml:"background"`
	Text       string `toml:"text"`
	Border     string `toml:"border"`
	Error      string `toml:"error"`
}

type Theme struct {
	Name   string      `toml:"name"`
	Colors ThemeColors `toml:"colors"`
}

// Default es el tema que se usa cuando la configuración no elige ninguno.
func Default() *Theme {
	return &Theme{
		Name: "default",
		Colors: ThemeColors{
			Primary:    "#D8A25E",
			Secondary:  "#7A1CAC",
			Background: "#1B1A1F",
			Text:       "#F4EEE0",
			Border:     "#4F4557",
			Error:      "#E06C75",
		},
	}
}

func LoadTheme(themeName string) (*Theme, error) {
	if themeName == "" {
		return Default(), nil
	}
	// Por ahora, asumimos que los temas están en el mismo directorio que el ejecutable.
	return LoadThemeFrom(fmt.Sprintf("themes/%s.toml", themeName))
}

// LoadThemeFrom lee un tema desde filePath. Los colores que falten se
// completan con los del tema por defecto.
func LoadThemeFrom(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("no se pudo leer el archivo de tema %s: %w", filePath, err)
	}

	theme := *Default()
	err = toml.Unmarshal(data, &theme)
	if err != nil {
		return nil, fmt.Errorf("no se pudo parsear el TOML del tema: %w", err)
	}
	if err := theme.Validate(); err != nil {
		return nil, err
	}

	return &theme, nil
}

// Validate comprueba que todos los colores sean hexadecimales válidos.
func (t *Theme) Validate() error {
	colors := map[string]string{
		"primary":    t.Colors.Primary,
		"secondary":  t.Colors.Secondary,
		"background": t.Colors.Background,
		"text":       t.Colors.Text,
		"border":     t.Colors.Border,
		"error":      t.Colors.Error,
	}
	for key, value := range colors {
		if _, err := colorful.Hex(value); err != nil {
			return fmt.Errorf("color '%s' inválido en el tema '%s': %q", key, t.Name, value)
		}
	}
	return nil
}
