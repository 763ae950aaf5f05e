// config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFrameMillis es el intervalo entre fotogramas cuando no se configura.
const DefaultFrameMillis = 16

type GeneralConfig struct {
	EnabledBlocksOrder  []string `toml:"enabled_blocks_order"`
	GlobalUpdateSeconds float64  `toml:"global_update_seconds"` // Update time de la app
	FrameMillis         int      `toml:"frame_millis"`
	DefaultEffect       string   `toml:"default_effect"`
}

// Frame devuelve el intervalo entre fotogramas de las animaciones.
func (g GeneralConfig) Frame() time.Duration {
	if g.FrameMillis <= 0 {
		return DefaultFrameMillis * time.Millisecond
	}
	return time.Duration(g.FrameMillis) * time.Millisecond
}

type ThemeConfig struct {
	SelectedTheme string `toml:"selected_theme"`
}

type Config struct {
	General GeneralConfig          `toml:"general"`
	Theme   ThemeConfig            `toml:"theme"`
	Blocks  map[string]interface{} `toml:"blocks"`
}

// Path devuelve la ruta del archivo de configuración del usuario.
func Path() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("no se pudo obtener el directorio home: %w", err)
	}
	return filepath.Join(homeDir, ".config", "fancy-shuffle", "fancy_shuffle.toml"), nil
}

func LoadConfig() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadConfigFrom(configPath)
}

// LoadConfigFrom lee y parsea el TOML de configPath.
func LoadConfigFrom(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("no se pudo leer el archivo de configuración %s: %w", configPath, err)
	}

	var cfg Config
	err = toml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("no se pudo parsear el TOML de configuración: %w", err)
	}
	if cfg.Blocks == nil {
		cfg.Blocks = map[string]interface{}{}
	}

	return &cfg, nil
}

// Default es la configuración en memoria: un título y un subtítulo, cada
// uno con su efecto.
func Default() *Config {
	return &Config{
		General: GeneralConfig{
			EnabledBlocksOrder:  []string{"title", "subtitle"},
			GlobalUpdateSeconds: 30,
			FrameMillis:         DefaultFrameMillis,
			DefaultEffect:       "fx1",
		},
		Blocks: map[string]interface{}{
			"title": map[string]interface{}{
				"type":   "ShuffleText",
				"text":   "FANCY SHUFFLE",
				"effect": "fx2",
			},
			"subtitle": map[string]interface{}{
				"type":   "ShuffleText",
				"text":   "Type shuffle animations for the terminal",
				"effect": "fx6",
			},
		},
	}
}

// Seconds lee una clave numérica de un bloque como duración. El TOML puede
// traer enteros o flotantes; si falta o no es positiva se usa fallback.
func Seconds(blockConfig map[string]interface{}, key string, fallback float64) time.Duration {
	var secs float64
	if val, ok := blockConfig[key]; ok {
		switch v := val.(type) {
		case float64:
			secs = v
		case int:
			secs = float64(v)
		case int64:
			secs = float64(v)
		}
	}
	if secs <= 0 {
		secs = fallback
	}
	if secs <= 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}

// Int lee una clave entera de un bloque.
func Int(blockConfig map[string]interface{}, key string) int {
	switch v := blockConfig[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}
