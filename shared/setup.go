// shared/setup.go
package shared

import (
	"errors"
	"io/fs"

	"github.com/gas/fancy-shuffle/blocks/shell_command"
	"github.com/gas/fancy-shuffle/blocks/shuffle_text"
	"github.com/gas/fancy-shuffle/blocks/system_info"
	"github.com/gas/fancy-shuffle/config"
	"github.com/gas/fancy-shuffle/logging"
	"github.com/gas/fancy-shuffle/shared/block"
	"github.com/gas/fancy-shuffle/themes"
)

// Modos de ejecución. Un bloque con run_mode distinto de "all" solo se
// carga en el modo que nombra.
const (
	ModeTUI = "tui"
	ModeTTY = "tty"
)

// BlockFactory asocia el "type" de cada bloque del TOML con su constructor.
var BlockFactory = map[string]func() block.Block{
	"ShuffleText":  shuffle_text.New,
	"ShellCommand": shell_command.New,
	"SystemInfo":   system_info.New,
}

// SetupResult agrupa todo lo que la inicialización produce.
type SetupResult struct {
	Config       *config.Config
	Theme        *themes.Theme
	ActiveBlocks []block.Block
}

// Setup carga la configuración de configPath (o la ruta por defecto si está
// vacío) y el tema, y crea los bloques para mode. Si el archivo por defecto
// no existe se usa config.Default().
func Setup(configPath, mode string) (*SetupResult, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return SetupWith(cfg, mode)
}

// SetupWith es Setup con una configuración ya cargada.
func SetupWith(cfg *config.Config, mode string) (*SetupResult, error) {
	theme, err := themes.LoadTheme(cfg.Theme.SelectedTheme)
	if err != nil {
		return nil, err
	}
	return &SetupResult{
		Config:       cfg,
		Theme:        theme,
		ActiveBlocks: BuildBlocks(cfg, theme, mode),
	}, nil
}

func loadConfig(configPath string) (*config.Config, error) {
	if configPath != "" {
		return config.LoadConfigFrom(configPath)
	}
	cfg, err := config.LoadConfig()
	if errors.Is(err, fs.ErrNotExist) {
		logging.Log.Printf("No config file, using defaults.")
		return config.Default(), nil
	}
	return cfg, err
}

// BuildBlocks crea e inicializa, en el orden de enabled_blocks_order, los
// bloques que corresponden a mode. Los que fallan al iniciar se saltan.
func BuildBlocks(cfg *config.Config, theme *themes.Theme, mode string) []block.Block {
	var activeBlocks []block.Block
	for _, blockName := range cfg.General.EnabledBlocksOrder {
		blockConfig, ok := cfg.Blocks[blockName].(map[string]interface{})
		if !ok {
			logging.Log.Printf("[%s] Block not found in config, skipping.", blockName)
			continue
		}

		runMode, _ := blockConfig["run_mode"].(string)
		if runMode == "" {
			runMode = "all"
		}
		if runMode != "all" && runMode != mode {
			continue
		}

		blockType, _ := blockConfig["type"].(string)
		factory, ok := BlockFactory[blockType]
		if !ok {
			logging.Log.Printf("[%s] Unknown block type '%s', skipping.", blockName, blockType)
			continue
		}
		b := factory()
		blockConfig["name"] = blockName
		if err := b.Init(blockConfig, cfg.General, theme); err != nil {
			logging.Log.Printf("Error inicializando bloque '%s': %v", blockName, err)
			continue
		}
		activeBlocks = append(activeBlocks, b)
	}
	return activeBlocks
}
