// main.go
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/gas/fancy-shuffle/config"
	"github.com/gas/fancy-shuffle/logging"
	"github.com/gas/fancy-shuffle/shared"
	"github.com/gas/fancy-shuffle/shared/block"
	"github.com/gas/fancy-shuffle/shuffle"
)

type model struct {
	blocks            []block.Block
	width             int
	height            int
	currentView       string // "dashboard" o "expanded"
	focusIndex        int    // Índice del bloque que tiene el foco
	dashboardVP       viewport.Model
	expandedVP        viewport.Model
	normalBorderStyle lipgloss.Style
	focusBorderStyle  lipgloss.Style
}

func (m *model) Init() tea.Cmd {
	// Mensaje inicial a todos los bloques para que arranquen.
	return func() tea.Msg {
		return block.TriggerUpdateMsg{}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.dashboardVP.Width = msg.Width
		m.dashboardVP.Height = msg.Height
		m.expandedVP.Width = msg.Width
		m.expandedVP.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.currentView == "expanded" {
			return m.updateExpanded(msg)
		}
		return m.updateDashboard(msg)
	}

	cmd := m.delegate(msg)
	if m.currentView == "expanded" && len(m.blocks) > 0 {
		// El bloque puede seguir animando mientras está expandido.
		m.expandedVP.SetContent(m.blocks[m.focusIndex].View())
	}
	return m, cmd
}

func (m *model) updateExpanded(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "enter":
		m.currentView = "dashboard"
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.expandedVP, cmd = m.expandedVP.Update(msg)
	return m, cmd
}

func (m *model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch k := msg.String(); k {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k", "down", "j", "pgup", "pgdown":
		m.dashboardVP, cmd = m.dashboardVP.Update(msg)
		return m, cmd
	}

	if len(m.blocks) == 0 {
		return m, nil
	}
	focused := m.blocks[m.focusIndex].Name()

	switch k := msg.String(); k {
	case "tab":
		m.focusIndex = (m.focusIndex + 1) % len(m.blocks)
	case "enter":
		m.currentView = "expanded"
		m.expandedVP.SetContent(m.blocks[m.focusIndex].View())
		m.expandedVP.GotoTop()
	case "1", "2", "3", "4", "5", "6":
		cmd = m.delegate(block.EffectMsg{TargetBlockID: focused, Effect: "fx" + k})
	case "r":
		cmd = m.delegate(block.EffectMsg{TargetBlockID: focused})
	case "x":
		cmd = m.delegate(block.CancelMsg{TargetBlockID: focused})
	}
	return m, cmd
}

// delegate reparte msg: los mensajes dirigidos van a su bloque y el resto
// (TriggerUpdateMsg, fotogramas, spinner) a todos.
func (m *model) delegate(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	if targetMsg, ok := msg.(block.TargetedMsg); ok {
		targetID := targetMsg.BlockID()
		for i, b := range m.blocks {
			if b.Name() == targetID {
				updatedBlock, cmd := b.Update(msg)
				m.blocks[i] = updatedBlock
				cmds = append(cmds, cmd)
				break
			}
		}
		return tea.Batch(cmds...)
	}

	for i, b := range m.blocks {
		updatedBlock, cmd := b.Update(msg)
		m.blocks[i] = updatedBlock
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *model) View() string {
	if m.currentView == "expanded" {
		return m.expandedVP.View()
	}
	if m.width == 0 {
		return "Initializing..."
	}
	m.dashboardVP.SetContent(shared.RenderDashboard(m.width, m.blocks, m.focusIndex, m.normalBorderStyle, m.focusBorderStyle))
	return m.dashboardVP.View()
}

func main() {
	// Inicializamos el logger al principio de todo.
	logFile, err := logging.Init()
	if err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logFile.Close()

	simpleOutput := flag.Bool("simple", false, "Muestra la salida como texto plano sin TUI.")
	configPath := flag.String("config", "", "Ruta del archivo de configuración (por defecto ~/.config/fancy-shuffle/fancy_shuffle.toml).")
	text := flag.String("text", "", "Anima este texto en lugar de los bloques de la configuración.")
	effect := flag.String("effect", "", "Efecto por defecto (fx1..fx6).")
	width := flag.Int("width", 0, "Ancho máximo de línea para -text (0: sin límite).")
	list := flag.Bool("list", false, "Lista los efectos disponibles y sale.")
	flag.Parse()

	if *list {
		for _, name := range shuffle.Names() {
			fx, _ := shuffle.Lookup(name)
			fmt.Printf("%s\t%d iteraciones, %v-%v\n", name, fx.MaxIterations, fx.TickMin, fx.TickMax)
		}
		return
	}
	if *effect != "" {
		if _, ok := shuffle.Lookup(*effect); !ok {
			log.Fatalf("Efecto desconocido '%s'. Disponibles: %s", *effect, strings.Join(shuffle.Names(), ", "))
		}
	}

	// Modo simple si la salida no es una terminal (ej. un pipe) o si se usa --simple.
	mode := shared.ModeTUI
	if !isatty.IsTerminal(os.Stdout.Fd()) || *simpleOutput {
		mode = shared.ModeTTY
	}

	var res *shared.SetupResult
	if *text != "" {
		res, err = shared.SetupWith(textConfig(*text, *effect, *width), mode)
	} else {
		res, err = shared.Setup(*configPath, mode)
		if err == nil && *effect != "" {
			res.Config.General.DefaultEffect = *effect
			res.ActiveBlocks = shared.BuildBlocks(res.Config, res.Theme, mode)
		}
	}
	if err != nil {
		log.Fatalf("Error en la inicialización: %v", err)
	}

	if mode == shared.ModeTTY {
		runTtyMode(res)
	} else {
		runTuiMode(res)
	}
}

// textConfig arma en memoria una configuración con un único bloque.
func textConfig(text, effect string, width int) *config.Config {
	cfg := config.Default()
	cfg.General.EnabledBlocksOrder = []string{"text"}
	blockConfig := map[string]interface{}{
		"type":  "ShuffleText",
		"text":  text,
		"width": int64(width),
	}
	if effect != "" {
		blockConfig["effect"] = effect
	}
	cfg.Blocks = map[string]interface{}{"text": blockConfig}
	return cfg
}

func runTuiMode(res *shared.SetupResult) {
	theme := res.Theme
	normalBorderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Colors.Border))
	focusBorderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Colors.Primary)) // El primario marca el foco
	baseStyle := lipgloss.NewStyle().
		Background(lipgloss.Color(theme.Colors.Background)).
		Foreground(lipgloss.Color(theme.Colors.Text))

	dashVP := viewport.New(100, 20) // El tamaño inicial no es crítico, se ajusta luego
	expVP := viewport.New(100, 20)
	dashVP.Style = baseStyle
	expVP.Style = baseStyle
	m := &model{
		blocks:            res.ActiveBlocks,
		currentView:       "dashboard",
		dashboardVP:       dashVP,
		expandedVP:        expVP,
		normalBorderStyle: normalBorderStyle,
		focusBorderStyle:  focusBorderStyle,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error ejecutando el programa: %v\n", err)
		os.Exit(1)
	}
}

// runTtyMode carga los bloques de forma síncrona e imprime su texto final.
func runTtyMode(res *shared.SetupResult) {
	for _, b := range res.ActiveBlocks {
		b = shared.Load(b)
		fmt.Println(b.View())
		fmt.Println("---")
	}
}
