// blocks/shell_command/shell_command.go
package shell_command

import (
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gas/fancy-shuffle/blocks/shell_command/parsers"
	"github.com/gas/fancy-shuffle/blocks/shell_command/renderers"
	"github.com/gas/fancy-shuffle/config"
	"github.com/gas/fancy-shuffle/effects"
	"github.com/gas/fancy-shuffle/logging" // paquete de logging
	"github.com/gas/fancy-shuffle/shared/block"
	"github.com/gas/fancy-shuffle/shuffle"
	"github.com/gas/fancy-shuffle/themes"
)

var registeredParsers = parsers.Registry()
var registeredRenderers = renderers.Registry()

// freshDataMsg lleva el texto ya renderizado de una ejecución del comando.
type freshDataMsg struct {
	blockID string
	text    string
	err     error
}

func (m freshDataMsg) BlockID() string { return m.blockID }

// ShellCommandBlock ejecuta un comando, convierte su salida en texto y lo
// revela con un efecto cada vez que cambia.
type ShellCommandBlock struct {
	id             string
	position       string
	style          lipgloss.Style
	errorStyle     lipgloss.Style
	command        string
	parser         parsers.Parser
	renderer       renderers.Renderer
	effect         string
	text           string
	currentError   error
	updateInterval time.Duration
	isLoading      bool
	spinner        spinner.Model
	shuffle        *effects.Shuffle
}

func New() block.Block {
	return &ShellCommandBlock{}
}

func (b *ShellCommandBlock) Name() string {
	// Usamos el id como el nombre, ya que es único.
	return b.id
}

func (b *ShellCommandBlock) Position() string { return b.position }

func (b *ShellCommandBlock) Init(blockConfig map[string]interface{}, globalConfig config.GeneralConfig, theme *themes.Theme) error {
	// 1 --- Inicialización básica.
	b.id, _ = blockConfig["name"].(string)
	b.position, _ = blockConfig["position"].(string)
	logging.Log.Printf("[%s] Initializing block...", b.id)

	b.command, _ = blockConfig["command"].(string)
	if strings.TrimSpace(b.command) == "" {
		return fmt.Errorf("el bloque '%s' no tiene comando", b.id)
	}
	logging.Log.Printf("[%s] Config loaded. Command: '%s'", b.id, b.command)

	// 2. Tiempo de actualización: el del bloque o, si no hay, el global.
	// Mínimo de 1 segundo para evitar bucles.
	b.updateInterval = config.Seconds(blockConfig, "update_seconds", globalConfig.GlobalUpdateSeconds)
	if b.updateInterval < time.Second {
		b.updateInterval = time.Second
	}
	logging.Log.Printf("[%s] Update interval set to %v", b.id, b.updateInterval)

	// 3. Parser y Renderer.
	parserName, _ := blockConfig["parser"].(string)
	if parserName == "" {
		parserName = "single_line"
	}
	p, ok := registeredParsers[parserName]
	if !ok {
		return fmt.Errorf("parser '%s' no encontrado para el bloque '%s'", parserName, b.id)
	}
	b.parser = p

	rendererName, _ := blockConfig["renderer"].(string)
	if rendererName == "" {
		rendererName = "raw_text"
	}
	r, ok := registeredRenderers[rendererName]
	if !ok {
		return fmt.Errorf("renderer '%s' no encontrado para el bloque '%s'", rendererName, b.id)
	}
	b.renderer = r

	// 4. Efecto.
	b.effect, _ = blockConfig["effect"].(string)
	if b.effect == "" {
		b.effect = globalConfig.DefaultEffect
	}
	if b.effect == "" {
		b.effect = shuffle.DefaultEffect
	}
	if _, ok := shuffle.Lookup(b.effect); !ok {
		return fmt.Errorf("efecto '%s' no encontrado para el bloque '%s'", b.effect, b.id)
	}

	b.style = lipgloss.NewStyle().
		Background(lipgloss.Color(theme.Colors.Background)).
		Foreground(lipgloss.Color(theme.Colors.Text))
	b.errorStyle = b.style.Foreground(lipgloss.Color(theme.Colors.Error))

	b.shuffle = effects.NewShuffle("", b.effect, globalConfig.Frame(), b.style, theme.Colors.Background,
		shuffle.WithName(b.id),
		shuffle.WithTextColor(theme.Colors.Text),
		shuffle.WithWidth(config.Int(blockConfig, "width")),
	)

	b.spinner = spinner.New()
	// Podemos estilizar el spinner usando los colores del tema
	b.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Colors.Primary))
	return nil
}

func (b *ShellCommandBlock) Update(msg tea.Msg) (block.Block, tea.Cmd) {
	switch m := msg.(type) {
	case block.TriggerUpdateMsg, block.BlockTickMsg:
		if tick, ok := m.(block.BlockTickMsg); ok && tick.TargetBlockID != b.id {
			return b, nil // No es para mí, lo ignoro.
		}
		// Si el bloque ya está cargando datos, no hacer nada.
		// Esto previene las ejecuciones solapadas (re-entrada).
		if b.isLoading {
			return b, nil
		}
		b.isLoading = true
		return b, tea.Batch(b.spinner.Tick, b.fetch())

	case freshDataMsg:
		if m.blockID != b.id {
			return b, nil
		}
		b.isLoading = false
		b.currentError = m.err
		next := block.ScheduleNextTick(b.id, b.updateInterval)
		if m.err != nil {
			return b, next
		}
		// Solo se revela de nuevo cuando el texto cambia.
		if m.text == b.text {
			return b, next
		}
		b.text = m.text
		b.shuffle.SetContent(m.text)
		return b, tea.Batch(b.shuffle.Replay(), next)

	case spinner.TickMsg:
		if !b.isLoading {
			return b, nil
		}
		var cmd tea.Cmd
		b.spinner, cmd = b.spinner.Update(msg)
		return b, cmd

	case block.EffectMsg:
		if !block.IsFor(msg, b.id) {
			return b, nil
		}
		if m.Effect == "" {
			return b, b.shuffle.Replay()
		}
		return b, b.shuffle.Trigger(m.Effect)

	case block.CancelMsg:
		if block.IsFor(msg, b.id) {
			b.shuffle.Cancel()
		}
		return b, nil
	}

	_, cmd := b.shuffle.Update(msg)
	return b, cmd
}

// fetch devuelve el comando que ejecuta, parsea y renderiza. Corre fuera
// del bucle de Bubble Tea.
func (b *ShellCommandBlock) fetch() tea.Cmd {
	id, command, parser, renderer := b.id, b.command, b.parser, b.renderer
	return func() tea.Msg {
		// Se usa 'sh -c' para permitir tuberías y otras operaciones de shell directamente.
		logging.Log.Printf("[%s] Executing command: sh -c \"%s\"", id, command)
		output, err := exec.Command("sh", "-c", command).CombinedOutput()
		if err != nil {
			logging.Log.Printf("[%s] EXECUTION ERROR: %v. Output: %s", id, err, string(output))
			return freshDataMsg{blockID: id, err: fmt.Errorf("falló la ejecución del comando: %w", err)}
		}

		parsedData, err := parser.Parse(string(output))
		if err != nil {
			logging.Log.Printf("[%s] PARSING ERROR: %v", id, err)
			return freshDataMsg{blockID: id, err: fmt.Errorf("falló el parseo: %w", err)}
		}

		text, err := renderer.Render(parsedData)
		if err != nil {
			return freshDataMsg{blockID: id, err: fmt.Errorf("falló el renderizado: %w", err)}
		}
		logging.Log.Printf("[%s] Parsing successful.", id)
		return freshDataMsg{blockID: id, text: text}
	}
}

func (b *ShellCommandBlock) View() string {
	// Carga inicial: spinner. Si ya teníamos texto lo seguimos mostrando.
	if b.isLoading && b.text == "" {
		spinnerView := b.spinner.View()
		idView := b.style.Faint(true).Render(b.id)
		return lipgloss.JoinHorizontal(lipgloss.Left, spinnerView, " ", idView)
	}

	if b.currentError != nil {
		return b.errorStyle.Render(fmt.Sprintf("Error en '%s': %v", b.id, b.currentError))
	}

	if b.text == "" {
		return b.style.Render("...")
	}
	return b.shuffle.View()
}

// Loading indica que hay una ejecución del comando en curso.
func (b *ShellCommandBlock) Loading() bool { return b.isLoading }

func (b *ShellCommandBlock) Settle() {
	b.shuffle.Settle()
}

// Plain devuelve el texto actual sin estilos (o el error, si lo hay).
func (b *ShellCommandBlock) Plain() string {
	if b.currentError != nil {
		return fmt.Sprintf("Error en '%s': %v", b.id, b.currentError)
	}
	return b.shuffle.Plain()
}
