// blocks/system_info/system_info.go
package system_info

import (
	"fmt"
	"os/exec"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gas/fancy-shuffle/config"
	"github.com/gas/fancy-shuffle/effects"
	"github.com/gas/fancy-shuffle/logging"
	"github.com/gas/fancy-shuffle/shared/block"
	"github.com/gas/fancy-shuffle/shuffle"
	"github.com/gas/fancy-shuffle/themes"
)

// Probe obtiene un dato del sistema. Si falla se muestra "N/A".
type Probe struct {
	Label string
	Name  string
	Args  []string
}

// DefaultProbes son los datos que muestra el bloque.
var DefaultProbes = []Probe{
	{Label: "Hostname", Name: "hostname"},
	{Label: "OS", Name: "uname", Args: []string{"-o"}},
	{Label: "Kernel", Name: "uname", Args: []string{"-r"}},
}

type SystemInfoBlock struct {
	id             string
	position       string
	style          lipgloss.Style
	info           string
	probes         []Probe
	updateInterval time.Duration
	isLoading      bool
	shuffle        *effects.Shuffle
}

// Message for when info is fetched
type infoMsg struct {
	blockID string
	info    string
}

func (m infoMsg) BlockID() string { return m.blockID }

func New() block.Block {
	return &SystemInfoBlock{probes: DefaultProbes}
}

func (b *SystemInfoBlock) Name() string     { return b.id }
func (b *SystemInfoBlock) Position() string { return b.position }

func (b *SystemInfoBlock) Init(blockConfig map[string]interface{}, globalConfig config.GeneralConfig, theme *themes.Theme) error {
	b.id, _ = blockConfig["name"].(string)
	b.position, _ = blockConfig["position"].(string)
	logging.Log.Printf("[%s] Initializing block...", b.id)

	b.updateInterval = config.Seconds(blockConfig, "update_seconds", globalConfig.GlobalUpdateSeconds)

	effect, _ := blockConfig["effect"].(string)
	if effect == "" {
		effect = globalConfig.DefaultEffect
	}
	if effect == "" {
		effect = shuffle.DefaultEffect
	}
	if _, ok := shuffle.Lookup(effect); !ok {
		return fmt.Errorf("efecto '%s' no encontrado para el bloque '%s'", effect, b.id)
	}

	b.style = lipgloss.NewStyle().
		Background(lipgloss.Color(theme.Colors.Background)).
		Foreground(lipgloss.Color(theme.Colors.Text))
	b.shuffle = effects.NewShuffle("", effect, globalConfig.Frame(), b.style, theme.Colors.Background,
		shuffle.WithName(b.id),
		shuffle.WithTextColor(theme.Colors.Text),
	)
	return nil
}

func (b *SystemInfoBlock) Update(msg tea.Msg) (block.Block, tea.Cmd) {
	switch m := msg.(type) {
	// El TriggerUpdateMsg general del arranque o un BlockTickMsg para este bloque.
	case block.TriggerUpdateMsg, block.BlockTickMsg:
		if tick, ok := m.(block.BlockTickMsg); ok && tick.TargetBlockID != b.id {
			return b, nil
		}
		if b.isLoading {
			return b, nil
		}
		b.isLoading = true
		return b, b.fetch()

	case infoMsg:
		if m.blockID != b.id {
			return b, nil
		}
		b.isLoading = false
		next := block.ScheduleNextTick(b.id, b.updateInterval)
		if m.info == b.info {
			return b, next
		}
		b.info = m.info
		b.shuffle.SetContent(m.info)
		return b, tea.Batch(b.shuffle.Replay(), next)

	case block.EffectMsg:
		if m.TargetBlockID != b.id {
			return b, nil
		}
		if m.Effect == "" {
			return b, b.shuffle.Replay()
		}
		return b, b.shuffle.Trigger(m.Effect)

	case block.CancelMsg:
		if m.TargetBlockID == b.id {
			b.shuffle.Cancel()
		}
		return b, nil
	}

	_, cmd := b.shuffle.Update(msg)
	return b, cmd
}

func (b *SystemInfoBlock) fetch() tea.Cmd {
	id, probes := b.id, b.probes
	return func() tea.Msg {
		getOutput := func(name string, arg ...string) string {
			out, err := exec.Command(name, arg...).Output()
			if err != nil {
				logging.Log.Printf("[%s] %s failed: %v", id, name, err)
				return "N/A"
			}
			if s := strings.TrimSpace(string(out)); s != "" {
				return s
			}
			return "N/A"
		}

		lines := make([]string, len(probes))
		for i, p := range probes {
			lines[i] = fmt.Sprintf("%s: %s", p.Label, getOutput(p.Name, p.Args...))
		}
		return infoMsg{blockID: id, info: strings.Join(lines, "\n")}
	}
}

func (b *SystemInfoBlock) Loading() bool { return b.isLoading }

func (b *SystemInfoBlock) View() string {
	if b.info == "" && b.isLoading {
		return b.style.Render("Loading system info...")
	}
	if b.info == "" {
		return b.style.Render("...")
	}
	return b.shuffle.View()
}

func (b *SystemInfoBlock) Settle() {
	b.shuffle.Settle()
}

// Plain devuelve el texto actual sin estilos.
func (b *SystemInfoBlock) Plain() string {
	return b.shuffle.Plain()
}
