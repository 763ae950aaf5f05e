// blocks/shuffle_text/shuffle_text.go
package shuffle_text

import (
	"fmt"
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

// ShuffleTextBlock anima un texto fijo de la configuración.
type ShuffleTextBlock struct {
	id        string
	position  string
	effect    string
	retrigger time.Duration // 0: el efecto se lanza una sola vez
	shuffle   *effects.Shuffle
}

func New() block.Block { return &ShuffleTextBlock{} }

func (b *ShuffleTextBlock) Name() string     { return b.id }
func (b *ShuffleTextBlock) Position() string { return b.position }

func (b *ShuffleTextBlock) Init(blockConfig map[string]interface{}, globalConfig config.GeneralConfig, theme *themes.Theme) error {
	b.id, _ = blockConfig["name"].(string)
	b.position, _ = blockConfig["position"].(string)
	text, _ := blockConfig["text"].(string)
	logging.Log.Printf("[%s] Initializing block...", b.id)

	// El efecto del bloque manda; si no hay, el global.
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

	b.retrigger = config.Seconds(blockConfig, "retrigger_seconds", 0)

	style := lipgloss.NewStyle().
		Background(lipgloss.Color(theme.Colors.Background)).
		Foreground(lipgloss.Color(theme.Colors.Text))

	b.shuffle = effects.NewShuffle(text, b.effect, globalConfig.Frame(), style, theme.Colors.Background,
		shuffle.WithName(b.id),
		shuffle.WithTextColor(theme.Colors.Text),
		shuffle.WithWidth(config.Int(blockConfig, "width")),
	)
	logging.Log.Printf("[%s] Effect '%s', retrigger every %v", b.id, b.effect, b.retrigger)
	return nil
}

func (b *ShuffleTextBlock) Update(msg tea.Msg) (block.Block, tea.Cmd) {
	switch m := msg.(type) {
	case block.TriggerUpdateMsg:
		return b, tea.Batch(b.shuffle.Replay(), block.ScheduleNextTick(b.id, b.retrigger))

	case block.BlockTickMsg:
		if m.TargetBlockID != b.id {
			return b, nil
		}
		// Si sigue animando, Replay no hace nada y esperamos al siguiente.
		return b, tea.Batch(b.shuffle.Replay(), block.ScheduleNextTick(b.id, b.retrigger))

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

func (b *ShuffleTextBlock) View() string {
	return b.shuffle.View()
}

func (b *ShuffleTextBlock) Settle() {
	b.shuffle.Settle()
}

// Plain devuelve el texto actual sin estilos.
func (b *ShuffleTextBlock) Plain() string {
	return b.shuffle.Plain()
}
