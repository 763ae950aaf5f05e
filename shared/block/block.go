// shared/block/block.go
package block

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gas/fancy-shuffle/config" // Importamos el paquete de config para uso particular
	"github.com/gas/fancy-shuffle/themes"
)

// Block es la interfaz que cada módulo de bloque debe implementar.
type Block interface {
	// Name devuelve el nombre único del bloque (ej. "title").
	Name() string

	// Position devuelve "left", "right" o cualquier otra cosa para ancho completo.
	Position() string

	// Init se llama una vez al inicio para pasar la configuración específica
	// del bloque y el tema actual.
	Init(blockConfig map[string]interface{}, globalConfig config.GeneralConfig, theme *themes.Theme) error

	// Update recibe los mensajes de Bubble Tea. No debe bloquear: el
	// trabajo lento va en el tea.Cmd devuelto.
	Update(msg tea.Msg) (Block, tea.Cmd)

	// View genera la cadena de texto a renderizar para el bloque.
	View() string

	// Settle termina al instante cualquier animación (modo texto plano).
	Settle()
}

// Loader lo implementan los bloques cuyo contenido llega de forma
// asíncrona. Mientras Loading sea true el modo texto sigue entregando
// mensajes al bloque.
type Loader interface {
	Loading() bool
}

// TargetedMsg es un mensaje dirigido a un único bloque.
type TargetedMsg interface {
	BlockID() string
}

// TriggerUpdateMsg se envía a todos los bloques al arrancar.
type TriggerUpdateMsg struct{}

// BlockTickMsg despierta a un bloque para su siguiente actualización.
type BlockTickMsg struct {
	TargetBlockID string
}

func (m BlockTickMsg) BlockID() string { return m.TargetBlockID }

// EffectMsg pide a un bloque que lance un efecto. Effect vacío significa
// el efecto configurado del bloque.
type EffectMsg struct {
	TargetBlockID string
	Effect        string
}

func (m EffectMsg) BlockID() string { return m.TargetBlockID }

// CancelMsg pide a un bloque que corte su animación.
type CancelMsg struct {
	TargetBlockID string
}

func (m CancelMsg) BlockID() string { return m.TargetBlockID }

// ScheduleNextTick programa un BlockTickMsg para blockID dentro de interval.
func ScheduleNextTick(blockID string, interval time.Duration) tea.Cmd {
	if interval <= 0 {
		return nil
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return BlockTickMsg{TargetBlockID: blockID}
	})
}

// IsFor indica si msg va dirigido a blockID.
func IsFor(msg tea.Msg, blockID string) bool {
	t, ok := msg.(TargetedMsg)
	return ok && t.BlockID() == blockID
}
