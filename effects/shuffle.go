// effects/shuffle.go
package effects

import (
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gas/fancy-shuffle/shuffle"
)

// DefaultFrame es el intervalo entre fotogramas si no se indica otro (~60fps).
const DefaultFrame = 16 * time.Millisecond

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// FrameMsg pide avanzar el motor del efecto ID hasta Time.
type FrameMsg struct {
	ID   int
	Time time.Time
}

// Shuffle adapta un shuffle.Engine al ciclo de Bubble Tea: cada fotograma
// avanza el motor y, mientras quede trabajo, programa el siguiente.
type Shuffle struct {
	id         int
	engine     *shuffle.Engine
	effect     string
	frame      time.Duration
	style      lipgloss.Style
	background string
	opts       []shuffle.Option
	ticking    bool
}

// NewShuffle crea el efecto sobre content. effect es el efecto que lanzan
// Init y Replay; background es el color hacia el que se funden las celdas
// con opacidad < 1.
func NewShuffle(content, effect string, frame time.Duration, style lipgloss.Style, background string, opts ...shuffle.Option) *Shuffle {
	if frame <= 0 {
		frame = DefaultFrame
	}
	return &Shuffle{
		id:         nextID(),
		engine:     shuffle.New(content, opts...),
		effect:     effect,
		frame:      frame,
		style:      style,
		background: background,
		opts:       opts,
	}
}

func (s *Shuffle) ID() int { return s.id }

func (s *Shuffle) Engine() *shuffle.Engine { return s.engine }

// Init lanza el efecto configurado.
func (s *Shuffle) Init() tea.Cmd {
	return s.Trigger(s.effect)
}

// Replay vuelve a lanzar el efecto configurado.
func (s *Shuffle) Replay() tea.Cmd {
	return s.Trigger(s.effect)
}

// Trigger lanza name en el motor. Si el motor lo rechaza (nombre
// desconocido u ocupado) no devuelve comando.
func (s *Shuffle) Trigger(name string) tea.Cmd {
	if !s.engine.Trigger(name) {
		return nil
	}
	return s.startTicking()
}

// Cancel corta la animación en curso y deja el texto original.
func (s *Shuffle) Cancel() {
	s.engine.Cancel()
}

// Settle termina al instante todo lo pendiente. Un fotograma ya
// programado se encontrará sin trabajo y cortará la cadena.
func (s *Shuffle) Settle() {
	s.engine.Settle()
}

func (s *Shuffle) startTicking() tea.Cmd {
	if s.engine.Pending() == 0 || s.ticking {
		return nil
	}
	s.ticking = true
	return s.tick()
}

func (s *Shuffle) tick() tea.Cmd {
	id := s.id
	return tea.Tick(s.frame, func(t time.Time) tea.Msg {
		return FrameMsg{ID: id, Time: t}
	})
}

func (s *Shuffle) Update(msg tea.Msg) (Effect, tea.Cmd) {
	m, ok := msg.(FrameMsg)
	if !ok || m.ID != s.id {
		return s, nil
	}
	s.engine.Advance(m.Time)
	if s.engine.Pending() > 0 {
		return s, s.tick()
	}
	s.ticking = false
	return s, nil
}

// IsDone indica que no queda nada por animar, parpadeos incluidos.
func (s *Shuffle) IsDone() bool {
	return !s.engine.Busy() && s.engine.Pending() == 0
}

// SetContent reemplaza el texto. La animación en curso se descarta.
func (s *Shuffle) SetContent(content string) {
	s.engine.Cancel()
	s.engine = shuffle.New(content, s.opts...)
	// Nuevo id: los fotogramas en vuelo del motor anterior se ignoran.
	s.id = nextID()
	s.ticking = false
}

func (s *Shuffle) View() string {
	lines := s.engine.Lines()
	rendered := make([]string, len(lines))
	for i, l := range lines {
		var b strings.Builder
		for j, c := range l.Cells {
			if j > 0 && c.Word != l.Cells[j-1].Word {
				b.WriteString(s.style.Render(" "))
			}
			b.WriteString(s.renderCell(c))
		}
		rendered[i] = b.String()
	}
	return strings.Join(rendered, "\n")
}

func (s *Shuffle) renderCell(c *shuffle.Cell) string {
	st := s.style
	if color := fade(c.Color, s.background, c.Opacity); color != "" {
		st = st.Foreground(lipgloss.Color(color))
	}
	return st.Render(c.Content)
}

// Plain devuelve el texto actual sin estilos.
func (s *Shuffle) Plain() string {
	return s.engine.String()
}
