// shuffle/engine.go
package shuffle

import (
	"container/heap"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gas/fancy-shuffle/logging"
	"github.com/gas/fancy-shuffle/splitter"
)

type runState int

const (
	idle runState = iota
	running
)

// TickEvent describe un tick ya aplicado a una celda.
type TickEvent struct {
	Effect    string
	Line      int
	Cell      int
	Iteration int  // contador tras el tick
	Advanced  bool // false cuando el tick no consumió iteración (caché en blanco)
	Final     bool
	Content   string
	Cache     Snapshot
	At        time.Time
}

// Option configura un Engine en New.
type Option func(*Engine)

// WithClock cambia la fuente de tiempo.
func WithClock(c Clock) Option { return func(e *Engine) { e.clock = c } }

// WithRand cambia el generador aleatorio.
func WithRand(r Rand) Option { return func(e *Engine) { e.rand = r } }

// WithAlphabet cambia los símbolos que se sortean.
func WithAlphabet(symbols []string) Option {
	return func(e *Engine) {
		if len(symbols) > 0 {
			e.alphabet = symbols
		}
	}
}

// WithTextColor fija el color base de todas las celdas.
func WithTextColor(color string) Option { return func(e *Engine) { e.textColor = color } }

// WithWidth ajusta el texto a width columnas al segmentarlo (0: sin ajuste).
func WithWidth(width int) Option { return func(e *Engine) { e.width = width } }

// WithName etiqueta los mensajes de log del motor.
func WithName(name string) Option { return func(e *Engine) { e.name = name } }

// WithObserver recibe cada tick aplicado. Se llama con el motor bloqueado:
// no debe llamar a métodos del Engine.
func WithObserver(fn func(TickEvent)) Option { return func(e *Engine) { e.observer = fn } }

// WithEffect añade o reemplaza un efecto del catálogo.
func WithEffect(fx Effect) Option {
	return func(e *Engine) {
		if fx.Name == "" {
			return
		}
		if fx.MaxIterations < 1 {
			fx.MaxIterations = 1
		}
		e.effects[fx.Name] = fx
	}
}

// Engine es el motor de "type shuffle" de un bloque de texto: posee la
// rejilla de líneas y celdas y las tareas que la animan.
type Engine struct {
	mu sync.Mutex

	lines    []*Line
	total    int
	finished int

	state  runState
	gen    uint64
	seq    uint64
	queue  taskQueue
	active Effect

	effects   map[string]Effect
	clock     Clock
	rand      Rand
	alphabet  []string
	textColor string
	width     int
	name      string
	observer  func(TickEvent)
}

// New segmenta text y construye la rejilla. No modifica el texto.
func New(text string, opts ...Option) *Engine {
	e := newEngine(opts)
	e.build(splitter.Split(text, e.width))
	return e
}

// NewFromSegments construye la rejilla a partir de una segmentación ya hecha.
func NewFromSegments(text splitter.Text, opts ...Option) *Engine {
	e := newEngine(opts)
	e.build(text)
	return e
}

func newEngine(opts []Option) *Engine {
	e := &Engine{
		effects:  defaultEffects(),
		clock:    systemClock{},
		alphabet: Symbols,
		name:     "shuffle",
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rand == nil {
		e.rand = newRand()
	}
	return e
}

func (e *Engine) build(text splitter.Text) {
	for linePos, l := range text.Lines {
		line := &Line{Position: linePos}
		count := 0
		for wordPos, w := range l.Words {
			for _, ch := range w.Chars {
				prev := count - 1
				if count == 0 {
					prev = NoPrevious
				}
				line.Cells = append(line.Cells, &Cell{
					Content:       ch,
					Original:      ch,
					Position:      count,
					Previous:      prev,
					Word:          wordPos,
					Color:         e.textColor,
					OriginalColor: e.textColor,
					Opacity:       1,
				})
				count++
			}
		}
		e.lines = append(e.lines, line)
		e.total += count
	}
	logging.Log.Printf("[%s] Engine built: %d lines, %d cells", e.name, len(e.lines), e.total)
}

// Trigger arranca el efecto name. No hace nada (y devuelve false) si el
// nombre no existe o si ya hay una animación en curso. Un nombre vacío
// equivale a DefaultEffect.
func (e *Engine) Trigger(name string) bool {
	if name == "" {
		name = DefaultEffect
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	fx, ok := e.effects[name]
	if !ok {
		logging.Log.Printf("[%s] Unknown effect '%s', ignored.", e.name, name)
		return false
	}
	if e.state == running {
		logging.Log.Printf("[%s] Busy with '%s', '%s' ignored.", e.name, e.active.Name, name)
		return false
	}

	e.gen++
	e.state = running
	e.finished = 0
	e.active = fx
	e.forEachCell(func(_ *Line, c *Cell) { c.Opacity = 1 })
	logging.Log.Printf("[%s] Trigger '%s' (generation %d, %d cells).", e.name, name, e.gen, e.total)

	if e.total == 0 {
		e.state = idle
		return true
	}

	if fx.Clear {
		e.forEachCell(func(_ *Line, c *Cell) { c.Content = Blank })
	}

	now := e.clock.Now()
	for _, line := range e.lines {
		for _, c := range line.Cells {
			e.schedule(&task{
				kind: stepTask,
				due:  now.Add(fx.startDelay(line.Position, len(e.lines), c.Position, e.rand)),
				gen:  e.gen,
				line: line.Position,
				cell: c.Position,
			})
		}
	}
	return true
}

// Cancel detiene la animación en curso: las tareas pendientes quedan
// invalidadas y todas las celdas vuelven a su estado original.
func (e *Engine) Cancel() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != running {
		return false
	}
	e.gen++
	e.state = idle
	e.forEachCell(func(_ *Line, c *Cell) {
		c.restore()
		c.Opacity = 1
	})
	logging.Log.Printf("[%s] Cancelled '%s' after %d/%d cells.", e.name, e.active.Name, e.finished, e.total)
	return true
}

// Advance ejecuta, en orden, todas las tareas vencidas a fecha now.
// Devuelve cuántas se ejecutaron.
func (e *Engine) Advance(now time.Time) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := 0
	for e.queue.Len() > 0 && !e.queue[0].due.After(now) {
		if e.runNext() {
			n++
		}
	}
	return n
}

// Update avanza hasta la hora del reloj del motor.
func (e *Engine) Update() int {
	return e.Advance(e.clock.Now())
}

// Settle ejecuta todas las tareas pendientes sin esperar, en el mismo orden
// en que habrían vencido. Al volver el motor está en reposo.
func (e *Engine) Settle() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := 0
	for e.queue.Len() > 0 {
		if e.runNext() {
			n++
		}
	}
	return n
}

func (e *Engine) runNext() bool {
	t := heap.Pop(&e.queue).(*task)
	if t.gen != e.gen {
		return false
	}
	switch t.kind {
	case blinkTask:
		e.lines[t.line].Cells[t.cell].Opacity = 1
	default:
		if e.step(t) {
			t.due = t.due.Add(e.active.tick(e.rand))
			e.schedule(t)
		}
	}
	return true
}

// Busy indica si hay una animación en curso.
func (e *Engine) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state == running
}

// Total es el número de celdas del bloque.
func (e *Engine) Total() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.total
}

// Finished es el número de celdas que ya llegaron a su última iteración
// en la animación actual (o la última).
func (e *Engine) Finished() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.finished
}

// Pending cuenta las tareas vivas (de la generación actual).
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := 0
	for _, t := range e.queue {
		if t.gen == e.gen {
			n++
		}
	}
	return n
}

// NextDue devuelve el vencimiento de la próxima tarea viva.
func (e *Engine) NextDue() (time.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var next time.Time
	found := false
	for _, t := range e.queue {
		if t.gen != e.gen {
			continue
		}
		if !found || t.due.Before(next) {
			next, found = t.due, true
		}
	}
	return next, found
}

// Lines devuelve una copia de la rejilla.
func (e *Engine) Lines() []Line {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Line, len(e.lines))
	for i, l := range e.lines {
		out[i] = l.clone()
	}
	return out
}

// String pinta el contenido actual, una línea de texto por línea.
func (e *Engine) String() string {
	lines := e.Lines()
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.Text()
	}
	return strings.Join(parts, "\n")
}

// Effects devuelve los nombres de efecto que acepta Trigger.
func (e *Engine) Effects() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	names := make([]string, 0, len(e.effects))
	for name := range e.effects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Engine) forEachCell(fn func(*Line, *Cell)) {
	for _, line := range e.lines {
		for _, c := range line.Cells {
			fn(line, c)
		}
	}
}
