// shuffle/effects.go
package shuffle

import (
	"math"
	"sort"
	"time"
)

// DefaultEffect es el efecto que se usa cuando Trigger recibe un nombre vacío.
const DefaultEffect = "fx1"

// Symbols es el alfabeto por defecto para los caracteres aleatorios.
var Symbols = []string{
	"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M",
	"N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
	"!", "@", "#", "$", "&", "*", "(", ")", "-", "_", "+", "=", "/",
	"[", "]", "{", "}", ";", ":", "<", ">", ",",
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
}

// Rule decide de dónde sale el contenido de una celda que no es la inicial.
type Rule int

const (
	// Propagate copia la caché de la celda anterior de la línea.
	Propagate Rule = iota
	// Scramble elige un símbolo al azar sin mirar a las vecinas.
	Scramble
)

// Basis es la base del retardo inicial de cada celda.
type Basis int

const (
	PerLine    Basis = iota // (línea+1) * Step
	PerCell                 // (celda+1) * Step
	Random                  // al azar en [0, Step]
	FromMiddle              // |líneas/2 - línea| * Step
)

// Effect es una fila de la tabla de efectos: todos comparten el mismo bucle
// por celda y solo cambian estos parámetros.
type Effect struct {
	Name          string
	MaxIterations int

	// Intervalo entre ticks; si TickMax > TickMin se sortea en cada tick.
	TickMin time.Duration
	TickMax time.Duration

	Basis Basis
	Step  time.Duration

	Rule Rule

	// Leading es el juego de puntuación de la celda inicial durante las
	// primeras LeadingFor iteraciones (-1: todas).
	Leading    []string
	LeadingFor int

	// Palette no vacía hace variar el color.
	Palette []string

	Clear bool
	// Blink > 0 apaga la celda al asentarse y la vuelve a encender tras Blink.
	Blink time.Duration
}

// VariesColor indica si el efecto toca el color de las celdas.
func (fx Effect) VariesColor() bool { return len(fx.Palette) > 0 }

func (fx Effect) startDelay(line, lines, cell int, r Rand) time.Duration {
	switch fx.Basis {
	case PerCell:
		return time.Duration(cell+1) * fx.Step
	case Random:
		return time.Duration(between(r, 0, int(fx.Step/time.Millisecond))) * time.Millisecond
	case FromMiddle:
		return time.Duration(math.Abs(float64(lines)/2-float64(line)) * float64(fx.Step))
	default:
		return time.Duration(line+1) * fx.Step
	}
}

func (fx Effect) tick(r Rand) time.Duration {
	if fx.TickMax <= fx.TickMin {
		return fx.TickMin
	}
	ms := between(r, int(fx.TickMin/time.Millisecond), int(fx.TickMax/time.Millisecond))
	return time.Duration(ms) * time.Millisecond
}

var (
	sparks = []string{"*", "-", "'", "\""}
	dots   = []string{"*", ":"}
)

var catalog = []Effect{
	{
		Name: "fx1", MaxIterations: 45,
		TickMin: 15 * time.Millisecond,
		Basis:   PerLine, Step: 200 * time.Millisecond,
		Rule:    Propagate, Leading: sparks, LeadingFor: 9,
		Clear:   true,
	},
	{
		Name: "fx2", MaxIterations: 20,
		TickMin: 40 * time.Millisecond,
		Basis:   PerCell, Step: 30 * time.Millisecond,
		Rule:    Scramble,
		Blink:   300 * time.Millisecond,
	},
	{
		Name: "fx3", MaxIterations: 10,
		TickMin: 80 * time.Millisecond,
		Basis:   Random, Step: 2000 * time.Millisecond,
		Rule:    Scramble,
		Clear:   true,
	},
	{
		Name: "fx4", MaxIterations: 30,
		TickMin: 15 * time.Millisecond,
		Basis:   FromMiddle, Step: 400 * time.Millisecond,
		Rule:    Propagate, Leading: dots, LeadingFor: -1,
		Clear:   true,
	},
	{
		Name: "fx5", MaxIterations: 65,
		TickMin: 10 * time.Millisecond,
		Basis:   PerLine, Step: 200 * time.Millisecond,
		Rule:    Propagate, Leading: sparks, LeadingFor: 9,
		Palette: []string{"#343131", "#D8A25E", "#7A1CAC"},
		Clear:   true,
	},
	{
		Name: "fx6", MaxIterations: 15,
		TickMin: 30 * time.Millisecond, TickMax: 110 * time.Millisecond,
		Basis:   PerLine, Step: 80 * time.Millisecond,
		Rule:    Scramble,
		Palette: []string{"#393646", "#4F4557", "#6D5D6E", "#F4EEE0"},
	},
}

// Lookup busca un efecto del catálogo por nombre.
func Lookup(name string) (Effect, bool) {
	for _, fx := range catalog {
		if fx.Name == name {
			return fx, true
		}
	}
	return Effect{}, false
}

// Names devuelve los nombres del catálogo, ordenados.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for _, fx := range catalog {
		names = append(names, fx.Name)
	}
	sort.Strings(names)
	return names
}

func defaultEffects() map[string]Effect {
	m := make(map[string]Effect, len(catalog))
	for _, fx := range catalog {
		m[fx.Name] = fx
	}
	return m
}
