// shuffle/cell.go
package shuffle

import "strings"

// NoPrevious marca la celda inicial de una línea, que no tiene vecina a la izquierda.
const NoPrevious = -1

// Blank es el contenido de una celda vaciada. Es un espacio duro para que
// la celda conserve su ancho mientras está en blanco.
const Blank = "\u00a0"

// Snapshot es el último estado confirmado de una celda. Se reemplaza
// entero en cada tick, nunca se modifica en sitio.
type Snapshot struct {
	Content string
	Color   string
}

// Cell es un hueco de carácter animable.
type Cell struct {
	Content       string
	Original      string
	Position      int
	Previous      int
	Word          int // palabra dentro de la línea, para reponer los espacios al pintar
	Color         string
	OriginalColor string
	Opacity       float64

	cache Snapshot
}

// Cache devuelve el último estado confirmado de la celda.
func (c *Cell) Cache() Snapshot { return c.cache }

// Leading indica si la celda abre su línea.
func (c *Cell) Leading() bool { return c.Position == 0 }

func (c *Cell) restore() {
	c.Content = c.Original
	c.Color = c.OriginalColor
}

// Line es una línea visual con sus celdas en orden de lectura.
type Line struct {
	Position int
	Cells    []*Cell
}

// Text pinta el contenido actual de la línea, con un espacio entre palabras.
func (l Line) Text() string {
	var b strings.Builder
	for i, c := range l.Cells {
		if i > 0 && c.Word != l.Cells[i-1].Word {
			b.WriteByte(' ')
		}
		b.WriteString(c.Content)
	}
	return b.String()
}

func (l *Line) clone() Line {
	cells := make([]*Cell, len(l.Cells))
	for i, c := range l.Cells {
		cp := *c
		cells[i] = &cp
	}
	return Line{Position: l.Position, Cells: cells}
}
