// splitter/splitter.go
package splitter

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Text es el resultado de segmentar un bloque de texto: líneas, palabras
// y caracteres, en orden de lectura.
type Text struct {
	Lines []Line
}

// Line agrupa las palabras de una línea visual.
type Line struct {
	Words []Word
}

// Word guarda los caracteres (clusters de grafemas) de una palabra.
type Word struct {
	Chars []string
}

// Split aplica las dos pasadas: primero líneas (cortando por '\n' y, si
// width > 0, ajustando palabras al ancho), luego cada palabra en caracteres.
func Split(text string, width int) Text {
	var out Text
	for _, words := range SplitLines(text, width) {
		line := Line{Words: make([]Word, 0, len(words))}
		for _, w := range words {
			line.Words = append(line.Words, Word{Chars: SplitChars(w)})
		}
		out.Lines = append(out.Lines, line)
	}
	return out
}

// SplitLines devuelve las palabras de cada línea. Un texto vacío no tiene
// líneas; una línea en blanco en medio del texto se conserva sin palabras.
func SplitLines(text string, width int) [][]string {
	text = strings.TrimRight(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var lines [][]string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if width <= 0 || len(words) == 0 {
			lines = append(lines, words)
			continue
		}
		lines = append(lines, wrap(words, width)...)
	}
	return lines
}

// wrap reparte las palabras en líneas cuyo ancho en celdas de terminal no
// supera width. Una palabra más ancha que width ocupa su propia línea.
func wrap(words []string, width int) [][]string {
	var lines [][]string
	var current []string
	used := 0
	for _, w := range words {
		ww := runewidth.StringWidth(w)
		if len(current) > 0 && used+1+ww > width {
			lines = append(lines, current)
			current, used = nil, 0
		}
		if len(current) > 0 {
			used++
		}
		current = append(current, w)
		used += ww
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}
	return lines
}

// SplitChars corta una palabra en clusters de grafemas, de modo que un
// emoji compuesto o una letra con diacríticos combinados sean una sola celda.
func SplitChars(word string) []string {
	var chars []string
	g := uniseg.NewGraphemes(word)
	for g.Next() {
		chars = append(chars, g.Str())
	}
	return chars
}

// CharCount suma los caracteres de todas las líneas.
func (t Text) CharCount() int {
	n := 0
	for _, l := range t.Lines {
		for _, w := range l.Words {
			n += len(w.Chars)
		}
	}
	return n
}
