// shuffle/step.go
package shuffle

import "github.com/gas/fancy-shuffle/logging"

// step aplica un tick a la celda de t y dice si hay que reprogramarla.
//
//  1. guarda el estado actual en la caché (lo leerá la celda siguiente);
//  2. en la última iteración repone el original y cuenta la celda;
//  3. si no, elige contenido: puntuación/azar para la celda inicial,
//     caché de la anterior al propagar, o azar puro;
//  4. al propagar, un tick que partía de una celda en blanco no consume
//     iteración.
func (e *Engine) step(t *task) (again bool) {
	fx := e.active
	line := e.lines[t.line]
	c := line.Cells[t.cell]

	// Una celda rota no puede dejar el motor ocupado para siempre.
	defer func() {
		if r := recover(); r != nil {
			logging.Log.Printf("[%s] Cell %d:%d failed on '%s': %v", e.name, t.line, t.cell, fx.Name, r)
			c.restore()
			if !t.done {
				e.finish(t)
			}
			again = false
		}
	}()

	c.cache = Snapshot{Content: c.Content, Color: c.Color}

	final := t.iteration >= fx.MaxIterations-1
	switch {
	case final:
		c.restore()
		if fx.Blink > 0 {
			c.Opacity = 0
			e.schedule(&task{kind: blinkTask, due: t.due.Add(fx.Blink), gen: t.gen, line: t.line, cell: t.cell})
		}
		e.finish(t)

	case fx.Rule == Propagate && c.Leading():
		if fx.VariesColor() {
			c.Color = pick(e.rand, fx.Palette)
		}
		if fx.LeadingFor < 0 || t.iteration < fx.LeadingFor {
			c.Content = pick(e.rand, fx.Leading)
		} else {
			c.Content = pick(e.rand, e.alphabet)
		}

	case fx.Rule == Propagate:
		prev := line.Cells[c.Previous].cache
		c.Content = prev.Content
		if fx.VariesColor() {
			c.Color = prev.Color
		}

	default:
		c.Content = pick(e.rand, e.alphabet)
		if fx.VariesColor() {
			c.Color = pick(e.rand, fx.Palette)
		}
	}

	advanced := fx.Rule != Propagate || c.cache.Content != Blank
	if advanced {
		t.iteration++
	}

	if e.observer != nil {
		e.observer(TickEvent{
			Effect:    fx.Name,
			Line:      t.line,
			Cell:      t.cell,
			Iteration: t.iteration,
			Advanced:  advanced,
			Final:     final,
			Content:   c.Content,
			Cache:     c.cache,
			At:        t.due,
		})
	}

	return !final && t.iteration < fx.MaxIterations
}

func (e *Engine) finish(t *task) {
	t.done = true
	e.finished++
	if e.finished == e.total {
		e.state = idle
		logging.Log.Printf("[%s] Effect '%s' finished (%d cells).", e.name, e.active.Name, e.total)
	}
}
