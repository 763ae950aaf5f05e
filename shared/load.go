// shared/load.go
package shared

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gas/fancy-shuffle/logging"
	"github.com/gas/fancy-shuffle/shared/block"
)

// Load ejecuta la primera actualización de b sin Bubble Tea: manda
// TriggerUpdateMsg, corre sus comandos y le devuelve los mensajes mientras
// el bloque siga cargando. Al final termina cualquier animación.
//
// Los comandos que quedan en vuelo al terminar (ticks programados,
// fotogramas) se abandonan.
func Load(b block.Block) block.Block {
	msgs := make(chan tea.Msg, 16)
	run := func(cmd tea.Cmd) {
		if cmd == nil {
			return
		}
		go func() { msgs <- cmd() }()
	}

	b, cmd := b.Update(block.TriggerUpdateMsg{})
	run(cmd)
	for loading(b) {
		msg := <-msgs
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				run(c)
			}
			continue
		}
		b, cmd = b.Update(msg)
		run(cmd)
	}

	b.Settle()
	logging.Log.Printf("[%s] Loaded.", b.Name())
	return b
}

func loading(b block.Block) bool {
	l, ok := b.(block.Loader)
	return ok && l.Loading()
}
