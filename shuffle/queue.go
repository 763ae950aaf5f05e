// shuffle/queue.go
package shuffle

import (
	"container/heap"
	"time"
)

type taskKind int

const (
	stepTask  taskKind = iota // un tick del bucle de una celda
	blinkTask                 // vuelve a encender una celda apagada por Blink
)

// task es el estado de la tarea de una celda: iteración y próximo disparo.
type task struct {
	kind      taskKind
	due       time.Time
	seq       uint64
	gen       uint64
	line      int
	cell      int
	iteration int
	done      bool
}

// taskQueue ordena por vencimiento y, a igual vencimiento, por orden de
// inserción. Eso mantiene a las celdas de una línea en orden de posición.
type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q taskQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *taskQueue) Push(x any) { *q = append(*q, x.(*task)) }

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}

func (e *Engine) schedule(t *task) {
	e.seq++
	t.seq = e.seq
	heap.Push(&e.queue, t)
}
