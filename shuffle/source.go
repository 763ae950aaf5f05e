// shuffle/source.go
package shuffle

import (
	"math/rand"
	"time"
)

// Clock es la fuente de tiempo del motor. Trigger la usa para fechar el
// arranque de cada celda y Update para saber hasta dónde avanzar.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Rand es lo único que el motor necesita de un generador aleatorio.
// *rand.Rand lo cumple; los tests pasan uno determinista.
type Rand interface {
	Intn(n int) int
}

func newRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// between devuelve un entero en [min, max], ambos incluidos.
func between(r Rand, min, max int) int {
	if max <= min {
		return min
	}
	return r.Intn(max-min+1) + min
}

func pick(r Rand, set []string) string {
	if len(set) == 0 {
		return ""
	}
	return set[r.Intn(len(set))]
}
