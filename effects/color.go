// effects/color.go
package effects

import colorful "github.com/lucasb-eyer/go-colorful"

// fade mezcla fg con bg según opacity (1: fg tal cual, 0: bg). La terminal
// no tiene transparencia, así que la opacidad se simula con el color.
// Colores vacíos o inválidos se devuelven sin tocar.
func fade(fg, bg string, opacity float64) string {
	if fg == "" || opacity >= 1 {
		return fg
	}
	f, err := colorful.Hex(fg)
	if err != nil {
		return fg
	}
	b, err := colorful.Hex(bg)
	if err != nil {
		b = colorful.Color{}
	}
	if opacity < 0 {
		opacity = 0
	}
	return b.BlendLab(f, opacity).Clamped().Hex()
}
