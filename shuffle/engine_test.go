package shuffle

import (
	"math/rand"
	"testing"
	"time"

	"github.com/gas/fancy-shuffle/splitter"
)

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

type manualClock struct{ now time.Time }

func (c *manualClock) Now() time.Time { return c.now }

// zeroRand siempre elige el primer elemento y el mínimo de cada rango.
type zeroRand struct{}

func (zeroRand) Intn(int) int { return 0 }

// tickLog agrupa los eventos del observador por celda.
type tickLog map[[2]int][]TickEvent

func (l tickLog) observe(ev TickEvent) {
	k := [2]int{ev.Line, ev.Cell}
	l[k] = append(l[k], ev)
}

func newTestEngine(text string, opts ...Option) *Engine {
	base := []Option{WithClock(&manualClock{now: t0}), WithRand(rand.New(rand.NewSource(7))), WithTextColor("#F4EEE0")}
	return New(text, append(base, opts...)...)
}

func TestNewBuildsGrid(t *testing.T) {
	e := newTestEngine("TYPE SHUFFLE\nok")
	if got := e.Total(); got != 13 {
		t.Fatalf("Total = %d, want 13", got)
	}
	lines := e.Lines()
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	sum := 0
	for li, l := range lines {
		if l.Position != li {
			t.Errorf("line %d has position %d", li, l.Position)
		}
		for ci, c := range l.Cells {
			if c.Position != ci {
				t.Errorf("cell %d:%d has position %d", li, ci, c.Position)
			}
			wantPrev := ci - 1
			if ci == 0 {
				wantPrev = NoPrevious
			}
			if c.Previous != wantPrev {
				t.Errorf("cell %d:%d previous = %d, want %d", li, ci, c.Previous, wantPrev)
			}
			if c.Content != c.Original || c.Color != "#F4EEE0" || c.Opacity != 1 {
				t.Errorf("cell %d:%d not pristine: %+v", li, ci, *c)
			}
		}
		sum += len(l.Cells)
	}
	if sum != e.Total() {
		t.Errorf("sum of cells %d != Total %d", sum, e.Total())
	}
	if got := lines[0].Text(); got != "TYPE SHUFFLE" {
		t.Errorf("line text = %q", got)
	}
	if lines[0].Cells[4].Word != 1 {
		t.Errorf("cell S should belong to word 1, got %d", lines[0].Cells[4].Word)
	}
}

func TestLinesReturnsCopies(t *testing.T) {
	e := newTestEngine("abc")
	lines := e.Lines()
	lines[0].Cells[0].Content = "Z"
	if got := e.String(); got != "abc" {
		t.Errorf("engine changed through copy: %q", got)
	}
}

func TestEveryEffectRestoresOriginals(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			e := newTestEngine("Hello world\nfoo bar baz\nqux")
			if !e.Trigger(name) {
				t.Fatalf("Trigger(%q) = false", name)
			}
			if !e.Busy() {
				t.Fatal("engine should be busy after Trigger")
			}
			e.Settle()

			if e.Busy() {
				t.Error("engine still busy after Settle")
			}
			if e.Finished() != e.Total() {
				t.Errorf("Finished = %d, Total = %d", e.Finished(), e.Total())
			}
			if e.Pending() != 0 {
				t.Errorf("Pending = %d, want 0", e.Pending())
			}
			for _, l := range e.Lines() {
				for _, c := range l.Cells {
					if c.Content != c.Original {
						t.Errorf("cell %d:%d content %q, want %q", l.Position, c.Position, c.Content, c.Original)
					}
					if c.Color != c.OriginalColor {
						t.Errorf("cell %d:%d color %q, want %q", l.Position, c.Position, c.Color, c.OriginalColor)
					}
					if c.Opacity != 1 {
						t.Errorf("cell %d:%d opacity %v, want 1", l.Position, c.Position, c.Opacity)
					}
				}
			}
		})
	}
}

func TestFinishedNeverExceedsTotal(t *testing.T) {
	clock := &manualClock{now: t0}
	e := newTestEngine("abc de\nf", WithClock(clock))
	e.Trigger("fx6")
	for i := 0; i < 400 && e.Busy(); i++ {
		e.Advance(t0.Add(time.Duration(i) * 10 * time.Millisecond))
		if e.Finished() > e.Total() {
			t.Fatalf("Finished %d > Total %d", e.Finished(), e.Total())
		}
		if !e.Busy() && e.Finished() != e.Total() {
			t.Fatalf("idle with Finished %d != Total %d", e.Finished(), e.Total())
		}
	}
	if e.Busy() {
		t.Fatal("fx6 never finished")
	}
}

func TestTriggerUnknownIsNoop(t *testing.T) {
	e := newTestEngine("abc")
	if e.Trigger("fx9") {
		t.Fatal("Trigger(fx9) = true")
	}
	if e.Busy() || e.Pending() != 0 {
		t.Error("unknown effect changed engine state")
	}
	if got := e.String(); got != "abc" {
		t.Errorf("cells mutated: %q", got)
	}
}

func TestTriggerWhileBusyIsNoop(t *testing.T) {
	clock := &manualClock{now: t0}
	log := tickLog{}
	e := newTestEngine("abc def", WithClock(clock), WithObserver(log.observe))
	if !e.Trigger("fx1") {
		t.Fatal("first trigger rejected")
	}
	e.Advance(t0.Add(300 * time.Millisecond))

	before := e.String()
	pending := e.Pending()
	if e.Trigger("fx3") {
		t.Fatal("Trigger while busy = true")
	}
	if e.String() != before || e.Pending() != pending || !e.Busy() {
		t.Error("second trigger changed the running animation")
	}

	e.Settle()
	for k, evs := range log {
		for _, ev := range evs {
			if ev.Effect != "fx1" {
				t.Fatalf("cell %v ticked under %q", k, ev.Effect)
			}
		}
	}
}

func TestEmptyTextCompletesImmediately(t *testing.T) {
	for _, text := range []string{"", "  \n\t"} {
		e := newTestEngine(text)
		if e.Total() != 0 {
			t.Fatalf("Total(%q) = %d", text, e.Total())
		}
		if !e.Trigger("fx1") {
			t.Fatalf("Trigger on empty engine rejected")
		}
		if e.Busy() {
			t.Error("empty engine stayed busy")
		}
		if e.Pending() != 0 {
			t.Errorf("empty engine scheduled %d tasks", e.Pending())
		}
	}
}

func TestEmptyNameUsesDefaultEffect(t *testing.T) {
	log := tickLog{}
	e := newTestEngine("ab", WithObserver(log.observe))
	if !e.Trigger("") {
		t.Fatal("Trigger(\"\") rejected")
	}
	e.Settle()
	if got := log[[2]int{0, 0}][0].Effect; got != DefaultEffect {
		t.Errorf("effect = %q, want %q", got, DefaultEffect)
	}
}

// Dos líneas de una celda, alfabeto {A}: cada celda hace exactamente 10
// ticks separados 80ms y termina en su carácter original.
func TestFx3TwoSingleCellLines(t *testing.T) {
	log := tickLog{}
	e := newTestEngine("x\ny", WithAlphabet([]string{"A"}), WithRand(zeroRand{}), WithObserver(log.observe))
	if !e.Trigger("fx3") {
		t.Fatal("trigger rejected")
	}
	for _, l := range e.Lines() {
		if l.Cells[0].Content != Blank {
			t.Errorf("fx3 should clear cells first, got %q", l.Cells[0].Content)
		}
	}
	e.Settle()

	for li, orig := range []string{"x", "y"} {
		evs := log[[2]int{li, 0}]
		if len(evs) != 10 {
			t.Fatalf("line %d: %d ticks, want 10", li, len(evs))
		}
		for i, ev := range evs {
			if i > 0 {
				if gap := ev.At.Sub(evs[i-1].At); gap != 80*time.Millisecond {
					t.Errorf("line %d tick %d: gap %v, want 80ms", li, i, gap)
				}
			}
			want := "A"
			if i == 9 {
				want = orig
			}
			if ev.Content != want {
				t.Errorf("line %d tick %d: content %q, want %q", li, i, ev.Content, want)
			}
			if ev.Final != (i == 9) {
				t.Errorf("line %d tick %d: final = %v", li, i, ev.Final)
			}
		}
	}
	if e.Finished() != 2 || e.Busy() {
		t.Errorf("Finished = %d, Busy = %v", e.Finished(), e.Busy())
	}
}

func TestPropagationLagsOneTick(t *testing.T) {
	for _, name := range []string{"fx1", "fx4", "fx5"} {
		t.Run(name, func(t *testing.T) {
			log := tickLog{}
			e := newTestEngine("abcdef", WithObserver(log.observe))
			e.Trigger(name)
			e.Settle()

			checked := 0
			for ci := 1; ci < 6; ci++ {
				mine := log[[2]int{0, ci}]
				left := log[[2]int{0, ci - 1}]
				for k, ev := range mine {
					if ev.Final || k >= len(left) {
						continue
					}
					if !ev.At.Equal(left[k].At) {
						t.Fatalf("cell %d tick %d out of step with its neighbour", ci, k)
					}
					if ev.Content != left[k].Cache.Content {
						t.Errorf("cell %d tick %d: content %q, neighbour cache %q", ci, k, ev.Content, left[k].Cache.Content)
					}
					if k > 0 && ev.Content != left[k-1].Content {
						t.Errorf("cell %d tick %d: content %q, neighbour previous %q", ci, k, ev.Content, left[k-1].Content)
					}
					checked++
				}
			}
			if checked == 0 {
				t.Fatal("no ticks compared")
			}
		})
	}
}

func TestPropagationCarriesColor(t *testing.T) {
	var events []TickEvent
	e := newTestEngine("abcd", WithObserver(func(ev TickEvent) { events = append(events, ev) }))
	e.Trigger("fx5")

	// Tras 30 ticks todas las celdas muestran colores de la paleta.
	e.Advance(t0.Add(200*time.Millisecond + 30*10*time.Millisecond))
	fx, _ := Lookup("fx5")
	inPalette := func(c string) bool {
		for _, p := range fx.Palette {
			if p == c {
				return true
			}
		}
		return false
	}
	for _, l := range e.Lines() {
		for _, c := range l.Cells {
			if !inPalette(c.Color) {
				t.Errorf("cell %d color %q not from palette", c.Position, c.Color)
			}
			if c.Position > 0 {
				prev := l.Cells[c.Previous]
				if c.Color != prev.Cache().Color {
					t.Errorf("cell %d color %q, neighbour cache %q", c.Position, c.Color, prev.Cache().Color)
				}
			}
		}
	}
	if len(events) == 0 {
		t.Fatal("no ticks observed")
	}
}

func TestBlankCacheDoesNotConsumeIterations(t *testing.T) {
	log := tickLog{}
	e := newTestEngine("abc", WithRand(zeroRand{}), WithObserver(log.observe))
	e.Trigger("fx1")
	e.Settle()

	for ci := 0; ci < 3; ci++ {
		evs := log[[2]int{0, ci}]
		skipped := 0
		for _, ev := range evs {
			if !ev.Advanced {
				skipped++
				if ev.Cache.Content != Blank {
					t.Errorf("cell %d skipped a tick with cache %q", ci, ev.Cache.Content)
				}
			}
		}
		if skipped != ci+1 {
			t.Errorf("cell %d: %d non-advancing ticks, want %d", ci, skipped, ci+1)
		}
		if len(evs) != 45+skipped {
			t.Errorf("cell %d: %d ticks, want %d", ci, len(evs), 45+skipped)
		}
		if last := evs[len(evs)-1]; !last.Final || last.Iteration != 45 {
			t.Errorf("cell %d last tick = %+v", ci, last)
		}
	}
}

func TestScrambleAlwaysAdvances(t *testing.T) {
	log := tickLog{}
	e := newTestEngine("ab", WithObserver(log.observe))
	e.Trigger("fx3")
	e.Settle()
	for k, evs := range log {
		for _, ev := range evs {
			if !ev.Advanced {
				t.Fatalf("cell %v: scramble tick did not advance", k)
			}
		}
	}
}

func TestStartDelays(t *testing.T) {
	tests := []struct {
		effect string
		text   string
		first  map[[2]int]time.Duration
	}{
		{"fx1", "a\nb", map[[2]int]time.Duration{{0, 0}: 200 * time.Millisecond, {1, 0}: 400 * time.Millisecond}},
		{"fx2", "abc", map[[2]int]time.Duration{{0, 0}: 30 * time.Millisecond, {0, 2}: 90 * time.Millisecond}},
		{"fx3", "a", map[[2]int]time.Duration{{0, 0}: 0}},
		{"fx4", "a\nb\nc", map[[2]int]time.Duration{{0, 0}: 600 * time.Millisecond, {1, 0}: 200 * time.Millisecond, {2, 0}: 200 * time.Millisecond}},
		{"fx6", "a\nb", map[[2]int]time.Duration{{0, 0}: 80 * time.Millisecond, {1, 0}: 160 * time.Millisecond}},
	}
	for _, tt := range tests {
		t.Run(tt.effect, func(t *testing.T) {
			log := tickLog{}
			e := newTestEngine(tt.text, WithRand(zeroRand{}), WithObserver(log.observe))
			e.Trigger(tt.effect)
			e.Settle()
			for k, want := range tt.first {
				if got := log[k][0].At.Sub(t0); got != want {
					t.Errorf("cell %v starts after %v, want %v", k, got, want)
				}
			}
		})
	}
}

func TestFx6TickWithinBounds(t *testing.T) {
	log := tickLog{}
	e := newTestEngine("abcd", WithObserver(log.observe))
	e.Trigger("fx6")
	e.Settle()
	for k, evs := range log {
		if len(evs) != 15 {
			t.Errorf("cell %v: %d ticks, want 15", k, len(evs))
		}
		for i := 1; i < len(evs); i++ {
			gap := evs[i].At.Sub(evs[i-1].At)
			if gap < 30*time.Millisecond || gap > 110*time.Millisecond {
				t.Errorf("cell %v gap %v outside [30ms, 110ms]", k, gap)
			}
		}
	}
}

func TestFx2BlinksOnSettle(t *testing.T) {
	e := newTestEngine("ab", WithRand(zeroRand{}))
	e.Trigger("fx2")

	// Celda 0: arranca a 30ms, 19 ticks más de 40ms, se asienta a 790ms.
	e.Advance(t0.Add(790 * time.Millisecond))
	c := e.Lines()[0].Cells[0]
	if c.Content != "a" || c.Opacity != 0 {
		t.Fatalf("cell 0 after settle: content %q opacity %v", c.Content, c.Opacity)
	}
	if !e.Busy() {
		t.Fatal("cell 1 has not finished yet, engine should be busy")
	}

	e.Advance(t0.Add(850 * time.Millisecond))
	if e.Busy() {
		t.Fatal("engine busy after last cell settled")
	}
	if got := e.Lines()[0].Cells[0].Opacity; got != 0 {
		t.Fatalf("opacity back too early: %v", got)
	}

	e.Advance(t0.Add(1090 * time.Millisecond))
	if got := e.Lines()[0].Cells[0].Opacity; got != 1 {
		t.Errorf("cell 0 opacity = %v after blink, want 1", got)
	}
	if e.Pending() != 1 {
		t.Errorf("Pending = %d, want the blink of cell 1", e.Pending())
	}
}

func TestCancelDiscardsScheduledTicks(t *testing.T) {
	e := newTestEngine("abc\ndef")
	e.Trigger("fx3")
	e.Advance(t0.Add(100 * time.Millisecond))

	if !e.Cancel() {
		t.Fatal("Cancel on running engine = false")
	}
	if e.Busy() || e.Pending() != 0 {
		t.Errorf("after Cancel busy=%v pending=%d", e.Busy(), e.Pending())
	}
	if got := e.String(); got != "abc\ndef" {
		t.Errorf("cells not restored: %q", got)
	}
	if n := e.Advance(t0.Add(time.Hour)); n != 0 {
		t.Errorf("%d stale tasks ran after Cancel", n)
	}
	if e.Cancel() {
		t.Error("Cancel on idle engine = true")
	}
	if !e.Trigger("fx1") {
		t.Fatal("Trigger after Cancel rejected")
	}
	e.Settle()
	if e.Busy() || e.String() != "abc\ndef" {
		t.Errorf("retrigger did not complete: busy=%v text=%q", e.Busy(), e.String())
	}
}

func TestNextDue(t *testing.T) {
	e := newTestEngine("a\nb", WithRand(zeroRand{}))
	if _, ok := e.NextDue(); ok {
		t.Fatal("idle engine reports a due task")
	}
	e.Trigger("fx1")
	due, ok := e.NextDue()
	if !ok || !due.Equal(t0.Add(200*time.Millisecond)) {
		t.Errorf("NextDue = %v, %v", due, ok)
	}
}

func TestPanickingTickDoesNotDeadlock(t *testing.T) {
	e := newTestEngine("abc\nde", WithObserver(func(TickEvent) { panic("boom") }))
	e.Trigger("fx5")
	e.Settle()
	if e.Busy() {
		t.Fatal("engine stuck busy after panicking ticks")
	}
	if e.Finished() != e.Total() {
		t.Errorf("Finished = %d, Total = %d", e.Finished(), e.Total())
	}
	if got := e.String(); got != "abc\nde" {
		t.Errorf("cells not restored: %q", got)
	}
	if !e.Trigger("fx2") {
		t.Error("engine rejects new triggers after panics")
	}
}

func TestEmptyCharacterCell(t *testing.T) {
	seg := splitter.Text{Lines: []splitter.Line{{Words: []splitter.Word{{Chars: []string{"a", "", "b"}}}}}}
	e := NewFromSegments(seg, WithClock(&manualClock{now: t0}), WithRand(zeroRand{}))
	if e.Total() != 3 {
		t.Fatalf("Total = %d, want 3", e.Total())
	}
	e.Trigger("fx1")
	e.Settle()
	if e.Busy() || e.String() != "ab" {
		t.Errorf("busy=%v text=%q", e.Busy(), e.String())
	}
}

func TestWithEffectRegistersStrategy(t *testing.T) {
	custom := Effect{Name: "quick", MaxIterations: 0, TickMin: time.Millisecond, Basis: PerCell, Step: time.Millisecond, Rule: Scramble}
	e := newTestEngine("ab", WithEffect(custom))
	if !e.Trigger("quick") {
		t.Fatal("custom effect rejected")
	}
	if n := e.Settle(); n != 2 {
		t.Errorf("Settle ran %d ticks, want 2 (one per cell)", n)
	}
	names := e.Effects()
	if len(names) != 7 {
		t.Errorf("Effects = %v", names)
	}
}
