package sim

import "github.com/aquilax/go-perlin"

// Decoration noise parameters. Variants cluster in patches roughly
// decorationScale world units across.
const (
	noiseAlpha      = 2.0
	noiseBeta       = 2.0
	noiseOctaves    = int32(3)
	decorationScale = 500.0
)

// scatterDecorations places the static ground cover. The variant at each
// spot is picked from a noise field so like variants group together.
func (w *World) scatterDecorations() {
	noise := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, int64(w.cfg.Seed))
	for range w.cfg.Decorations {
		pos := V(w.closed(w.cfg.WorldWidth), w.closed(w.cfg.WorldHeight))
		frame := FrameDecoration
		if noise.Noise2D(pos.X/decorationScale, pos.Y/decorationScale) > 0 {
			frame++
		}
		id := w.arena.Spawn(Entity{
			Kind:  KindDecoration,
			Pos:   pos,
			Z:     DepthGround,
			Frame: frame,
		})
		w.decorations = append(w.decorations, id)
	}
}

// closed returns a value in [-half, half].
func (w *World) closed(half float64) float64 {
	return min(half, w.uniform(half))
}
