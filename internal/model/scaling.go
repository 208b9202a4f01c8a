package model

import "math"

// ScaleMode controls how photo print sizes are adjusted before packing.
type ScaleMode string

const (
	ScaleNone ScaleMode = "none" // Keep authored sizes
	ScaleDown ScaleMode = "down" // Shrink prints that exceed the printable area or max size
	ScaleUp   ScaleMode = "up"   // Grow prints whose short side is below min size
	ScaleBoth ScaleMode = "both" // Resize every print to 30% of the short printable side
)

// ScaleModes lists the supported scale modes.
func ScaleModes() []string {
	return []string{string(ScaleNone), string(ScaleDown), string(ScaleUp), string(ScaleBoth)}
}

// bothTargetFraction is the share of the short printable side used as the long
// print side in ScaleBoth mode.
const bothTargetFraction = 0.3

// ApplyScaling returns copies of the photos with print sizes adjusted for the
// given mode. Every mode other than ScaleNone clamps the result so the short
// side is at least minSize and the long side at most maxSize. Aspect ratios
// are preserved.
func ApplyScaling(photos []Photo, printableW, printableH float64, mode ScaleMode, minSize, maxSize float64) []Photo {
	out := make([]Photo, len(photos))
	copy(out, photos)
	if mode == ScaleNone || mode == "" {
		return out
	}

	for i := range out {
		p := &out[i]
		if p.Width <= 0 || p.Height <= 0 {
			continue
		}
		w, h := p.Width, p.Height

		switch mode {
		case ScaleDown:
			if w > printableW || h > printableH {
				s := math.Min(printableW/w, printableH/h)
				w, h = w*s, h*s
			}
			if long := math.Max(w, h); maxSize > 0 && long > maxSize {
				s := maxSize / long
				w, h = w*s, h*s
			}
		case ScaleUp:
			if short := math.Min(w, h); short < minSize {
				s := minSize / short
				w, h = w*s, h*s
			}
		case ScaleBoth:
			target := math.Min(printableW, printableH) * bothTargetFraction
			target = math.Max(minSize, math.Min(maxSize, target))
			ratio := w / h
			if ratio >= 1 {
				w, h = target, target/ratio
			} else {
				w, h = target*ratio, target
			}
		}

		// The minimum beats fitting the page: a long panorama shrunk by
		// ScaleDown can grow back past the printable area here, and the
		// packer then rejects it as oversize.
		if short := math.Min(w, h); minSize > 0 && short < minSize {
			s := minSize / short
			w, h = w*s, h*s
		}
		if long := math.Max(w, h); maxSize > 0 && long > maxSize {
			s := maxSize / long
			w, h = w*s, h*s
		}
		p.Width, p.Height = w, h
	}
	return out
}
