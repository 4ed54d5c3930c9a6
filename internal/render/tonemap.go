package render

import (
	"image"

	"github.com/chewxy/math32"
)

// acesTonemap применяет простую аппроксимацию ACES-фильма к одному
// каналу линейного HDR-цвета (0..+inf) и возвращает значение в [0,1].
func acesTonemap(x float32) float32 {
	if x <= 0 {
		return 0
	}
	// x*(a*x + b) / (x*(c*x + d) + e)
	const a = 2.51
	const b = 0.03
	const c = 2.43
	const d = 0.59
	const e = 0.14

	num := x * (a*x + b)
	den := x*(c*x+d) + e
	if den <= 0 {
		return 0
	}
	r := num / den
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// linearToSRGB converts one linear channel in [0,1] to sRGB.
func linearToSRGB(x float32) float32 {
	if x <= 0.0031308 {
		return 12.92 * x
	}
	return 1.055*math32.Pow(x, 1/2.4) - 0.055
}

// writeRGBA converts the accumulation buffer (RGB float32 triplets,
// summed over passes) into img, averaging, tonemapping and converting
// to sRGB. The alpha channel is fully opaque.
func writeRGBA(accum []float32, passes int, img *image.RGBA) {
	if passes < 1 {
		passes = 1
	}
	inv := 1 / float32(passes)

	w := img.Rect.Dx()
	h := img.Rect.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 3
			o := img.PixOffset(x, y)
			for ch := 0; ch < 3; ch++ {
				v := linearToSRGB(acesTonemap(accum[i+ch] * inv))
				img.Pix[o+ch] = uint8(v*255 + 0.5)
			}
			img.Pix[o+3] = 255
		}
	}
}
