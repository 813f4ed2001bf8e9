package imageprep

import "image"

// Histogram counts the pixels of each intensity
func Histogram(img *image.Gray) [256]int {
	var hist [256]int
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for _, v := range row {
			hist[v]++
		}
	}
	return hist
}

// OtsuThreshold picks the threshold that maximizes the between-class
// variance, which is the same as minimizing the intra-class variance.
// Pixels above the threshold form the foreground class. A uniform image
// yields 0.
func OtsuThreshold(img *image.Gray) uint8 {
	hist := Histogram(img)

	total := 0
	sumAll := 0.0
	for v, n := range hist {
		total += n
		sumAll += float64(v * n)
	}

	var (
		best       uint8
		bestVar    float64
		background int
		sumBack    float64
	)

	for t := 0; t < 256; t++ {
		background += hist[t]
		sumBack += float64(t * hist[t])
		if background == 0 {
			continue
		}

		foreground := total - background
		if foreground == 0 {
			break
		}

		meanBack := sumBack / float64(background)
		meanFore := (sumAll - sumBack) / float64(foreground)
		diff := meanBack - meanFore
		between := float64(background) * float64(foreground) * diff * diff

		if between > bestVar {
			bestVar = between
			best = uint8(t)
		}
	}

	return best
}

// Threshold maps pixels above t to 255 and all others to 0
func Threshold(img *image.Gray, t uint8) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		src := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		dst := out.Pix[out.PixOffset(b.Min.X, y):out.PixOffset(b.Max.X, y)]
		for i, v := range src {
			if v > t {
				dst[i] = 255
			}
		}
	}
	return out
}
