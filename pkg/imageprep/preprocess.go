package imageprep

import (
	"image"

	"github.com/up-zero/gotool/imageutil"
)

// Stage names, also used as artifact suffixes
const (
	StageGray   = "gray"
	StageBinary = "binary"
	StageResult = "result"
)

// Artifact is an image produced by a stage, kept for inspection
type Artifact struct {
	Stage string
	Image image.Image
}

// Name returns the artifact name for the given prefix, e.g. "work_gray"
func (a Artifact) Name(prefix string) string {
	if prefix == "" {
		return a.Stage
	}
	return prefix + "_" + a.Stage
}

// Result is the outcome of Preprocess
type Result struct {
	// Final is the image handed to the OCR engine. It is never nil.
	Final image.Image
	// Threshold is the Otsu threshold, or -1 when binarization did not run
	Threshold int
	// Artifacts holds one entry per stage that ran, followed by the result
	Artifacts []Artifact
}

// Preprocess runs the enabled stages in their fixed order:
// grayscale conversion first, then binarization.
func Preprocess(img image.Image, cfg Config) Result {
	cfg = cfg.Effective()

	res := Result{Final: img, Threshold: -1}

	if cfg.ConvertToGray {
		gray := Grayscale(img)
		res.Final = gray
		res.Artifacts = append(res.Artifacts, Artifact{Stage: StageGray, Image: gray})

		if cfg.ApplyBinarization {
			threshold := OtsuThreshold(gray)
			binary := Threshold(gray, threshold)
			res.Final = binary
			res.Threshold = int(threshold)
			res.Artifacts = append(res.Artifacts, Artifact{Stage: StageBinary, Image: binary})
		}
	}

	res.Artifacts = append(res.Artifacts, Artifact{Stage: StageResult, Image: res.Final})
	return res
}

// Grayscale converts img into a single channel image
func Grayscale(img image.Image) *image.Gray {
	if gray, ok := img.(*image.Gray); ok {
		return gray
	}
	return imageutil.Grayscale(img)
}

// IsSingleChannel reports whether img stores one channel per pixel
func IsSingleChannel(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	default:
		return false
	}
}
