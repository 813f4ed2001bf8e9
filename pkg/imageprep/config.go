package imageprep

// Config selects the preprocessing stages
type Config struct {
	// ConvertToGray turns the image into a single channel image
	ConvertToGray bool `toml:"convert_to_gray"`
	// ApplyBinarization thresholds the grayscale image into black and white
	ApplyBinarization bool `toml:"apply_binarization"`
}

// DefaultConfig returns grayscale on and binarization off
func DefaultConfig() Config {
	return Config{
		ConvertToGray:     true,
		ApplyBinarization: false,
	}
}

// Effective returns the configuration the stages actually run with.
// Thresholding needs a single channel input, so binarization always turns
// grayscale conversion on, even when it was explicitly disabled.
func (c Config) Effective() Config {
	if c.ApplyBinarization {
		c.ConvertToGray = true
	}
	return c
}
