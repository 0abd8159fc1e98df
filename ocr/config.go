package ocr

// Config holds configuration for region detection
type Config struct {
	// Languages is the Tesseract language string. Multiple languages are
	// "+" separated.
	// Default: "kor+eng"
	Languages string
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Languages: "kor+eng",
	}
}
