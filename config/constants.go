package config

// Canvas and Layout Constants
const (
	// CanvasWidth is the output frame width
	CanvasWidth = 1280

	// CanvasHeight is the output frame height
	CanvasHeight = 720

	// MaxTextWidth is the pixel budget for one wrapped body line
	MaxTextWidth = 560

	// MaxLinesPerSlide is the number of wrapped lines per slide
	MaxLinesPerSlide = 8

	// BodyFontSize is the point size for slide body text
	BodyFontSize = 28

	// TitleFontSize is the point size for the product title
	TitleFontSize = 30

	// LineGap is the vertical spacing between body lines in pixels
	LineGap = 10

	// TextMarginX is the left margin for title and body text
	TextMarginX = 50

	// TitleBandY is the top offset of the title band
	TitleBandY = 200

	// BrandMarkX and BrandMarkY position the brand mark at the top-left
	BrandMarkX = 20
	BrandMarkY = 20

	// ImageMaxWidth and ImageMaxHeight bound the product photo box
	ImageMaxWidth  = 640
	ImageMaxHeight = 360

	// ImageRightMargin is the gap between the photo and the right edge
	ImageRightMargin = 50
)

// Video Output Constants
const (
	// VideoCodec is the video encoding codec
	VideoCodec = "libx264"

	// AudioCodec is the audio encoding codec
	AudioCodec = "aac"

	// AudioBitrate is the audio quality bitrate
	AudioBitrate = "192k"

	// VideoPreset is the ffmpeg encoding speed preset
	VideoPreset = "fast"

	// FrameRate is the output frame rate for static-image clips
	FrameRate = 24
)

// Processing Constants
const (
	// MaxConcurrentProducts limits products generated simultaneously in a batch
	MaxConcurrentProducts = 2

	// MaxConcurrentSlides limits per-slide synthesis/render goroutines
	MaxConcurrentSlides = 4
)
