package wenji

import (
	"path"
	"strings"
)

// Media types of embedded images.
const (
	MediaTypeJPEG = "image/jpeg"
	MediaTypePNG  = "image/png"
	MediaTypeGIF  = "image/gif"
	MediaTypeSVG  = "image/svg+xml"
)

// MediaTypeByExtension infers an image media type from a file name.
// Unknown extensions default to JPEG.
func MediaTypeByExtension(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".png":
		return MediaTypePNG
	case ".gif":
		return MediaTypeGIF
	case ".svg":
		return MediaTypeSVG
	default:
		return MediaTypeJPEG
	}
}
