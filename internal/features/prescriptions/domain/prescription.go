package domain

import "errors"

// MaxImagesPerUpload caps the number of images bundled into one upload.
const MaxImagesPerUpload = 5

// ErrTooManyImages is returned when an upload exceeds MaxImagesPerUpload.
var ErrTooManyImages = errors.New("too many prescription images")

// ErrNoImages is returned when an upload contains no images.
var ErrNoImages = errors.New("no prescription images to upload")

// Image is a locally picked prescription photo pending upload.
type Image struct {
	// FileName is the local file name sent as the multipart part name.
	FileName string `json:"file_name"`
	// Data is the raw image content.
	Data []byte `json:"-"`
}
