package util

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"slices"

	"github.com/indieinfra/vitrine/asset"
	"github.com/indieinfra/vitrine/server/resp"
)

// AllowedImageTypes is the accepted set of upload content types. image/jpg
// is not a registered type but browsers and older clients still send it.
var AllowedImageTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}

// ImageForm wraps a parsed multipart request holding image uploads.
type ImageForm struct {
	form  *multipart.Form
	files []multipart.File
}

// ParseImageForm parses a multipart body, bounding the whole request at
// maxMemory bytes. On failure it writes the error response itself.
func ParseImageForm(w http.ResponseWriter, r *http.Request, maxMemory int64) (*ImageForm, bool) {
	if !RequireUploadContentType(w, r) {
		return nil, false
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxMemory)
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			resp.WritePayloadTooLarge(w, "request body too large")
		} else {
			resp.WriteInvalidRequest(w, fmt.Errorf("could not parse multipart body: %w", err).Error())
		}
		return nil, false
	}

	return &ImageForm{form: r.MultipartForm}, true
}

// Value returns the first string value for a form field, or "".
func (f *ImageForm) Value(key string) string {
	vals := f.form.Value[key]
	if len(vals) == 0 {
		return ""
	}

	return vals[0]
}

// Uploads opens between 1 and maxCount image files under the given field.
// Each file must be within maxFileSize and carry an allowed image content
// type. On any violation it writes the error response and reports false.
func (f *ImageForm) Uploads(w http.ResponseWriter, field string, maxCount int, maxFileSize int64) ([]asset.Upload, bool) {
	fhs := f.form.File[field]
	if len(fhs) == 0 {
		resp.WriteInvalidRequest(w, fmt.Sprintf("an image file is required under %q", field))
		return nil, false
	}
	if len(fhs) > maxCount {
		resp.WriteInvalidRequest(w, fmt.Sprintf("at most %d files allowed under %q", maxCount, field))
		return nil, false
	}

	var uploads []asset.Upload
	for _, fh := range fhs {
		if maxFileSize > 0 && fh.Size > maxFileSize {
			f.Close()
			resp.WritePayloadTooLarge(w, fmt.Sprintf("%q exceeds the %d byte limit", fh.Filename, maxFileSize))
			return nil, false
		}

		ct := fh.Header.Get("Content-Type")
		if !slices.Contains(AllowedImageTypes, ct) {
			f.Close()
			resp.WriteUnsupportedMediaType(w, fmt.Sprintf("%q is not an accepted image type", ct))
			return nil, false
		}

		file, err := fh.Open()
		if err != nil {
			f.Close()
			resp.WriteInternalServerError(w, "could not open uploaded file")
			return nil, false
		}

		f.files = append(f.files, file)
		uploads = append(uploads, asset.Upload{Reader: file, Size: fh.Size, Filename: fh.Filename})
	}

	return uploads, true
}

// Upload is Uploads for a single required file.
func (f *ImageForm) Upload(w http.ResponseWriter, field string, maxFileSize int64) (asset.Upload, bool) {
	uploads, ok := f.Uploads(w, field, 1, maxFileSize)
	if !ok {
		return asset.Upload{}, false
	}

	return uploads[0], true
}

// HasFile reports whether the field carries at least one file.
func (f *ImageForm) HasFile(field string) bool {
	return len(f.form.File[field]) > 0
}

// Close releases every file opened so far.
func (f *ImageForm) Close() {
	for _, file := range f.files {
		file.Close()
	}
	f.files = nil
}
