// internal/middleware/upload.go
package middleware

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/catalogadmin/backend/internal/errs"
	"github.com/catalogadmin/backend/internal/i18n"
	"github.com/catalogadmin/backend/internal/services"
	"github.com/catalogadmin/backend/internal/utils"
)

const (
	imagesField      = "images"
	contextKeyImages = "images"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/jpg":  true,
	"image/jfif": true,
}

// ImageUpload reads the multipart "images" field, rejects anything that is not a JPEG or
// PNG within the limits, and leaves the accepted files for the handler.
func ImageUpload(maxFiles int, maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
			c.Set(contextKeyImages, []services.ImageFile{})
			c.Next()
			return
		}

		form, err := c.MultipartForm()
		if err != nil {
			utils.AbortWithError(c, errs.Validation(i18n.KeyValidationInvalid, nil).WithArgs("form"))
			return
		}

		headers := form.File[imagesField]
		if len(headers) > maxFiles {
			utils.AbortWithError(c, errs.Validation(i18n.KeyFileTooMany, nil).WithArgs(maxFiles))
			return
		}

		files := make([]services.ImageFile, 0, len(headers))
		for _, fh := range headers {
			details := []utils.ValidationError{{Field: imagesField, Tag: "file", Message: fh.Filename}}

			if fh.Size > maxSize {
				utils.AbortWithError(c, errs.Validation(i18n.KeyFileTooLarge, details))
				return
			}
			if !allowedImageTypes[strings.ToLower(fh.Header.Get("Content-Type"))] {
				utils.AbortWithError(c, errs.Validation(i18n.KeyFileInvalidType, details))
				return
			}

			data, err := readFile(fh, maxSize)
			if err != nil {
				utils.AbortWithError(c, errs.Wrap(errs.KindValidation, i18n.KeyFileUploadFailed, err))
				return
			}
			if int64(len(data)) > maxSize {
				utils.AbortWithError(c, errs.Validation(i18n.KeyFileTooLarge, details))
				return
			}

			// the declared type is client controlled, so check the bytes as well
			detected := mimetype.Detect(data)
			if !detected.Is("image/jpeg") && !detected.Is("image/png") {
				utils.AbortWithError(c, errs.Validation(i18n.KeyFileInvalidType, details))
				return
			}

			files = append(files, services.ImageFile{
				Filename:    fh.Filename,
				ContentType: detected.String(),
				Data:        data,
			})
		}

		c.Set(contextKeyImages, files)
		c.Next()
	}
}

// UploadedImages returns the files accepted by ImageUpload.
func UploadedImages(c *gin.Context) []services.ImageFile {
	if files, ok := c.Get(contextKeyImages); ok {
		if images, ok := files.([]services.ImageFile); ok {
			return images
		}
	}
	return nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return data, nil
}
