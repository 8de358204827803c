// Package document prepares identity document verification requests from
// images on the local filesystem. Images can be JPG, GIF or PNG.
package document

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"secureid/internal/verification/models"
	dErrors "secureid/pkg/domain-errors"
	"secureid/pkg/validation"
)

// ImageLoader reads an image and returns it base64 encoded.
type ImageLoader interface {
	Load(ctx context.Context, path string) (string, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct {
	// MaxBytes caps the image size; zero means validation.MaxImageBytes.
	MaxBytes int64
}

func (l FileLoader) Load(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	maxBytes := l.MaxBytes
	if maxBytes <= 0 {
		maxBytes = validation.MaxImageBytes
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeIllegalArgument, fmt.Sprintf("unable to read image %s", path))
	}
	if err := validation.CheckByteSize("image "+path, info.Size(), maxBytes); err != nil {
		return "", err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeIllegalArgument, fmt.Sprintf("unable to read image %s", path))
	}
	if len(raw) == 0 {
		return "", dErrors.New(dErrors.CodeIllegalArgument, fmt.Sprintf("image %s is empty", path))
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// BuildDocumentVerificationRequest loads the images named by info and returns
// input ready for VerifyIdentityDocument or CaptureAndVerifyIdentityDocument.
// A nil loader reads from the local filesystem.
func BuildDocumentVerificationRequest(ctx context.Context, loader ImageLoader, info models.IDDocumentInfo) (*models.VerifyIdentityDocumentInput, error) {
	if err := validation.Validate(info); err != nil {
		return nil, err
	}
	if loader == nil {
		loader = FileLoader{}
	}

	front, err := loader.Load(ctx, info.FrontImagePath)
	if err != nil {
		return nil, err
	}
	back := front
	// Passports have no back; callers pass the front path twice.
	if info.BackImagePath != info.FrontImagePath {
		if back, err = loader.Load(ctx, info.BackImagePath); err != nil {
			return nil, err
		}
	}

	input := &models.VerifyIdentityDocumentInput{
		VerificationMethod: models.VerificationMethodGovernmentID,
		ImageBase64:        front,
		BackImageBase64:    back,
		Country:            info.Country,
		DocumentType:       info.DocumentType,
	}
	if info.FaceImagePath != "" {
		face, err := loader.Load(ctx, info.FaceImagePath)
		if err != nil {
			return nil, err
		}
		input.FaceImageBase64 = &face
	}
	return input, nil
}
