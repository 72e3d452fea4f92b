package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Import for PNG decoding support
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const (
	// MaxFaceProfileSize is the largest accepted upload.
	MaxFaceProfileSize = 10 << 20

	faceProfileMaxDimension = 640
	faceProfileQuality      = 85
)

var (
	ErrUnsupportedFileType = errors.New("invalid file type: only jpg, jpeg, png allowed")
	ErrInvalidImage        = errors.New("file is not a readable image")
	ErrFileTooLarge        = errors.New("file exceeds the 10MB limit")
)

type FileService interface {
	// UploadFaceProfile stores a downscaled JPEG copy of the photo and returns its storage key.
	UploadFaceProfile(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)

	DeleteFile(ctx context.Context, path string) error
	GetFileURL(path string) string
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadFaceProfile implements FileService.
func (s *fileServiceImpl) UploadFaceProfile(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", ErrUnsupportedFileType
	}

	buffer, err := io.ReadAll(io.LimitReader(file, MaxFaceProfileSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(buffer) > MaxFaceProfileSize {
		return "", ErrFileTooLarge
	}

	compressed, err := downscaleImage(buffer, faceProfileMaxDimension, faceProfileQuality)
	if err != nil {
		return "", err
	}

	// Always output as JPEG: faces/{employeeID}/{uuid}.jpg
	key := path.Join("faces", employeeID, uuid.New().String()+".jpg")

	uploadedPath, err := s.storage.Upload(ctx, bytes.NewReader(compressed), key, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload face profile: %w", err)
	}

	return uploadedPath, nil
}

// DeleteFile deletes a file
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// GetFileURL generates URL to access file
func (s *fileServiceImpl) GetFileURL(path string) string {
	return s.storage.URL(path)
}

// downscaleImage re-encodes an image as JPEG, shrinking it so that its longest
// side is at most maxDimension. Smaller images keep their size.
func downscaleImage(buffer []byte, maxDimension int, quality int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > maxDimension || height > maxDimension {
		if width >= height {
			height = height * maxDimension / width
			width = maxDimension
		} else {
			width = width * maxDimension / height
			height = maxDimension
		}
		img = resizeImage(img, max(width, 1), max(height, 1))
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// resizeImage resizes an image to the specified dimensions using high-quality interpolation
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	// Use CatmullRom for high-quality downscaling
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
