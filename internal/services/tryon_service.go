package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"kiyim/internal/repositories"
	"kiyim/pkg/imagestore"
	"kiyim/pkg/replicate"
)

// idmVTONVersion pins the IDM-VTON model version on Replicate.
const idmVTONVersion = "c871bb9b046607b680449ecbae55fd8c6d945e0a1948644bf2361b3d021d3ff4"

// Fixed synthesis parameters for the try-on model.
const (
	tryOnDenoiseSteps = 30
	tryOnSeed         = 42
)

// Try-on specific sentinels.
var (
	// ErrCredential marks a rejected remote API credential.
	ErrCredential = errors.New("invalid API credential")
	// ErrRemote marks any other remote try-on failure.
	ErrRemote = errors.New("remote try-on service error")
)

// placementZone maps a product category to the coarse body region the
// synthesis model needs. Everything except footwear lands on the upper
// body.
func placementZone(category string) string {
	if category == "oyoq" {
		return "lower_body"
	}
	return "upper_body"
}

// TryOnService submits virtual try-on jobs to the remote image synthesis
// provider and reports their status. It keeps no local job state: the
// prediction id returned on submit is the only handle, held by the
// caller and replayed on each poll.
type TryOnService struct {
	productRepo repositories.ProductRepository
	store       imagestore.Store
	baseURL     string // overrides the remote API endpoint, for tests
}

// NewTryOnService creates a new TryOnService. baseURL may be empty to
// use the real Replicate endpoint.
func NewTryOnService(productRepo repositories.ProductRepository, store imagestore.Store, baseURL string) *TryOnService {
	return &TryOnService{
		productRepo: productRepo,
		store:       store,
		baseURL:     baseURL,
	}
}

// client builds a per-call remote client so each request's credential
// stays isolated from concurrent requests.
func (s *TryOnService) client(apiKey string) *replicate.Client {
	if s.baseURL != "" {
		return replicate.NewClient(apiKey, replicate.WithBaseURL(s.baseURL))
	}
	return replicate.NewClient(apiKey)
}

// TryOnResult is the submit response: the remote job id plus its initial
// status.
type TryOnResult struct {
	PredictionID string `json:"prediction_id"`
	Status       string `json:"status"`
}

// Submit sends a try-on job combining the person photo with the
// product's primary garment image. person is the raw uploaded image;
// personType its content type (may be empty).
func (s *TryOnService) Submit(ctx context.Context, apiKey, productID string, person []byte, personType string) (*TryOnResult, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: api_key is required", ErrValidation)
	}
	if len(person) == 0 {
		return nil, fmt.Errorf("%w: person_image is required", ErrValidation)
	}
	if productID == "" {
		return nil, fmt.Errorf("%w: product_id is required", ErrValidation)
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	main := product.MainImage()
	if main == nil {
		return nil, fmt.Errorf("%w: product has no image", ErrValidation)
	}

	garment, err := s.readImage(main.Image)
	if err != nil {
		return nil, err
	}

	if personType == "" {
		personType = "image/jpeg"
	}
	garmentType := mime.TypeByExtension(filepath.Ext(main.Image))
	if garmentType == "" {
		garmentType = "image/jpeg"
	}

	prediction, err := s.client(apiKey).CreatePrediction(ctx, idmVTONVersion, replicate.PredictionInput{
		"human_img":       replicate.DataURI(personType, person),
		"garm_img":        replicate.DataURI(garmentType, garment),
		"garment_des":     product.Name,
		"is_checked":      true,
		"is_checked_crop": false,
		"denoise_steps":   tryOnDenoiseSteps,
		"seed":            tryOnSeed,
		"category":        placementZone(product.Category),
	})
	if err != nil {
		return nil, s.classifyRemoteError(err)
	}

	return &TryOnResult{PredictionID: prediction.ID, Status: prediction.Status}, nil
}

// TryOnStatus reports the remote job's current state. The remote system
// owns the state machine (starting, processing, succeeded, failed,
// canceled); this side only observes it.
type TryOnStatus struct {
	Status string  `json:"status"`
	Output *string `json:"output"`
	Error  *string `json:"error"`
	Logs   string  `json:"logs"`
}

// Status fetches the job record and normalizes its output to a single
// nullable URL. Logs are trimmed to their last 400 characters.
func (s *TryOnService) Status(ctx context.Context, apiKey, predictionID string) (*TryOnStatus, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: api_key is required", ErrValidation)
	}

	prediction, err := s.client(apiKey).GetPrediction(ctx, predictionID)
	if err != nil {
		return nil, s.classifyRemoteError(err)
	}

	status := &TryOnStatus{
		Status: prediction.Status,
		Logs:   lastChars(prediction.Logs, 400),
	}
	if url := prediction.OutputURL(); url != "" {
		status.Output = &url
	}
	if prediction.Error != "" {
		errText := prediction.Error
		status.Error = &errText
	}
	return status, nil
}

// classifyRemoteError distinguishes credential rejections from other
// remote failures; the latter are truncated so giant provider payloads
// never reach the user verbatim.
func (s *TryOnService) classifyRemoteError(err error) error {
	if replicate.IsAuthError(err) {
		return fmt.Errorf("%w: %s", ErrCredential, firstChars(err.Error(), 300))
	}
	return fmt.Errorf("%w: %s", ErrRemote, firstChars(err.Error(), 300))
}

func (s *TryOnService) readImage(ref string) ([]byte, error) {
	rc, err := s.store.Open(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to read garment image %s: %w", ref, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read garment image %s: %w", ref, err)
	}
	return data, nil
}

func firstChars(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func lastChars(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}
