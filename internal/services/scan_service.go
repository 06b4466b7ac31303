package services

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"dermacare/internal/models"
	"dermacare/internal/ranking"
	"dermacare/internal/repositories"
)

var (
	ErrScanNotFound = errors.New("scan not found")
	ErrNotScanOwner = errors.New("scan belongs to another user")
)

// ScanService persists classification results and enforces that a scan is
// visible only to its owning account.
type ScanService struct {
	repo      repositories.ScanRepository
	filesRoot string
}

func NewScanService(repo repositories.ScanRepository, filesRoot string) *ScanService {
	return &ScanService{repo: repo, filesRoot: filepath.Clean(filesRoot)}
}

// CreateFromPrediction derives severity/advice from the label and stores the
// scan together with the uploaded image.
func (s *ScanService) CreateFromPrediction(userID int, pred *Prediction, image []byte) (*models.Scan, error) {
	severity, advice, err := ranking.MapSeverity(pred.Label)
	if err != nil {
		return nil, err
	}
	disease, err := ranking.FullForm(pred.Label)
	if err != nil {
		return nil, err
	}

	scan := &models.Scan{
		ID:         uuid.NewString(),
		UserID:     userID,
		Diagnosis:  disease,
		Label:      pred.Label,
		Confidence: pred.Confidence,
		Severity:   string(severity),
		Advice:     advice,
		IsSafe:     ranking.IsSafe(severity),
		CreatedAt:  time.Now(),
	}

	if len(image) > 0 {
		path, err := s.storeImage(scan.ID, image)
		if err != nil {
			log.Printf("[scan][create] warning: failed to store image for %s: %v", scan.ID, err)
		} else {
			scan.ImagePath = path
		}
	}

	if err := s.repo.Create(scan); err != nil {
		return nil, err
	}
	return scan, nil
}

func (s *ScanService) storeImage(scanID string, image []byte) (string, error) {
	dir := filepath.Join(s.filesRoot, "scans")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("scan image dir: %w", err)
	}
	path := filepath.Join(dir, scanID+".jpg")
	if err := os.WriteFile(path, image, 0o644); err != nil {
		return "", fmt.Errorf("scan image write: %w", err)
	}
	return path, nil
}

func (s *ScanService) ListByUser(userID, limit, offset int) ([]*models.Scan, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListByUser(userID, limit, offset)
}

// GetOwned fetches a scan and verifies ownership.
func (s *ScanService) GetOwned(id string, userID int) (*models.Scan, error) {
	scan, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if scan == nil {
		return nil, ErrScanNotFound
	}
	if scan.UserID != userID {
		return nil, ErrNotScanOwner
	}
	return scan, nil
}

// Delete removes an owned scan and its stored image. Deletion is logged
// explicitly here instead of via an observer hook.
func (s *ScanService) Delete(id string, userID int) error {
	scan, err := s.GetOwned(id, userID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	if scan.ImagePath != "" {
		if err := os.Remove(scan.ImagePath); err != nil && !os.IsNotExist(err) {
			log.Printf("[scan][delete] warning: failed to remove image %s: %v", scan.ImagePath, err)
		}
	}
	log.Printf("[scan][delete] id=%s user_id=%d diagnosis=%q", scan.ID, userID, scan.Diagnosis)
	return nil
}
