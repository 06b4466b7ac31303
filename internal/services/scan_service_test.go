package services

import (
	"errors"
	"os"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dermacare/internal/models"
	"dermacare/internal/ranking"
)

type memScanRepo struct {
	mu   sync.Mutex
	rows map[string]*models.Scan
}

func newMemScanRepo() *memScanRepo {
	return &memScanRepo{rows: make(map[string]*models.Scan)}
}

func (r *memScanRepo) Create(scan *models.Scan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *scan
	r.rows[scan.ID] = &copied
	return nil
}

func (r *memScanRepo) GetByID(id string) (*models.Scan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.rows[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, nil
}

func (r *memScanRepo) ListByUser(userID, limit, offset int) ([]*models.Scan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Scan
	for _, s := range r.rows {
		if s.UserID == userID {
			copied := *s
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memScanRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func TestCreateFromPredictionDerivesSeverity(t *testing.T) {
	svc := NewScanService(newMemScanRepo(), t.TempDir())

	scan, err := svc.CreateFromPrediction(7, &Prediction{Label: "mel", Confidence: 0.93}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, scan.ID)
	assert.Equal(t, 7, scan.UserID)
	assert.Equal(t, "Melanoma", scan.Diagnosis)
	assert.Equal(t, "High", scan.Severity)
	assert.False(t, scan.IsSafe)
	assert.NotEmpty(t, scan.Advice)

	scan, err = svc.CreateFromPrediction(7, &Prediction{Label: "nv", Confidence: 0.88}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Low", scan.Severity)
	assert.True(t, scan.IsSafe)
}

func TestCreateFromPredictionUnknownLabel(t *testing.T) {
	svc := NewScanService(newMemScanRepo(), t.TempDir())

	_, err := svc.CreateFromPrediction(7, &Prediction{Label: "xyz"}, nil)
	assert.True(t, errors.Is(err, ranking.ErrUnknownLabel))
}

func TestCreateFromPredictionStoresImage(t *testing.T) {
	svc := NewScanService(newMemScanRepo(), t.TempDir())

	scan, err := svc.CreateFromPrediction(1, &Prediction{Label: "bkl"}, []byte("jpegbytes"))
	require.NoError(t, err)
	require.NotEmpty(t, scan.ImagePath)

	data, err := os.ReadFile(scan.ImagePath)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpegbytes"), data)
}

func TestGetOwnedEnforcesOwnership(t *testing.T) {
	repo := newMemScanRepo()
	svc := NewScanService(repo, t.TempDir())

	scan, err := svc.CreateFromPrediction(1, &Prediction{Label: "df"}, nil)
	require.NoError(t, err)

	got, err := svc.GetOwned(scan.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, scan.ID, got.ID)

	_, err = svc.GetOwned(scan.ID, 2)
	assert.True(t, errors.Is(err, ErrNotScanOwner))

	_, err = svc.GetOwned("missing-id", 1)
	assert.True(t, errors.Is(err, ErrScanNotFound))
}

func TestDeleteRemovesScanAndImage(t *testing.T) {
	repo := newMemScanRepo()
	svc := NewScanService(repo, t.TempDir())

	scan, err := svc.CreateFromPrediction(1, &Prediction{Label: "vasc"}, []byte("img"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(scan.ID, 1))

	_, err = svc.GetOwned(scan.ID, 1)
	assert.True(t, errors.Is(err, ErrScanNotFound))
	_, err = os.Stat(scan.ImagePath)
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteRejectsForeignScan(t *testing.T) {
	repo := newMemScanRepo()
	svc := NewScanService(repo, t.TempDir())

	scan, err := svc.CreateFromPrediction(1, &Prediction{Label: "nv"}, nil)
	require.NoError(t, err)

	err = svc.Delete(scan.ID, 99)
	assert.True(t, errors.Is(err, ErrNotScanOwner))

	// still present for the owner
	_, err = svc.GetOwned(scan.ID, 1)
	assert.NoError(t, err)
}

func TestListByUserClampsLimit(t *testing.T) {
	repo := newMemScanRepo()
	svc := NewScanService(repo, t.TempDir())

	for i := 0; i < 3; i++ {
		_, err := svc.CreateFromPrediction(1, &Prediction{Label: "nv"}, nil)
		require.NoError(t, err)
	}
	_, err := svc.CreateFromPrediction(2, &Prediction{Label: "nv"}, nil)
	require.NoError(t, err)

	scans, err := svc.ListByUser(1, 0, 0)
	require.NoError(t, err)
	assert.Len(t, scans, 3, "default limit applies, other users excluded")

	scans, err = svc.ListByUser(1, 2, 0)
	require.NoError(t, err)
	assert.Len(t, scans, 2)
}
