package services

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"trifecta/internal/config"
	"trifecta/internal/domain"
	"trifecta/internal/storage"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        ":memory:",
		Conn:       sqlDB,
	}, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Submission{}))
	return db
}

func newTestService(t *testing.T, emailCfg *config.EmailConfig, uploadsCfg *config.UploadsConfig) *SubmissionService {
	t.Helper()
	if emailCfg == nil {
		emailCfg = &config.EmailConfig{Enabled: false, NotifyEmail: "ops@example.com"}
	}
	if uploadsCfg == nil {
		uploadsCfg = &config.UploadsConfig{Strategy: config.PhotoStorageFile, Dir: t.TempDir()}
	}
	return NewSubmissionService(newTestDB(t), storage.NewPhotoStore(uploadsCfg), NewEmailService(emailCfg))
}

func validDraft() *SubmissionDraft {
	return &SubmissionDraft{
		CarName:     "Ferrari",
		CarColor:    "Red",
		CustomBase:  true,
		AcrylicCase: false,
		Name:        "Alice Smith",
		Phone:       "5551234567",
		Email:       "alice@example.com",
	}
}

func TestSubmit_PersistsAndRoundTrips(t *testing.T) {
	svc := newTestService(t, nil, nil)
	ctx := context.Background()

	sub, err := svc.Submit(ctx, validDraft())
	require.NoError(t, err)
	assert.NotZero(t, sub.ID)
	assert.False(t, sub.SubmittedAt.IsZero())

	views, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)

	view := views[0]
	assert.Equal(t, "yes", view.CustomBase)
	assert.Equal(t, "no", view.AcrylicCase)
	require.NotNil(t, view.CarName)
	assert.Equal(t, "Ferrari", *view.CarName)
	assert.Nil(t, view.CarPhoto)
	assert.Equal(t, "alice@example.com", view.Email)

	// Timestamp is ISO-8601
	_, err = time.Parse(time.RFC3339, view.SubmittedAt)
	assert.NoError(t, err)
}

func TestSubmit_ValidationFailureDoesNotPersist(t *testing.T) {
	svc := newTestService(t, nil, nil)

	draft := &SubmissionDraft{Name: "A1", Phone: "123", Email: "bad"}
	_, err := svc.Submit(context.Background(), draft)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 4) // carDetails plus three contact fields

	views, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestList_OrdersNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db, storage.NewPhotoStore(&config.UploadsConfig{Strategy: config.PhotoStorageBase64}),
		NewEmailService(&config.EmailConfig{}))

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, offset := range []time.Duration{0, time.Hour, 2 * time.Hour} {
		name := "Customer " + string(rune('A'+i))
		require.NoError(t, db.Create(&domain.Submission{
			Name:        name,
			Phone:       "5551234567",
			Email:       "c@example.com",
			SubmittedAt: base.Add(offset),
		}).Error)
	}

	views, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, "Customer C", views[0].Name)
	assert.Equal(t, "Customer B", views[1].Name)
	assert.Equal(t, "Customer A", views[2].Name)
}

func TestList_TiesBreakDeterministically(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db, storage.NewPhotoStore(&config.UploadsConfig{Strategy: config.PhotoStorageBase64}),
		NewEmailService(&config.EmailConfig{}))

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for _, name := range []string{"First", "Second"} {
		require.NoError(t, db.Create(&domain.Submission{
			Name: name, Phone: "5551234567", Email: "c@example.com", SubmittedAt: at,
		}).Error)
	}

	views, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)
	// Equal timestamps fall back to id descending.
	assert.Equal(t, "Second", views[0].Name)
	assert.Equal(t, "First", views[1].Name)
}

func TestSubmit_StoresPhotoMetadata(t *testing.T) {
	svc := newTestService(t, nil, &config.UploadsConfig{Strategy: config.PhotoStorageBase64})

	draft := validDraft()
	draft.CarName = ""
	draft.CarColor = ""
	draft.Photo = &PhotoUpload{Name: "car.jpg", ContentType: "image/jpeg", Data: []byte{0xff, 0xd8, 0xff}}

	_, err := svc.Submit(context.Background(), draft)
	require.NoError(t, err)

	views, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].CarPhoto)
	assert.Equal(t, "car.jpg", views[0].CarPhoto.Name)
	assert.Equal(t, int64(3), views[0].CarPhoto.Size)
	assert.NotEmpty(t, views[0].CarPhoto.Data)
	assert.Nil(t, views[0].CarName)
}

func TestSubmit_PhotoStorageFailureDowngrades(t *testing.T) {
	// Point the uploads directory at an existing file so MkdirAll fails.
	blocked := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	svc := newTestService(t, nil, &config.UploadsConfig{Strategy: config.PhotoStorageFile, Dir: blocked})

	draft := validDraft()
	draft.Photo = &PhotoUpload{Name: "car.jpg", ContentType: "image/jpeg", Data: []byte{1, 2, 3}}

	sub, err := svc.Submit(context.Background(), draft)
	require.NoError(t, err, "photo processing failure must not abort the submission")
	assert.Empty(t, sub.CarPhoto)

	views, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Nil(t, views[0].CarPhoto)
}

func TestSubmit_NotificationFailureIsIsolated(t *testing.T) {
	// Enabled email with an unreachable SMTP host: sending fails, the
	// submission must still persist and succeed.
	emailCfg := &config.EmailConfig{
		Enabled:     true,
		SMTPHost:    "127.0.0.1",
		SMTPPort:    1,
		Username:    "ops",
		Password:    "secret",
		FromEmail:   "ops@example.com",
		NotifyEmail: "ops@example.com",
	}
	svc := newTestService(t, emailCfg, nil)

	sub, err := svc.Submit(context.Background(), validDraft())
	require.NoError(t, err)
	assert.NotZero(t, sub.ID)

	views, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, views, 1)

	// The transport error surfaces only from the notification helper itself.
	assert.Error(t, svc.sendSubmissionNotification(sub))
}

func TestSendSubmissionNotification_DisabledSkips(t *testing.T) {
	svc := newTestService(t, nil, nil)
	sub, err := svc.Submit(context.Background(), validDraft())
	require.NoError(t, err)
	assert.NoError(t, svc.sendSubmissionNotification(sub))
}
