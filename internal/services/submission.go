package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"trifecta/internal/domain"
	"trifecta/internal/metrics"
	"trifecta/internal/storage"
	"trifecta/internal/validation"
	apperrors "trifecta/pkg/errors"
)

// SubmissionService accepts, persists and lists intake form submissions
type SubmissionService struct {
	db          *gorm.DB
	photos      *storage.PhotoStore
	email       *EmailService
	notifyEmail string
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(db *gorm.DB, photos *storage.PhotoStore, email *EmailService) *SubmissionService {
	return &SubmissionService{
		db:          db,
		photos:      photos,
		email:       email,
		notifyEmail: email.NotifyAddress(),
	}
}

// PhotoUpload carries an uploaded car photo through submission processing.
type PhotoUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

// SubmissionDraft is the parsed multipart payload.
type SubmissionDraft struct {
	CarName     string
	CarColor    string
	CustomBase  bool
	AcrylicCase bool
	Name        string
	Phone       string
	Email       string
	Photo       *PhotoUpload
}

func (d *SubmissionDraft) validationDraft() validation.Draft {
	v := validation.Draft{
		CarName:     d.CarName,
		CarColor:    d.CarColor,
		CustomBase:  d.CustomBase,
		AcrylicCase: d.AcrylicCase,
		Name:        d.Name,
		Phone:       d.Phone,
		Email:       d.Email,
	}
	if d.Photo != nil && len(d.Photo.Data) > 0 {
		v.CarPhoto = &validation.PhotoInfo{
			Name: d.Photo.Name,
			Size: int64(len(d.Photo.Data)),
			Type: d.Photo.ContentType,
		}
	}
	return v
}

// Submit re-validates the draft, persists the submission in a single write
// and kicks off the best-effort notification email. The email runs after the
// write and can never change the outcome.
func (s *SubmissionService) Submit(ctx context.Context, d *SubmissionDraft) (*domain.Submission, error) {
	log.Printf("[SUBMISSION] Submit request: name=%s, email=%s", strings.TrimSpace(d.Name), strings.TrimSpace(d.Email))

	// Never trust client-side validation alone
	if res := validation.ValidateComplete(d.validationDraft()); !res.Valid() {
		log.Printf("[SUBMISSION] Submit failed: validation error: %d field(s)", len(res.Errors))
		metrics.RecordValidationFailure()
		return nil, NewValidationError(res)
	}

	submission := domain.Submission{
		CarName:     optionalString(d.CarName),
		CarColor:    optionalString(d.CarColor),
		CustomBase:  d.CustomBase,
		AcrylicCase: d.AcrylicCase,
		Name:        d.Name,
		Phone:       d.Phone,
		Email:       strings.ToLower(strings.TrimSpace(d.Email)),
		SubmittedAt: time.Now().UTC(),
	}

	// Photo processing is lenient: a storage failure downgrades to "no photo
	// stored" instead of aborting the submission.
	if d.Photo != nil && len(d.Photo.Data) > 0 {
		meta, err := s.photos.Store(d.Photo.Name, d.Photo.ContentType, d.Photo.Data)
		metrics.RecordPhotoUpload(s.photos.Strategy(), err == nil)
		if err != nil {
			log.Printf("[SUBMISSION] Warning: failed to store photo %q, continuing without it: %v", d.Photo.Name, err)
		} else if encoded, err := json.Marshal(meta); err != nil {
			log.Printf("[SUBMISSION] Warning: failed to encode photo metadata: %v", err)
		} else {
			submission.CarPhoto = encoded
		}
	}

	if err := s.db.WithContext(ctx).Create(&submission).Error; err != nil {
		log.Printf("[SUBMISSION] Submit failed: database error: %v", err)
		return nil, apperrors.Wrap(apperrors.ErrCodePersistence, "failed to save submission", err)
	}

	log.Printf("[SUBMISSION] Submit successful: id=%d, name=%s", submission.ID, submission.Name)
	metrics.RecordSubmission()

	// Send email notification to the operator (async, don't fail if email fails)
	go func(sub domain.Submission) {
		if err := s.sendSubmissionNotification(&sub); err != nil {
			log.Printf("[SUBMISSION] Warning: failed to send notification email: %v", err)
			metrics.RecordNotificationEmail("failed")
		}
	}(submission)

	return &submission, nil
}

// SubmissionView is the display-friendly shape consumed by the admin
// dashboard: booleans as yes/no strings, photo metadata parsed, timestamp as
// ISO-8601.
type SubmissionView struct {
	ID          uint              `json:"id"`
	CarName     *string           `json:"carName"`
	CarColor    *string           `json:"carColor"`
	CarPhoto    *domain.PhotoMeta `json:"carPhoto"`
	CustomBase  string            `json:"customBase"`
	AcrylicCase string            `json:"acrylicCase"`
	Name        string            `json:"name"`
	Phone       string            `json:"phone"`
	Email       string            `json:"email"`
	SubmittedAt string            `json:"submittedAt"`
}

// List returns all stored submissions newest-first. Identical timestamps
// fall back to id order so the result is deterministic.
func (s *SubmissionService) List(ctx context.Context) ([]*SubmissionView, error) {
	var submissions []domain.Submission
	if err := s.db.WithContext(ctx).Order("submitted_at DESC, id DESC").Find(&submissions).Error; err != nil {
		log.Printf("[SUBMISSION] List failed: database error: %v", err)
		return nil, apperrors.Wrap(apperrors.ErrCodePersistence, "failed to read submissions", err)
	}

	views := make([]*SubmissionView, len(submissions))
	for i, sub := range submissions {
		meta, err := sub.PhotoMetadata()
		if err != nil {
			log.Printf("[SUBMISSION] Warning: submission id=%d has unreadable photo metadata: %v", sub.ID, err)
			meta = nil
		}
		views[i] = &SubmissionView{
			ID:          sub.ID,
			CarName:     sub.CarName,
			CarColor:    sub.CarColor,
			CarPhoto:    meta,
			CustomBase:  yesNo(sub.CustomBase),
			AcrylicCase: yesNo(sub.AcrylicCase),
			Name:        sub.Name,
			Phone:       sub.Phone,
			Email:       sub.Email,
			SubmittedAt: sub.SubmittedAt.UTC().Format(time.RFC3339),
		}
	}

	log.Printf("[SUBMISSION] List successful: returned %d submissions", len(views))
	return views, nil
}

// sendSubmissionNotification emails the submission summary to the operator
func (s *SubmissionService) sendSubmissionNotification(sub *domain.Submission) error {
	if !s.email.IsEnabled() {
		fmt.Printf("[SUBMISSION] New car collection request from %s (%s)\n", sub.Name, sub.Email)
		metrics.RecordNotificationEmail("skipped")
		return nil
	}
	if s.notifyEmail == "" {
		return fmt.Errorf("notification address not configured")
	}

	subject := "New Car Collection Request - Trifecta Collections"

	var car []string
	if sub.CarName != nil {
		car = append(car, "- Car Name: "+*sub.CarName)
	}
	if sub.CarColor != nil {
		car = append(car, "- Car Color: "+*sub.CarColor)
	}
	if meta, err := sub.PhotoMetadata(); err == nil && meta != nil {
		car = append(car, "- Photo uploaded: "+meta.Name)
	}

	textBody := fmt.Sprintf(`New Car Collection Request

Customer Information:
- Name: %s
- Phone: %s
- Email: %s

Car Details:
%s

Options:
- Custom Base: %s
- Acrylic Display Case: %s

Submitted at: %s`,
		sub.Name, sub.Phone, sub.Email,
		strings.Join(car, "\n"),
		yesNo(sub.CustomBase), yesNo(sub.AcrylicCase),
		sub.SubmittedAt.UTC().Format(time.RFC3339))

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>New Car Collection Request</title>
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #334155;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #0D1A2D;">New Car Collection Request</h2>

        <div style="background: #F8FAFC; padding: 20px; border-radius: 8px; margin: 20px 0;">
            <p><strong>Name:</strong> %s</p>
            <p><strong>Phone:</strong> %s</p>
            <p><strong>Email:</strong> <a href="mailto:%s">%s</a></p>
        </div>

        <div style="background: #FFFFFF; padding: 20px; border-left: 4px solid #0D1A2D; border-radius: 4px; margin: 20px 0;">
            <h3 style="margin-top: 0;">Car Details</h3>
            <p style="white-space: pre-wrap;">%s</p>
            <p><strong>Custom Base:</strong> %s<br><strong>Acrylic Display Case:</strong> %s</p>
        </div>

        <p style="color: #64748B; font-size: 14px;">Submitted at %s &middot; Submission #%d</p>
    </div>
</body>
</html>`,
		sub.Name, sub.Phone, sub.Email, sub.Email,
		strings.Join(car, "\n"),
		yesNo(sub.CustomBase), yesNo(sub.AcrylicCase),
		sub.SubmittedAt.UTC().Format(time.RFC3339), sub.ID)

	if err := s.email.SendHTMLEmail(s.notifyEmail, subject, htmlBody, textBody); err != nil {
		return err
	}

	log.Printf("[SUBMISSION] Notification email sent for submission id=%d", sub.ID)
	metrics.RecordNotificationEmail("sent")
	return nil
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func optionalString(v string) *string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}
