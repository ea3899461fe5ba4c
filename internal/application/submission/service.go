// Package submission handles deliverables handed in for review and the
// reviewer feedback on them.
package submission

import (
	"context"
	"fmt"
	"strings"
	"time"

	"agencydesk/internal/application/common"
	"agencydesk/internal/application/store"
	"agencydesk/internal/domain/notification"
	"agencydesk/internal/domain/submission"
	"agencydesk/internal/domain/ticket"
	"agencydesk/internal/shared/biztime"
	"agencydesk/internal/shared/errors"
	"agencydesk/internal/shared/id"
	"agencydesk/internal/shared/logger"
	"agencydesk/internal/shared/utils"
)

const Slot = "submissions"

func init() {
	utils.RegisterEnum("document_type", func(s string) bool { return submission.DocumentType(s).IsValid() })
	utils.RegisterEnum("submission_status", func(s string) bool { return submission.Status(s).IsValid() })
}

func link(submissionID string) string { return "/submissions/" + submissionID }

// Kind describes submission persistence and notifications.
func Kind() store.Kind[submission.Submission] {
	return store.Kind[submission.Submission]{
		Slot: Slot,
		Noun: "submission",
		ID:   func(s submission.Submission) string { return s.ID },
		Init: func(s *submission.Submission, id string, now time.Time) {
			s.ID, s.CreatedAt, s.UpdatedAt = id, now, now
		},
		UpdatedAt:    func(s submission.Submission) time.Time { return s.UpdatedAt },
		SetUpdatedAt: func(s *submission.Submission, at time.Time) { s.UpdatedAt = at },
		CreatedAt:    func(s submission.Submission) time.Time { return s.CreatedAt },
		SetCreatedAt: func(s *submission.Submission, at time.Time) { s.CreatedAt = at },
		Clone:        submission.Submission.Clone,
		Created: func(s submission.Submission) notification.Draft {
			return notification.Draft{
				Type:    notification.TypeInfo,
				Title:   "New submission",
				Message: fmt.Sprintf("A new submission %q has been created", s.Title),
				Link:    link(s.ID),
			}
		},
		Updated: func(before, _ submission.Submission) notification.Draft {
			return notification.Draft{
				Type:    notification.TypeInfo,
				Title:   "Submission updated",
				Message: fmt.Sprintf("Submission %q has been updated", before.Title),
				Link:    link(before.ID),
			}
		},
		Deleted: func(s submission.Submission) notification.Draft {
			return notification.Draft{
				Type:    notification.TypeWarning,
				Title:   "Submission deleted",
				Message: fmt.Sprintf("Submission %q has been deleted", s.Title),
			}
		},
	}
}

func statusDraft(before, after submission.Submission) notification.Draft {
	return notification.Draft{
		Type:    notification.TypeInfo,
		Title:   "Submission status updated",
		Message: fmt.Sprintf("The status of submission %q has been updated to %s", before.Title, after.Status),
		Link:    link(before.ID),
	}
}

func feedbackDraft(before, _ submission.Submission) notification.Draft {
	return notification.Draft{
		Type:    notification.TypeInfo,
		Title:   "New feedback",
		Message: fmt.Sprintf("New feedback has been added to submission %q", before.Title),
		Link:    link(before.ID),
	}
}

type CreateSubmissionCommand struct {
	Title        string                  `json:"title" validate:"required"`
	Description  string                  `json:"description" validate:"required"`
	BrandID      string                  `json:"brandId" validate:"required"`
	DocumentType submission.DocumentType `json:"documentType" validate:"required,document_type"`
	FileName     string                  `json:"fileName"`
	FileURL      string                  `json:"fileUrl"`
	FileSize     int64                   `json:"fileSize" validate:"gte=0"`
	Deadline     *time.Time              `json:"deadline"`
	Links        []submission.Link       `json:"links" validate:"dive"`
}

func (c *CreateSubmissionCommand) trim() {
	c.Title = strings.TrimSpace(c.Title)
	c.Description = strings.TrimSpace(c.Description)
}

// Directory answers whether an id names a stored record.
type Directory interface {
	Exists(id string) bool
}

type Service struct {
	submissions *store.Store[submission.Submission]
	brands      Directory
	blobs       common.BlobStore
	ids         id.Generator
	clock       biztime.Clock
	logger      logger.Interface
}

type Option func(*Service)

func WithIDs(g id.Generator) Option { return func(s *Service) { s.ids = g } }

func WithClock(c biztime.Clock) Option { return func(s *Service) { s.clock = c } }

func NewService(
	submissions *store.Store[submission.Submission],
	brands Directory,
	blobs common.BlobStore,
	log logger.Interface,
	opts ...Option,
) *Service {
	s := &Service{
		submissions: submissions,
		brands:      brands,
		blobs:       blobs,
		ids:         id.UUID(),
		clock:       biztime.System,
		logger:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create files a pending submission attributed to the current actor.
func (s *Service) Create(ctx context.Context, cmd CreateSubmissionCommand) (submission.Submission, error) {
	s.logger.Infow("executing create submission", "title", cmd.Title, "brand_id", cmd.BrandID)

	author, err := common.RequireActor(ctx, "create submission")
	if err != nil {
		return submission.Submission{}, err
	}
	cmd.trim()
	if err := utils.ValidateStruct(cmd); err != nil {
		s.logger.Warnw("invalid create submission command", "error", err)
		return submission.Submission{}, err
	}
	if err := s.checkBrand(cmd.BrandID); err != nil {
		return submission.Submission{}, err
	}

	return s.submissions.Create(ctx, submission.Submission{
		Title:        cmd.Title,
		Description:  cmd.Description,
		FileName:     cmd.FileName,
		FileURL:      cmd.FileURL,
		FileSize:     cmd.FileSize,
		DocumentType: cmd.DocumentType,
		BrandID:      cmd.BrandID,
		Status:       submission.StatusPending,
		SubmittedBy:  author.ID,
		Deadline:     cmd.Deadline,
		Feedback:     []submission.Feedback{},
		Links:        s.withLinkIDs(cmd.Links),
	})
}

// Upload stores the file in the blob store and files the submission with the
// returned reference.
func (s *Service) Upload(ctx context.Context, cmd CreateSubmissionCommand, file common.File) (submission.Submission, error) {
	s.logger.Infow("executing upload submission", "title", cmd.Title, "file", file.Name, "size", file.Size)

	if _, err := common.RequireActor(ctx, "upload submission"); err != nil {
		return submission.Submission{}, err
	}
	if err := file.Validate(); err != nil {
		return submission.Submission{}, err
	}
	cmd.trim()
	if err := utils.ValidateStruct(cmd); err != nil {
		return submission.Submission{}, err
	}
	if err := s.checkBrand(cmd.BrandID); err != nil {
		return submission.Submission{}, err
	}

	key := common.BlobKey("submissions", s.ids.NewID(), file.Name)
	ref, err := s.blobs.Put(ctx, key, file.Reader, file.Size, "application/octet-stream")
	if err != nil {
		s.logger.Errorw("failed to store submission file", "key", key, "error", err)
		return submission.Submission{}, errors.NewInternalError("failed to store file", err.Error())
	}

	cmd.FileName, cmd.FileURL, cmd.FileSize = file.Name, ref, file.Size
	return s.Create(ctx, cmd)
}

// UpdateStatus moves a submission to status. Non-blank feedback is appended
// in the same write.
func (s *Service) UpdateStatus(ctx context.Context, submissionID string, status submission.Status, feedback string) (submission.Submission, error) {
	s.logger.Infow("executing update submission status", "submission_id", submissionID, "status", status)

	reviewer, err := common.RequireActor(ctx, "update submission status")
	if err != nil {
		return submission.Submission{}, err
	}
	if !status.IsValid() {
		return submission.Submission{}, errors.NewValidationError("invalid submission status", string(status))
	}
	feedback = strings.TrimSpace(feedback)

	return s.submissions.UpdateNotify(ctx, submissionID, func(sub *submission.Submission) error {
		sub.Status = status
		if feedback != "" {
			sub.Feedback = append(sub.Feedback, s.newFeedback(feedback, reviewer.ID, reviewer.Username))
		}
		return nil
	}, statusDraft)
}

func (s *Service) AddFeedback(ctx context.Context, submissionID, content string) (submission.Submission, error) {
	s.logger.Infow("executing add feedback", "submission_id", submissionID)

	author, err := common.RequireActor(ctx, "add feedback")
	if err != nil {
		return submission.Submission{}, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return submission.Submission{}, errors.NewValidationError("Validation failed", "content is required")
	}

	return s.submissions.UpdateNotify(ctx, submissionID, func(sub *submission.Submission) error {
		sub.Feedback = append(sub.Feedback, s.newFeedback(content, author.ID, author.Username))
		return nil
	}, feedbackDraft)
}

func (s *Service) Update(ctx context.Context, submissionID string, patch submission.Patch) (submission.Submission, error) {
	s.logger.Infow("executing update submission", "submission_id", submissionID)

	if err := utils.ValidateStruct(patch); err != nil {
		return submission.Submission{}, err
	}
	if patch.BrandID != nil {
		if err := s.checkBrand(*patch.BrandID); err != nil {
			return submission.Submission{}, err
		}
	}
	if patch.Links != nil {
		links := s.withLinkIDs(*patch.Links)
		patch.Links = &links
	}
	return s.submissions.Update(ctx, submissionID, func(sub *submission.Submission) error {
		patch.Apply(sub)
		return nil
	})
}

func (s *Service) Delete(ctx context.Context, submissionID string) error {
	s.logger.Infow("executing delete submission", "submission_id", submissionID)
	_, err := s.submissions.Delete(ctx, submissionID)
	return err
}

func (s *Service) Get(submissionID string) (submission.Submission, error) {
	return s.submissions.Get(submissionID)
}

// List narrows by brand and status when given.
func (s *Service) List(brandID string, status submission.Status) []submission.Submission {
	out := s.submissions.Find(func(sub submission.Submission) bool {
		return (brandID == "" || sub.BrandID == brandID) && (status == "" || sub.Status == status)
	})
	if out == nil {
		return []submission.Submission{}
	}
	return out
}

// Overdue lists undecided submissions whose deadline has passed.
func (s *Service) Overdue() []submission.Submission {
	now := s.clock.Now()
	out := s.submissions.Find(func(sub submission.Submission) bool { return sub.IsOverdue(now) })
	if out == nil {
		return []submission.Submission{}
	}
	return out
}

// CountForBrand implements brand.Referrer.
func (s *Service) CountForBrand(brandID string) int {
	return len(s.submissions.Find(func(sub submission.Submission) bool { return sub.BrandID == brandID }))
}

// DeleteForBrand implements brand.Referrer.
func (s *Service) DeleteForBrand(ctx context.Context, brandID string) error {
	for _, sub := range s.submissions.Find(func(sub submission.Submission) bool { return sub.BrandID == brandID }) {
		if _, err := s.submissions.Delete(ctx, sub.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) newFeedback(content, authorID, username string) submission.Feedback {
	return submission.Feedback{
		ID:        s.ids.NewID(),
		Content:   content,
		Author:    ticket.Author{ID: authorID, Username: username},
		CreatedAt: s.clock.Now(),
	}
}

func (s *Service) withLinkIDs(links []submission.Link) []submission.Link {
	out := make([]submission.Link, len(links))
	for i, l := range links {
		if l.ID == "" {
			l.ID = s.ids.NewID()
		}
		out[i] = l
	}
	return out
}

func (s *Service) checkBrand(brandID string) error {
	if s.brands != nil && !s.brands.Exists(brandID) {
		return errors.NewValidationError("unknown brand", brandID)
	}
	return nil
}
