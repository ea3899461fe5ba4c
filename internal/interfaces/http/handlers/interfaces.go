package handlers

import (
	"context"

	appauth "agencydesk/internal/application/auth"
	appbrand "agencydesk/internal/application/brand"
	"agencydesk/internal/application/common"
	"agencydesk/internal/application/dashboard"
	appresource "agencydesk/internal/application/resource"
	appsubmission "agencydesk/internal/application/submission"
	appuser "agencydesk/internal/application/user"
	"agencydesk/internal/domain/brand"
	"agencydesk/internal/domain/notification"
	"agencydesk/internal/domain/permission"
	"agencydesk/internal/domain/resource"
	"agencydesk/internal/domain/submission"
	"agencydesk/internal/domain/user"
)

// Service interfaces consumed by the handlers, so they can be unit tested
// with mocks.

type authService interface {
	Login(ctx context.Context, cmd appauth.LoginCommand) (*appauth.Session, error)
	Me(ctx context.Context) (user.User, error)
}

type brandService interface {
	Create(ctx context.Context, cmd appbrand.CreateBrandCommand) (brand.Brand, error)
	Update(ctx context.Context, brandID string, patch brand.Patch) (brand.Brand, error)
	Delete(ctx context.Context, brandID string) error
	Get(brandID string) (brand.Brand, error)
	List() []brand.Brand
}

type resourceService interface {
	Create(ctx context.Context, cmd appresource.CreateResourceCommand) (resource.Resource, error)
	Upload(ctx context.Context, cmd appresource.UploadResourceCommand, file common.File) (resource.Resource, error)
	Update(ctx context.Context, resourceID string, patch resource.Patch) (resource.Resource, error)
	Delete(ctx context.Context, resourceID string) error
	RecordAccess(ctx context.Context, resourceID string) (resource.Resource, error)
	Get(resourceID string) (resource.Resource, error)
	List(brandID string, category resource.Category) []resource.Resource
	Activity(limit int) []resource.Activity
}

type submissionService interface {
	Create(ctx context.Context, cmd appsubmission.CreateSubmissionCommand) (submission.Submission, error)
	Upload(ctx context.Context, cmd appsubmission.CreateSubmissionCommand, file common.File) (submission.Submission, error)
	UpdateStatus(ctx context.Context, submissionID string, status submission.Status, feedback string) (submission.Submission, error)
	AddFeedback(ctx context.Context, submissionID, content string) (submission.Submission, error)
	Update(ctx context.Context, submissionID string, patch submission.Patch) (submission.Submission, error)
	Delete(ctx context.Context, submissionID string) error
	Get(submissionID string) (submission.Submission, error)
	List(brandID string, status submission.Status) []submission.Submission
	Overdue() []submission.Submission
}

type userService interface {
	Create(ctx context.Context, cmd appuser.CreateUserCommand) (user.User, error)
	Update(ctx context.Context, userID string, patch user.Patch) (user.User, error)
	Delete(ctx context.Context, userID string) error
	Get(userID string) (user.User, error)
	List() []user.User
}

type notificationCenter interface {
	List() []notification.Notification
	UnreadCount() int
	MarkAsRead(ctx context.Context, notificationID string) error
	MarkAllAsRead(ctx context.Context) error
	Clear(ctx context.Context, notificationID string) error
	ClearAll(ctx context.Context) error
}

type dashboardService interface {
	Overview() dashboard.Overview
	Charts() dashboard.Charts
	Team() []dashboard.Performance
	Recent(limit int) []dashboard.Activity
	SLA(ticketID string) (dashboard.SLA, error)
}

type authorizer interface {
	Authorize(ctx context.Context, resource permission.Resource, action permission.Action, ownerID string) error
}
