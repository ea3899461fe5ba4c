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

// =====================================================================
// Mock services
// =====================================================================

type mockAuthService struct {
	loginFn func(ctx context.Context, cmd appauth.LoginCommand) (*appauth.Session, error)
	meFn    func(ctx context.Context) (user.User, error)
}

func (m *mockAuthService) Login(ctx context.Context, cmd appauth.LoginCommand) (*appauth.Session, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, cmd)
	}
	return &appauth.Session{}, nil
}

func (m *mockAuthService) Me(ctx context.Context) (user.User, error) {
	if m.meFn != nil {
		return m.meFn(ctx)
	}
	return user.User{}, nil
}

type mockBrandService struct {
	createFn func(ctx context.Context, cmd appbrand.CreateBrandCommand) (brand.Brand, error)
	updateFn func(ctx context.Context, id string, patch brand.Patch) (brand.Brand, error)
	deleteFn func(ctx context.Context, id string) error
	getFn    func(id string) (brand.Brand, error)
	listFn   func() []brand.Brand
}

func (m *mockBrandService) Create(ctx context.Context, cmd appbrand.CreateBrandCommand) (brand.Brand, error) {
	if m.createFn != nil {
		return m.createFn(ctx, cmd)
	}
	return brand.Brand{}, nil
}

func (m *mockBrandService) Update(ctx context.Context, id string, patch brand.Patch) (brand.Brand, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, patch)
	}
	return brand.Brand{ID: id}, nil
}

func (m *mockBrandService) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockBrandService) Get(id string) (brand.Brand, error) {
	if m.getFn != nil {
		return m.getFn(id)
	}
	return brand.Brand{ID: id}, nil
}

func (m *mockBrandService) List() []brand.Brand {
	if m.listFn != nil {
		return m.listFn()
	}
	return nil
}

type mockResourceService struct {
	createFn   func(ctx context.Context, cmd appresource.CreateResourceCommand) (resource.Resource, error)
	uploadFn   func(ctx context.Context, cmd appresource.UploadResourceCommand, file common.File) (resource.Resource, error)
	updateFn   func(ctx context.Context, id string, patch resource.Patch) (resource.Resource, error)
	deleteFn   func(ctx context.Context, id string) error
	accessFn   func(ctx context.Context, id string) (resource.Resource, error)
	getFn      func(id string) (resource.Resource, error)
	listFn     func(brandID string, category resource.Category) []resource.Resource
	activityFn func(limit int) []resource.Activity
}

func (m *mockResourceService) Create(ctx context.Context, cmd appresource.CreateResourceCommand) (resource.Resource, error) {
	if m.createFn != nil {
		return m.createFn(ctx, cmd)
	}
	return resource.Resource{}, nil
}

func (m *mockResourceService) Upload(ctx context.Context, cmd appresource.UploadResourceCommand, file common.File) (resource.Resource, error) {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, cmd, file)
	}
	return resource.Resource{}, nil
}

func (m *mockResourceService) Update(ctx context.Context, id string, patch resource.Patch) (resource.Resource, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, patch)
	}
	return resource.Resource{ID: id}, nil
}

func (m *mockResourceService) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockResourceService) RecordAccess(ctx context.Context, id string) (resource.Resource, error) {
	if m.accessFn != nil {
		return m.accessFn(ctx, id)
	}
	return resource.Resource{ID: id}, nil
}

func (m *mockResourceService) Get(id string) (resource.Resource, error) {
	if m.getFn != nil {
		return m.getFn(id)
	}
	return resource.Resource{ID: id}, nil
}

func (m *mockResourceService) List(brandID string, category resource.Category) []resource.Resource {
	if m.listFn != nil {
		return m.listFn(brandID, category)
	}
	return nil
}

func (m *mockResourceService) Activity(limit int) []resource.Activity {
	if m.activityFn != nil {
		return m.activityFn(limit)
	}
	return nil
}

type mockSubmissionService struct {
	createFn       func(ctx context.Context, cmd appsubmission.CreateSubmissionCommand) (submission.Submission, error)
	uploadFn       func(ctx context.Context, cmd appsubmission.CreateSubmissionCommand, file common.File) (submission.Submission, error)
	updateStatusFn func(ctx context.Context, id string, status submission.Status, feedback string) (submission.Submission, error)
	addFeedbackFn  func(ctx context.Context, id, content string) (submission.Submission, error)
	updateFn       func(ctx context.Context, id string, patch submission.Patch) (submission.Submission, error)
	deleteFn       func(ctx context.Context, id string) error
	getFn          func(id string) (submission.Submission, error)
	listFn         func(brandID string, status submission.Status) []submission.Submission
	overdueFn      func() []submission.Submission
}

func (m *mockSubmissionService) Create(ctx context.Context, cmd appsubmission.CreateSubmissionCommand) (submission.Submission, error) {
	if m.createFn != nil {
		return m.createFn(ctx, cmd)
	}
	return submission.Submission{}, nil
}

func (m *mockSubmissionService) Upload(ctx context.Context, cmd appsubmission.CreateSubmissionCommand, file common.File) (submission.Submission, error) {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, cmd, file)
	}
	return submission.Submission{}, nil
}

func (m *mockSubmissionService) UpdateStatus(ctx context.Context, id string, status submission.Status, feedback string) (submission.Submission, error) {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status, feedback)
	}
	return submission.Submission{ID: id, Status: status}, nil
}

func (m *mockSubmissionService) AddFeedback(ctx context.Context, id, content string) (submission.Submission, error) {
	if m.addFeedbackFn != nil {
		return m.addFeedbackFn(ctx, id, content)
	}
	return submission.Submission{ID: id}, nil
}

func (m *mockSubmissionService) Update(ctx context.Context, id string, patch submission.Patch) (submission.Submission, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, patch)
	}
	return submission.Submission{ID: id}, nil
}

func (m *mockSubmissionService) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockSubmissionService) Get(id string) (submission.Submission, error) {
	if m.getFn != nil {
		return m.getFn(id)
	}
	return submission.Submission{ID: id}, nil
}

func (m *mockSubmissionService) List(brandID string, status submission.Status) []submission.Submission {
	if m.listFn != nil {
		return m.listFn(brandID, status)
	}
	return nil
}

func (m *mockSubmissionService) Overdue() []submission.Submission {
	if m.overdueFn != nil {
		return m.overdueFn()
	}
	return nil
}

type mockUserService struct {
	createFn func(ctx context.Context, cmd appuser.CreateUserCommand) (user.User, error)
	updateFn func(ctx context.Context, id string, patch user.Patch) (user.User, error)
	deleteFn func(ctx context.Context, id string) error
	getFn    func(id string) (user.User, error)
	listFn   func() []user.User
}

func (m *mockUserService) Create(ctx context.Context, cmd appuser.CreateUserCommand) (user.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, cmd)
	}
	return user.User{}, nil
}

func (m *mockUserService) Update(ctx context.Context, id string, patch user.Patch) (user.User, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, patch)
	}
	return user.User{ID: id}, nil
}

func (m *mockUserService) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockUserService) Get(id string) (user.User, error) {
	if m.getFn != nil {
		return m.getFn(id)
	}
	return user.User{ID: id}, nil
}

func (m *mockUserService) List() []user.User {
	if m.listFn != nil {
		return m.listFn()
	}
	return nil
}

type mockNotificationCenter struct {
	items        []notification.Notification
	unread       int
	markAsReadFn func(ctx context.Context, id string) error
	markAllFn    func(ctx context.Context) error
	clearFn      func(ctx context.Context, id string) error
	clearAllFn   func(ctx context.Context) error
}

func (m *mockNotificationCenter) List() []notification.Notification { return m.items }

func (m *mockNotificationCenter) UnreadCount() int { return m.unread }

func (m *mockNotificationCenter) MarkAsRead(ctx context.Context, id string) error {
	if m.markAsReadFn != nil {
		return m.markAsReadFn(ctx, id)
	}
	return nil
}

func (m *mockNotificationCenter) MarkAllAsRead(ctx context.Context) error {
	if m.markAllFn != nil {
		return m.markAllFn(ctx)
	}
	return nil
}

func (m *mockNotificationCenter) Clear(ctx context.Context, id string) error {
	if m.clearFn != nil {
		return m.clearFn(ctx, id)
	}
	return nil
}

func (m *mockNotificationCenter) ClearAll(ctx context.Context) error {
	if m.clearAllFn != nil {
		return m.clearAllFn(ctx)
	}
	return nil
}

type mockDashboardService struct {
	overview dashboard.Overview
	charts   dashboard.Charts
	team     []dashboard.Performance
	recentFn func(limit int) []dashboard.Activity
	slaFn    func(ticketID string) (dashboard.SLA, error)
}

func (m *mockDashboardService) Overview() dashboard.Overview { return m.overview }

func (m *mockDashboardService) Charts() dashboard.Charts { return m.charts }

func (m *mockDashboardService) Team() []dashboard.Performance { return m.team }

func (m *mockDashboardService) Recent(limit int) []dashboard.Activity {
	if m.recentFn != nil {
		return m.recentFn(limit)
	}
	return nil
}

func (m *mockDashboardService) SLA(ticketID string) (dashboard.SLA, error) {
	if m.slaFn != nil {
		return m.slaFn(ticketID)
	}
	return dashboard.SLA{}, nil
}

type mockAuthorizer struct {
	authorizeFn func(ctx context.Context, resource permission.Resource, action permission.Action, ownerID string) error
}

func (m *mockAuthorizer) Authorize(ctx context.Context, resource permission.Resource, action permission.Action, ownerID string) error {
	if m.authorizeFn != nil {
		return m.authorizeFn(ctx, resource, action, ownerID)
	}
	return nil
}
