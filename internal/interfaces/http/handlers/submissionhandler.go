package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	appsubmission "agencydesk/internal/application/submission"
	"agencydesk/internal/domain/permission"
	"agencydesk/internal/domain/submission"
	"agencydesk/internal/interfaces/http/handlers/common"
	"agencydesk/internal/shared/errors"
	"agencydesk/internal/shared/logger"
	"agencydesk/internal/shared/utils"
)

type UpdateStatusRequest struct {
	Status   submission.Status `json:"status" binding:"required"`
	Feedback string            `json:"feedback"`
}

type AddFeedbackRequest struct {
	Content string `json:"content" binding:"required"`
}

type SubmissionHandler struct {
	submissions submissionService
	authz       authorizer
	logger      logger.Interface
}

func NewSubmissionHandler(submissions submissionService, authz authorizer, logger logger.Interface) *SubmissionHandler {
	return &SubmissionHandler{
		submissions: submissions,
		authz:       authz,
		logger:      logger,
	}
}

// CreateSubmission handles POST /submissions
// @Summary Create a submission
// @Tags submissions
// @Accept json
// @Produce json
// @Security Bearer
// @Param submission body appsubmission.CreateSubmissionCommand true "Submission data"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /submissions [post]
func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	var cmd appsubmission.CreateSubmissionCommand
	if !common.BindJSON(c, &cmd) {
		return
	}

	result, err := h.submissions.Create(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Submission created successfully")
}

// UploadSubmission handles POST /submissions/upload (multipart/form-data).
// deadline is RFC 3339 or YYYY-MM-DD; links is a newline separated URL list.
// @Summary Upload a submission file
// @Tags submissions
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param file formData file true "Document file"
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param brandId formData string true "Brand ID"
// @Param documentType formData string true "Document type"
// @Param deadline formData string false "Deadline, RFC 3339 or YYYY-MM-DD"
// @Param links formData string false "Newline separated URLs"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 413 {object} utils.APIResponse
// @Router /submissions/upload [post]
func (h *SubmissionHandler) UploadSubmission(c *gin.Context) {
	file, closeFile, err := openUpload(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	defer closeFile()

	cmd := appsubmission.CreateSubmissionCommand{
		Title:        c.PostForm("title"),
		Description:  c.PostForm("description"),
		BrandID:      c.PostForm("brandId"),
		DocumentType: submission.DocumentType(c.PostForm("documentType")),
	}
	if s := c.PostForm("deadline"); s != "" {
		deadline, err := parseDeadline(s)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		cmd.Deadline = &deadline
	}
	for _, line := range strings.Split(c.PostForm("links"), "\n") {
		if u := strings.TrimSpace(line); u != "" {
			cmd.Links = append(cmd.Links, submission.Link{URL: u, Title: u})
		}
	}

	result, err := h.submissions.Upload(c.Request.Context(), cmd, file)
	if err != nil {
		h.logger.Warnw("submission upload failed", "file_name", file.Name, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Submission uploaded successfully")
}

func parseDeadline(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, errors.NewValidationError("Validation failed", "deadline must be a date")
	}
	return t, nil
}

// GetSubmission handles GET /submissions/:id
// @Summary Get a submission
// @Tags submissions
// @Produce json
// @Security Bearer
// @Param id path string true "Submission ID"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /submissions/{id} [get]
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	submissionID, ok := common.PathID(c, "id")
	if !ok {
		return
	}

	result, err := h.submissions.Get(submissionID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListSubmissions handles GET /submissions?brandId=&status=
// @Summary List submissions
// @Tags submissions
// @Produce json
// @Security Bearer
// @Param brandId query string false "Filter by brand"
// @Param status query string false "Filter by status"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /submissions [get]
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	status := submission.Status(c.Query("status"))
	if status != "" && !status.IsValid() {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid filter", "unknown status "+string(status)))
		return
	}

	result := h.submissions.List(c.Query("brandId"), status)
	utils.ListSuccessResponse(c, utils.Paginate(result, utils.ParsePagination(c)), len(result))
}

// ListOverdue handles GET /submissions/overdue
// @Summary List overdue submissions
// @Tags submissions
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /submissions/overdue [get]
func (h *SubmissionHandler) ListOverdue(c *gin.Context) {
	result := h.submissions.Overdue()
	utils.ListSuccessResponse(c, result, len(result))
}

// UpdateSubmission handles PATCH /submissions/:id
// @Summary Update a submission
// @Tags submissions
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Submission ID"
// @Param submission body submission.Patch true "Fields to change"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /submissions/{id} [patch]
func (h *SubmissionHandler) UpdateSubmission(c *gin.Context) {
	submissionID, ok := common.PathID(c, "id")
	if !ok {
		return
	}

	var patch submission.Patch
	if !common.BindJSON(c, &patch) {
		return
	}

	result, err := h.submissions.Update(c.Request.Context(), submissionID, patch)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Submission updated successfully", result)
}

// UpdateStatus handles PATCH /submissions/:id/status
// @Summary Change a submission status
// @Tags submissions
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Submission ID"
// @Param status body UpdateStatusRequest true "New status"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /submissions/{id}/status [patch]
func (h *SubmissionHandler) UpdateStatus(c *gin.Context) {
	submissionID, ok := common.PathID(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if !common.BindJSON(c, &req) {
		return
	}

	result, err := h.submissions.UpdateStatus(c.Request.Context(), submissionID, req.Status, req.Feedback)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Submission status updated", result)
}

// AddFeedback handles POST /submissions/:id/feedback
// @Summary Add feedback to a submission
// @Tags submissions
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Submission ID"
// @Param feedback body AddFeedbackRequest true "Feedback"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /submissions/{id}/feedback [post]
func (h *SubmissionHandler) AddFeedback(c *gin.Context) {
	submissionID, ok := common.PathID(c, "id")
	if !ok {
		return
	}

	var req AddFeedbackRequest
	if !common.BindJSON(c, &req) {
		return
	}

	result, err := h.submissions.AddFeedback(c.Request.Context(), submissionID, req.Content)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Feedback added successfully")
}

// DeleteSubmission handles DELETE /submissions/:id. Submitters may delete
// their own submissions.
// @Summary Delete a submission
// @Tags submissions
// @Produce json
// @Security Bearer
// @Param id path string true "Submission ID"
// @Success 204 "No Content"
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /submissions/{id} [delete]
func (h *SubmissionHandler) DeleteSubmission(c *gin.Context) {
	submissionID, ok := common.PathID(c, "id")
	if !ok {
		return
	}

	current, err := h.submissions.Get(submissionID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.authz.Authorize(c.Request.Context(), permission.ResourceSubmission, permission.ActionDelete, current.SubmittedBy); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.submissions.Delete(c.Request.Context(), submissionID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
