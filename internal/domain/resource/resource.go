// Package resource holds brand assets shared with the team: guidelines,
// decks, videos and templates.
package resource

import (
	"path"
	"strings"
	"time"
)

type Category string

const (
	CategoryDocumentation   Category = "documentation"
	CategoryVisuals         Category = "visuals"
	CategoryBrandGuidelines Category = "brand_guidelines"
	CategoryPresentations   Category = "presentations"
	CategorySocialMedia     Category = "social_media"
	CategoryVideos          Category = "videos"
	CategoryReports         Category = "reports"
	CategoryTemplates       Category = "templates"
)

var validCategories = map[Category]bool{
	CategoryDocumentation: true, CategoryVisuals: true, CategoryBrandGuidelines: true,
	CategoryPresentations: true, CategorySocialMedia: true, CategoryVideos: true,
	CategoryReports: true, CategoryTemplates: true,
}

func (c Category) IsValid() bool { return validCategories[c] }

// fileTypes maps accepted extensions to their MIME type.
var fileTypes = map[string]string{
	"pdf":  "application/pdf",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"svg":  "image/svg+xml",
	"mp4":  "video/mp4",
	"mov":  "video/quicktime",
	"avi":  "video/x-msvideo",
}

// IsAllowedFileType reports whether ext (without dot) may be uploaded.
func IsAllowedFileType(ext string) bool {
	_, ok := fileTypes[strings.ToLower(ext)]
	return ok
}

// FileTypeOf returns the lower-cased extension of name, without the dot.
func FileTypeOf(name string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
}

// ContentType returns the MIME type for ext, or application/octet-stream.
func ContentType(ext string) string {
	if ct, ok := fileTypes[strings.ToLower(ext)]; ok {
		return ct
	}
	return "application/octet-stream"
}

type Resource struct {
	ID             string     `json:"id"`
	BrandID        string     `json:"brandId"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Category       Category   `json:"category"`
	FileType       string     `json:"fileType"`
	FileURL        string     `json:"fileUrl"`
	FileSize       int64      `json:"fileSize"`
	UploadedBy     string     `json:"uploadedBy"`
	LastAccessedBy string     `json:"lastAccessedBy,omitempty"`
	LastAccessedAt *time.Time `json:"lastAccessedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	BrandID     *string   `json:"brandId,omitempty"`
	Title       *string   `json:"title,omitempty" validate:"omitempty,min=1"`
	Description *string   `json:"description,omitempty"`
	Category    *Category `json:"category,omitempty" validate:"omitempty,resource_category"`
}

func (p Patch) Apply(r *Resource) {
	if p.BrandID != nil {
		r.BrandID = *p.BrandID
	}
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
}

type ActivityAction string

const (
	ActivityCreated  ActivityAction = "created"
	ActivityUpdated  ActivityAction = "updated"
	ActivityDeleted  ActivityAction = "deleted"
	ActivityAccessed ActivityAction = "accessed"
)

// Activity is one entry of the resource audit trail.
type Activity struct {
	ID         string         `json:"id"`
	ResourceID string         `json:"resourceId"`
	Title      string         `json:"title"`
	Action     ActivityAction `json:"action"`
	UserID     string         `json:"userId"`
	Username   string         `json:"username"`
	At         time.Time      `json:"at"`
}
