package valueobjects

import "fmt"

type Category string

const (
	CategoryContentCreation    Category = "content_creation"
	CategoryGraphicDesign      Category = "graphic_design"
	CategorySocialMedia        Category = "social_media"
	CategoryDigitalAdvertising Category = "digital_advertising"
	CategorySEO                Category = "seo"
	CategoryWebDevelopment     Category = "web_development"
	CategoryEmailMarketing     Category = "email_marketing"
	CategoryMarketResearch     Category = "market_research"
	CategoryBrandStrategy      Category = "brand_strategy"
	CategoryPROutreach         Category = "pr_outreach"
	CategoryVideoProduction    Category = "video_production"
	CategoryDataAnalysis       Category = "data_analysis"
	CategoryProjectManagement  Category = "project_management"
)

// Categories lists the fixed ticket categories in display order.
var Categories = []Category{
	CategoryContentCreation,
	CategoryGraphicDesign,
	CategorySocialMedia,
	CategoryDigitalAdvertising,
	CategorySEO,
	CategoryWebDevelopment,
	CategoryEmailMarketing,
	CategoryMarketResearch,
	CategoryBrandStrategy,
	CategoryPROutreach,
	CategoryVideoProduction,
	CategoryDataAnalysis,
	CategoryProjectManagement,
}

// The first entry of every list is the category's default type.
var categoryTypes = map[Category][]string{
	CategoryContentCreation: {
		"blog_post", "social_media_content", "email_content", "infographic", "ad_copy",
		"product_description", "case_study", "landing_page", "ebook",
	},
	CategoryGraphicDesign: {
		"logo_design", "banner_ads", "social_media_graphics", "presentation", "brochure",
		"website_graphics", "print_design", "video_thumbnails",
	},
	CategorySocialMedia: {
		"content_calendar", "scheduling", "community_engagement", "influencer_collab",
		"reporting", "growth_strategy", "audit",
	},
	CategoryDigitalAdvertising: {
		"search_ads", "social_ads", "display_ads", "ad_creative", "ab_testing",
		"optimization", "performance_analysis",
	},
	CategorySEO: {
		"keyword_research", "onpage_optimization", "link_building", "content_optimization",
		"technical_audit", "competitor_analysis", "local_seo",
	},
	CategoryWebDevelopment: {
		"website_design", "landing_page", "maintenance", "ecommerce", "speed_optimization",
		"custom_code", "seo_structure",
	},
	CategoryEmailMarketing: {
		"newsletter", "drip_campaign", "automation", "lead_nurturing", "email_design",
		"segmentation", "ab_testing", "reporting",
	},
	CategoryMarketResearch: {
		"competitor_analysis", "persona_development", "trend_report", "social_listening",
		"audience_analysis", "brand_positioning", "survey_analysis",
	},
	CategoryBrandStrategy: {
		"identity_development", "market_analysis", "messaging_guidelines", "campaign_strategy",
		"rebranding", "brand_audit",
	},
	CategoryPROutreach: {
		"press_release", "media_outreach", "event_promotion", "influencer_management",
		"press_kit", "crisis_communication",
	},
	CategoryVideoProduction: {
		"script_writing", "video_editing", "animation", "video_ads", "webinar_production",
		"podcast_editing", "storyboarding",
	},
	CategoryDataAnalysis: {
		"performance_analysis", "kpi_dashboard", "conversion_analysis", "roi_analysis",
		"traffic_analytics", "segmentation", "funnel_analysis",
	},
	CategoryProjectManagement: {
		"campaign_planning", "milestone_tracking", "resource_allocation", "team_coordination",
		"post_mortem", "client_meetings", "budget_management",
	},
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	_, ok := categoryTypes[c]
	return ok
}

// Types returns a copy of the sub-types allowed under c.
func (c Category) Types() []string {
	return append([]string(nil), categoryTypes[c]...)
}

// DefaultType is the type a ticket falls back to when its category changes.
func (c Category) DefaultType() string {
	if types := categoryTypes[c]; len(types) > 0 {
		return types[0]
	}
	return ""
}

// AllowsType reports whether t is one of c's sub-types.
func (c Category) AllowsType(t string) bool {
	for _, allowed := range categoryTypes[c] {
		if allowed == t {
			return true
		}
	}
	return false
}

func NewCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
