package visitor

import (
	"time"

	"github.com/mx-space/blog-admin/internal/models"
)

const (
	ScopeAll   = "all"
	ScopeUsers = "users"
)

const (
	msgRangeRequired = "必须提供开始和结束日期时间"
	msgInvalidDate   = "无效的日期格式"
	msgInvalidScope  = "无效的访客类型"
	msgUnknownOption = "未知的选项类型"
)

// Query holds the raw query string of a visitor listing.
type Query struct {
	Type      string `form:"type"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	IPFilter  string `form:"ipFilter"`
	Country   string `form:"country"`
	Region    string `form:"region"`
	Username  string `form:"username"`
	Article   string `form:"article"`
	Page      int    `form:"page"`
	PageSize  int    `form:"pageSize"`
}

// DeleteQuery selects entries for a bulk delete. Both bounds are required.
type DeleteQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Country   string `form:"country"`
	Region    string `form:"region"`
	Article   string `form:"article"`
}

// Criteria is a parsed and normalized filter.
type Criteria struct {
	Scope   string
	Start   *time.Time
	End     *time.Time
	IP      string
	Country string
	Region  string
	Article string
	// UserIDs restricts entries to these users when non-nil.
	UserIDs []string
}

// Visitor is a log entry as returned to clients.
type Visitor struct {
	models.VisitorLogModel
	EntryID      string  `json:"id"`
	UserName     string  `json:"userName,omitempty"`
	UserEmail    string  `json:"userEmail,omitempty"`
	UserAvatar   *string `json:"userAvatar,omitempty"`
	ArticleTitle string  `json:"articleTitle,omitempty"`
}

// Page is one window of a visitor listing.
type Page struct {
	Visitors             []Visitor `json:"visitors"`
	Total                int64     `json:"total"`
	TotalBeforeFiltering int64     `json:"totalBeforeFiltering"`
	Page                 int       `json:"page"`
	PageSize             int       `json:"pageSize"`
	TotalPages           int       `json:"totalPages"`
}

// DeleteResult reports a bulk delete.
type DeleteResult struct {
	Success       bool              `json:"success"`
	Message       string            `json:"message"`
	DeletedCount  int64             `json:"deletedCount"`
	AffectedRange map[string]string `json:"affectedRange"`
	Filters       map[string]string `json:"filters"`
}

// Options lists the distinct locations seen in the log.
type Options struct {
	Countries []string `json:"countries"`
	Regions   []string `json:"regions"`
}

// UserSummary is the part of a user attached to visitor entries.
type UserSummary struct {
	Name   string
	Email  string
	Avatar *string
}
