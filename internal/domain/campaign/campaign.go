package campaign

import (
	"strings"
	"time"

	"github.com/promoflow/backend/internal/domain/shared"
	"github.com/promoflow/backend/internal/domain/social"
	"github.com/google/uuid"
)

// CampaignStatus represents the status of a campaign.
// It is deliberately a distinct type from PostStatus so that post and
// campaign states cannot be cross-assigned.
type CampaignStatus string

const (
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
)

// IsValid returns true if the status is a known campaign status
func (s CampaignStatus) IsValid() bool {
	switch s {
	case CampaignStatusActive, CampaignStatusPaused, CampaignStatusCompleted:
		return true
	default:
		return false
	}
}

// ScheduleType represents how posts are spread across the campaign window
type ScheduleType string

const (
	// ScheduleTypeDaily creates one post per platform per product per day
	ScheduleTypeDaily ScheduleType = "daily"
)

// PlatformList stores the campaign's target platforms as a comma-separated
// column while exposing them as typed values.
type PlatformList []social.Platform

// Campaign is a named group of scheduled posts across platforms over a date
// range. It is the aggregate root for campaign operations.
//
// PostedCount and FailedCount are progress counters mutated exclusively
// through atomic store-level increments as individual posts resolve; the
// struct fields exist for reads only.
type Campaign struct {
	shared.OwnedAggregateRoot
	Name        string         `gorm:"type:varchar(200);not null"`
	Description string         `gorm:"type:text"`
	Platforms   PlatformList   `gorm:"type:text;not null;serializer:json"`
	Status      CampaignStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	StartDate   time.Time      `gorm:"not null"`
	EndDate     time.Time      `gorm:"not null"`
	PostTime    string         `gorm:"type:varchar(5);not null"` // "HH:MM", 24h
	Schedule    ScheduleType   `gorm:"type:varchar(20);not null;default:'daily'"`
	TotalPosts  int            `gorm:"not null;default:0"`
	PostedCount int            `gorm:"not null;default:0"`
	FailedCount int            `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Campaign) TableName() string {
	return "campaigns"
}

// NewCampaign creates a new campaign covering [startDate, endDate]
func NewCampaign(userID uuid.UUID, name string, platforms []social.Platform, startDate, endDate time.Time, postTime string) (*Campaign, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_CAMPAIGN", "Campaign name is required")
	}
	if len(platforms) == 0 {
		return nil, shared.NewDomainError("INVALID_CAMPAIGN", "At least one platform is required")
	}
	for _, p := range platforms {
		if !p.IsValid() {
			return nil, shared.NewDomainError("INVALID_PLATFORM", "Unsupported platform: "+string(p))
		}
	}
	if endDate.Before(startDate) {
		return nil, shared.NewDomainError("INVALID_CAMPAIGN", "End date cannot be before start date")
	}
	if err := validatePostTime(postTime); err != nil {
		return nil, err
	}

	return &Campaign{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Name:               strings.TrimSpace(name),
		Platforms:          platforms,
		Status:             CampaignStatusActive,
		StartDate:          startDate,
		EndDate:            endDate,
		PostTime:           postTime,
		Schedule:           ScheduleTypeDaily,
	}, nil
}

// SetDescription sets the optional campaign description
func (c *Campaign) SetDescription(description string) {
	c.Description = description
	c.UpdatedAt = time.Now()
}

// Pause suspends an active campaign
func (c *Campaign) Pause() error {
	if c.Status != CampaignStatusActive {
		return shared.ErrInvalidState
	}
	c.Status = CampaignStatusPaused
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Resume reactivates a paused campaign
func (c *Campaign) Resume() error {
	if c.Status != CampaignStatusPaused {
		return shared.ErrInvalidState
	}
	c.Status = CampaignStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// IsResolved returns true once every planned post has reached a final state
func (c *Campaign) IsResolved() bool {
	return c.TotalPosts > 0 && c.PostedCount+c.FailedCount >= c.TotalPosts
}

// Days returns the number of posting days in the campaign window, inclusive
func (c *Campaign) Days() int {
	start := c.StartDate.Truncate(24 * time.Hour)
	end := c.EndDate.Truncate(24 * time.Hour)
	return int(end.Sub(start).Hours()/24) + 1
}

func validatePostTime(postTime string) error {
	if _, err := time.Parse("15:04", postTime); err != nil {
		return shared.NewDomainError("INVALID_CAMPAIGN", "Post time must be in HH:MM 24-hour format")
	}
	return nil
}
