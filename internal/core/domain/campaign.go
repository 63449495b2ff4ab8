package domain

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// HitType is the behavioural profile of a simulated visit. It decides how
// long the visitor dwells on the page after the response arrives.
type HitType string

const (
	HitTypePageView      HitType = "page-view"
	HitTypeUniqueVisitor HitType = "unique-visitor"
	HitTypeClick         HitType = "click"
)

// Valid reports whether t is one of the known hit types.
func (t HitType) Valid() bool {
	switch t {
	case HitTypePageView, HitTypeUniqueVisitor, HitTypeClick:
		return true
	}
	return false
}

// Campaign is a scheduled unit of simulated traffic against one website.
// Duration is expressed in hours. StartTime holds the last activation time
// and is left untouched when the campaign stops.
type Campaign struct {
	ID          string     `json:"id" bson:"_id"`
	UserID      string     `json:"userId" bson:"user_id"`
	Website     string     `json:"website" bson:"website"`
	TargetHits  int        `json:"targetHits" bson:"target_hits"`
	CurrentHits int        `json:"currentHits" bson:"current_hits"`
	Duration    float64    `json:"duration" bson:"duration"`
	HitType     HitType    `json:"hitType" bson:"hit_type"`
	IsActive    bool       `json:"isActive" bson:"is_active"`
	StartTime   *time.Time `json:"startTime" bson:"start_time"`
	CreatedAt   time.Time  `json:"createdAt" bson:"created_at"`
}

// MaxDurationHours is the longest accepted campaign window, comfortably
// below the ~2.56M hours a time.Duration can hold.
const MaxDurationHours = 2_000_000

// Window returns the campaign duration as a time.Duration.
func (c Campaign) Window() time.Duration {
	return HoursToDuration(c.Duration)
}

// HoursToDuration converts fractional hours, saturating at the
// time.Duration range. Negative and NaN inputs yield 0.
func HoursToDuration(h float64) time.Duration {
	d := h * float64(time.Hour)
	switch {
	case !(d > 0):
		return 0
	case d >= math.MaxInt64:
		return math.MaxInt64
	}
	return time.Duration(d)
}

// Completed reports whether the hit target has been reached.
func (c Campaign) Completed() bool {
	return c.CurrentHits >= c.TargetHits
}

// CampaignInput carries the user supplied fields of a new campaign.
type CampaignInput struct {
	Website    string  `json:"website" validate:"required"`
	TargetHits int     `json:"targetHits" validate:"gt=0"`
	Duration   float64 `json:"duration" validate:"gt=0,lte=2000000"`
	HitType    HitType `json:"hitType" validate:"hit_type"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	_ = v.RegisterValidation("hit_type", func(fl validator.FieldLevel) bool {
		return HitType(fl.Field().String()).Valid()
	})
	return v
}

// Validate checks the input and returns an error wrapping ErrInvalidCampaign
// describing the first problem found. A blank website counts as missing.
func (in CampaignInput) Validate() error {
	in.Website = strings.TrimSpace(in.Website)
	err := validate.Struct(in)
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return err
	}
	fe := fields[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%w: %s is required", ErrInvalidCampaign, fe.Field())
	case "gt":
		return fmt.Errorf("%w: %s must be positive", ErrInvalidCampaign, fe.Field())
	case "lte":
		return fmt.Errorf("%w: %s must be at most %s", ErrInvalidCampaign, fe.Field(), fe.Param())
	case "hit_type":
		return fmt.Errorf("%w: unknown hitType %q", ErrInvalidCampaign, fe.Value())
	}
	return fmt.Errorf("%w: %s failed %s", ErrInvalidCampaign, fe.Field(), fe.Tag())
}

// CampaignPatch is a partial update. Nil fields are left unchanged.
type CampaignPatch struct {
	Website     *string
	TargetHits  *int
	CurrentHits *int
	Duration    *float64
	HitType     *HitType
	IsActive    *bool
	StartTime   *time.Time
}

// Apply merges the non-nil fields of p into c.
func (p CampaignPatch) Apply(c *Campaign) {
	if p.Website != nil {
		c.Website = *p.Website
	}
	if p.TargetHits != nil {
		c.TargetHits = *p.TargetHits
	}
	if p.CurrentHits != nil {
		c.CurrentHits = *p.CurrentHits
	}
	if p.Duration != nil {
		c.Duration = *p.Duration
	}
	if p.HitType != nil {
		c.HitType = *p.HitType
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
	}
	if p.StartTime != nil {
		t := *p.StartTime
		c.StartTime = &t
	}
}

// Empty reports whether the patch changes nothing.
func (p CampaignPatch) Empty() bool {
	return p == CampaignPatch{}
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T {
	return &v
}
