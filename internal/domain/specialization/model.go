package specialization

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUnknownCategory   = errors.New("unknown specialization category")
	ErrUnknownSkillLevel = errors.New("unknown skill level")
)

type Category string

const (
	CategoryPhotography Category = "photography"
	CategoryVideography Category = "videography"
	CategoryEditing     Category = "editing"
	CategoryDesign      Category = "design"
	CategoryCopywriting Category = "copywriting"
	CategorySocialMedia Category = "social_media"
	CategoryModeling    Category = "modeling"
	CategoryVoiceOver   Category = "voice_over"
	CategoryMusic       Category = "music"
	CategoryOther       Category = "other"
)

var categories = []Category{
	CategoryPhotography,
	CategoryVideography,
	CategoryEditing,
	CategoryDesign,
	CategoryCopywriting,
	CategorySocialMedia,
	CategoryModeling,
	CategoryVoiceOver,
	CategoryMusic,
	CategoryOther,
}

type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillExpert       SkillLevel = "expert"
)

type Specialization struct {
	CreatorID  string
	Category   Category
	SkillLevel SkillLevel
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func Categories() []Category {
	return append([]Category(nil), categories...)
}

func ParseCategory(raw string) (Category, error) {
	value := Category(strings.ToLower(strings.TrimSpace(raw)))
	for _, c := range categories {
		if c == value {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
}

// ParseSkillLevel defaults an empty level to intermediate.
func ParseSkillLevel(raw string) (SkillLevel, error) {
	switch SkillLevel(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return SkillIntermediate, nil
	case SkillBeginner:
		return SkillBeginner, nil
	case SkillIntermediate:
		return SkillIntermediate, nil
	case SkillExpert:
		return SkillExpert, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSkillLevel, raw)
	}
}
