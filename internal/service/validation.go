package service

import (
	"regexp"
	"unicode/utf8"

	"github.com/contentdeck/contentdeck/internal/models"
	"github.com/contentdeck/contentdeck/internal/transfer"
)

const (
	maxCaptionLength     = 2200
	maxHashtagsLength    = 280
	maxImagePromptLength = 500
	maxFolderNameLength  = 100
	maxDescriptionLength = 500
	maxGeneratedPosts    = 10
)

var validPlatforms = map[string]struct{}{
	models.PlatformAll:       {},
	models.PlatformInstagram: {},
	models.PlatformTwitter:   {},
	models.PlatformFacebook:  {},
	models.PlatformLinkedin:  {},
}

// The update validator accepts every status the column can hold, including
// "published" and "failed" which only the publish worker sets itself.
var validStatuses = map[string]struct{}{
	models.PostStatusDraft:     {},
	models.PostStatusScheduled: {},
	models.PostStatusPublished: {},
	models.PostStatusFailed:    {},
}

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func validatePostCreation(pc *transfer.PostCreation) error {
	if pc.Caption == "" {
		return NewValidationError("caption", "Caption is required")
	}
	if utf8.RuneCountInString(pc.Caption) > maxCaptionLength {
		return NewValidationError("caption", "Caption too long")
	}
	if utf8.RuneCountInString(pc.Hashtags) > maxHashtagsLength {
		return NewValidationError("hashtags", "Hashtags too long")
	}
	if pc.Platform != "" {
		if _, ok := validPlatforms[pc.Platform]; !ok {
			return NewValidationError("platform", "Invalid platform")
		}
	}
	if utf8.RuneCountInString(pc.ImagePrompt) > maxImagePromptLength {
		return NewValidationError("imagePrompt", "Image prompt too long")
	}
	return nil
}

func validatePostUpdate(pu *transfer.PostUpdate) error {
	if pu.Caption != nil {
		if *pu.Caption == "" {
			return NewValidationError("caption", "Caption is required")
		}
		if utf8.RuneCountInString(*pu.Caption) > maxCaptionLength {
			return NewValidationError("caption", "Caption too long")
		}
	}
	if pu.Hashtags != nil && utf8.RuneCountInString(*pu.Hashtags) > maxHashtagsLength {
		return NewValidationError("hashtags", "Hashtags too long")
	}
	if pu.Platform != nil {
		if _, ok := validPlatforms[*pu.Platform]; !ok {
			return NewValidationError("platform", "Invalid platform")
		}
	}
	if pu.ImagePrompt != nil && utf8.RuneCountInString(*pu.ImagePrompt) > maxImagePromptLength {
		return NewValidationError("imagePrompt", "Image prompt too long")
	}
	if pu.Status != nil {
		if _, ok := validStatuses[*pu.Status]; !ok {
			return NewValidationError("status", "Invalid status")
		}
	}
	return nil
}

func validateFolderCreation(fc *transfer.FolderCreation) error {
	if fc.Name == "" {
		return NewValidationError("name", "Name is required")
	}
	if utf8.RuneCountInString(fc.Name) > maxFolderNameLength {
		return NewValidationError("name", "Name too long")
	}
	if utf8.RuneCountInString(fc.Description) > maxDescriptionLength {
		return NewValidationError("description", "Description too long")
	}
	if fc.Color != "" && !hexColorPattern.MatchString(fc.Color) {
		return NewValidationError("color", "Color must be a hex RGB string")
	}
	return nil
}

func validateFolderUpdate(fu *transfer.FolderUpdate) error {
	if fu.Name != nil {
		if *fu.Name == "" {
			return NewValidationError("name", "Name is required")
		}
		if utf8.RuneCountInString(*fu.Name) > maxFolderNameLength {
			return NewValidationError("name", "Name too long")
		}
	}
	if fu.Description != nil && utf8.RuneCountInString(*fu.Description) > maxDescriptionLength {
		return NewValidationError("description", "Description too long")
	}
	if fu.Color != nil && !hexColorPattern.MatchString(*fu.Color) {
		return NewValidationError("color", "Color must be a hex RGB string")
	}
	return nil
}

func validateGenerationRequest(gr *transfer.GenerationRequest) error {
	if gr.BrandName == "" {
		return NewValidationError("brandName", "Brand name is required")
	}
	if gr.ProductDescription == "" {
		return NewValidationError("productDescription", "Product description is required")
	}
	if gr.TargetAudience == "" {
		return NewValidationError("targetAudience", "Target audience is required")
	}
	if gr.NumberOfPosts < 1 {
		return NewValidationError("numberOfPosts", "At least one post is required")
	}
	if gr.NumberOfPosts > maxGeneratedPosts {
		return NewValidationError("numberOfPosts", "Too many posts requested")
	}
	return nil
}
