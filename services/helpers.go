package services

import (
	"github.com/Dosada05/racket-tournament-system/models"
	"github.com/Dosada05/racket-tournament-system/storage"
)

// --- Общие хелперы ---

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func populateSportLogoURL(sport *models.Sport, uploader storage.FileUploader) {
	if sport != nil && sport.LogoKey != nil && *sport.LogoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*sport.LogoKey)
		if url != "" {
			sport.LogoURL = &url
		}
	}
}
