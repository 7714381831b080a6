package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/skillatlas/skillatlas/internal/models"
	"github.com/skillatlas/skillatlas/internal/pdftext"
	pgrepo "github.com/skillatlas/skillatlas/internal/repositories/postgres"
	"github.com/skillatlas/skillatlas/internal/storage"
	"github.com/skillatlas/skillatlas/internal/utils"
)

type CVService interface {
	// Upload extracts text and skills from an already-validated PDF,
	// persists the CV record, and links the extracted skills to the user.
	Upload(ctx context.Context, userID, fileName string, data []byte) (*models.UserCV, error)
	Latest(ctx context.Context, userID string) (*models.UserCV, error)
}

type cvService struct {
	cvs        pgrepo.CVRepository
	skills     pgrepo.SkillRepository
	extraction ExtractionService
	catalog    CatalogService
	uploader   storage.Uploader // nil when archival is not configured
	log        *logrus.Entry
}

func NewCVService(cvs pgrepo.CVRepository, skills pgrepo.SkillRepository, extraction ExtractionService, catalog CatalogService, uploader storage.Uploader, log *logrus.Entry) CVService {
	return &cvService{cvs: cvs, skills: skills, extraction: extraction, catalog: catalog, uploader: uploader, log: log}
}

func (s *cvService) Upload(ctx context.Context, userID, fileName string, data []byte) (*models.UserCV, error) {
	const op = "CVService.Upload"

	if userID == "" || len(data) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and file content are required", nil)
	}

	text, err := pdftext.Extract(data)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "could not read text from pdf", err)
	}

	extracted, err := s.extraction.ExtractSkills(ctx, text)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to extract skills", err)
	}

	objectName := ""
	if s.uploader != nil {
		objectName = "cv/" + userID + "/" + uuid.NewString() + ".pdf"
		if _, err := s.uploader.Upload(ctx, objectName, "application/pdf", bytes.NewReader(data)); err != nil {
			// archival is best effort; the text is already in hand
			s.log.WithError(err).Warn("cv archival to object storage failed")
			objectName = ""
		}
	}

	skillsJSON, err := json.Marshal(extracted)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to encode extracted skills", err)
	}

	cv := &models.UserCV{
		ID:              uuid.NewString(),
		UserID:          userID,
		FileName:        fileName,
		FileContent:     text,
		FilePath:        objectName,
		ExtractedSkills: datatypes.JSON(skillsJSON),
		UploadedAt:      time.Now().UTC(),
	}
	if err := s.cvs.Insert(ctx, cv); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to persist cv", err)
	}

	if err := s.linkExtractedSkills(ctx, userID, extracted); err != nil {
		// the CV row is saved; losing links is logged, not fatal
		s.log.WithError(err).Warn("failed to link extracted skills")
	}
	return cv, nil
}

// linkExtractedSkills inserts unseen technical skills into the catalog
// and records every recognized extracted skill against the user.
func (s *cvService) linkExtractedSkills(ctx context.Context, userID string, extracted *ExtractedSkills) error {
	ids, err := s.catalog.EnsureTechnicalSkills(ctx, extracted.TechnicalSkills)
	if err != nil {
		return err
	}

	known, err := s.skills.ListByNames(ctx, extracted.Skills)
	if err != nil {
		return err
	}
	for _, sk := range known {
		ids[sk.Name] = sk.ID
	}

	for _, name := range extracted.Skills {
		skillID, ok := ids[name]
		if !ok {
			continue
		}
		link := &models.UserSkill{
			ID:               uuid.NewString(),
			UserID:           userID,
			SkillID:          skillID,
			ProficiencyLevel: "Intermediate",
			Source:           "cv_extraction",
			AddedAt:          time.Now().UTC(),
		}
		if err := s.skills.LinkUserSkill(ctx, link); err != nil {
			return err
		}
	}
	return nil
}

func (s *cvService) Latest(ctx context.Context, userID string) (*models.UserCV, error) {
	const op = "CVService.Latest"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	row, err := s.cvs.LatestByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "no cv uploaded yet", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load cv", err)
	}
	return row, nil
}
