package services

import (
	"context"
	"fmt"

	"github.com/yigit/traineehub/internal/app/models"
	"github.com/yigit/traineehub/internal/app/repositories"
)

// SkillService exposes the skill catalog
type SkillService interface {
	ListActiveSkills(ctx context.Context) ([]models.SkillMaster, error)
}

type skillServiceImpl struct {
	skillRepo *repositories.SkillRepository
}

// NewSkillService creates a new skill service
func NewSkillService(skillRepo *repositories.SkillRepository) SkillService {
	return &skillServiceImpl{skillRepo: skillRepo}
}

// ListActiveSkills returns the active skill masters
func (s *skillServiceImpl) ListActiveSkills(ctx context.Context) ([]models.SkillMaster, error) {
	skills, err := s.skillRepo.ListActiveSkills(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving skills: %w", err)
	}
	return skills, nil
}
