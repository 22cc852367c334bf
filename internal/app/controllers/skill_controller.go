package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/traineehub/internal/app/models/dto"
	"github.com/yigit/traineehub/internal/app/services"
	"github.com/yigit/traineehub/internal/middleware"
)

// SkillController serves the skill master list
type SkillController struct {
	skillService services.SkillService
}

// NewSkillController creates a new SkillController
func NewSkillController(skillService services.SkillService) *SkillController {
	return &SkillController{skillService: skillService}
}

// ListSkills returns the active skill masters
// @Summary List skills
// @Tags skills
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.SkillMaster} "Skills"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /skills [get]
func (c *SkillController) ListSkills(ctx *gin.Context) {
	skills, err := c.skillService.ListActiveSkills(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(skills, ""))
}
