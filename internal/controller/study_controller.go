package controller

import (
	"trading_edu_backend/internal/service"
	"trading_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// StudyController serves the exercise screens: authoring on the admin side,
// practice sessions plus grading on the student side.
type StudyController struct {
	Service *service.ExerciseService
	Grading *service.GradingService
}

func NewStudyController(svc *service.ExerciseService, grading *service.GradingService) *StudyController {
	return &StudyController{Service: svc, Grading: grading}
}

func (c *StudyController) respond(ctx *gin.Context, data interface{}) {
	if c.Service.Degraded() {
		util.SuccessDegraded(ctx, data)
		return
	}
	util.Success(ctx, data)
}

// @Summary List exercises of a section
// @Tags study
// @Produce json
// @Param sectionId query int true "section id"
// @Success 200 {object} util.Response
// @Router /api/study [get]
func (c *StudyController) ListExercises(ctx *gin.Context) {
	sectionID := util.MustParseUint(ctx.Query("sectionId"))

	exercises, err := c.Service.ListBySection(sectionID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	c.respond(ctx, exercises)
}

// @Summary Get one exercise
// @Tags study
// @Produce json
// @Param id path int true "exercise id"
// @Success 200 {object} util.Response
// @Router /api/study/{id} [get]
func (c *StudyController) GetExercise(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	exercise, err := c.Service.Get(id)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	c.respond(ctx, exercise)
}

// @Summary Create exercise
// @Tags study
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ExerciseRequest true "exercise; options/media/related_question_ids are JSON-encoded strings"
// @Success 201 {object} util.Response
// @Router /api/study [post]
func (c *StudyController) CreateExercise(ctx *gin.Context) {
	var req service.ExerciseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exercises, err := c.Service.Create(req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	c.respond(ctx, exercises)
}

// @Summary Update exercise
// @Tags study
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "exercise id"
// @Param body body service.ExerciseRequest true "exercise"
// @Success 200 {object} util.Response
// @Router /api/study/{id} [put]
func (c *StudyController) UpdateExercise(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req service.ExerciseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exercises, err := c.Service.Update(id, req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	c.respond(ctx, exercises)
}

// @Summary Delete exercise
// @Tags study
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "exercise id"
// @Success 200 {object} util.Response
// @Router /api/study/{id} [delete]
func (c *StudyController) DeleteExercise(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	exercises, err := c.Service.Delete(id)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	c.respond(ctx, exercises)
}

// @Summary Grade a completed practice session
// @Description Stateless: computes the summary for the submitted answers and returns it. Nothing is stored.
// @Tags study
// @Accept json
// @Produce json
// @Param body body service.GradeRequest true "section id and answer map keyed by exercise id"
// @Success 200 {object} util.Response
// @Router /api/study/grade [post]
func (c *StudyController) GradeSession(ctx *gin.Context) {
	var req service.GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	summary, err := c.Grading.GradeSection(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	c.respond(ctx, summary)
}
