package controller

import (
	"trading_edu_backend/internal/model"
	"trading_edu_backend/internal/service"
	"trading_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// InterviewController serves the four-level practice content tree used by
// the interview screens.
type InterviewController struct {
	Service *service.ContentService
}

func NewInterviewController(svc *service.ContentService) *InterviewController {
	return &InterviewController{Service: svc}
}

// respondList reports success, flagging responses assembled from surrogate
// data while the database is unreachable.
func (c *InterviewController) respond(ctx *gin.Context, data interface{}) {
	if c.Service.Degraded() {
		util.SuccessDegraded(ctx, data)
		return
	}
	util.Success(ctx, data)
}

// @Summary Full content tree for a market
// @Tags interview
// @Produce json
// @Param market query string true "crypto or gold"
// @Success 200 {object} util.Response
// @Router /api/interview/tree [get]
func (c *InterviewController) GetTree(ctx *gin.Context) {
	market, err := model.ParseMarket(ctx.Query("market"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tree, err := c.Service.Tree(market)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	c.respond(ctx, tree)
}

// @Summary List topics
// @Tags interview
// @Produce json
// @Param market query string false "crypto or gold"
// @Success 200 {object} util.Response
// @Router /api/interview/topics [get]
func (c *InterviewController) ListTopics(ctx *gin.Context) {
	market := model.Market(ctx.Query("market"))

	topics, err := c.Service.ListTopics(market)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	c.respond(ctx, topics)
}

// @Summary Create topic
// @Tags interview
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.TopicRequest true "topic"
// @Success 201 {object} util.Response
// @Router /api/interview/topic [post]
func (c *InterviewController) CreateTopic(ctx *gin.Context) {
	var req service.TopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	topics, err := c.Service.CreateTopic(req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	c.respond(ctx, topics)
}

// @Summary Update topic
// @Tags interview
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "topic id"
// @Param body body service.TopicRequest true "topic"
// @Success 200 {object} util.Response
// @Router /api/interview/topic/{id} [put]
func (c *InterviewController) UpdateTopic(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req service.TopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	topics, err := c.Service.UpdateTopic(id, req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	c.respond(ctx, topics)
}

// @Summary Delete topic with its sections, questions and exercises
// @Tags interview
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "topic id"
// @Success 200 {object} util.Response
// @Router /api/interview/topic/{id} [delete]
func (c *InterviewController) DeleteTopic(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	topics, err := c.Service.DeleteTopic(id)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	c.respond(ctx, topics)
}

// @Summary List sections of a topic
// @Tags interview
// @Produce json
// @Param topicId query int true "topic id"
// @Param market query string false "validates the topic against the active market"
// @Success 200 {object} util.Response
// @Router /api/interview/sections [get]
func (c *InterviewController) ListSections(ctx *gin.Context) {
	topicID := util.MustParseUint(ctx.Query("topicId"))

	// A market param alongside topicId pins the scope chain; a topic from
	// another market never leaks into the current screen.
	if market := ctx.Query("market"); market != "" {
		var sel model.TreeSelection
		sel.SelectMarket(model.Market(market))
		sel.SelectTopic(topicID)
		if err := c.Service.ValidateScope(sel); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	sections, err := c.Service.ListSections(topicID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	c.respond(ctx, sections)
}

// @Summary Create section
// @Tags interview
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SectionRequest true "section"
// @Success 201 {object} util.Response
// @Router /api/interview/section [post]
func (c *InterviewController) CreateSection(ctx *gin.Context) {
	var req service.SectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sections, err := c.Service.CreateSection(req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	c.respond(ctx, sections)
}

// @Summary Update section
// @Tags interview
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "section id"
// @Param body body service.SectionRequest true "section"
// @Success 200 {object} util.Response
// @Router /api/interview/section/{id} [put]
func (c *InterviewController) UpdateSection(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req service.SectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sections, err := c.Service.UpdateSection(id, req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	c.respond(ctx, sections)
}

// @Summary Delete section with its questions and exercises
// @Tags interview
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "section id"
// @Success 200 {object} util.Response
// @Router /api/interview/section/{id} [delete]
func (c *InterviewController) DeleteSection(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	sections, err := c.Service.DeleteSection(id)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	c.respond(ctx, sections)
}

// @Summary List questions of a section
// @Tags interview
// @Produce json
// @Param sectionId query int true "section id"
// @Param level query string false "Entry|Junior|Middle|Senior|Expert|All"
// @Success 200 {object} util.Response
// @Router /api/interview/questions [get]
func (c *InterviewController) ListQuestions(ctx *gin.Context) {
	sectionID := util.MustParseUint(ctx.Query("sectionId"))
	level := model.QuestionLevel(ctx.DefaultQuery("level", string(model.LevelAll)))

	questions, err := c.Service.ListQuestions(sectionID, level)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	c.respond(ctx, questions)
}

// @Summary Create question
// @Tags interview
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuestionRequest true "question"
// @Success 201 {object} util.Response
// @Router /api/interview/question [post]
func (c *InterviewController) CreateQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	questions, err := c.Service.CreateQuestion(req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	c.respond(ctx, questions)
}

// @Summary Update question
// @Tags interview
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Param body body service.QuestionRequest true "question"
// @Success 200 {object} util.Response
// @Router /api/interview/question/{id} [put]
func (c *InterviewController) UpdateQuestion(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	questions, err := c.Service.UpdateQuestion(id, req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	c.respond(ctx, questions)
}

// @Summary Delete question
// @Tags interview
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response
// @Router /api/interview/question/{id} [delete]
func (c *InterviewController) DeleteQuestion(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	questions, err := c.Service.DeleteQuestion(id)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	c.respond(ctx, questions)
}
