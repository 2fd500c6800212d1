package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nguyentantai21042004/caption-qa/internal/apperr"
	"github.com/nguyentantai21042004/caption-qa/internal/models"
	"github.com/nguyentantai21042004/caption-qa/internal/session"
)

type transcriptRequest struct {
	Transcript string `json:"transcript"`
}

type sessionResponse struct {
	ID        string    `json:"id"`
	Chunks    int       `json:"chunks"`
	CreatedAt time.Time `json:"created_at"`
}

type summaryRequest struct {
	Format string `json:"format"`
}

type summaryResponse struct {
	Summary  string `json:"summary"`
	Format   string `json:"format"`
	Strategy string `json:"strategy"`
	Tokens   int    `json:"tokens"`
}

type planResponse struct {
	Strategy string `json:"strategy"`
	Tokens   int    `json:"tokens"`
}

type questionRequest struct {
	Question string `json:"question"`
}

type answerResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func toSessionResponse(sess *session.Session) sessionResponse {
	return sessionResponse{ID: sess.ID, Chunks: sess.IndexSize(), CreatedAt: sess.CreatedAt}
}

// POST /api/sessions
func (s *implServer) createSession(c *gin.Context) {
	var req transcriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBadRequest(c, err)
		return
	}

	sess, err := s.sessions.Initialize(c.Request.Context(), req.Transcript)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSessionResponse(sess))
}

// PUT /api/sessions/:id
func (s *implServer) resubmitSession(c *gin.Context) {
	var req transcriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBadRequest(c, err)
		return
	}

	sess, err := s.sessions.Resubmit(c.Request.Context(), c.Param("id"), req.Transcript)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(sess))
}

// DELETE /api/sessions/:id
func (s *implServer) deleteSession(c *gin.Context) {
	if err := s.sessions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/sessions/:id/summary
func (s *implServer) summarize(c *gin.Context) {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	var req summaryRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			s.respondBadRequest(c, err)
			return
		}
	}

	format := s.defaultFormat
	if req.Format != "" {
		format, err = models.ParseOutputFormat(req.Format)
		if err != nil {
			s.respondError(c, apperr.Wrap(err, apperr.CodeValidation, "invalid format"))
			return
		}
	}

	summary, err := sess.Report(c.Request.Context(), format)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summaryResponse{
		Summary:  summary.Text,
		Format:   format.String(),
		Strategy: summary.Strategy.String(),
		Tokens:   summary.Tokens,
	})
}

// GET /api/sessions/:id/summary/plan
func (s *implServer) summaryPlan(c *gin.Context) {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	strategy, tokens, err := sess.Plan(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, planResponse{
		Strategy: strategy.String(),
		Tokens:   tokens,
	})
}

// POST /api/sessions/:id/questions
func (s *implServer) ask(c *gin.Context) {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBadRequest(c, err)
		return
	}

	answer, err := sess.Answer(c.Request.Context(), req.Question)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, answerResponse{Question: req.Question, Answer: answer})
}

// GET /api/sessions/:id/questions
func (s *implServer) listQuestions(c *gin.Context) {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	exchanges, err := sess.History(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": exchanges})
}
