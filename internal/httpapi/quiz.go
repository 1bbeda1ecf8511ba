package httpapi

import (
	"net/http"

	"github.com/example/vocabquiz/internal/progress"
	"github.com/example/vocabquiz/internal/quiz"
	"github.com/gin-gonic/gin"
)

// QuizHandler serves quizzes and progress
type QuizHandler struct {
	engine   *quiz.Engine
	progress *progress.Service
}

func NewQuizHandler(engine *quiz.Engine, progressService *progress.Service) *QuizHandler {
	return &QuizHandler{engine: engine, progress: progressService}
}

// SubmitRequest carries either positional answers in canonical order or the responses of a
// started attempt keyed by entry id.
type SubmitRequest struct {
	Answers   []string         `json:"answers"`
	AttemptID string           `json:"attempt_id"`
	Responses map[int64]string `json:"responses"`
}

func (h *QuizHandler) StartQuiz(c *gin.Context) {
	testID, ok := idParam(c, "start quiz")
	if !ok {
		return
	}

	session, err := h.engine.StartQuiz(c.Request.Context(), currentUser(c), testID)
	if err != nil {
		respondError(c, "start quiz", err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *QuizHandler) StartRandomQuiz(c *gin.Context) {
	session, err := h.engine.StartRandomQuiz(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, "start random quiz", err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	testID, ok := idParam(c, "submit quiz")
	if !ok {
		return
	}
	var req SubmitRequest
	if !bindJSON(c, "submit quiz", &req) {
		return
	}

	ctx := c.Request.Context()
	userID := currentUser(c)
	if req.AttemptID != "" {
		report, err := h.engine.SubmitAttempt(ctx, userID, req.AttemptID, testID, req.Responses)
		if err != nil {
			respondError(c, "submit quiz", err)
			return
		}
		c.JSON(http.StatusOK, report)
		return
	}

	report, err := h.engine.SubmitQuiz(ctx, userID, testID, req.Answers)
	if err != nil {
		respondError(c, "submit quiz", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *QuizHandler) GetProgress(c *gin.Context) {
	summary, err := h.progress.GetProgress(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, "get progress", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
