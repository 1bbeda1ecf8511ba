package httpapi

import (
	"net/http"
	"strconv"

	"github.com/example/vocabquiz/internal/apperr"
	"github.com/example/vocabquiz/internal/authoring"
	"github.com/example/vocabquiz/internal/language"
	"github.com/example/vocabquiz/pkg/models"
	"github.com/gin-gonic/gin"
)

// TestHandler serves test and entry authoring
type TestHandler struct {
	authoring *authoring.Service
}

func NewTestHandler(authoringService *authoring.Service) *TestHandler {
	return &TestHandler{authoring: authoringService}
}

type CreateTestRequest struct {
	Name         string `json:"test_name"`
	LanguageFrom string `json:"language_from"`
	LanguageTo   string `json:"language_to"`
}

type CreatedResponse struct {
	ID int64 `json:"id"`
}

type EntryRequest struct {
	TextFrom string `json:"word_or_sentence_from"`
	TextTo   string `json:"word_or_sentence_to"`
}

func (h *TestHandler) ListLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, language.Options())
}

func (h *TestHandler) ListTests(c *gin.Context) {
	tests, err := h.authoring.ListMyTests(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, "list tests", err)
		return
	}
	c.JSON(http.StatusOK, tests)
}

func (h *TestHandler) CreateTest(c *gin.Context) {
	var req CreateTestRequest
	if !bindJSON(c, "create test", &req) {
		return
	}

	id, err := h.authoring.CreateTest(c.Request.Context(), currentUser(c), req.Name, req.LanguageFrom, req.LanguageTo)
	if err != nil {
		respondError(c, "create test", err)
		return
	}
	c.JSON(http.StatusCreated, CreatedResponse{ID: id})
}

func (h *TestHandler) GetTestForEdit(c *gin.Context) {
	testID, ok := idParam(c, "get test")
	if !ok {
		return
	}

	form, err := h.authoring.GetTestForEdit(c.Request.Context(), currentUser(c), testID)
	if err != nil {
		respondError(c, "get test", err)
		return
	}
	c.JSON(http.StatusOK, form)
}

func (h *TestHandler) UpdateTest(c *gin.Context) {
	testID, ok := idParam(c, "update test")
	if !ok {
		return
	}
	var req models.TestUpdate
	if !bindJSON(c, "update test", &req) {
		return
	}

	test, err := h.authoring.UpdateTest(c.Request.Context(), currentUser(c), testID, req)
	if err != nil {
		respondError(c, "update test", err)
		return
	}
	c.JSON(http.StatusOK, language.Decorate(*test))
}

func (h *TestHandler) SubmitTestEdit(c *gin.Context) {
	testID, ok := idParam(c, "edit test")
	if !ok {
		return
	}
	var req models.TestEdit
	if !bindJSON(c, "edit test", &req) {
		return
	}

	form, err := h.authoring.SubmitTestEdit(c.Request.Context(), currentUser(c), testID, req)
	if err != nil {
		respondError(c, "edit test", err)
		return
	}
	c.JSON(http.StatusOK, form)
}

func (h *TestHandler) DeleteTest(c *gin.Context) {
	testID, ok := idParam(c, "delete test")
	if !ok {
		return
	}

	if err := h.authoring.DeleteTest(c.Request.Context(), currentUser(c), testID); err != nil {
		respondError(c, "delete test", err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "test deleted"})
}

func (h *TestHandler) AddEntry(c *gin.Context) {
	testID, ok := idParam(c, "add entry")
	if !ok {
		return
	}
	var req EntryRequest
	if !bindJSON(c, "add entry", &req) {
		return
	}

	entry, err := h.authoring.AddEntry(c.Request.Context(), currentUser(c), testID, req.TextFrom, req.TextTo)
	if err != nil {
		respondError(c, "add entry", err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *TestHandler) ImportEntries(c *gin.Context) {
	testID, ok := idParam(c, "import entries")
	if !ok {
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		respondError(c, "import entries", apperr.Validation("a file upload named \"file\" is required"))
		return
	}
	file, err := header.Open()
	if err != nil {
		respondError(c, "import entries", apperr.Validation("failed to read upload: %v", err))
		return
	}
	defer file.Close()

	result, err := h.authoring.ImportEntries(c.Request.Context(), currentUser(c), testID, header.Filename, file)
	if err != nil {
		respondError(c, "import entries", err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *TestHandler) UpdateEntry(c *gin.Context) {
	entryID, ok := idParam(c, "update entry")
	if !ok {
		return
	}
	var req EntryRequest
	if !bindJSON(c, "update entry", &req) {
		return
	}

	entry, err := h.authoring.UpdateEntry(c.Request.Context(), currentUser(c), entryID, req.TextFrom, req.TextTo)
	if err != nil {
		respondError(c, "update entry", err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *TestHandler) DeleteEntry(c *gin.Context) {
	entryID, ok := idParam(c, "delete entry")
	if !ok {
		return
	}

	if err := h.authoring.DeleteEntry(c.Request.Context(), currentUser(c), entryID); err != nil {
		respondError(c, "delete entry", err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "entry deleted"})
}

// idParam parses the :id path parameter
func idParam(c *gin.Context, op string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, op, apperr.Validation("invalid id %q", c.Param("id")))
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, op string, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, op, apperr.Validation("invalid request body: %v", err))
		return false
	}
	return true
}
