package handlers

import (
	"bytes"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillatlas/skillatlas/internal/services"
	"github.com/skillatlas/skillatlas/internal/utils"
)

// maxCVSize caps uploads at 10MB; anything bigger is not a resume.
const maxCVSize = 10 << 20

type CVHandler struct {
	cvs      services.CVService
	analysis services.AnalysisService
}

func NewCVHandler(cvs services.CVService, analysis services.AnalysisService) *CVHandler {
	return &CVHandler{cvs: cvs, analysis: analysis}
}

// validateCVFile rejects anything that is not a PDF before the file
// reaches text extraction. The extension check catches mislabelled
// uploads cheaply; the content sniff catches renamed ones.
func validateCVFile(name string, data []byte) error {
	const op = "CVHandler.Upload"

	if ext := strings.ToLower(filepath.Ext(name)); ext != ".pdf" {
		return utils.E(utils.CodeInvalidArgument, op, "only PDF files are supported", nil)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return utils.E(utils.CodeInvalidArgument, op, "file is not a valid PDF", nil)
	}
	return nil
}

func (h *CVHandler) Upload(c *gin.Context) {
	const op = "CVHandler.Upload"

	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("cv")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "missing cv file", err))
		return
	}
	if fileHeader.Size > maxCVSize {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "file exceeds the 10MB limit", nil))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to read uploaded file", err))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxCVSize+1))
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to read uploaded file", err))
		return
	}
	if len(data) > maxCVSize {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "file exceeds the 10MB limit", nil))
		return
	}

	if err := validateCVFile(fileHeader.Filename, data); err != nil {
		writeError(c, err)
		return
	}

	cv, err := h.cvs.Upload(c.Request.Context(), id.UserID, fileHeader.Filename, data)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cv)
}

func (h *CVHandler) Latest(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	cv, err := h.cvs.Latest(c.Request.Context(), id.UserID)
	if err != nil {
		// No upload yet is an empty result, not a failure.
		if utils.IsCode(err, utils.CodeNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cv)
}

func (h *CVHandler) Analysis(c *gin.Context) {
	const op = "CVHandler.Analysis"

	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	roleID := c.Query("role")
	if roleID == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "role query parameter is required", nil))
		return
	}

	analysis, err := h.analysis.Analyze(c.Request.Context(), id.UserID, roleID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}
