package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/goldenglowitsolutions/scheduling-service/internal/services"
	"github.com/goldenglowitsolutions/scheduling-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	BaseHandler
	service services.ExportService
}

func NewExportHandler(service services.ExportService, logger utils.Logger) *ExportHandler {
	return &ExportHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ExportStudents downloads the student roster as xlsx
// @Summary Export students
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /students/export [get]
func (h *ExportHandler) ExportStudents(c *gin.Context) {
	h.LogRequest(c, "Exporting students")

	data, err := h.service.ExportStudents(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendWorkbook(c, "students", data)
}

// ExportCourses downloads the course catalog as xlsx
// @Summary Export courses
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /courses/export [get]
func (h *ExportHandler) ExportCourses(c *gin.Context) {
	h.LogRequest(c, "Exporting courses")

	data, err := h.service.ExportCourses(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendWorkbook(c, "courses", data)
}

func (h *ExportHandler) sendWorkbook(c *gin.Context, name string, data []byte) {
	filename := fmt.Sprintf("%s-%s.xlsx", name, time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
