package rest

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/usecase"
)

func (s *Server) handleLogin(c *gin.Context) {
	var args model.LoginArgs
	if err := bindBody(c, &args); err != nil {
		abortWithError(c, err)
		return
	}
	resp, err := s.auth.Login(c.Request.Context(), args)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleMe(c *gin.Context) {
	user, err := s.auth.Me(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) handleHealthz(c *gin.Context) {
	if s.health != nil {
		if err := s.health.Check(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleUploadLogo reads the multipart field "file". The content type is sniffed from the data rather than
// trusted from the client.
func (s *Server) handleUploadLogo(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, usecase.MaxLogoSize+1<<20)
	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abortWithError(c, model.Invalid("file", "must not exceed 5 MiB"))
			return
		}
		abortWithError(c, model.Invalid("file", "is required"))
		return
	}
	if header.Size > usecase.MaxLogoSize {
		abortWithError(c, model.Invalid("file", "must not exceed 5 MiB"))
		return
	}
	f, err := header.Open()
	if err != nil {
		abortWithError(c, model.Invalid("file", "could not be read"))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		abortWithError(c, model.Invalid("file", "could not be read"))
		return
	}

	company, err := s.companies.UploadLogo(c.Request.Context(), c.Param("id"), model.File{
		Name:     header.Filename,
		MimeType: http.DetectContentType(data),
		Data:     data,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (s *Server) handleSpeakerDetails(c *gin.Context) {
	details, err := s.speakers.GetSpeakerDetails(c.Request.Context(), c.Param("id"), includeDeleted(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (s *Server) handleListAuditEvents(c *gin.Context) {
	filter := model.AuditFilter{
		Resource: c.Query("resource"),
		EntityID: c.Query("entityId"),
	}
	var err error
	if filter.Page, err = intQuery(c, "page"); err != nil {
		abortWithError(c, err)
		return
	}
	if filter.Limit, err = intQuery(c, "limit"); err != nil {
		abortWithError(c, err)
		return
	}
	page, err := s.audit.ListEvents(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
