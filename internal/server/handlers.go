package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spigell/skillgap/internal/analysis"
	"github.com/spigell/skillgap/internal/document"
	"github.com/spigell/skillgap/internal/scoring"
)

type analyzeRequest struct {
	ResumeText   string           `json:"resume_text" validate:"required"`
	JobText      string           `json:"job_text" validate:"required"`
	ResumeSkills []string         `json:"resume_skills"`
	JobSkills    []string         `json:"job_skills"`
	Weights      *scoring.Weights `json:"weights"`
	Advise       bool             `json:"advise"`
}

type skillsRequest struct {
	Text string `json:"text" validate:"required"`
}

type skillsResponse struct {
	Skills []string `json:"skills"`
	Count  int      `json:"count"`
}

// parseRequest is the JSON form of /v1/parse. Files are sent as multipart
// form data in the "file" field instead.
type parseRequest struct {
	Text string `json:"text" validate:"required"`
}

// Scores are pointers so an explicit 0 passes the required rule.
type scoreRequest struct {
	SimilarityScore *float64         `json:"similarity_score" validate:"required"`
	KeywordScore    *float64         `json:"keyword_score" validate:"required"`
	Weights         *scoring.Weights `json:"weights"`
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) analyze(c *gin.Context) {
	var req analyzeRequest
	if !s.bindAndValidate(c, &req) {
		return
	}

	in := analysis.Input{
		ResumeText:   req.ResumeText,
		JobText:      req.JobText,
		ResumeSkills: req.ResumeSkills,
		JobSkills:    req.JobSkills,
		Weights:      req.Weights,
	}

	report, err := s.analyzer.Analyze(c.Request.Context(), in)
	if err != nil {
		s.logger.Error("analysis failed", zap.String(requestIDKey, c.GetString(requestIDKey)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "analysis failed"})
		return
	}

	if req.Advise {
		if s.advisor == nil {
			report.AdviceError = "ai advisor is not enabled"
		} else {
			s.analyzer.Advise(c.Request.Context(), s.advisor, report, in)
		}
	}

	c.JSON(http.StatusOK, report)
}

func (s *Server) skills(c *gin.Context) {
	var req skillsRequest
	if !s.bindAndValidate(c, &req) {
		return
	}

	found := s.extractor.Extract(req.Text)
	c.JSON(http.StatusOK, skillsResponse{Skills: found, Count: len(found)})
}

func (s *Server) parse(c *gin.Context) {
	var (
		doc *document.Document
		err error
	)

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		doc, err = s.readUpload(c)
		if err != nil {
			var status int
			switch {
			case errors.Is(err, errUploadTooLarge):
				status = http.StatusRequestEntityTooLarge
			case errors.Is(err, document.ErrUnsupportedType):
				status = http.StatusUnsupportedMediaType
			case errors.Is(err, document.ErrEmptyText):
				status = http.StatusUnprocessableEntity
			default:
				status = http.StatusBadRequest
			}
			c.JSON(status, errorResponse{Error: err.Error()})
			return
		}
	} else {
		var req parseRequest
		if !s.bindAndValidate(c, &req) {
			return
		}
		doc, err = document.FromBytes(document.MIMEText, []byte(req.Text))
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, s.analyzer.Profile(doc))
}

var errUploadTooLarge = fmt.Errorf("upload exceeds %d bytes", maxUploadBytes)

func (s *Server) readUpload(c *gin.Context) (*document.Document, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("missing file field: %w", err)
	}
	if header.Size > maxUploadBytes {
		return nil, errUploadTooLarge
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > maxUploadBytes {
		return nil, errUploadTooLarge
	}

	return document.ReadBytes(header.Filename, data)
}

func (s *Server) score(c *gin.Context) {
	var req scoreRequest
	if !s.bindAndValidate(c, &req) {
		return
	}

	weights := s.analyzer.Options().Weights
	if req.Weights != nil {
		weights = *req.Weights
	}

	c.JSON(http.StatusOK, scoring.Combine(*req.SimilarityScore, *req.KeywordScore, weights))
}

func (s *Server) bindAndValidate(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}

	if err := s.validator.Validate(obj); err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, errorResponse{Error: vErr.Error(), Fields: vErr.Fields})
			return false
		}
		s.logger.Error("validator failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal validation error"})
		return false
	}
	return true
}
