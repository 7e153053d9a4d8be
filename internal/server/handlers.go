package server

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/sbom-report/internal/pipeline"
	"github.com/jonathan/sbom-report/internal/server/middleware"
)

const (
	// uploadField is the multipart form field carrying the SBOM file.
	uploadField = "json_file"
	// downloadName is the filename offered for the generated report.
	downloadName = "sbom_document.pdf"
	// multipartMemory is the part of a multipart upload kept in memory before spilling to disk.
	multipartMemory = 8 << 20
)

type indexData struct {
	MaxUpload string
}

// handleIndex serves the upload form
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.index.Execute(w, indexData{MaxUpload: formatBytes(s.maxUploadBytes)}); err != nil {
		s.logger.Error("failed to render upload page",
			zap.String("request_id", middleware.GetRequestID(r)),
			zap.Error(err),
		)
	}
}

// handleProcess converts an uploaded SBOM into a PDF download
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	log := s.logger.With(zap.String("request_id", middleware.GetRequestID(r)))

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	raw, err := s.readUpload(r)
	if err != nil {
		log.Warn("rejected upload", zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), publicMessage(err))
		return
	}

	opts := pipeline.Options{
		Render: s.renderOptions,
		OnProgress: func(e pipeline.ProgressEvent) {
			log.Debug("conversion progress", zap.String("stage", string(e.Stage)), zap.String("message", e.Message))
			if len(e.Warnings) > 0 {
				log.Warn("sbom parsed with warnings", zap.Strings("warnings", e.Warnings))
			}
		},
	}
	pdf, err := pipeline.ConvertWithOptions(raw, opts)
	if err != nil {
		status := HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			log.Error("conversion failed", zap.Error(err))
		} else {
			log.Info("conversion rejected", zap.Error(err))
		}
		s.errorResponse(w, status, publicMessage(err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", downloadName))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Warn("failed to write PDF response", zap.Error(err))
	}
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readUpload returns the SBOM bytes from a multipart form upload or a raw JSON body.
func (s *Server) readUpload(r *http.Request) ([]byte, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, &ErrUpload{Message: "missing or invalid Content-Type", Cause: err}
	}

	switch mediaType {
	case "multipart/form-data":
		return s.readMultipart(r)
	case "application/json":
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, s.readError(err)
		}
		return raw, nil
	default:
		return nil, &ErrUpload{Message: fmt.Sprintf("unsupported Content-Type %q", mediaType)}
	}
}

func (s *Server) readMultipart(r *http.Request) ([]byte, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return nil, s.readError(err)
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, &ErrUpload{Message: "no file uploaded"}
		}
		return nil, s.readError(err)
	}
	defer file.Close()

	if header.Filename == "" {
		return nil, &ErrUpload{Message: "no file selected"}
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".json") {
		return nil, &ErrUpload{Message: "please upload a JSON file"}
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, s.readError(err)
	}
	return raw, nil
}

// readError classifies a body read failure.
func (s *Server) readError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &ErrTooLarge{Limit: tooLarge.Limit}
	}
	return &ErrUpload{Message: "failed to read upload", Cause: err}
}

// formatBytes renders a byte count for the upload form, e.g. "10 MiB".
func formatBytes(n int64) string {
	const unit = 1024
	switch {
	case n >= unit*unit && n%(unit*unit) == 0:
		return fmt.Sprintf("%d MiB", n/(unit*unit))
	case n >= unit && n%unit == 0:
		return fmt.Sprintf("%d KiB", n/unit)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
