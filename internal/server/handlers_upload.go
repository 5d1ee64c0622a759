package server

import (
	"io"
	"net/http"
	"strings"
)

const maxUploadBytes = 10 << 20 // 10 MiB

var imageTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

var resumeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	s.handleUpload(w, r, "images", imageTypes, "Only image files are allowed")
}

func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	s.handleUpload(w, r, "resume", resumeTypes, "Only PDF or Word documents are allowed")
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request, folder string, allowed map[string]bool, typeMsg string) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.uploads.Enabled() {
		writeErr(w, http.StatusServiceUnavailable, "uploads are not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeErr(w, http.StatusBadRequest, "file is missing or too large")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeErr(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "could not read file")
		return
	}

	// Sniff the content rather than trusting the client's header.
	contentType := http.DetectContentType(data)
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	// DetectContentType cannot identify docx/svg; fall back to the declared type.
	if !allowed[contentType] {
		contentType = header.Header.Get("Content-Type")
	}
	if !allowed[contentType] {
		writeErr(w, http.StatusBadRequest, typeMsg)
		return
	}

	url, err := s.uploads.Put(r.Context(), folder, header.Filename, contentType, data)
	if err != nil {
		s.logger.Printf("upload %s: %v", folder, err)
		writeErr(w, http.StatusBadGateway, "upload failed")
		return
	}

	s.trail.Record(actorID(r), "upload."+folder, "name="+header.Filename)
	writeJSONStatus(w, http.StatusCreated, map[string]any{"success": true, "url": url})
}
