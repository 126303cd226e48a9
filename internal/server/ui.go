package server

import (
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/KI-IAN/llm-web-scrapper/internal/model"
)

//go:embed ui/index.html
var uiFS embed.FS

var indexTmpl = template.Must(template.ParseFS(uiFS, "ui/index.html"))

type indexData struct {
	Models   []model.ModelChoice
	Backends []model.Backend
	Formats  []model.OutputFormat
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := indexTmpl.Execute(w, indexData{
		Models:   s.extractor.Choices(),
		Backends: s.scraper.Available(),
		Formats:  model.Formats(),
	})
	if err != nil {
		zap.L().Error("render index", zap.Error(err))
	}
}
