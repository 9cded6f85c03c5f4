// Package webchat serves the script that embeds the bot's chat window in a
// host page. The window collapses to its title bar and expands on click.
package webchat

import (
	"bytes"
	"embed"
	"net/http"
	"text/template"

	"go.uber.org/zap"
)

//go:embed webchat.js.tmpl
var scriptFS embed.FS

var scriptTmpl = template.Must(template.ParseFS(scriptFS, "webchat.js.tmpl"))

type scriptData struct {
	EmbedURL     string
	Width        string
	OpenHeight   string
	ClosedHeight string
}

type Handler struct {
	embedURL string
	log      *zap.Logger
}

func NewHandler(embedURL string, log *zap.Logger) *Handler {
	return &Handler{embedURL: embedURL, log: log}
}

func (h *Handler) HandleScript(w http.ResponseWriter, r *http.Request) {
	if h.embedURL == "" {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	err := scriptTmpl.Execute(&buf, scriptData{
		EmbedURL:     h.embedURL,
		Width:        "400px",
		OpenHeight:   "500px",
		ClosedHeight: "38px",
	})
	if err != nil {
		h.log.Error("webchat: rendering script", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.Write(buf.Bytes())
}
