package ui

import (
	"bytes"
	"net/http"
)

// renderTemplate executes a template into a buffer first to catch any errors
// before writing to the response
func (a *App) renderTemplate(w http.ResponseWriter, status int, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := a.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		a.logger.Error("[App] template %s failed: %v", templateName, err)
		http.Error(w, "Template rendering failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		a.logger.Error("[App] writing %s response: %v", templateName, err)
	}
}

// renderError shows the themed error page
func (a *App) renderError(w http.ResponseWriter, status int, message string) {
	a.renderTemplate(w, status, "error", errorPage{
		basePage: basePage{Title: "Error"},
		Status:   status,
		Message:  message,
	})
}
