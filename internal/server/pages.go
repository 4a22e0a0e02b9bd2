package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"execdash/internal/dashboard"
	"execdash/internal/insight"
	"execdash/internal/modal"
	"execdash/internal/render"
)

type pages struct {
	dash        *dashboard.Dashboard
	log         *zap.Logger
	loc         *time.Location
	refreshSecs int
}

// index renders the dashboard. ?view= opens the task modal on that view,
// with optional &sort= and &dir=.
func (p *pages) index(w http.ResponseWriter, r *http.Request) {
	v := p.dash.View()
	data := render.PageData{
		Snapshot:       v.Snapshot,
		Error:          v.Error,
		Loading:        v.Loading,
		Location:       p.loc,
		Milestones:     p.dash.Milestones,
		RefreshSeconds: p.refreshSecs,
	}
	q := r.URL.Query()
	if ref := q.Get("view"); ref != "" && v.Snapshot != nil {
		view, err := insight.ParseView(ref)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		m, err := modal.ForView(v.Snapshot, view, q.Get("sort"), q.Get("dir"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		data.Modal, data.View = m, view
		// Auto reload would close the modal under the reader.
		data.RefreshSeconds = 0
	}
	var buf bytes.Buffer
	if err := render.Page(&buf, data); err != nil {
		p.log.Error("render page", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// refresh forces a reload and sends the browser back to the page, which
// shows the new snapshot or the error. The load outlives the request: the
// state is shared by every viewer and the upstream client has its own timeout.
func (p *pages) refresh(w http.ResponseWriter, r *http.Request) {
	if err := p.dash.Load(context.WithoutCancel(r.Context()), true); err != nil && !errors.Is(err, dashboard.ErrStale) {
		p.log.Warn("manual refresh failed", zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
