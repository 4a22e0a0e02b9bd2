package server

import (
	"time"

	"execdash/internal/dashboard"
	"execdash/internal/domain"
	"execdash/internal/insight"
	"execdash/internal/modal"
)

// Request payloads

type TasksQuery struct {
	View string `query:"view" default:"all" doc:"view reference, e.g. all, status:done, phase:2, member:Jane Doe, risk:0"`
	Sort string `query:"sort" doc:"column to sort by" example:"summary"`
	Dir  string `query:"dir" doc:"asc or desc; requires sort"`
}

// Response payloads

type StatusBody struct {
	Status   string          `json:"status" example:"ok"`
	State    dashboard.State `json:"state" enum:"loading,error,ready"`
	Loading  bool            `json:"loading"`
	Error    string          `json:"error,omitempty"`
	LoadedAt *time.Time      `json:"loaded_at,omitempty"`
	LoadID   string          `json:"load_id,omitempty"`
}

type RiskResponse struct {
	Level  insight.Level `json:"level" enum:"high,medium,info"`
	Title  string        `json:"title"`
	Detail string        `json:"detail"`
	View   string        `json:"view" doc:"view reference listing the related tasks"`
}

type TasksResponse struct {
	View  string        `json:"view"`
	Title string        `json:"title"`
	Count int           `json:"count"`
	Sort  string        `json:"sort,omitempty"`
	Dir   string        `json:"dir,omitempty"`
	Tasks []domain.Task `json:"tasks"`
}

func toStatusBody(v dashboard.View) StatusBody {
	out := StatusBody{
		Status:  "ok",
		State:   v.State,
		Loading: v.Loading,
		Error:   v.Error,
		LoadID:  v.LoadID,
	}
	if !v.LoadedAt.IsZero() {
		at := v.LoadedAt.UTC()
		out.LoadedAt = &at
	}
	return out
}

func toRiskResponses(items []insight.RiskItem) []RiskResponse {
	out := make([]RiskResponse, 0, len(items))
	for i, r := range items {
		out = append(out, RiskResponse{
			Level:  r.Level,
			Title:  r.Title,
			Detail: r.Detail,
			View:   insight.RiskTasks(i).Ref(),
		})
	}
	return out
}

func toTasksResponse(v insight.View, m *modal.Modal) TasksResponse {
	rows := m.Rows()
	if rows == nil {
		rows = []domain.Task{}
	}
	st := m.SortState()
	return TasksResponse{
		View:  v.Ref(),
		Title: m.Title(),
		Count: m.Count(),
		Sort:  string(st.Column),
		Dir:   st.Dir(),
		Tasks: rows,
	}
}
