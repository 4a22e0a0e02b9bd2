package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"execdash/internal/dashboard"
	"execdash/internal/domain"
	"execdash/internal/insight"
	"execdash/internal/modal"
)

func registerHealth(api huma.API, d *dashboard.Dashboard) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Always 200; reports whether a snapshot is loaded.",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body StatusBody `json:"body"`
	}, error) {
		return &struct {
			Body StatusBody `json:"body"`
		}{Body: toStatusBody(d.View())}, nil
	})
}

func registerSnapshot(api huma.API, d *dashboard.Dashboard) {
	huma.Register(api, huma.Operation{
		OperationID: "snapshot",
		Method:      http.MethodGet,
		Path:        "/snapshot",
		Summary:     "Current snapshot",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body *domain.Snapshot `json:"body"`
	}, error) {
		s, err := d.Current()
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body *domain.Snapshot `json:"body"`
		}{Body: s}, nil
	})
}

func registerRisks(api huma.API, d *dashboard.Dashboard) {
	huma.Register(api, huma.Operation{
		OperationID: "list-risks",
		Method:      http.MethodGet,
		Path:        "/risks",
		Summary:     "Risks and attention items",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body struct {
			Items []RiskResponse `json:"items"`
		} `json:"body"`
	}, error) {
		s, err := d.Current()
		if err != nil {
			return nil, handleError(err)
		}
		resp := &struct {
			Body struct {
				Items []RiskResponse `json:"items"`
			} `json:"body"`
		}{}
		resp.Body.Items = toRiskResponses(insight.ComputeRisks(s))
		return resp, nil
	})
}

func registerMilestones(api huma.API, d *dashboard.Dashboard) {
	huma.Register(api, huma.Operation{
		OperationID: "list-milestones",
		Method:      http.MethodGet,
		Path:        "/milestones",
		Summary:     "Key milestones, one per phase",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body struct {
			Items []insight.MilestoneItem `json:"items"`
		} `json:"body"`
	}, error) {
		s, err := d.Current()
		if err != nil {
			return nil, handleError(err)
		}
		items := insight.ComputeMilestones(s, d.Milestones)
		if items == nil {
			items = []insight.MilestoneItem{}
		}
		resp := &struct {
			Body struct {
				Items []insight.MilestoneItem `json:"items"`
			} `json:"body"`
		}{}
		resp.Body.Items = items
		return resp, nil
	})
}

func registerTasks(api huma.API, d *dashboard.Dashboard) {
	huma.Register(api, huma.Operation{
		OperationID: "list-tasks",
		Method:      http.MethodGet,
		Path:        "/tasks",
		Summary:     "Tasks of a view, sorted like the detail table",
	}, func(ctx context.Context, input *TasksQuery) (*struct {
		Body TasksResponse `json:"body"`
	}, error) {
		s, err := d.Current()
		if err != nil {
			return nil, handleError(err)
		}
		v, err := insight.ParseView(input.View)
		if err != nil {
			return nil, handleError(err)
		}
		m, err := modal.ForView(s, v, input.Sort, input.Dir)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body TasksResponse `json:"body"`
		}{Body: toTasksResponse(v, m)}, nil
	})
}

func registerRefresh(api huma.API, d *dashboard.Dashboard) {
	huma.Register(api, huma.Operation{
		OperationID: "refresh",
		Method:      http.MethodPost,
		Path:        "/refresh",
		Summary:     "Force a reload from the upstream",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body StatusBody `json:"body"`
	}, error) {
		if err := d.Load(context.WithoutCancel(ctx), true); err != nil && !errors.Is(err, dashboard.ErrStale) {
			return nil, handleError(err)
		}
		return &struct {
			Body StatusBody `json:"body"`
		}{Body: toStatusBody(d.View())}, nil
	})
}
