package render

const tmplBase = `
{{define "base"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
{{if gt .RefreshSeconds 0}}<meta http-equiv="refresh" content="{{.RefreshSeconds}}">{{end}}
<title>Executive Dashboard</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:-apple-system,'Segoe UI',Helvetica,Arial,sans-serif;background:#0d1117;color:#c9d1d9;font-size:14px;line-height:1.5}
body.modal-open{overflow:hidden}
a{color:inherit;text-decoration:none}
header{background:#161b22;border-bottom:1px solid #30363d;padding:16px 24px;display:flex;justify-content:space-between;align-items:center;gap:16px}
h1{font-size:20px;font-weight:700;color:#f0f6fc}
.subtitle,.last-updated{color:#8b949e;font-size:12px}
.header-right{display:flex;align-items:center;gap:12px}
.status-badge{padding:2px 10px;border-radius:12px;font-size:12px;font-weight:600}
.status-badge.in-progress{background:#d2992233;color:#d29922}
.status-badge.done{background:#23863633;color:#56d364}
.refresh-btn{background:#21262d;border:1px solid #30363d;color:#c9d1d9;border-radius:6px;padding:4px 12px;cursor:pointer}
.refresh-btn.loading{opacity:.5;cursor:wait}
main{padding:24px;max-width:1400px;margin:0 auto}
.state{padding:48px;text-align:center;color:#8b949e}
.state.error{color:#f87171}
.kpi-row{display:grid;grid-template-columns:repeat(5,1fr);gap:12px;margin-bottom:16px}
.kpi-card{background:#161b22;border:1px solid #30363d;border-top:3px solid #30363d;border-radius:6px;padding:14px 16px;display:block}
.kpi-card.blue{border-top-color:#1f6feb}.kpi-card.green{border-top-color:#238636}.kpi-card.yellow{border-top-color:#d29922}.kpi-card.red{border-top-color:#da3633}.kpi-card.purple{border-top-color:#8957e5}
.kpi-label{font-size:11px;color:#8b949e;text-transform:uppercase;letter-spacing:.05em}
.kpi-value{font-size:28px;font-weight:700;color:#f0f6fc}
.kpi-detail{font-size:12px;color:#8b949e}
.panel{background:#161b22;border:1px solid #30363d;border-radius:6px;padding:16px;margin-bottom:16px}
.grid{display:grid;grid-template-columns:2fr 1fr;gap:16px}
.section-title{font-size:12px;font-weight:600;color:#8b949e;text-transform:uppercase;letter-spacing:.05em;margin-bottom:12px;display:flex;justify-content:space-between}
.progress-bar-container{display:flex;height:14px;border-radius:7px;overflow:hidden;background:#21262d}
.progress-segment.done,.swatch.done{background:#238636}
.progress-segment.in-prog,.swatch.in-prog{background:#d29922}
.progress-segment.todo,.swatch.todo{background:#484f58}
.progress-labels{display:flex;gap:16px;margin-top:8px;font-size:12px}
.swatch{display:inline-block;width:10px;height:10px;border-radius:2px}
.phase-row{display:grid;grid-template-columns:40px 1fr 160px 56px 140px;align-items:center;gap:12px;padding:8px 0;border-bottom:1px solid #21262d}
.phase-number{width:32px;height:32px;border-radius:50%;display:flex;align-items:center;justify-content:center;font-weight:700;background:#21262d}
.phase-number.done{background:#238636;color:#fff}.phase-number.in-prog{background:#d29922;color:#0d1117}
.phase-meta{font-size:12px;color:#8b949e}
.phase-bar{display:flex;height:8px;border-radius:4px;overflow:hidden;background:#21262d}
.phase-bar .done{background:#238636}.phase-bar .in-prog{background:#d29922}
.phase-pct.complete{color:#56d364}.phase-pct.partial{color:#d29922}.phase-pct.zero{color:#8b949e}
.phase-status-pill,.status-pill,.priority-pill{display:inline-block;padding:1px 8px;border-radius:10px;font-size:11px;background:#21262d}
.phase-status-pill.done,.status-pill.done{color:#56d364}.phase-status-pill.in-progress,.status-pill.in-progress{color:#d29922}.phase-status-pill.selected{color:#58a6ff}
.donut-wrap{display:flex;align-items:center;gap:24px}
.donut-chart{position:relative;width:140px;height:140px}
.donut-chart svg{transform:rotate(-90deg)}
.donut-center{position:absolute;inset:0;display:flex;flex-direction:column;align-items:center;justify-content:center}
.donut-center .num{font-size:24px;font-weight:700;color:#f0f6fc}
.legend-item{display:flex;align-items:center;gap:8px;padding:2px 0}
.legend-dot{width:10px;height:10px;border-radius:50%}
.legend-count{margin-left:auto;font-weight:600}
.team-member{display:flex;align-items:center;gap:10px;padding:6px 0}
.avatar{width:28px;height:28px;border-radius:50%;display:flex;align-items:center;justify-content:center;font-size:11px;font-weight:700;color:#fff}
.av-1{background:#1f6feb}.av-2{background:#238636}.av-3{background:#8957e5}.av-4{background:#d29922}.av-5{background:#da3633}.av-6{background:#1b7c83}.av-7{background:#bf4b8a}
.team-tasks{margin-left:auto;display:flex;gap:4px}
.task-count{font-size:11px;padding:0 6px;border-radius:8px}
.task-count.done{background:#23863633}.task-count.active{background:#d2992233}.task-count.pending{background:#484f5866}
.risk-item{display:flex;gap:10px;padding:8px 0;border-bottom:1px solid #21262d}
.risk-icon.high,.risk-label.high{color:#f87171}.risk-icon.medium,.risk-label.medium{color:#d29922}.risk-icon.info,.risk-label.info{color:#58a6ff}
.risk-label{font-size:11px;text-transform:uppercase}
.milestone-item{display:flex;gap:10px;padding:4px 0}
.milestone-check.done,.milestone-text.done{color:#56d364}.milestone-check.pending,.milestone-text.pending{color:#8b949e}
.modal-overlay{display:none;position:fixed;inset:0;background:#010409cc;align-items:center;justify-content:center}
.modal-overlay.active{display:flex}
.modal{background:#161b22;border:1px solid #30363d;border-radius:8px;width:90%;max-width:1100px;max-height:80vh;overflow:auto}
.modal-header{display:flex;justify-content:space-between;align-items:center;padding:12px 16px;border-bottom:1px solid #30363d}
.modal-table{width:100%;border-collapse:collapse;font-size:13px}
.modal-table th{text-align:left;padding:6px 10px;border-bottom:1px solid #30363d;color:#8b949e;font-size:11px;text-transform:uppercase}
.modal-table td{padding:6px 10px;border-bottom:1px solid #21262d}
.key-link{color:#58a6ff}
</style>
</head>
<body{{if .ModalView}} class="modal-open"{{end}}>
{{template "content" .}}
</body>
</html>{{end}}
`

const tmplDashboard = `
{{define "content"}}
<header id="header">
<div id="header-info">{{.Header}}</div>
<form method="post" action="/refresh"><button id="refresh-btn" type="submit" class="refresh-btn{{if .Loading}} loading{{end}}">Refresh</button></form>
</header>
<main>
<div id="loading-state" class="state" style="{{stateDisplay (eq .State "loading")}}">Loading dashboard data&hellip;</div>
<div id="error-state" class="state error" style="{{stateDisplay (eq .State "error")}}">
<div>Failed to load dashboard data</div>
<div id="error-message">{{.Error}}</div>
</div>
<div id="main-content" style="{{stateDisplay (eq .State "ready")}}">
<div id="kpi-row" class="kpi-row">{{.KPI}}</div>
<div id="overall-progress" class="panel">{{.OverallProgress}}</div>
<div class="grid">
<div id="phases-panel" class="panel">{{.Phases}}</div>
<div id="donut-panel" class="panel">{{.Donut}}</div>
</div>
<div class="grid">
<div id="team-panel" class="panel">{{.Team}}</div>
<div id="risks-panel" class="panel">{{.Risks}}</div>
</div>
<div id="milestones-panel" class="panel">{{.MilestonesPanel}}</div>
</div>
</main>
<div id="modal-overlay" class="modal-overlay{{if .ModalView}} active{{end}}">
<div class="modal">
<div class="modal-header">
<div><span id="modal-title">{{with .ModalView}}{{.Title}}{{end}}</span> <span id="modal-count" class="subtitle">{{with .ModalView}}{{.Count}}{{end}}</span></div>
<a id="modal-close" href="/">&times;</a>
</div>
<table class="modal-table">
<thead><tr>
{{- with .ModalView}}{{range .Headers}}
<th data-sort="{{.Column}}"><a href="{{.Href}}">{{.Label}} <span class="sort-arrow">{{.Indicator}}</span></a></th>
{{- end}}{{end}}
</tr></thead>
<tbody id="modal-tbody">{{with .ModalView}}{{.Body}}{{end}}</tbody>
</table>
</div>
</div>
<script>
document.getElementById('modal-overlay').addEventListener('click', function (e) {
  if (e.target === e.currentTarget) window.location.href = '/';
});
document.addEventListener('keydown', function (e) {
  if (e.key === 'Escape' && document.getElementById('modal-overlay').classList.contains('active')) window.location.href = '/';
});
</script>
{{end}}
`
