package api

import (
	"html/template"

	"github.com/event-content-pipeline/internal/models"
)

type dashboardData struct {
	Stats     *models.Stats
	Secret    string
	BatchSize int
}

// dashboardTemplate is registered on the router via SetHTMLTemplate
var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Event blog generator</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 760px; margin: 2rem auto; padding: 0 1rem; color: #222; }
.stats { display: flex; gap: 1rem; margin: 1.5rem 0; }
.stat { flex: 1; border: 1px solid #ddd; border-radius: 8px; padding: 1rem; text-align: center; }
.stat strong { display: block; font-size: 2rem; }
button { padding: .6rem 1.2rem; font-size: 1rem; cursor: pointer; }
#result { margin-top: 1rem; white-space: pre-wrap; }
.error { color: #b00020; }
.ok { color: #1b5e20; }
</style>
</head>
<body>
<h1>Event blog generator</h1>
<div class="stats">
  <div class="stat"><strong>{{.Stats.TotalArticles}}</strong>articles</div>
  <div class="stat"><strong>{{.Stats.ProcessedEvents}}</strong>processed events</div>
  <div class="stat"><strong>{{.Stats.PendingEvents}}</strong>pending events</div>
</div>
<button id="generate">Generate {{.BatchSize}} article(s)</button>
<div id="result"></div>
<h2>Recent articles</h2>
{{if .Stats.RecentArticles}}
<ul>
{{range .Stats.RecentArticles}}
  <li><a href="/blog/{{.Slug}}">{{.Title}}</a> &middot; {{if .City}}{{.City}}, {{end}}{{.Country}} &middot; {{.CreatedAt.Format "2006-01-02 15:04"}}</li>
{{end}}
</ul>
{{else}}
<p>No articles yet.</p>
{{end}}
<script>
const secret = {{.Secret}};
const button = document.getElementById("generate");
const out = document.getElementById("result");
button.addEventListener("click", async () => {
  button.disabled = true;
  out.className = "";
  out.textContent = "Generating...";
  try {
    const res = await fetch("?secret=" + encodeURIComponent(secret) + "&action=generate");
    const data = await res.json();
    if (!data.success) {
      out.className = "error";
      out.textContent = data.error || "Generation failed";
      button.disabled = false;
      return;
    }
    out.className = "ok";
    out.textContent = data.message;
    for (const a of data.articles || []) {
      const link = document.createElement("a");
      link.href = "/blog/" + a.slug;
      link.textContent = a.article_title;
      out.append("\n", link);
    }
    for (const e of data.errors || []) {
      out.append("\n" + e.event_title + ": " + e.error);
    }
    setTimeout(() => location.reload(), 3000);
  } catch (err) {
    out.className = "error";
    out.textContent = String(err);
    button.disabled = false;
  }
});
</script>
</body>
</html>
`))
