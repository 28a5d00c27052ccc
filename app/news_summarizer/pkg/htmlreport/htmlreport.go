// Package htmlreport 把报告渲染为单页 HTML。
package htmlreport

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/model"
)

// Data 模板渲染数据
type Data struct {
	Date      string
	Report    *model.Report
	Narration model.Narration
}

const htmlTpl = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>News Summarizer | {{ .Report.Company }}</title>
    <style>
        :root {
            --primary-color: #2563eb;
            --bg-color: #f8fafc;
            --card-bg: #ffffff;
            --text-main: #1e293b;
            --text-secondary: #64748b;
            --border-color: #e2e8f0;
        }
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            background-color: var(--bg-color);
            color: var(--text-main);
            line-height: 1.6;
            margin: 0;
            padding: 20px;
        }
        .container { max-width: 900px; margin: 0 auto; }
        header { text-align: center; margin-bottom: 32px; }
        .date-info { color: var(--text-secondary); }
        .card {
            background: var(--card-bg);
            border-radius: 12px;
            padding: 24px;
            margin-bottom: 24px;
            border: 1px solid var(--border-color);
        }
        .sentiment { padding: 2px 10px; border-radius: 20px; font-weight: bold; }
        .Positive { background: #dcfce7; color: #166534; }
        .Negative { background: #fee2e2; color: #991b1b; }
        .Neutral { background: #f1f5f9; color: #334155; }
        .topics { color: var(--text-secondary); font-size: 0.9rem; }
        .diff { border-left: 4px solid var(--primary-color); padding-left: 12px; margin-bottom: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>{{ .Report.Company }}</h1>
            <div class="date-info">{{ .Date }} • {{ len .Report.Records }} articles • mostly <span class="sentiment {{ .Report.Verdict }}">{{ .Report.Verdict }}</span></div>
        </header>

        {{if .Report.Empty}}
        <div class="card">No articles found.</div>
        {{else}}
        {{range .Report.Records}}
        <div class="card">
            <h3>{{if .URL}}<a href="{{.URL}}" target="_blank">{{.Title}}</a>{{else}}{{.Title}}{{end}}</h3>
            <p>{{.Summary}}</p>
            <span class="sentiment {{.Sentiment}}">{{.Sentiment}}</span>
            <p class="topics">{{range $i, $t := .Topics}}{{if $i}}, {{end}}{{$t}}{{end}}</p>
        </div>
        {{end}}

        <div class="card">
            <h2>Sentiment Distribution</h2>
            <p>Positive {{ .Report.Distribution.Positive }} • Negative {{ .Report.Distribution.Negative }} • Neutral {{ .Report.Distribution.Neutral }}</p>
        </div>

        {{if .Report.Differences}}
        <div class="card">
            <h2>Coverage Differences</h2>
            {{range .Report.Differences}}
            <div class="diff">
                <p><strong>{{.Comparison}}</strong></p>
                <p>{{.Impact}}</p>
            </div>
            {{end}}
        </div>
        {{end}}

        <div class="card">
            <h2>Topic Overlap</h2>
            <p><strong>Common:</strong> {{range $i, $t := .Report.Overlap.Common}}{{if $i}}, {{end}}{{$t}}{{end}}</p>
            <p><strong>Unique:</strong> {{range $i, $t := .Report.Overlap.Unique}}{{if $i}}, {{end}}{{$t}}{{end}}</p>
        </div>

        <div class="card">
            <h2>Final Sentiment Analysis</h2>
            <p>{{ .Report.VerdictSentence }}</p>
            {{if .Narration.Failed}}<p class="topics">Narration unavailable.</p>{{else}}<audio controls src="{{ .Narration.Handle }}"></audio>{{end}}
        </div>
        {{end}}
    </div>
</body>
</html>
`

var tpl = template.Must(template.New("report").Parse(htmlTpl))

// Render 渲染报告到 w
func Render(w io.Writer, r *model.Report, n model.Narration) error {
	return tpl.Execute(w, Data{
		Date:      time.Now().Format(time.DateOnly),
		Report:    r,
		Narration: n,
	})
}

// WriteFile 渲染报告并写入文件，必要时创建目录
func WriteFile(path string, r *model.Report, n model.Narration) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return Render(f, r, n)
}
