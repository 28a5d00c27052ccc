package htmlreport

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/model"
)

func sampleReport() *model.Report {
	return &model.Report{
		Company: "Apple",
		Records: []model.ArticleRecord{
			{Title: "Apple <beats> estimates", Summary: "Revenue grew.", Sentiment: model.Positive, Topics: []string{"revenue", "apple"}, URL: "https://example.com/a"},
		},
		Distribution:    model.SentimentDistribution{Positive: 1},
		Overlap:         model.TopicOverlap{Unique: []string{"revenue", "apple"}},
		Verdict:         model.Positive,
		VerdictSentence: "Based on the analysis of the articles, the news coverage of Apple is mostly positive.",
	}
}

func TestRender(t *testing.T) {
	var sb strings.Builder
	if err := Render(&sb, sampleReport(), model.Narration{Handle: "summary_hindi.mp3"}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := sb.String()
	for _, want := range []string{
		"Apple &lt;beats&gt; estimates",
		`href="https://example.com/a"`,
		"revenue, apple",
		"mostly positive.",
		`<audio controls src="summary_hindi.mp3">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderEmptyAndFailedNarration(t *testing.T) {
	var sb strings.Builder
	err := Render(&sb, &model.Report{Company: "Acme", Verdict: model.Neutral}, model.NarrationFailed(errors.New("no articles")))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(sb.String(), "No articles found.") {
		t.Error("empty report should render the sentinel")
	}
	if strings.Contains(sb.String(), "<audio") {
		t.Error("empty report should not render audio")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.html")
	if err := WriteFile(path, sampleReport(), model.NarrationFailed(errors.New("tts down"))); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "Narration unavailable.") {
		t.Error("failed narration should be noted")
	}
}
