package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/generative-ai-go/genai"

	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/logger"
)

func init() {
	logger.Discard()
}

type fakeChatModel struct {
	replies []string
	errs    []error
	calls   int
	last    []*schema.Message
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	i := f.calls
	f.calls++
	f.last = input
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	reply := ""
	if i < len(f.replies) {
		reply = f.replies[i]
	}
	return schema.AssistantMessage(reply, nil), nil
}

func (f *fakeChatModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

func TestCompleteRetriesOn429(t *testing.T) {
	fm := &fakeChatModel{
		errs:    []error{errors.New("status 429: rate limited"), errors.New("Too Many Requests")},
		replies: []string{"", "", "ok"},
	}
	c := New(fm, nil, WithRetry(3, time.Millisecond))

	got, err := c.Complete(context.Background(), "sys", "user")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != "ok" {
		t.Errorf("Complete() = %q, want ok", got)
	}
	if fm.calls != 3 {
		t.Errorf("calls = %d, want 3", fm.calls)
	}
	if len(fm.last) != 2 || fm.last[0].Role != schema.System || fm.last[1].Content != "user" {
		t.Errorf("unexpected messages: %+v", fm.last)
	}
}

func TestCompleteGivesUp(t *testing.T) {
	rl := errors.New("429")
	fm := &fakeChatModel{errs: []error{rl, rl, rl}}
	c := New(fm, nil, WithRetry(2, time.Millisecond))

	_, err := c.Complete(context.Background(), "s", "u")
	if !errors.Is(err, rl) {
		t.Errorf("Complete() error = %v, want wrapping %v", err, rl)
	}
	if fm.calls != 3 {
		t.Errorf("calls = %d, want 3", fm.calls)
	}
}

func TestCompleteNoRetryOnOtherErrors(t *testing.T) {
	fm := &fakeChatModel{errs: []error{errors.New("invalid api key")}}
	c := New(fm, nil, WithRetry(3, time.Millisecond))

	if _, err := c.Complete(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error")
	}
	if fm.calls != 1 {
		t.Errorf("calls = %d, want 1", fm.calls)
	}
}

func TestCompleteJSON(t *testing.T) {
	fm := &fakeChatModel{replies: []string{"not json", "```json\n{\"entities\": [\"Apple\", \"iPhone\"]}\n```"}}
	c := New(fm, nil)

	var out struct {
		Entities []string `json:"entities"`
	}
	if err := CompleteJSON(context.Background(), c, "s", "u", &out); err != nil {
		t.Fatalf("CompleteJSON() error = %v", err)
	}
	if len(out.Entities) != 2 || out.Entities[1] != "iPhone" {
		t.Errorf("unexpected result %+v", out)
	}
}

func TestCleanJSON(t *testing.T) {
	tests := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n[1]\n```":           `[1]`,
		"  {\"b\":2}  ":           `{"b":2}`,
	}
	for in, want := range tests {
		if got := CleanJSON(in); got != want {
			t.Errorf("CleanJSON(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("नमस्ते "), genai.Text("दुनिया")}}},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("ignored")}}},
		},
	}
	if got := responseText(resp); got != "नमस्ते दुनिया" {
		t.Errorf("responseText() = %q", got)
	}
	if got := responseText(nil); got != "" {
		t.Errorf("responseText(nil) = %q", got)
	}
}
