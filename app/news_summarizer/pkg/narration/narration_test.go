package narration

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/logger"
)

func init() {
	logger.Discard()
}

type fakeTranslator struct {
	out    string
	err    error
	target string
}

func (f *fakeTranslator) Translate(_ context.Context, text, target string) (string, error) {
	f.target = target
	return f.out, f.err
}

type fakeTTS struct {
	text string
	err  error
}

func (f *fakeTTS) Synthesize(_ context.Context, text, lang string) ([]byte, error) {
	f.text = text
	if f.err != nil {
		return nil, f.err
	}
	return []byte("ID3" + lang), nil
}

func TestPipelineNarrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "summary_hindi.mp3")
	tr := &fakeTranslator{out: "नमस्ते"}
	tts := &fakeTTS{}
	p := NewPipeline(tr, tts, NewFileStore(path), "hi")

	handle, err := p.Narrate(context.Background(), "Hello there.")
	if err != nil {
		t.Fatalf("Narrate() error = %v", err)
	}
	if handle != path {
		t.Errorf("handle = %q, want %q", handle, path)
	}
	if tr.target != "hi" || tts.text != "नमस्ते" {
		t.Errorf("translator target %q, tts text %q", tr.target, tts.text)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "ID3hi" {
		t.Errorf("file content = %q, %v", data, err)
	}
}

func TestPipelineErrors(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "a.mp3"))

	if _, err := NewPipeline(nil, &fakeTTS{}, store, "hi").Narrate(context.Background(), "  "); !errors.Is(err, ErrEmptyText) {
		t.Errorf("expected ErrEmptyText, got %v", err)
	}

	boom := errors.New("translate down")
	if _, err := NewPipeline(&fakeTranslator{err: boom}, &fakeTTS{}, store, "hi").Narrate(context.Background(), "x"); !errors.Is(err, boom) {
		t.Errorf("expected translator error, got %v", err)
	}

	ttsErr := errors.New("tts down")
	if _, err := NewPipeline(nil, &fakeTTS{err: ttsErr}, store, "hi").Narrate(context.Background(), "x"); !errors.Is(err, ttsErr) {
		t.Errorf("expected tts error, got %v", err)
	}
}

func TestSplitText(t *testing.T) {
	text := strings.Repeat("word ", 100)
	chunks := SplitText(text, 200)
	if len(chunks) != 3 {
		t.Fatalf("chunks = %d, want 3", len(chunks))
	}
	for _, c := range chunks {
		if utf8.RuneCountInString(c) > 200 {
			t.Errorf("chunk too long: %d", utf8.RuneCountInString(c))
		}
	}
	if strings.Join(chunks, " ") != strings.TrimSpace(text) {
		t.Error("chunks do not reassemble the original text")
	}

	long := strings.Repeat("क", 450)
	chunks = SplitText(long, 200)
	if len(chunks) != 3 || utf8.RuneCountInString(chunks[2]) != 50 {
		t.Errorf("unexpected hard split: %d chunks", len(chunks))
	}

	if got := SplitText("   ", 200); len(got) != 0 {
		t.Errorf("expected no chunks, got %v", got)
	}
}

func TestGoogleTTS(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		q := r.URL.Query()
		if q.Get("tl") != "hi" || q.Get("client") != "tw-ob" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("mp3-" + q.Get("idx") + ";"))
	}))
	defer srv.Close()

	audio, err := NewGoogleTTS(srv.URL).Synthesize(context.Background(), strings.Repeat("abc ", 60), "hi")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if calls != 2 || string(audio) != "mp3-0;mp3-1;" {
		t.Errorf("calls = %d, audio = %q", calls, audio)
	}
}

func TestGoogleTTSError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := NewGoogleTTS(srv.URL).Synthesize(context.Background(), "hello", "hi"); err == nil {
		t.Fatal("expected error")
	}
}

func TestGoogleTranslator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("sl") != "en" || q.Get("tl") != "hi" || q.Get("q") != "Good news. More news." {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		w.Write([]byte(`[[["अच्छी खबर। ","Good news. ",null,null,10],["और खबर।","More news.",null,null,10]],null,"en"]`))
	}))
	defer srv.Close()

	got, err := NewGoogleTranslator(srv.URL).Translate(context.Background(), "Good news. More news.", "hi")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if got != "अच्छी खबर। और खबर।" {
		t.Errorf("Translate() = %q", got)
	}
}

type fakeCompleter struct{ user string }

func (f *fakeCompleter) Complete(_ context.Context, _, user string) (string, error) {
	f.user = user
	return "अनुवाद", nil
}

func TestLLMTranslator(t *testing.T) {
	fc := &fakeCompleter{}
	got, err := NewLLMTranslator(fc).Translate(context.Background(), "hello", "hi")
	if err != nil || got != "अनुवाद" {
		t.Fatalf("Translate() = %q, %v", got, err)
	}
	if !strings.Contains(fc.user, "Hindi") {
		t.Errorf("prompt should name the target language: %q", fc.user)
	}
}
