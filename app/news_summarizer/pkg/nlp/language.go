package nlp

import (
	"strings"
	"sync"
	"unicode"

	"github.com/abadojack/whatlanggo"
	"github.com/pemistahl/lingua-go"

	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/logger"
)

// Whatlang 语言检测：whatlanggo 给出可信结果时直接采用，
// 拉丁字母的短文本结果不可信，交给面向短文本的 lingua 复核
type Whatlang struct{}

var _ LanguageDetector = Whatlang{}

// shortTextDetector 只加载常见拉丁字母语言的模型
var shortTextDetector = sync.OnceValue(func() lingua.LanguageDetector {
	return lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.English, lingua.French, lingua.German, lingua.Spanish,
			lingua.Portuguese, lingua.Italian, lingua.Dutch, lingua.Indonesian,
			lingua.Swedish, lingua.Danish, lingua.Bokmal, lingua.Polish,
			lingua.Turkish, lingua.Tagalog, lingua.Latin,
		).
		Build()
})

// IsEnglish 检测器出错或 panic 时一律视为非英文
func (Whatlang) IsEnglish(text string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Warnf("语言检测异常: %v", r)
			ok = false
		}
	}()

	if strings.TrimSpace(text) == "" {
		return false
	}

	info := whatlanggo.DetectWithOptions(text, whatlanggo.Options{})
	if info.IsReliable() {
		return info.Lang == whatlanggo.Eng
	}
	if info.Script != unicode.Latin {
		return false
	}

	lang, exists := shortTextDetector().DetectLanguageOf(text)
	return exists && lang == lingua.English
}
