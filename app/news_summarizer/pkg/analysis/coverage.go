package analysis

import (
	"fmt"
	"strings"

	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/model"
)

// impactRule 影响类别规则，按优先级顺序匹配
type impactRule struct {
	category model.ImpactCategory
	keywords []string
	message  func(topics, company string) string
}

var impactRules = []impactRule{
	{
		category: model.ImpactLegal,
		keywords: []string{"regulation", "lawsuit", "compliance"},
		message: func(topics, _ string) string {
			return fmt.Sprintf("This article introduces legal/regulatory topics such as %s that could affect the company's regulatory landscape.", topics)
		},
	},
	{
		category: model.ImpactFinancial,
		keywords: []string{"financial", "revenue", "profits", "growth", "stocks"},
		message: func(topics, _ string) string {
			return fmt.Sprintf("This article discusses the financial health of the company with topics like %s, which may impact investor sentiment.", topics)
		},
	},
	{
		category: model.ImpactTechnology,
		keywords: []string{"technology", "innovation", "AI", "machine learning"},
		message: func(topics, _ string) string {
			return fmt.Sprintf("New technological advancements, including %s, have the potential to reshape the company's future growth trajectory.", topics)
		},
	},
	{
		category: model.ImpactCompetitive,
		keywords: []string{"market share", "competitors", "competition"},
		message: func(topics, _ string) string {
			return fmt.Sprintf("This article highlights shifts in the competitive landscape, with topics like %s that could change the company's market position.", topics)
		},
	},
	{
		category: model.ImpactProduct,
		keywords: []string{"launch", "product", "release", "update"},
		message: func(topics, company string) string {
			return fmt.Sprintf("The article introduces new product developments or launches such as %s, which may reshape %s's market strategy.", topics, company)
		},
	},
	{
		category: model.ImpactLeadership,
		keywords: []string{"CEO", "leadership", "management", "board"},
		message: func(topics, _ string) string {
			return fmt.Sprintf("Management changes, including topics like %s, might influence the company's strategic direction.", topics)
		},
	},
}

func defaultImpact(topics string) string {
	return fmt.Sprintf("Article introduces new perspectives on the company's coverage, adding topics such as %s.", topics)
}

// ClassifyImpact 按固定优先级判定差异话题的影响类别，首个命中即返回
func ClassifyImpact(delta []string, company string) (model.ImpactCategory, string) {
	set := topicSetOf(delta)
	joined := strings.Join(delta, ", ")
	for _, rule := range impactRules {
		for _, kw := range rule.keywords {
			if set.Contains(kw) {
				return rule.category, rule.message(joined, company)
			}
		}
	}
	return model.ImpactDefault, defaultImpact(joined)
}

// Difference 返回出现在 current 但不在 previous 中的话题，保持 current 的顺序
func Difference(current, previous []string) []string {
	prev := topicSetOf(previous)
	seen := NewTopicSet(len(current))
	for _, t := range current {
		if !prev.Contains(t) {
			seen.Add(t)
		}
	}
	return seen.Items()
}

// CoverageDifferences 依次比较第 i 篇与第 i-1 篇文章，差异为空时不产生记录
func CoverageDifferences(topics [][]string, company string) []model.CoverageDifference {
	var diffs []model.CoverageDifference
	for i := 1; i < len(topics); i++ {
		delta := Difference(topics[i], topics[i-1])
		if len(delta) == 0 {
			continue
		}
		category, impact := ClassifyImpact(delta, company)
		diffs = append(diffs, model.CoverageDifference{
			Index:      i,
			PrevIndex:  i - 1,
			Topics:     delta,
			Comparison: fmt.Sprintf("Article %d introduces topics %s which are not in Article %d", i, strings.Join(delta, ", "), i-1),
			Category:   category,
			Impact:     impact,
		})
	}
	return diffs
}
