package report

import (
	"fmt"
	"strings"
)

// Section identifies one part of the detailed report. Sections are rendered
// in this order and joined into the final document.
type Section struct {
	ID       string
	Title    string
	Fraction float64 // share of the detailed target length
}

// DetailedSections is the fixed six-part structure of the detailed report.
var DetailedSections = []Section{
	{ID: "introduction", Title: "はじめに", Fraction: 0.08},
	{ID: "core_pattern", Title: "あなたの核となるパターン", Fraction: 0.21},
	{ID: "soul_council", Title: "内なる会議室", Fraction: 0.21},
	{ID: "constitution", Title: "エレメント体質分析", Fraction: 0.16},
	{ID: "prescription", Title: "バランス処方箋", Fraction: 0.21},
	{ID: "conclusion", Title: "むすびに", Fraction: 0.13},
}

// Target returns the section's character target for a given document target.
func (s Section) Target(documentTarget int) int {
	return int(float64(documentTarget) * s.Fraction)
}

func factsBlock(f *Facts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "名前: %s\n", f.Name)
	fmt.Fprintf(&b, "生年月日: %s %s\n", f.BirthDate, f.BirthTime)
	fmt.Fprintf(&b, "出生地: %s\n", f.BirthPlace)
	fmt.Fprintf(&b, "アーキタイプ: %s\n", f.Archetype.Name)
	fmt.Fprintf(&b, "太陽エレメント: %s / 月エレメント: %s\n", f.SunElement().Label(), f.MoonElement().Label())
	b.WriteString("天体配置:\n")
	b.WriteString(f.positionLines())
	b.WriteString("エレメントバランス:\n")
	b.WriteString(f.balanceLines())
	return b.String()
}

// ShortPrompt builds the single prompt for the simple diagnosis text.
func ShortPrompt(f *Facts, targetChars int) string {
	var b strings.Builder
	b.WriteString("あなたは占星術に基づく体質診断の専門ライターです。\n")
	b.WriteString("以下の計算済みデータだけを根拠に、読者に語りかける簡易診断文を日本語で書いてください。\n")
	fmt.Fprintf(&b, "文字数はおよそ%d文字とし、アーキタイプ名「%s」と各エレメントの割合に必ず触れてください。\n", targetChars, f.Archetype.Name)
	b.WriteString("医療的な断定は避け、見出しは付けず、本文のみを出力してください。\n\n")
	b.WriteString(factsBlock(f))
	return b.String()
}

// SectionPrompt builds the prompt for one section of the detailed report.
func SectionPrompt(f *Facts, s Section, targetChars int) string {
	var b strings.Builder
	b.WriteString("あなたは占星術に基づく体質診断の専門ライターです。\n")
	fmt.Fprintf(&b, "詳細レポートの一節「%s」を日本語で執筆してください。\n", s.Title)
	fmt.Fprintf(&b, "文字数はおよそ%d文字、本文のみを出力してください。\n", targetChars)
	switch s.ID {
	case "introduction":
		fmt.Fprintf(&b, "%sさんへの導入として、このレポートが出生時の天体配置から体質傾向を読み解くものであることを伝えてください。\n", f.Name)
	case "core_pattern":
		fmt.Fprintf(&b, "太陽（%s）と月（%s）の組み合わせが生むアーキタイプ「%s」の核となる行動・感情パターンを掘り下げてください。\n",
			f.SunElement().Label(), f.MoonElement().Label(), f.Archetype.Name)
	case "soul_council":
		b.WriteString("7天体それぞれを内なる会議室のメンバーに見立て、各天体の星座配置が果たす役割を描写してください。\n")
	case "constitution":
		b.WriteString("エレメントバランスの数値をもとに、4エレメントの体質的な強弱と現れ方を分析してください。\n")
	case "prescription":
		b.WriteString("不足しがちなエレメントを補う生活習慣・食事・過ごし方の具体的な提案を書いてください。\n")
	case "conclusion":
		fmt.Fprintf(&b, "%sさんがアーキタイプ「%s」として自分のバランスと付き合っていくための前向きな結びを書いてください。\n", f.Name, f.Archetype.Name)
	}
	b.WriteString("医療的な断定は避けてください。\n\n")
	b.WriteString(factsBlock(f))
	return b.String()
}
