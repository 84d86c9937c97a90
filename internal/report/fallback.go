package report

import (
	"fmt"
	"strings"

	"github.com/francedirectjp-art/astro-medical-system/internal/astro/chart"
)

// elementAdvice maps each element to a deterministic prescription line used
// by the fallback renderer.
var elementAdvice = map[chart.Element]string{
	chart.Fire:  "軽い運動や日光浴で体を温め、行動のリズムを取り戻しましょう。",
	chart.Earth: "規則正しい食事と睡眠、土に触れる時間が安定感を育てます。",
	chart.Air:   "深呼吸や会話、散歩で風を通し、考えを言葉にして整理しましょう。",
	chart.Water: "入浴や水分補給、静かな時間で感情の流れを受け止めましょう。",
}

// ShortFallback renders the simple diagnosis text without the external
// service. The output always names the archetype and every element share.
func ShortFallback(f *Facts) string {
	top, topPct := f.TopElement()

	var b strings.Builder
	fmt.Fprintf(&b, "%sさんの出生図から導かれたアーキタイプは「%s」です。\n\n", f.Name, f.Archetype.Name)
	fmt.Fprintf(&b, "%s\n\n", f.Archetype.Description)
	fmt.Fprintf(&b, "太陽は%sのエレメント、月は%sのエレメントに位置しています。太陽は意識的な行動のスタイルを、月は無意識の感情リズムを表し、この二つの組み合わせがあなたの体質傾向の土台となります。\n\n",
		f.SunElement().Label(), f.MoonElement().Label())
	b.WriteString("7天体から算出したエレメントバランスは次の通りです。\n")
	for _, e := range chart.Elements {
		fmt.Fprintf(&b, "・%s: %.1f%%\n", e.Label(), f.Balance.Percent(e))
	}
	fmt.Fprintf(&b, "\n最も強いのは%sのエレメントで、全体の%.1f%%を占めています。%s\n\n",
		top.Label(), topPct, elementAdvice[top])

	weakest := f.Balance.Dominant()[len(chart.Elements)-1]
	fmt.Fprintf(&b, "一方で%sのエレメントは控えめです。%s\n\n", weakest.Label(), elementAdvice[weakest])
	fmt.Fprintf(&b, "「%s」であるあなたは、強いエレメントを活かしながら弱いエレメントを日々の習慣で補うことで、心身のバランスが整いやすくなります。詳細レポートでは、7天体それぞれの配置からより踏み込んだ分析をお届けします。", f.Archetype.Name)
	return b.String()
}

// DetailedFallbackSection renders one section of the detailed report
// without the external service.
func DetailedFallbackSection(f *Facts, s Section) string {
	var b strings.Builder
	switch s.ID {
	case "introduction":
		fmt.Fprintf(&b, "%sさん、ようこそ。このレポートは%s %s、%sで生まれたあなたの出生図をもとに、7天体の配置から体質傾向を読み解くものです。",
			f.Name, f.BirthDate, f.BirthTime, f.BirthPlace)
		fmt.Fprintf(&b, "あなたのアーキタイプは「%s」。ここから、その意味を一つずつ紐解いていきます。", f.Archetype.Name)

	case "core_pattern":
		fmt.Fprintf(&b, "あなたの核となるパターンは、太陽の%sと月の%sの組み合わせが生み出す「%s」です。\n\n",
			f.SunElement().Label(), f.MoonElement().Label(), f.Archetype.Name)
		fmt.Fprintf(&b, "%s\n\n", f.Archetype.Description)
		b.WriteString("太陽は人生の目的意識と外へ向かうエネルギーの質を、月は安心や休息の取り方といった内側のリズムを示します。")
		fmt.Fprintf(&b, "意識の%sと無意識の%sという二つの性質が、あなたの判断、感情の波、体調の整え方に一貫したパターンを与えています。",
			f.SunElement().Label(), f.MoonElement().Label())

	case "soul_council":
		b.WriteString("あなたの内側には、7天体からなる会議室があります。それぞれのメンバーは次の席に着いています。\n\n")
		for _, p := range f.Positions {
			fmt.Fprintf(&b, "・%s（%s %.1f度）: %sの性質で働きます。\n",
				p.Body.Label(), p.Sign.Label(), p.Degree, p.Element().Label())
		}
		b.WriteString("\n太陽が議長として方向を示し、月が体調と気分の報告役を務め、水星が言葉を、金星が好みを、火星が推進力を、木星が拡大を、土星が規律を担当します。どの声が大きく、どの声が控えめかは、上のエレメント配置に表れています。")

	case "constitution":
		top, topPct := f.TopElement()
		b.WriteString("7天体から算出したエレメントバランスは次の通りです。\n\n")
		for _, e := range chart.Elements {
			fmt.Fprintf(&b, "・%s: %.1f%%\n", e.Label(), f.Balance.Percent(e))
		}
		fmt.Fprintf(&b, "\n最も優勢なのは%s（%.1f%%）です。強いエレメントは体質の基調となり、過剰になると偏りとして現れます。逆に弱いエレメントは意識的に補うことで全体の巡りが良くなります。",
			top.Label(), topPct)

	case "prescription":
		order := f.Balance.Dominant()
		weakest := order[len(order)-1]
		second := order[len(order)-2]
		fmt.Fprintf(&b, "あなたのバランス処方箋です。最も補いたいのは%sのエレメント。%s\n\n", weakest.Label(), elementAdvice[weakest])
		fmt.Fprintf(&b, "次に意識したいのは%sです。%s\n\n", second.Label(), elementAdvice[second])
		top, _ := f.TopElement()
		fmt.Fprintf(&b, "優勢な%sは頼れる資源ですが、使いすぎると消耗します。休息とセットで活かしてください。毎日のどこかに弱いエレメントの時間を一つ入れることから始めましょう。", top.Label())

	case "conclusion":
		fmt.Fprintf(&b, "「%s」というアーキタイプは、あなたの強みの形を示す地図です。", f.Archetype.Name)
		b.WriteString("バランスは固定されたものではなく、日々の選択で育て直せるものです。このレポートが、自分の傾向を知り、心地よい整え方を見つける手がかりになれば幸いです。")
	}
	return b.String()
}

// DetailedFallback renders the full six-section document without the
// external service.
func DetailedFallback(f *Facts) (string, map[string]string) {
	sections := make(map[string]string, len(DetailedSections))
	var parts []string
	for _, s := range DetailedSections {
		text := DetailedFallbackSection(f, s)
		sections[s.ID] = text
		parts = append(parts, fmt.Sprintf("【%s】\n\n%s", s.Title, text))
	}
	return strings.Join(parts, "\n\n"), sections
}
