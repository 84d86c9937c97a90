package chart

// Archetype is one of the sixteen fixed constitutional records keyed by the
// (Sun element, Moon element) pair. The records are static reference data,
// populated for every pair, so resolution is total for valid input.
type Archetype struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"` // display name, e.g. "The Supernova（超新星）"
	SunElement  Element  `json:"sun_element"`
	MoonElement Element  `json:"moon_element"`
	Description string   `json:"description"` // Japanese short description
	Tags        []string `json:"tags"`        // tendency tags
}

var archetypes = [4][4]Archetype{
	Fire: {
		Fire: {
			ID: "supernova", Name: "The Supernova（超新星）",
			SunElement: Fire, MoonElement: Fire,
			Description: "外にも内にも燃える情熱の塊。エネルギーの爆発力は十六元型中随一ですが、燃え尽きやすい傾向があります。",
			Tags:        []string{"情熱", "瞬発力", "燃え尽き注意"},
		},
		Earth: {
			ID: "magma", Name: "The Magma（マグマ）",
			SunElement: Fire, MoonElement: Earth,
			Description: "表の行動力を地の感情が深部で支える型。沸点は高いものの、一度動き出すと持続する熱を持つ傾向があります。",
			Tags:        []string{"持続力", "底力", "頑固さ"},
		},
		Air: {
			ID: "evangelist", Name: "The Evangelist（伝道師）",
			SunElement: Fire, MoonElement: Air,
			Description: "情熱を言葉に変えて広げる型。発信力と社交性に恵まれる一方、熱が分散しやすい傾向があります。",
			Tags:        []string{"発信力", "社交性", "拡散傾向"},
		},
		Water: {
			ID: "geyser", Name: "The Geyser（間欠泉）",
			SunElement: Fire, MoonElement: Water,
			Description: "静かな水面の下に熱を蓄え、周期的に噴き上げる型。感情の振れ幅が大きい傾向があります。",
			Tags:        []string{"感受性", "爆発力", "気分の波"},
		},
	},
	Earth: {
		Fire: {
			ID: "volcano", Name: "The Volcano（火山）",
			SunElement: Earth, MoonElement: Fire,
			Description: "堅実な外見の内側に火を宿す型。普段は安定していますが、臨界を超えると大きな行動に出る傾向があります。",
			Tags:        []string{"安定", "内なる熱", "臨界点"},
		},
		Earth: {
			ID: "bedrock", Name: "The Bedrock（岩盤）",
			SunElement: Earth, MoonElement: Earth,
			Description: "十六元型の中で最も揺るがない型。着実さと忍耐に優れる一方、変化への適応に時間がかかる傾向があります。",
			Tags:        []string{"堅実", "忍耐", "変化への抵抗"},
		},
		Air: {
			ID: "garden", Name: "The Garden（庭園）",
			SunElement: Earth, MoonElement: Air,
			Description: "現実的な土台の上に知的な風が通う型。秩序と遊び心のバランスに恵まれる傾向があります。",
			Tags:        []string{"調和", "設計力", "几帳面"},
		},
		Water: {
			ID: "spring", Name: "The Spring（泉）",
			SunElement: Earth, MoonElement: Water,
			Description: "大地から静かに湧き続ける型。包容力と回復力に富む一方、感情を抱え込みやすい傾向があります。",
			Tags:        []string{"包容力", "回復力", "抱え込み"},
		},
	},
	Air: {
		Fire: {
			ID: "lightning", Name: "The Lightning（稲妻）",
			SunElement: Air, MoonElement: Fire,
			Description: "思考の速さと感情の熱が直結する型。ひらめきの鋭さは随一ですが、消耗も早い傾向があります。",
			Tags:        []string{"閃き", "瞬発力", "神経疲労"},
		},
		Earth: {
			ID: "breeze", Name: "The Breeze（そよ風）",
			SunElement: Air, MoonElement: Earth,
			Description: "軽やかな知性を落ち着いた感情が支える型。穏やかで安定した対人運に恵まれる傾向があります。",
			Tags:        []string{"穏やかさ", "バランス", "慎重"},
		},
		Air: {
			ID: "hurricane", Name: "The Hurricane（ハリケーン）",
			SunElement: Air, MoonElement: Air,
			Description: "思考も感情も風である型。情報処理と発想の速度に優れる一方、地に足が着きにくい傾向があります。",
			Tags:        []string{"頭脳", "速度", "浮遊感"},
		},
		Water: {
			ID: "mist", Name: "The Mist（霧）",
			SunElement: Air, MoonElement: Water,
			Description: "知性と感受性が混ざり合う幻想的な型。共感力と想像力に富む一方、輪郭が曖昧になりやすい傾向があります。",
			Tags:        []string{"想像力", "共感", "曖昧さ"},
		},
	},
	Water: {
		Fire: {
			ID: "steam", Name: "The Steam（蒸気）",
			SunElement: Water, MoonElement: Fire,
			Description: "深い感情に内なる火が加わり上昇する型。推進力と情の深さを併せ持つ一方、圧力が溜まりやすい傾向があります。",
			Tags:        []string{"推進力", "情の深さ", "内圧"},
		},
		Earth: {
			ID: "river", Name: "The River（川）",
			SunElement: Water, MoonElement: Earth,
			Description: "感情の流れが確かな河床に導かれる型。粘り強く目的地へ向かう持続力に恵まれる傾向があります。",
			Tags:        []string{"持続力", "柔軟", "遠回り"},
		},
		Air: {
			ID: "rain", Name: "The Rain（雨）",
			SunElement: Water, MoonElement: Air,
			Description: "感情が風に運ばれ広く降り注ぐ型。場の空気を潤す繊細さを持つ一方、天候が変わりやすい傾向があります。",
			Tags:        []string{"繊細", "浄化", "移ろい"},
		},
		Water: {
			ID: "ocean", Name: "The Ocean（海）",
			SunElement: Water, MoonElement: Water,
			Description: "十六元型の中で最も深い感受性を持つ型。静かな包容力の底に大きな潮流を秘める傾向があります。",
			Tags:        []string{"深層", "包容力", "潮の満ち引き"},
		},
	},
}

// ArchetypeFor resolves the archetype for a (Sun element, Moon element)
// pair. All sixteen combinations are pre-populated; a pair where both
// luminaries share an element is an ordinary entry, not a special case.
func ArchetypeFor(sun, moon Element) Archetype {
	return archetypes[sun][moon]
}

// AllArchetypes returns the sixteen records in (sun, moon) order.
func AllArchetypes() []Archetype {
	out := make([]Archetype, 0, 16)
	for _, sun := range Elements {
		for _, moon := range Elements {
			out = append(out, archetypes[sun][moon])
		}
	}
	return out
}
