// Package geo resolves supported birth regions to coordinates and the UTC
// offset in force at the birth instant.
package geo

import (
	"strings"
	"time"

	apperrors "github.com/francedirectjp-art/astro-medical-system/internal/common/errors"
)

// Region is one entry of the static prefecture table.
type Region struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"` // Japanese display name
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Reference is the resolved ephemeris input for one birth instant. It is a
// pure function of region and instant and is never mutated after creation.
type Reference struct {
	Region    Region
	Latitude  float64
	Longitude float64
	UTCOffset time.Duration
}

// Prefectural seat coordinates. Keys are lowercase romaji codes; Japanese
// prefecture names are accepted as aliases.
var regions = []Region{
	{"hokkaido", "北海道", 43.0642, 141.3469},
	{"aomori", "青森県", 40.8244, 140.7400},
	{"iwate", "岩手県", 39.7036, 141.1527},
	{"miyagi", "宮城県", 38.2682, 140.8721},
	{"akita", "秋田県", 39.7186, 140.1024},
	{"yamagata", "山形県", 38.2404, 140.3633},
	{"fukushima", "福島県", 37.7503, 140.4676},
	{"ibaraki", "茨城県", 36.3418, 140.4468},
	{"tochigi", "栃木県", 36.5657, 139.8836},
	{"gunma", "群馬県", 36.3911, 139.0608},
	{"saitama", "埼玉県", 35.8617, 139.6455},
	{"chiba", "千葉県", 35.6074, 140.1065},
	{"tokyo", "東京都", 35.6762, 139.6503},
	{"kanagawa", "神奈川県", 35.4478, 139.6425},
	{"niigata", "新潟県", 37.9026, 139.0232},
	{"toyama", "富山県", 36.6959, 137.2113},
	{"ishikawa", "石川県", 36.5946, 136.6256},
	{"fukui", "福井県", 36.0652, 136.2217},
	{"yamanashi", "山梨県", 35.6642, 138.5683},
	{"nagano", "長野県", 36.6513, 138.1810},
	{"gifu", "岐阜県", 35.3912, 136.7223},
	{"shizuoka", "静岡県", 34.9756, 138.3828},
	{"aichi", "愛知県", 35.1802, 136.9066},
	{"mie", "三重県", 34.7303, 136.5086},
	{"shiga", "滋賀県", 35.0045, 135.8686},
	{"kyoto", "京都府", 35.0211, 135.7556},
	{"osaka", "大阪府", 34.6937, 135.5023},
	{"hyogo", "兵庫県", 34.6913, 135.1830},
	{"nara", "奈良県", 34.6851, 135.8048},
	{"wakayama", "和歌山県", 34.2261, 135.1675},
	{"tottori", "鳥取県", 35.5038, 134.2384},
	{"shimane", "島根県", 35.4723, 133.0505},
	{"okayama", "岡山県", 34.6617, 133.9341},
	{"hiroshima", "広島県", 34.3963, 132.4596},
	{"yamaguchi", "山口県", 34.1859, 131.4706},
	{"tokushima", "徳島県", 34.0658, 134.5594},
	{"kagawa", "香川県", 34.3401, 134.0434},
	{"ehime", "愛媛県", 33.8416, 132.7657},
	{"kochi", "高知県", 33.5597, 133.5311},
	{"fukuoka", "福岡県", 33.6064, 130.4181},
	{"saga", "佐賀県", 33.2494, 130.2989},
	{"nagasaki", "長崎県", 32.7503, 129.8677},
	{"kumamoto", "熊本県", 32.7898, 130.7417},
	{"oita", "大分県", 33.2382, 131.6126},
	{"miyazaki", "宮崎県", 31.9077, 131.4202},
	{"kagoshima", "鹿児島県", 31.5602, 130.5581},
	{"okinawa", "沖縄県", 26.2124, 127.6792},
}

var regionIndex = buildIndex()

func buildIndex() map[string]Region {
	idx := make(map[string]Region, len(regions)*2)
	for _, r := range regions {
		idx[r.Code] = r
		idx[r.Name] = r
	}
	return idx
}

// Supported returns the region table in canonical order.
func Supported() []Region {
	out := make([]Region, len(regions))
	copy(out, regions)
	return out
}

// summerTime holds the four years Japan observed daylight saving. During
// each window the civil offset was UTC+10 instead of UTC+9. Windows are
// expressed as local civil dates, start inclusive, end exclusive.
type summerTime struct {
	startMonth, startDay int
	endMonth, endDay     int
}

var summerTimeByYear = map[int]summerTime{
	1948: {5, 2, 9, 12},
	1949: {4, 3, 9, 11},
	1950: {5, 7, 9, 10},
	1951: {5, 6, 9, 9},
}

// offsetAt returns the civil UTC offset in force for a local instant.
func offsetAt(year, month, day int) time.Duration {
	const jst = 9 * time.Hour

	st, ok := summerTimeByYear[year]
	if !ok {
		return jst
	}
	after := month > st.startMonth || (month == st.startMonth && day >= st.startDay)
	before := month < st.endMonth || (month == st.endMonth && day < st.endDay)
	if after && before {
		return jst + time.Hour
	}
	return jst
}

// Resolve maps a region code (romaji or Japanese) and a local birth date to
// a Reference. Lookup is a static table only; no I/O.
func Resolve(code string, year, month, day int) (Reference, error) {
	key := strings.ToLower(strings.TrimSpace(code))
	r, ok := regionIndex[key]
	if !ok {
		return Reference{}, apperrors.NewUnsupportedRegionError(code)
	}

	return Reference{
		Region:    r,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		UTCOffset: offsetAt(year, month, day),
	}, nil
}
