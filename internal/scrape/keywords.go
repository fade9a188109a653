package scrape

import "strings"

// Articles are kept only if they touch the economy. Arabic matching is plain
// substring containment; English matching is case-insensitive.

var arabicKeywords = []string{
	// Inflation & prices
	"التضخم",
	"الأسعار",
	"غلاء",
	"ارتفاع الأسعار",
	"أسعار المستهلك",

	// Economic growth
	"النمو الاقتصادي",
	"الاقتصاد",
	"الناتج المحلي",
	"الأداء الاقتصادي",

	// Currency & exchange
	"الدولار",
	"سعر الصرف",
	"الجنيه",
	"العملة",

	// Monetary policy
	"البنك المركزي",
	"الفائدة",
	"السياسة النقدية",

	// Employment
	"البطالة",
	"التوظيف",
}

var englishKeywords = []string{
	"inflation", "inflat", "price increase", "price rise", "cost of living",
	"purchasing power", "consumer prices", "cpi", "core inflation",
	"headline inflation", "price pressure", "monetary policy", "interest rate",
	"central bank", "cbe", "price index",
}

// IsEconomic reports whether the article's title or body mentions any
// economic keyword.
func IsEconomic(title, text string) bool {
	combined := title + " " + text

	for _, keyword := range arabicKeywords {
		if strings.Contains(combined, keyword) {
			return true
		}
	}

	lower := strings.ToLower(combined)
	for _, keyword := range englishKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}

	return false
}
