package strategy

import "strings"

// outletCountries maps well-known outlets to countries. Consulted before the
// TLD table because many non-US outlets publish under .com.
var outletCountries = map[string]string{
	"cnn.com":            "US",
	"nytimes.com":        "US",
	"washingtonpost.com": "US",
	"foxnews.com":        "US",
	"apnews.com":         "US",
	"bbc.co.uk":          "GB",
	"bbc.com":            "GB",
	"theguardian.com":    "GB",
	"reuters.com":        "GB",
	"xinhuanet.com":      "CN",
	"globaltimes.cn":     "CN",
	"chinadaily.com.cn":  "CN",
	"yonhapnews.co.kr":   "KR",
	"chosun.com":         "KR",
	"joongang.co.kr":     "KR",
	"koreaherald.com":    "KR",
	"nhk.or.jp":          "JP",
	"asahi.com":          "JP",
	"japantimes.co.jp":   "JP",
	"rt.com":             "RU",
	"tass.com":           "RU",
	"france24.com":       "FR",
	"lemonde.fr":         "FR",
	"dw.com":             "DE",
	"spiegel.de":         "DE",
	"aljazeera.com":      "QA",
	"scmp.com":           "HK",
}

// tldCountries maps domain suffixes to ISO country codes. Longer suffixes
// are checked first so .co.uk wins over .uk.
var tldCountries = map[string]string{
	".co.uk":  "GB",
	".org.uk": "GB",
	".uk":     "GB",
	".co.kr":  "KR",
	".or.kr":  "KR",
	".kr":     "KR",
	".co.jp":  "JP",
	".or.jp":  "JP",
	".jp":     "JP",
	".com.cn": "CN",
	".cn":     "CN",
	".com.au": "AU",
	".au":     "AU",
	".co.in":  "IN",
	".in":     "IN",
	".de":     "DE",
	".fr":     "FR",
	".it":     "IT",
	".es":     "ES",
	".ru":     "RU",
	".br":     "BR",
	".ca":     "CA",
	".mx":     "MX",
	".hk":     "HK",
	".sg":     "SG",
	".tw":     "TW",
	".za":     "ZA",
	".com":    "US",
}

// InferCountry guesses the country for a source domain: well-known outlets
// first, then TLD suffix, defaulting .com to US and everything else to
// Unknown.
func InferCountry(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return "Unknown"
	}

	if country, ok := outletCountries[domain]; ok {
		return country
	}

	// Longest suffix match so compound TLDs beat their parents.
	best := ""
	country := ""
	for suffix, c := range tldCountries {
		if strings.HasSuffix(domain, suffix) && len(suffix) > len(best) {
			best = suffix
			country = c
		}
	}
	if country != "" {
		return country
	}
	return "Unknown"
}
