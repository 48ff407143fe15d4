package media

import "github.com/soundprediction/globescope/pkg/types"

// defaultOutlets is the embedded registry used when no YAML file is
// configured. Credibility is a rough editorial score in [0, 100].
var defaultOutlets = []outletRecord{
	{
		MediaInfo: types.MediaInfo{Name: "Reuters", Country: "GB", Type: "agency", Category: "commercial", Credibility: 92, Bias: "center"},
		Domains:   []string{"reuters.com"},
	},
	{
		MediaInfo: types.MediaInfo{Name: "Associated Press", Country: "US", Type: "agency", Category: "commercial", Credibility: 92, Bias: "center"},
		Domains:   []string{"apnews.com"},
	},
	{
		MediaInfo: types.MediaInfo{Name: "BBC", Country: "GB", Type: "broadcaster", Category: "public", Credibility: 88, Bias: "center"},
		Domains:   []string{"bbc.co.uk", "bbc.com"},
	},
	{
		MediaInfo: types.MediaInfo{Name: "CNN", Country: "US", Type: "broadcaster", Category: "commercial", Credibility: 74, Bias: "center-left"},
		Domains:   []string{"cnn.com"},
	},
	{
		MediaInfo: types.MediaInfo{Name: "Fox News", Country: "US", Type: "broadcaster", Category: "commercial", Credibility: 60, Bias: "right"},
		Domains:   []string{"foxnews.com"},
	},
	{
		MediaInfo: types.MediaInfo{Name: "The New York Times", Country: "US", Type: "newspaper", Category: "commercial", Credibility: 84, Bias: "center-left"},
		Domains:   []string{"nytimes.com"},
	},
	{
		MediaInfo: types.MediaInfo{Name: "The Washington Post", Country: "US", Type: "newspaper", Category: "commercial", Credibility: 82, Bias: "center-left"},
		Domains:   []string{"washingtonpost.com"},
	},
	{
		MediaInfo: types.MediaInfo{Name: "The Guardian", Country: "GB", Type: "newspaper", Category: "commercial", Credibility: 80, Bias: "center-left"},
		Domains:   []string{"theguardian.com"},
	},
	{
		MediaInfo: types.MediaInfo{Name: "Al Jazeera", Country: "QA", Type: "broadcaster", Category: "public", Credibility: 76, Bias: "center"},
		Domains:   []string{"aljazeera.com"},
	},
	{
		MediaInfo: types.MediaInfo{Name: "France 24", Country: "FR", Type: "broadcaster", Category: "public", Credibility: 78, Bias: "center"},
		Domains:   []string{"france24.com"},
	},
	{
		MediaInfo: types.MediaInfo{Name: "Deutsche Welle", Country: "DE", Type: "broadcaster", Category: "public", Credibility: 80, Bias: "center"},
		Domains:   []string{"dw.com"},
	},
	{
		MediaInfo: types.MediaInfo{Name: "Yonhap News Agency", Country: "KR", Type: "agency", Category: "public", Credibility: 80, Bias: "center"},
		Domains:   []string{"yonhapnews.co.kr", "yna.co.kr"},
	},
	{
		MediaInfo: types.MediaInfo{Name: "The Chosun Ilbo", Country: "KR", Type: "newspaper", Category: "commercial", Credibility: 70, Bias: "right"},
		Domains:   []string{"chosun.com"},
	},
	{
		MediaInfo: types.MediaInfo{Name: "The Korea Herald", Country: "KR", Type: "newspaper", Category: "commercial", Credibility: 72, Bias: "center"},
		Domains:   []string{"koreaherald.com"},
	},
	{
		MediaInfo: types.MediaInfo{Name: "NHK", Country: "JP", Type: "broadcaster", Category: "public", Credibility: 84, Bias: "center"},
		Domains:   []string{"nhk.or.jp"},
	},
	{
		MediaInfo: types.MediaInfo{Name: "The Asahi Shimbun", Country: "JP", Type: "newspaper", Category: "commercial", Credibility: 78, Bias: "center-left"},
		Domains:   []string{"asahi.com"},
	},
	{
		MediaInfo: types.MediaInfo{Name: "Xinhua", Country: "CN", Type: "agency", Category: "public", Credibility: 55, Bias: "state"},
		Domains:   []string{"xinhuanet.com"},
	},
	{
		MediaInfo: types.MediaInfo{Name: "Global Times", Country: "CN", Type: "newspaper", Category: "public", Credibility: 45, Bias: "state"},
		Domains:   []string{"globaltimes.cn"},
	},
	{
		MediaInfo: types.MediaInfo{Name: "South China Morning Post", Country: "HK", Type: "newspaper", Category: "commercial", Credibility: 74, Bias: "center"},
		Domains:   []string{"scmp.com"},
	},
	{
		MediaInfo: types.MediaInfo{Name: "RT", Country: "RU", Type: "broadcaster", Category: "public", Credibility: 30, Bias: "state"},
		Domains:   []string{"rt.com"},
	},
	{
		MediaInfo: types.MediaInfo{Name: "TASS", Country: "RU", Type: "agency", Category: "public", Credibility: 40, Bias: "state"},
		Domains:   []string{"tass.com"},
	},
	{
		MediaInfo: types.MediaInfo{Name: "The Japan Times", Country: "JP", Type: "newspaper", Category: "commercial", Credibility: 76, Bias: "center"},
		Domains:   []string{"japantimes.co.jp"},
	},
}
