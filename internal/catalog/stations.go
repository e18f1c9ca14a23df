package catalog

import "github.com/tessro/dial/internal/core"

// builtin is the station table shipped with dial, in display order.
var builtin = []core.Station{
	{
		ID:           "radio-city-hindi",
		Name:         "Radio City Hindi",
		Description:  "Bollywood hits around the clock",
		StreamURL:    "https://stream.zeno.fm/pxc55r5uyc9uv",
		FallbackURLs: []string{"https://prclive1.listenon.in/Hindi"},
		Genre:        "Bollywood",
		Language:     "Hindi",
		Country:      "India",
		Bitrate:      128,
		Format:       "mp3",
		Homepage:     "https://www.radiocity.in",
	},
	{
		ID:          "mirchi-top-20",
		Name:        "Mirchi Top 20",
		Description: "The week's most played Hindi songs",
		StreamURL:   "https://stream.zeno.fm/a0f1x8tz2hhvv",
		Genre:       "Bollywood",
		Language:    "Hindi",
		Country:     "India",
		Bitrate:     96,
		Format:      "aac",
		Homepage:    "https://www.radiomirchi.com",
	},
	{
		ID:          "vividh-bharati",
		Name:        "Vividh Bharati",
		Description: "All India Radio's national entertainment service",
		StreamURL:   "https://air.pc.cdn.bitgravity.com/air/live/pbaudio001/playlist.m3u8",
		Genre:       "Film Songs",
		Language:    "Hindi",
		Country:     "India",
		Format:      "hls",
		Homepage:    "https://newsonair.gov.in",
	},
	{
		ID:          "radio-city-telugu",
		Name:        "Radio City Telugu",
		Description: "Tollywood hits from Hyderabad",
		StreamURL:   "https://prclive1.listenon.in/Telugu",
		Genre:       "Tollywood",
		Language:    "Telugu",
		Country:     "India",
		Bitrate:     64,
		Format:      "aac",
		Homepage:    "https://www.radiocity.in",
	},
	{
		ID:          "radio-city-tamil",
		Name:        "Radio City Tamil",
		Description: "Kollywood and Tamil classics",
		StreamURL:   "https://prclive1.listenon.in/Tamil",
		Genre:       "Kollywood",
		Language:    "Tamil",
		Country:     "India",
		Bitrate:     64,
		Format:      "aac",
		Homepage:    "https://www.radiocity.in",
	},
	{
		ID:          "club-fm-malayalam",
		Name:        "Club FM Malayalam",
		Description: "Malayalam film music",
		StreamURL:   "https://stream.zeno.fm/0yt0dqg2yc9uv",
		Genre:       "Film Songs",
		Language:    "Malayalam",
		Country:     "India",
		Bitrate:     128,
		Format:      "mp3",
	},
	{
		ID:          "radio-city-kannada",
		Name:        "Radio City Kannada",
		Description: "Sandalwood hits",
		StreamURL:   "https://prclive1.listenon.in/Kannada",
		Genre:       "Film Songs",
		Language:    "Kannada",
		Country:     "India",
		Bitrate:     64,
		Format:      "aac",
	},
	{
		ID:          "radio-city-marathi",
		Name:        "Radio City Marathi",
		Description: "Marathi songs and natya sangeet",
		StreamURL:   "https://prclive1.listenon.in/Marathi",
		Genre:       "Regional",
		Language:    "Marathi",
		Country:     "India",
		Bitrate:     64,
		Format:      "aac",
	},
	{
		ID:          "radio-bangla-net",
		Name:        "Radio Bangla Net",
		Description: "Rabindra sangeet, adhunik and Bangla band music",
		StreamURL:   "https://stream.zeno.fm/4d6nv8a1pf8uv",
		Genre:       "Regional",
		Language:    "Bengali",
		Country:     "India",
		Bitrate:     128,
		Format:      "mp3",
	},
	{
		ID:          "punjabi-hits",
		Name:        "Punjabi Hits",
		Description: "Bhangra and Punjabi pop",
		StreamURL:   "https://stream.zeno.fm/5q7xc4hv0xhvv",
		Genre:       "Bhangra",
		Language:    "Punjabi",
		Country:     "India",
		Bitrate:     128,
		Format:      "mp3",
	},
	{
		ID:          "air-fm-gold",
		Name:        "AIR FM Gold",
		Description: "Retro Hindi film songs and news",
		StreamURL:   "https://air.pc.cdn.bitgravity.com/air/live/pbaudio005/playlist.m3u8",
		Genre:       "Retro",
		Language:    "Hindi",
		Country:     "India",
		Format:      "hls",
	},
	{
		ID:          "radio-indigo",
		Name:        "Radio Indigo",
		Description: "International pop and rock from Bengaluru",
		StreamURL:   "https://stream.zeno.fm/8wv4d8g4344tv",
		Genre:       "Pop",
		Language:    "English",
		Country:     "India",
		Bitrate:     128,
		Format:      "mp3",
	},
	{
		ID:          "shakti-fm",
		Name:        "Shakti FM",
		Description: "Hindi and Urdu programming for Nepal",
		StreamURL:   "https://stream.zeno.fm/fxn4uv3fzf8uv",
		Genre:       "Bollywood",
		Language:    "Nepali",
		Country:     "Nepal",
		Bitrate:     64,
		Format:      "mp3",
	},
	{
		ID:          "city-fm-89",
		Name:        "City FM 89",
		Description: "Urdu and English music from Karachi",
		StreamURL:   "https://stream.zeno.fm/q2fb8u7pwa0uv",
		Genre:       "Pop",
		Language:    "Urdu",
		Country:     "Pakistan",
		Bitrate:     64,
		Format:      "aac",
	},
	{
		ID:          "abc-fm-bangladesh",
		Name:        "ABC Radio 89.2",
		Description: "Bangla talk and music from Dhaka",
		StreamURL:   "https://stream.zeno.fm/rbdyp6zn0rhvv",
		Genre:       "Talk",
		Language:    "Bengali",
		Country:     "Bangladesh",
		Bitrate:     64,
		Format:      "mp3",
	},
	{
		ID:          "sun-fm-sri-lanka",
		Name:        "Sun FM",
		Description: "English hits from Colombo",
		StreamURL:   "https://stream.zeno.fm/y3ue5w3fkm0uv",
		Genre:       "Pop",
		Language:    "English",
		Country:     "Sri Lanka",
		Bitrate:     128,
		Format:      "mp3",
	},
	{
		ID:           "bbc-world-service",
		Name:         "BBC World Service",
		Description:  "International news and current affairs",
		StreamURL:    "https://stream.live.vc.bbcmedia.co.uk/bbc_world_service",
		FallbackURLs: []string{"https://a.files.bbci.co.uk/ms6/live/3441A116-B12E-4D2F-ACA8-C1984642FA4B/audio/simulcast/hls/nonuk/pc_hd_abr_v2/ak/bbc_world_service.m3u8"},
		Genre:        "News",
		Language:     "English",
		Country:      "United Kingdom",
		Bitrate:      56,
		Format:       "mp3",
		Homepage:     "https://www.bbc.co.uk/worldserviceradio",
	},
	{
		ID:          "radio-paradise",
		Name:        "Radio Paradise",
		Description: "Eclectic DJ-mixed rock, world and electronica",
		StreamURL:   "https://stream.radioparadise.com/mp3-192",
		FallbackURLs: []string{
			"https://stream.radioparadise.com/aac-128",
			"https://stream.radioparadise.com/mp3-128",
		},
		Genre:    "Eclectic",
		Language: "English",
		Country:  "United States",
		Bitrate:  192,
		Format:   "mp3",
		Homepage: "https://radioparadise.com",
	},
	{
		ID:          "kexp",
		Name:        "KEXP 90.3 FM",
		Description: "Where the music matters, from Seattle",
		StreamURL:   "https://kexp-mp3-128.streamguys1.com/kexp128.mp3",
		Genre:       "Indie",
		Language:    "English",
		Country:     "United States",
		Bitrate:     128,
		Format:      "mp3",
		Homepage:    "https://www.kexp.org",
	},
	{
		ID:          "somafm-groove-salad",
		Name:        "SomaFM Groove Salad",
		Description: "Ambient and downtempo beats",
		StreamURL:   "https://ice1.somafm.com/groovesalad-128-mp3",
		FallbackURLs: []string{
			"https://ice2.somafm.com/groovesalad-128-mp3",
			"https://ice4.somafm.com/groovesalad-128-mp3",
		},
		Genre:    "Ambient",
		Language: "English",
		Country:  "United States",
		Bitrate:  128,
		Format:   "mp3",
		Homepage: "https://somafm.com/groovesalad/",
	},
	{
		ID:          "fip",
		Name:        "FIP",
		Description: "Radio France's eclectic music station",
		StreamURL:   "https://icecast.radiofrance.fr/fip-midfi.mp3",
		FallbackURLs: []string{
			"https://icecast.radiofrance.fr/fip-hifi.aac",
		},
		Genre:    "Eclectic",
		Language: "French",
		Country:  "France",
		Bitrate:  128,
		Format:   "mp3",
		Homepage: "https://www.radiofrance.fr/fip",
	},
	{
		ID:          "radio-nacional-espana",
		Name:        "Radio Nacional",
		Description: "RNE news and culture",
		StreamURL:   "https://rtvelivestream.akamaized.net/rtvesec/rne/rne_r1_main.m3u8",
		Genre:       "News",
		Language:    "Spanish",
		Country:     "Spain",
		Format:      "hls",
	},
	{
		ID:          "dlf-kultur",
		Name:        "Deutschlandfunk Kultur",
		Description: "German culture, talk and classical music",
		StreamURL:   "https://st02.sslstream.dlf.de/dlf/02/128/mp3/stream.mp3",
		Genre:       "Culture",
		Language:    "German",
		Country:     "Germany",
		Bitrate:     128,
		Format:      "mp3",
	},
	{
		ID:          "jazz-fm-uk",
		Name:        "Jazz FM",
		Description: "Jazz, soul and blues",
		StreamURL:   "https://edge-bauerall-01-gos2.sharp-stream.com/jazzhigh.aac",
		Genre:       "Jazz",
		Language:    "English",
		Country:     "United Kingdom",
		Bitrate:     128,
		Format:      "aac",
	},
	{
		ID:          "abc-classic",
		Name:        "ABC Classic",
		Description: "Classical music from Australia",
		StreamURL:   "https://live-radio01.mediahubaustralia.com/2FMW/mp3/",
		Genre:       "Classical",
		Language:    "English",
		Country:     "Australia",
		Bitrate:     128,
		Format:      "mp3",
	},
	{
		ID:          "j-wave",
		Name:        "J-Wave",
		Description: "Tokyo FM music station",
		StreamURL:   "https://stream.zeno.fm/gngz3x9h3qruv",
		Genre:       "J-Pop",
		Language:    "Japanese",
		Country:     "Japan",
		Bitrate:     128,
		Format:      "mp3",
	},
	{
		ID:          "radio-globo",
		Name:        "Rádio Globo",
		Description: "Brazilian sport, talk and música popular",
		StreamURL:   "https://stream.zeno.fm/2ksh6zv6z0hvv",
		Genre:       "Talk",
		Language:    "Portuguese",
		Country:     "Brazil",
		Bitrate:     64,
		Format:      "aac",
	},
}
