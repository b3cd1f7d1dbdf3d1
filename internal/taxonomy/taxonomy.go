package taxonomy

import (
	"strconv"
	"strings"

	"medialog/internal/http-api/models"
)

// Bangumi subject types. Type 5 is unused upstream.
const (
	SubjectBook  = 1
	SubjectAnime = 2
	SubjectMusic = 3
	SubjectGame  = 4
	SubjectReal  = 6
)

// platformTypes maps subject type -> platform id -> media type. Platform ids
// come from the Bangumi API; "0" is the unset platform for that type.
var platformTypes = map[int]map[string]string{
	SubjectBook: {
		"0":    models.TypeManga,
		"1001": models.TypeManga, // 漫画
		"1002": models.TypeNovel, // 小说
		"1003": models.TypeManga, // 画集
		"1004": models.TypeManga, // 绘本
		"1005": models.TypeManga, // 写真
		"1006": models.TypeManga, // 公式书
	},
	SubjectAnime: {
		"0":    models.TypeAnime,
		"1":    models.TypeAnime, // TV
		"2":    models.TypeAnime, // OVA
		"3":    models.TypeAnime, // 剧场版
		"5":    models.TypeAnime, // WEB
		"2006": models.TypeAnime, // 动态漫画
	},
	SubjectMusic: {
		"0": models.TypeMusic,
	},
	SubjectGame: {
		"0":    models.TypeGame,
		"4001": models.TypeGame, // 游戏
		"4002": models.TypeGame, // 软件
		"4003": models.TypeGame, // 扩展包
		"4005": models.TypeGame, // 桌游
	},
	SubjectReal: {
		"0":    models.TypeTV,
		"1":    models.TypeTV,    // 日剧
		"2":    models.TypeTV,    // 欧美剧
		"3":    models.TypeTV,    // 华语剧
		"6001": models.TypeTV,    // 电视剧
		"6002": models.TypeMovie, // 电影
		"6003": models.TypeTV,    // 演出
		"6004": models.TypeTV,    // 综艺
	},
}

// typeDefaults is the fallback when the platform resolves nothing. Books
// default to manga (novels are recognized through the platform), real-world
// subjects default to tv (films are recognized through the platform).
var typeDefaults = map[int]string{
	SubjectBook:  models.TypeManga,
	SubjectAnime: models.TypeAnime,
	SubjectMusic: models.TypeMusic,
	SubjectGame:  models.TypeGame,
	SubjectReal:  models.TypeTV,
}

type nameMapping struct {
	name      string
	mediaType string
}

// platformNames covers platform names Bangumi reports as free text, in both
// languages plus common abbreviations. Order matters: the substring fallback
// in MediaTypeFor walks this slice front to back and the first hit wins.
var platformNames = []nameMapping{
	// books: everything except novels is filed as manga
	{"漫画", models.TypeManga},
	{"manga", models.TypeManga},
	{"comic", models.TypeManga},
	{"小说", models.TypeNovel},
	{"novel", models.TypeNovel},
	{"画集", models.TypeManga},
	{"illustration", models.TypeManga},
	{"绘本", models.TypeManga},
	{"picture", models.TypeManga},
	{"写真", models.TypeManga},
	{"photo", models.TypeManga},
	{"公式书", models.TypeManga},
	{"official", models.TypeManga},
	{"book", models.TypeManga},

	// animation
	{"动画", models.TypeAnime},
	{"anime", models.TypeAnime},
	{"tv", models.TypeAnime},
	{"ova", models.TypeAnime},
	{"web", models.TypeAnime},
	{"剧场版", models.TypeAnime},

	// games, including software and expansions
	{"游戏", models.TypeGame},
	{"game", models.TypeGame},
	{"games", models.TypeGame},
	{"软件", models.TypeGame},
	{"software", models.TypeGame},
	{"dlc", models.TypeGame},
	{"扩展包", models.TypeGame},
	{"桌游", models.TypeGame},
	{"tabletop", models.TypeGame},

	// real-world media: films are movie, the rest is tv
	{"日剧", models.TypeTV},
	{"欧美剧", models.TypeTV},
	{"华语剧", models.TypeTV},
	{"电视剧", models.TypeTV},
	{"电影", models.TypeMovie},
	{"movie", models.TypeMovie},
	{"演出", models.TypeTV},
	{"综艺", models.TypeTV},
	{"live", models.TypeTV},
	{"show", models.TypeTV},
	{"real", models.TypeTV},

	// music
	{"音乐", models.TypeMusic},
	{"music", models.TypeMusic},
}

// MediaTypeFor resolves a Bangumi subject type and platform hint to one of
// the internal media types. It never fails: unresolvable input falls through
// to the per-type default and finally to anime. Resolution order:
//
//  1. exact (type, platform id) match against platformTypes
//  2. exact platform name match against platformNames
//  3. bidirectional substring match over platformNames, first hit wins
//  4. per-type default from typeDefaults
//  5. anime
//
// The platform may be a numeric id or a free-text name; a typeCode of zero
// means the subject type is unknown.
func MediaTypeFor(typeCode int, platform string) string {
	if typeCode != 0 && platform != "" {
		if byPlatform, ok := platformTypes[typeCode]; ok {
			if mt, ok := byPlatform[platform]; ok {
				return mt
			}
		}

		key := strings.ToLower(strings.TrimSpace(platform))
		for _, m := range platformNames {
			if m.name == key {
				return m.mediaType
			}
		}
		for _, m := range platformNames {
			if strings.Contains(key, m.name) || strings.Contains(m.name, key) {
				return m.mediaType
			}
		}
	}

	if typeCode != 0 {
		if mt, ok := typeDefaults[typeCode]; ok {
			return mt
		}
	}
	return models.TypeAnime
}

// MediaTypeForCode is MediaTypeFor for callers holding the platform as a
// numeric id rather than text.
func MediaTypeForCode(typeCode, platformCode int) string {
	return MediaTypeFor(typeCode, strconv.Itoa(platformCode))
}

// collectionStatuses maps Bangumi collection type codes to internal statuses.
var collectionStatuses = map[int]string{
	1: models.StatusWant,    // 想看
	2: models.StatusDone,    // 看过
	3: models.StatusDoing,   // 在看
	4: models.StatusOnHold,  // 搁置
	5: models.StatusDropped, // 抛弃
}

// StatusFor resolves a Bangumi collection type code to an internal status.
// Unknown codes default to want rather than failing.
func StatusFor(code int) string {
	if s, ok := collectionStatuses[code]; ok {
		return s
	}
	return models.StatusWant
}
