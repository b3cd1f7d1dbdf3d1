package bangumi

// User is the authenticated account behind a bearer token (/v0/me).
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
}

// CollectionPage is one page of /v0/users/{username}/collections.
type CollectionPage struct {
	Data   []Collection `json:"data"`
	Total  int          `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

// Collection is one collected subject. Type is the collection status code
// (1=想看 2=看过 3=在看 4=搁置 5=抛弃), Rate is 0 when unrated.
type Collection struct {
	SubjectID int               `json:"subject_id"`
	Subject   CollectionSubject `json:"subject"`
	Type      int               `json:"type"`
	Rate      int               `json:"rate"`
	Comment   *string           `json:"comment"`
	UpdatedAt string            `json:"updated_at"`
}

// CollectionSubject is the embedded subject summary on a collection entry.
// Type is the subject type (1=书籍 2=动画 3=音乐 4=游戏 6=三次元).
type CollectionSubject struct {
	ID     int    `json:"id"`
	Type   int    `json:"type"`
	Name   string `json:"name"`
	NameCN string `json:"name_cn"`
}

// Subject is the detail view (/v0/subjects/{id}); Platform is the
// disambiguating hint the collection summary lacks (小说 vs 漫画, 电影 vs
// 电视剧).
type Subject struct {
	ID       int    `json:"id"`
	Type     int    `json:"type"`
	Name     string `json:"name"`
	NameCN   string `json:"name_cn"`
	Platform string `json:"platform"`
}
