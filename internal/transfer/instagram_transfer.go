package transfer

type InstagramResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	ErrorType string `json:"error_type,omitempty"`
}

type InstagramUser struct {
	Pk             int64  `json:"pk"`
	Username       string `json:"username"`
	FullName       string `json:"full_name"`
	IsPrivate      bool   `json:"is_private"`
	MediaCount     int    `json:"media_count"`
	FollowerCount  int    `json:"follower_count"`
	FollowingCount int    `json:"following_count"`
	ProfilePicURL  string `json:"profile_pic_url"`
}

type InstagramUserShort struct {
	Pk            int64  `json:"pk"`
	Username      string `json:"username"`
	FullName      string `json:"full_name"`
	IsPrivate     bool   `json:"is_private"`
	ProfilePicURL string `json:"profile_pic_url"`
}

type InstagramMedia struct {
	ID        string             `json:"id"` // "<mediaPk>_<userPk>"
	Pk        int64              `json:"pk"`
	Code      string             `json:"code"`
	MediaType int                `json:"media_type"` // 1 photo, 2 video
	TakenAt   int64              `json:"taken_at"`
	LikeCount int                `json:"like_count"`
	User      InstagramUserShort `json:"user"`
}

type InstagramLoginResponse struct {
	LoggedInUser InstagramUser `json:"logged_in_user"`
	Status       string        `json:"status"`
}

type InstagramUserResponse struct {
	User   InstagramUser `json:"user"`
	Status string        `json:"status"`
}

type InstagramFeedResponse struct {
	Items         []InstagramMedia `json:"items"`
	NumResults    int              `json:"num_results"`
	MoreAvailable bool             `json:"more_available"`
	Status        string           `json:"status"`
}

type InstagramLikersResponse struct {
	Users     []InstagramUserShort `json:"users"`
	UserCount int                  `json:"user_count"`
	Status    string               `json:"status"`
}

type InstagramUploadResponse struct {
	UploadID string `json:"upload_id"`
	Status   string `json:"status"`
}

type InstagramConfigureResponse struct {
	Media  InstagramMedia `json:"media"`
	Status string         `json:"status"`
}
