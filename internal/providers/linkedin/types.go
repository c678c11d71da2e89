package linkedin

// apiError is the LinkedIn error body.
type apiError struct {
	Message          string `json:"message"`
	ServiceErrorCode int    `json:"serviceErrorCode"`
	Status           int    `json:"status"`
	// OAuth endpoints use the RFC 6749 shape instead.
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

type profileResponse struct {
	ID                 string `json:"id"`
	LocalizedFirstName string `json:"localizedFirstName"`
	LocalizedLastName  string `json:"localizedLastName"`
}

const (
	shareContentKey    = "com.linkedin.ugc.ShareContent"
	visibilityKey      = "com.linkedin.ugc.MemberNetworkVisibility"
	uploadMechanismKey = "com.linkedin.digitalmedia.uploading.MediaUploadHttpRequest"

	categoryNone    = "NONE"
	categoryArticle = "ARTICLE"
	categoryImage   = "IMAGE"
)

type shareCommentary struct {
	Text string `json:"text"`
}

type shareMedia struct {
	Status      string `json:"status"`
	OriginalURL string `json:"originalUrl,omitempty"`
	Media       string `json:"media,omitempty"`
	Thumbnails  []struct {
		URL string `json:"url"`
	} `json:"thumbnails,omitempty"`
}

type shareContent struct {
	ShareCommentary    shareCommentary `json:"shareCommentary"`
	ShareMediaCategory string          `json:"shareMediaCategory"`
	Media              []shareMedia    `json:"media,omitempty"`
}

type ugcPostRequest struct {
	Author          string                  `json:"author"`
	LifecycleState  string                  `json:"lifecycleState"`
	SpecificContent map[string]shareContent `json:"specificContent"`
	Visibility      map[string]string       `json:"visibility"`
}

type ugcPost struct {
	ID      string `json:"id"`
	Created struct {
		Time int64 `json:"time"`
	} `json:"created"`
	FirstPublishedAt int64                   `json:"firstPublishedAt"`
	SpecificContent  map[string]shareContent `json:"specificContent"`
}

type ugcPostsResponse struct {
	Elements []ugcPost `json:"elements"`
}

type idResponse struct {
	ID string `json:"id"`
}

type registerUploadRequest struct {
	RegisterUploadRequest struct {
		Recipes              []string              `json:"recipes"`
		Owner                string                `json:"owner"`
		ServiceRelationships []serviceRelationship `json:"serviceRelationships"`
	} `json:"registerUploadRequest"`
}

type serviceRelationship struct {
	RelationshipType string `json:"relationshipType"`
	Identifier       string `json:"identifier"`
}

type registerUploadResponse struct {
	Value struct {
		Asset           string `json:"asset"`
		UploadMechanism map[string]struct {
			UploadURL string            `json:"uploadUrl"`
			Headers   map[string]string `json:"headers"`
		} `json:"uploadMechanism"`
	} `json:"value"`
}
