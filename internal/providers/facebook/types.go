package facebook

import "encoding/json"

// graphError is the envelope the Graph API returns on failure.
type graphError struct {
	Error *struct {
		Message      string `json:"message"`
		Type         string `json:"type"`
		Code         int    `json:"code"`
		ErrorSubcode int    `json:"error_subcode"`
		FBTraceID    string `json:"fbtrace_id"`
	} `json:"error"`
}

type tokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   json.Number `json:"expires_in"`
}

type meResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type accountsResponse struct {
	Data []struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		AccessToken string `json:"access_token"`
	} `json:"data"`
}

type summaryCount struct {
	Summary *struct {
		TotalCount int64 `json:"total_count"`
	} `json:"summary"`
}

func (s *summaryCount) total() int64 {
	if s == nil || s.Summary == nil {
		return 0
	}
	return s.Summary.TotalCount
}

type insightsResponse struct {
	Data []struct {
		Name   string `json:"name"`
		Values []struct {
			Value json.RawMessage `json:"value"`
		} `json:"values"`
	} `json:"data"`
}

// impressions returns the first numeric post_impressions value, or zero.
func (i *insightsResponse) impressions() int64 {
	if i == nil {
		return 0
	}
	for _, metric := range i.Data {
		if metric.Name != "post_impressions" || len(metric.Values) == 0 {
			continue
		}
		var n int64
		if err := json.Unmarshal(metric.Values[0].Value, &n); err == nil {
			return n
		}
	}
	return 0
}

type shareCount struct {
	Count int64 `json:"count"`
}

type pagePost struct {
	ID           string            `json:"id"`
	Message      string            `json:"message"`
	CreatedTime  string            `json:"created_time"`
	PermalinkURL string            `json:"permalink_url"`
	FullPicture  string            `json:"full_picture"`
	Shares       *shareCount       `json:"shares"`
	Reactions    *summaryCount     `json:"reactions"`
	Comments     *summaryCount     `json:"comments"`
	Insights     *insightsResponse `json:"insights"`
}

type pagePostsResponse struct {
	Data []pagePost `json:"data"`
}

type idResponse struct {
	ID     string `json:"id"`
	PostID string `json:"post_id"`
}

type attachedMedia struct {
	MediaFBID string `json:"media_fbid"`
}
