package transfer

import "time"

type GenerationRequest struct {
	BrandName          string `json:"brandName"`
	ProductDescription string `json:"productDescription"`
	TargetAudience     string `json:"targetAudience"`
	NumberOfPosts      int    `json:"numberOfPosts"`
}

// GeneratedPost is one item of the JSON array the completion endpoint is
// instructed to return.
type GeneratedPost struct {
	Caption     string     `json:"caption"`
	Hashtags    string     `json:"hashtags"`
	Platform    string     `json:"platform"`
	ImagePrompt string     `json:"imagePrompt"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}

type GeminiPart struct {
	Text string `json:"text"`
}

type GeminiContent struct {
	Parts []GeminiPart `json:"parts"`
}

type GeminiRequest struct {
	Contents []GeminiContent `json:"contents"`
}

type GeminiResponse struct {
	Candidates []struct {
		Content GeminiContent `json:"content"`
	} `json:"candidates"`
}
