package dto

// PostTextRequest 发布动态 / 评论
type PostTextRequest struct {
	Text string `json:"text" binding:"required"`
}

func (PostTextRequest) ValidationMessages() map[string]string {
	return map[string]string{"text": "Text is required"}
}
