package dto

// PreLaunchSignUpRequest 预发布订阅
type PreLaunchSignUpRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	Email     string `json:"email" binding:"required"`
}

func (PreLaunchSignUpRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"first_name": "Full name is required",
		"email":      "Email is required",
	}
}
