package dto

// TokenInfo 表示令牌資訊
type TokenInfo struct {
	Value     string `json:"value"`
	ExpiresIn int    `json:"expires_in"`
}

// UserDTO 表示用戶資訊
type UserDTO struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
}

// LoginResponse 表示登入響應的完整結構
type LoginResponse struct {
	AccessToken TokenInfo `json:"access_token"`
	User        UserDTO   `json:"user"`
}

type LoginDTO struct {
	Username string `json:"username"` //帳號
	Password string `json:"password"` //密碼明文
}
