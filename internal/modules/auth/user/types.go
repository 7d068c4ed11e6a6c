package user

const (
	msgInvalidID       = "无效的用户ID格式"
	msgNotFound        = "用户不存在"
	msgCreateRequired  = "用户名、邮箱和密码不能为空"
	msgUpdateRequired  = "用户名和邮箱不能为空"
	msgDuplicate       = "用户名或邮箱已存在"
	msgDuplicateOther  = "用户名或邮箱已被其他用户使用"
	msgAvatarRequired  = "头像URL不能为空"
	msgInvalidRole     = "无效的用户角色"
)

// CreateUserDTO is the body of POST /users.
type CreateUserDTO struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
	Status   string  `json:"status"`
	Avatar   *string `json:"avatar"`
}

// UpdateUserDTO is the body of PUT /users/:id. An empty password keeps the
// stored hash.
type UpdateUserDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

type UpdateAvatarDTO struct {
	AvatarURL string `json:"avatarUrl"`
}

// Profile is the compact view of the signed-in user.
type Profile struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Image *string `json:"image"`
	Role  string  `json:"role"`
}
