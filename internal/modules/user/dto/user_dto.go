package dto

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateUserRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=100"`
	Password    string `json:"password" binding:"required,min=6,max=128"`
	DisplayName string `json:"display_name" binding:"required,max=200"`
	Role        string `json:"role" binding:"omitempty,oneof=admin redacteur"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url" binding:"omitempty,url"`
}

type UpdateUserRequest struct {
	DisplayName *string `json:"display_name" binding:"omitempty,max=200"`
	Bio         *string `json:"bio"`
	AvatarURL   *string `json:"avatar_url"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin redacteur"`
}
