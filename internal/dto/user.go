package dto

import "shareit/internal/model"

// UserDto is the public view of a user.
type UserDto struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateUserRequest registers a user.
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required,notblank,max=200"`
	Email string `json:"email" validate:"required,email,max=200"`
}

// UpdateUserRequest changes the non-blank fields. ID is only read by PUT /users.
type UpdateUserRequest struct {
	ID    int64  `json:"id,omitempty"`
	Name  string `json:"name,omitempty" validate:"omitempty,max=200"`
	Email string `json:"email,omitempty" validate:"omitempty,email,max=200"`
}

func ToUserDto(u model.User) UserDto {
	return UserDto{ID: u.ID, Name: u.Name, Email: u.Email}
}

func ToUserDtos(users []model.User) []UserDto {
	out := make([]UserDto, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserDto(u))
	}
	return out
}
