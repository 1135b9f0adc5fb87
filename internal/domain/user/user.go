package user

import (
	"errors"
	"time"
)

type User struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"createdAt"`
}

var ErrNotFound = errors.New("user not found")

type CreateUserRequest struct {
	FirstName string `json:"firstName" binding:"required,min=1,max=80"`
	LastName  string `json:"lastName" binding:"required,min=1,max=80"`
	Age       int    `json:"age" binding:"required,gte=1,lte=130"`
}

// Count is a pointer so an omitted field can fall back to the default batch size.
type RandomUsersRequest struct {
	Count *int `json:"count" binding:"omitempty,gte=0,lte=100000"`
}

const DefaultRandomCount = 1000
