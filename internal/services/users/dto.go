package users

import (
	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/models"
)

type RegisterRequest struct {
	UserName    string      `json:"userName" validate:"required,min=3,max=80"`
	Email       string      `json:"email" validate:"required,email"`
	Password    string      `json:"password" validate:"required,min=6"`
	FirstName   string      `json:"firstName" validate:"max=80"`
	LastName    string      `json:"lastName" validate:"max=80"`
	CompanyName string      `json:"companyName" validate:"max=150"`
	PhoneNumber string      `json:"phoneNumber" validate:"max=30"`
	Role        models.Role `json:"userType" validate:"required,oneof=client freelancer company"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"otp" validate:"required,len=6,numeric"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Code     string `json:"otp" validate:"required,len=6,numeric"`
	Password string `json:"password" validate:"required,min=6"`
}

type UpdateRequest struct {
	Email          string       `json:"email" validate:"required,email"`
	FirstName      *string      `json:"firstName" validate:"omitempty,max=80"`
	LastName       *string      `json:"lastName" validate:"omitempty,max=80"`
	CompanyName    *string      `json:"companyName" validate:"omitempty,max=150"`
	Occupation     *string      `json:"occupation"`
	Intro          *string      `json:"intro"`
	ProfilePic     *string      `json:"profilePic"`
	PhoneNumber    *string      `json:"phoneNumber" validate:"omitempty,max=30"`
	Address        *string      `json:"address"`
	Website        *string      `json:"website"`
	SocialProfiles *[]string    `json:"socialProfiles"`
	Skills         *[]uuid.UUID `json:"skills"`
}

type ReviewRequest struct {
	UserID      uuid.UUID `json:"userId" validate:"required"`
	ReviewedBy  uuid.UUID `json:"reviewedBy" validate:"required"`
	Title       string    `json:"title" validate:"max=200"`
	Description string    `json:"description"`
	Rating      *int      `json:"rating" validate:"required,min=0,max=5"`
}

type ContactRequest struct {
	SenderUserID   uuid.UUID `json:"senderUserId" validate:"required"`
	ReceiverUserID uuid.UUID `json:"receiverUserId" validate:"required"`
}
