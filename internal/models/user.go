package models

import "time"

type Role string

const (
	RoleParent      Role = "parent"
	RoleChildminder Role = "childminder"
	RoleAdmin       Role = "admin"
)

type SubscriptionStatus string

const (
	SubscriptionNone     SubscriptionStatus = "NONE"
	SubscriptionActive   SubscriptionStatus = "ACTIVE"
	SubscriptionCanceled SubscriptionStatus = "CANCELED"
)

type User struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Email              string             `json:"email"`
	Role               Role               `json:"role"`
	Phone              string             `json:"phone,omitempty"`
	StreetAddress      string             `json:"street_address,omitempty"`
	City               string             `json:"city,omitempty"`
	County             string             `json:"county,omitempty"`
	Eircode            string             `json:"eircode,omitempty"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status"`
	HourlyRate         float64            `json:"hourly_rate,omitempty"`
	YearsExperience    int                `json:"years_experience,omitempty"`
	Rating             float64            `json:"rating,omitempty"`
	Languages          string             `json:"languages,omitempty"`
	AgeGroups          string             `json:"age_groups,omitempty"`
	AvailableDays      string             `json:"available_days,omitempty"`
	GardaVetted        bool               `json:"garda_vetted"`
	TuslaRegistered    bool               `json:"tusla_registered"`
	FirstAidCert       bool               `json:"first_aid_cert"`
	CreatedAt          time.Time          `json:"created_at"`
}
