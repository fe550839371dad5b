package handlers

import "time"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	Role        string   `json:"role"`
	Name        string   `json:"name"`
	Companies   []string `json:"companies,omitempty"`
}

type userDTO struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Username  string   `json:"username"`
	Role      string   `json:"role"`
	Companies []string `json:"companies"`
}

type createCourierRequest struct {
	Name      string   `json:"name"`
	Username  string   `json:"username"`
	Password  string   `json:"password"`
	Companies []string `json:"companies"`
}

type setCompaniesRequest struct {
	Companies []string `json:"companies"`
}

type setCompaniesResponse struct {
	Companies []string `json:"companies"`
}

type deliveryDTO struct {
	ID        int64     `json:"id"`
	CourierID int64     `json:"courier_id"`
	Company   string    `json:"company"`
	PhotoURL  string    `json:"photo_url"`
	Status    string    `json:"status"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type transitionRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

type statsResponse struct {
	Start string         `json:"start"`
	End   string         `json:"end"`
	Total int            `json:"total"`
	ByDay map[string]int `json:"by_day"`
}
