package handlers

import "entregas/internal/domain"

func userToResponse(u domain.User) userDTO {
	return userDTO{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		Role:      string(u.Role),
		Companies: companiesToStrings(u.Companies),
	}
}

func usersToResponse(list []domain.User) []userDTO {
	out := make([]userDTO, 0, len(list))
	for _, u := range list {
		out = append(out, userToResponse(u))
	}
	return out
}

func deliveryToResponse(d domain.Delivery) deliveryDTO {
	return deliveryDTO{
		ID:        d.ID,
		CourierID: d.CourierID,
		Company:   string(d.Company),
		PhotoURL:  d.PhotoURL,
		Status:    string(d.Status),
		Notes:     d.Notes,
		CreatedAt: d.CreatedAt,
	}
}

func deliveriesToResponse(list []domain.Delivery) []deliveryDTO {
	out := make([]deliveryDTO, 0, len(list))
	for _, d := range list {
		out = append(out, deliveryToResponse(d))
	}
	return out
}

func statsToResponse(s domain.FortnightStats) statsResponse {
	byDay := s.ByDay
	if byDay == nil {
		byDay = map[string]int{}
	}
	return statsResponse{
		Start: s.Start.Format(dateLayout),
		// End is exclusive; report the last included day
		End:   s.End.AddDate(0, 0, -1).Format(dateLayout),
		Total: s.Total,
		ByDay: byDay,
	}
}

func companiesToStrings(list []domain.Company) []string {
	out := make([]string, 0, len(list))
	for _, c := range list {
		out = append(out, string(c))
	}
	return out
}
