package store

import "mesai/models"

// SeedDocument is the starter content for a fresh deployment: a small
// organization with one admin, two team leads and their reports. A missing
// remote document is created from this.
func SeedDocument() Document {
	return Document{
		Users: []models.User{
			{ID: "1", Username: "ahmet.admin@example.com", Name: "Ahmet Yilmaz", Role: models.RoleAdmin, Department: "Management"},
			{ID: "2", Username: "ali.lead@example.com", Name: "Ali Koc", Role: models.RoleTeamLead, Department: "Engineering"},
			{ID: "3", Username: "mehmet.user@example.com", Name: "Mehmet Demir", Role: models.RoleEmployee, Department: "Engineering", Manager: "ali.lead@example.com"},
			{ID: "4", Username: "ayse.user@example.com", Name: "Ayse Kara", Role: models.RoleEmployee, Department: "Sales", Manager: "veli.lead@example.com"},
			{ID: "5", Username: "veli.lead@example.com", Name: "Veli Can", Role: models.RoleTeamLead, Department: "Sales"},
		},
	}
}
