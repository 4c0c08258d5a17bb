package models

// JobSeekerProfile хранит данные соискателя
type JobSeekerProfile struct {
	BaseModel
	UserID    string `gorm:"uniqueIndex;not null"`
	Headline  string
	City      string
	About     string
	IsPublic  bool `gorm:"default:true"`
}

// EmployerProfile хранит данные работодателя
type EmployerProfile struct {
	BaseModel
	UserID      string `gorm:"uniqueIndex;not null"`
	CompanyName string
	City        string
	About       string
	IsVerified  bool `gorm:"default:false"`
}
