package model

// swagger:model Topic
type Topic struct {
	BaseModel
	Name     string    `gorm:"size:255;not null" json:"name"`
	Market   Market    `gorm:"type:enum('crypto','gold');not null;index" json:"market"`
	Sections []Section `gorm:"foreignKey:TopicID" json:"sections,omitempty"`
}

func (Topic) TableName() string {
	return "interview_topics"
}

// swagger:model Section
type Section struct {
	BaseModel
	TopicID   uint       `gorm:"index;not null" json:"topicId"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	Questions []Question `gorm:"foreignKey:SectionID" json:"questions,omitempty"`
}

func (Section) TableName() string {
	return "interview_sections"
}

// swagger:model Question
type Question struct {
	BaseModel
	SectionID uint          `gorm:"index;not null" json:"sectionId"`
	Question  string        `gorm:"type:text;not null" json:"question"`
	Answer    string        `gorm:"type:text" json:"answer"`
	Level     QuestionLevel `gorm:"type:enum('Entry','Junior','Middle','Senior','Expert');not null" json:"level"`
}

func (Question) TableName() string {
	return "interview_questions"
}
