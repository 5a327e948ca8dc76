package types

// RecipientInfo addresses the cover letter. Date is free text.
type RecipientInfo struct {
	HiringManager string `json:"hiringManager"`
	Company       string `json:"company"`
	Position      string `json:"position"`
	Date          string `json:"date"`
}

// LetterContent holds the three free-text paragraphs of the letter.
type LetterContent struct {
	Opening string `json:"opening"`
	Body    string `json:"body"`
	Closing string `json:"closing"`
}

// CoverLetterDocument is the complete cover letter. Its PersonalInfo is kept
// in sync with the résumé's.
type CoverLetterDocument struct {
	PersonalInfo  PersonalInfo  `json:"personalInfo"`
	RecipientInfo RecipientInfo `json:"recipientInfo"`
	Content       LetterContent `json:"content"`
}
