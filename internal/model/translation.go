package model

// TranslationRequest is a blog draft to translate
type TranslationRequest struct {
	Title           string   `json:"title" binding:"required"`
	Content         string   `json:"content" binding:"required"`
	MetaDescription string   `json:"metaDescription"`
	Languages       []string `json:"languages"`
}

// Translation is the draft rendered in one target language
type Translation struct {
	Language                  string  `json:"language"`
	TranslatedTitle           string  `json:"translatedTitle"`
	TranslatedContent         string  `json:"translatedContent"`
	TranslatedMetaDescription *string `json:"translatedMetaDescription"`
}
